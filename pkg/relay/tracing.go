package relay

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mywio/guilded-relay"

type tracer struct {
	tracer trace.Tracer
}

func newTracer() *tracer {
	return &tracer{tracer: otel.Tracer(tracerName)}
}

func (t *tracer) start(ctx context.Context, name, eventType, deliveryID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("github.event", eventType),
			attribute.String("github.delivery_id", deliveryID),
		),
	)
}

func endWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
