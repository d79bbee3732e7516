package relay

import (
	"context"
	"log/slog"

	"github.com/mywio/guilded-relay/pkg/render"
	"github.com/mywio/guilded-relay/pkg/webhook"
	"go.opentelemetry.io/otel/attribute"
)

// Engine validates a webhook and renders it. It does not deliver.
type Engine struct {
	validator *webhook.Validator
	renderer  *render.Renderer
	tracer    *tracer
	logger    *slog.Logger
}

// NewEngine compiles the schema catalog and builds a renderer posting as
// identity.
func NewEngine(identity render.Identity, logger *slog.Logger) (*Engine, error) {
	v, err := webhook.NewValidator()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		validator: v,
		renderer:  render.New(identity),
		tracer:    newTracer(),
		logger:    logger,
	}, nil
}

// Handle runs validation then rendering. Validation failures become Reject
// decisions; nothing is rendered for them.
func (e *Engine) Handle(ctx context.Context, req webhook.Request, opts render.Options) render.Decision {
	_, span := e.tracer.start(ctx, "relay.validate", req.EventType, req.DeliveryID)
	env, err := e.validator.Validate(req)
	if err != nil {
		endWithError(span, err)
		verr, _ := err.(*webhook.Error)
		e.logger.DebugContext(ctx, "Webhook rejected", "event_type", req.EventType, "delivery_id", req.DeliveryID, "error", err)
		return render.Reject(verr)
	}
	span.End()

	_, span = e.tracer.start(ctx, "relay.render", req.EventType, req.DeliveryID)
	decision := e.renderer.Render(env, opts)
	span.SetAttributes(attribute.String("relay.outcome", decision.Kind.String()))
	span.End()

	if decision.Kind == render.KindSuppress {
		e.logger.DebugContext(ctx, "Webhook suppressed", "event", env.String(), "delivery_id", req.DeliveryID, "reason", decision.Reason)
	}
	return decision
}
