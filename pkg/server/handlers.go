package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/mywio/guilded-relay/pkg/core"
	"github.com/mywio/guilded-relay/pkg/guilded"
	"github.com/mywio/guilded-relay/pkg/metrics"
	"github.com/mywio/guilded-relay/pkg/render"
	"github.com/mywio/guilded-relay/pkg/webhook"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type errorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details *errorDetails `json:"details,omitempty"`
}

type errorDetails struct {
	Path   string `json:"path,omitempty"`
	Detail string `json:"detail,omitempty"`
}

var noMessage = errorBody{
	Code:    "ProxyNoMessage",
	Message: "There was no message to send. This can be ignored.",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "Hello!")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.Status()
	if s.health != nil {
		status = s.health.Status()
	}
	code := http.StatusOK
	switch status {
	case core.StatusUnhealthy, core.StatusDegraded:
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]core.ServiceStatus{"status": status})
}

// optionsFromQuery reads the reactions, drafts and immersive flags.
func optionsFromQuery(q url.Values) render.Options {
	opts := render.DefaultOptions()
	opts.ShowReactions = q.Get("reactions") != "false"
	opts.ShowDrafts = q.Get("drafts") == "true"
	opts.Immersive = render.ParseImmersive(q.Get("immersive"))
	return opts
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	token := core.NewSecret(r.PathValue("token"))
	eventType := github.WebHookType(r)
	deliveryID := github.DeliveryID(r)
	logger := s.logger.With("event_type", eventType, "delivery_id", deliveryID, "webhook_id", id)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.IncWebhook(eventType, "reject")
			logger.WarnContext(ctx, "Webhook body too large", "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Code: "PayloadTooLarge", Message: "Request body is too large."})
			return
		}
		metrics.IncWebhook(eventType, "reject")
		logger.WarnContext(ctx, "Failed to read webhook body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: "Could not read request body."})
		return
	}

	decision := s.engine.Handle(ctx, webhook.Request{
		UserAgent:  r.UserAgent(),
		EventType:  eventType,
		DeliveryID: deliveryID,
		Body:       body,
	}, optionsFromQuery(r.URL.Query()))

	switch decision.Kind {
	case render.KindReject:
		metrics.IncWebhook(eventType, "reject")
		out := errorBody{Code: "BadRequest", Message: decision.Reason}
		if verr := decision.Err; verr != nil {
			out.Code = string(verr.Code)
			out.Message = verr.Message
			if verr.Path != "" || verr.Detail != "" {
				out.Details = &errorDetails{Path: verr.Path, Detail: verr.Detail}
			}
		}
		logger.InfoContext(ctx, "Webhook rejected", "outcome", "reject", "code", out.Code)
		writeJSON(w, http.StatusBadRequest, out)

	case render.KindSuppress:
		metrics.IncWebhook(eventType, "suppress")
		logger.InfoContext(ctx, "Webhook suppressed", "outcome", "suppress", "reason", decision.Reason)
		writeJSON(w, http.StatusOK, noMessage)

	case render.KindSend:
		if ctx.Err() != nil {
			metrics.IncWebhook(eventType, "cancelled")
			logger.InfoContext(ctx, "Request cancelled before delivery", "outcome", "cancelled")
			return
		}
		resp, err := s.deliver(ctx, id, token, *decision.Message)
		if err != nil {
			metrics.IncWebhook(eventType, "failed")
			logger.ErrorContext(ctx, "Guilded delivery failed", "outcome", "failed", "error", err)
			writeJSON(w, http.StatusBadGateway, errorBody{Code: "DeliveryFailed", Message: "Could not reach Guilded."})
			return
		}
		metrics.IncWebhook(eventType, "send")
		logger.InfoContext(ctx, "Webhook relayed", "outcome", "send", "status", resp.StatusCode)

		contentType := resp.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
	}
}

func (s *Server) deliver(ctx context.Context, id string, token core.Secret, msg guilded.Message) (*guilded.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.DeliveryTimeout)
	defer cancel()

	ctx, span := otel.Tracer("github.com/mywio/guilded-relay").Start(ctx, "relay.deliver")
	defer span.End()

	start := time.Now()
	resp, err := s.client.Execute(ctx, id, token, msg)
	if err != nil {
		metrics.ObserveDelivery(0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	metrics.ObserveDelivery(resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	return resp, nil
}
