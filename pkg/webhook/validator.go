package webhook

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UserAgentPrefix identifies deliveries made by GitHub.
const UserAgentPrefix = "GitHub-Hookshot/"

const schemaBaseURL = "https://schemas.guilded-relay.dev/github/"

//go:embed schemas/*.json
var schemaFS embed.FS

// Request is the part of an inbound HTTP request the validator looks at.
type Request struct {
	UserAgent  string
	EventType  string
	DeliveryID string
	Body       []byte
}

// Validator checks inbound payloads against the per-event JSON Schema catalog
// and decodes them into typed envelopes. It is safe for concurrent use.
type Validator struct {
	schemas map[EventType]*jsonschema.Schema
}

// NewValidator compiles the embedded schema catalog. Every supported event type
// must have a schema.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schema catalog: %w", err)
	}
	for _, entry := range entries {
		data, err := schemaFS.ReadFile("schemas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", entry.Name(), err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", entry.Name(), err)
		}
		if err := c.AddResource(schemaBaseURL+entry.Name(), doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", entry.Name(), err)
		}
	}

	v := &Validator{schemas: make(map[EventType]*jsonschema.Schema)}
	for _, t := range SupportedEventTypes() {
		compiled, err := c.Compile(schemaBaseURL + string(t) + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", t, err)
		}
		v.schemas[t] = compiled
	}
	return v, nil
}

// Validate runs the checks in order and stops at the first failure. The
// returned error is always a *Error.
func (v *Validator) Validate(req Request) (*Envelope, error) {
	if !strings.HasPrefix(req.UserAgent, UserAgentPrefix) {
		return nil, errBadUserAgent
	}
	if strings.TrimSpace(req.EventType) == "" {
		return nil, errNoEventType
	}
	eventType, ok := ParseEventType(req.EventType)
	if !ok {
		return nil, errBadEventType
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(req.Body))
	if err != nil {
		return nil, schemaViolation("", "body is not valid JSON: "+err.Error())
	}
	if err := v.schemas[eventType].Validate(instance); err != nil {
		return nil, v.describe(err)
	}

	event, err := github.ParseWebHook(string(eventType), req.Body)
	if err != nil {
		return nil, schemaViolation("", "cannot decode payload: "+err.Error())
	}
	var common struct {
		Sender *github.User       `json:"sender"`
		Repo   *github.Repository `json:"repository"`
	}
	if err := json.Unmarshal(req.Body, &common); err != nil {
		return nil, schemaViolation("", "cannot decode payload: "+err.Error())
	}

	return &Envelope{
		Type:       eventType,
		DeliveryID: req.DeliveryID,
		Sender:     common.Sender,
		Repo:       common.Repo,
		event:      event,
	}, nil
}

// describe turns a schema validation failure into a SchemaViolation pointing at
// the most specific failing location.
func (v *Validator) describe(err error) *Error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return schemaViolation("", err.Error())
	}
	leaf := deepestCause(verr)
	path := "/" + strings.Join(leaf.InstanceLocation, "/")
	detail := leaf.ErrorKind.LocalizedString(message.NewPrinter(language.English))
	return schemaViolation(path, detail)
}

func deepestCause(verr *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := verr
	for _, cause := range verr.Causes {
		candidate := deepestCause(cause)
		if len(candidate.InstanceLocation) > len(best.InstanceLocation) ||
			(len(best.Causes) > 0 && len(candidate.InstanceLocation) == len(best.InstanceLocation)) {
			best = candidate
		}
	}
	return best
}
