package webhook

import "fmt"

// Code is the machine-readable reason a webhook was rejected. Codes are part of
// the HTTP contract and must not change.
type Code string

const (
	CodeBadUserAgent         Code = "BadUserAgent"
	CodeMissingEventType     Code = "MissingEventType"
	CodeUnsupportedEventType Code = "UnsupportedEventType"
	CodeSchemaViolation      Code = "SchemaViolation"
)

// Error is a client-caused validation failure.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Path is the JSON pointer of the offending value for schema violations.
	Path string `json:"path,omitempty"`
	// Detail describes what was expected versus what was found.
	Detail string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Path != "" || e.Detail != "" {
		return fmt.Sprintf("%s: %s (at %q: %s)", e.Code, e.Message, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so callers can use errors.Is(err, &Error{Code: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func schemaViolation(path, detail string) *Error {
	if path == "" {
		path = "/"
	}
	return &Error{
		Code:    CodeSchemaViolation,
		Message: "Payload does not match the event schema.",
		Path:    path,
		Detail:  detail,
	}
}

var (
	errBadUserAgent = &Error{Code: CodeBadUserAgent, Message: "Invalid user agent."}
	errNoEventType  = &Error{Code: CodeMissingEventType, Message: "No event type provided."}
	errBadEventType = &Error{Code: CodeUnsupportedEventType, Message: "Unsupported event type."}
)
