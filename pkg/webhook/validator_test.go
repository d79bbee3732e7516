package webhook

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hookshot = "GitHub-Hookshot/4f9c2a1"

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	require.NoError(t, err)
	return data
}

// mutate decodes a fixture, applies fn and re-encodes it.
func mutate(t *testing.T, name string, fn func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(fixture(t, name), &m))
	fn(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return out
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestValidate_AllFixtures(t *testing.T) {
	v := newTestValidator(t)

	for _, eventType := range SupportedEventTypes() {
		t.Run(string(eventType), func(t *testing.T) {
			env, err := v.Validate(Request{
				UserAgent:  hookshot,
				EventType:  string(eventType),
				DeliveryID: "72d3162e-cc78-11e3-81ab-4c9367dc0958",
				Body:       fixture(t, string(eventType)),
			})
			require.NoError(t, err)
			require.NotNil(t, env)
			assert.Equal(t, eventType, env.Type)
			assert.Equal(t, "72d3162e-cc78-11e3-81ab-4c9367dc0958", env.DeliveryID)
			assert.NotNil(t, env.Sender)
		})
	}
}

func TestValidate_TypedAccess(t *testing.T) {
	v := newTestValidator(t)

	env, err := v.Validate(Request{UserAgent: hookshot, EventType: "push", Body: fixture(t, "push")})
	require.NoError(t, err)

	push, ok := As[*github.PushEvent](env)
	require.True(t, ok)
	assert.Len(t, push.Commits, 3)
	assert.Equal(t, "refs/heads/main", push.GetRef())
	assert.Equal(t, "octocat/hello-world", env.Repo.GetFullName())
	assert.Equal(t, "push@octocat/hello-world", env.String())

	_, ok = As[*github.IssuesEvent](env)
	assert.False(t, ok, "payload must not be readable as another event type")

	_, ok = As[*github.PushEvent](nil)
	assert.False(t, ok)
}

func TestValidate_Rejections(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		userAgent string
		eventType string
		body      []byte
		code      Code
	}{
		{"missing user agent", "", "ping", []byte(`{}`), CodeBadUserAgent},
		{"foreign user agent", "curl/8.5.0", "ping", []byte(`{}`), CodeBadUserAgent},
		{"user agent checked first", "curl/8.5.0", "", []byte(`not json`), CodeBadUserAgent},
		{"missing event type", hookshot, "", []byte(`{}`), CodeMissingEventType},
		{"blank event type", hookshot, "  ", []byte(`{}`), CodeMissingEventType},
		{"unknown event type", hookshot, "deployment", []byte(`{}`), CodeUnsupportedEventType},
		{"case sensitive event type", hookshot, "Push", []byte(`{}`), CodeUnsupportedEventType},
		{"invalid json", hookshot, "ping", []byte(`{"zen":`), CodeSchemaViolation},
		{"not an object", hookshot, "ping", []byte(`[]`), CodeSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := v.Validate(Request{UserAgent: tt.userAgent, EventType: tt.eventType, Body: tt.body})
			assert.Nil(t, env)
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.code, verr.Code)
			assert.NotEmpty(t, verr.Message)
			assert.True(t, errors.Is(err, &Error{Code: tt.code}))
		})
	}
}

func TestValidate_SchemaViolations(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		eventType string
		body      []byte
		path      string
		detail    string
	}{
		{
			name:      "missing required field",
			eventType: "watch",
			body:      mutate(t, "watch", func(m map[string]any) { delete(m, "sender") }),
			path:      "/",
			detail:    "sender",
		},
		{
			name:      "wrong primitive type",
			eventType: "issues",
			body: mutate(t, "issues", func(m map[string]any) {
				m["issue"].(map[string]any)["number"] = "twelve"
			}),
			path: "/issue/number",
		},
		{
			name:      "unknown action",
			eventType: "issues",
			body:      mutate(t, "issues", func(m map[string]any) { m["action"] = "exploded" }),
			path:      "/action",
		},
		{
			name:      "negative reaction count",
			eventType: "issue_comment",
			body: mutate(t, "issue_comment", func(m map[string]any) {
				m["comment"].(map[string]any)["reactions"].(map[string]any)["heart"] = -1
			}),
			path: "/comment/reactions/heart",
		},
		{
			name:      "null in non-nullable field",
			eventType: "push",
			body:      mutate(t, "push", func(m map[string]any) { m["ref"] = nil }),
			path:      "/ref",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(Request{UserAgent: hookshot, EventType: tt.eventType, Body: tt.body})
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, CodeSchemaViolation, verr.Code)
			assert.Equal(t, tt.path, verr.Path)
			assert.NotEmpty(t, verr.Detail)
			if tt.detail != "" {
				assert.Contains(t, verr.Detail, tt.detail)
			}
		})
	}
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	v := newTestValidator(t)

	body := mutate(t, "star", func(m map[string]any) {
		m["installation"] = map[string]any{"id": 1}
		m["something_new"] = []int{1, 2, 3}
	})
	env, err := v.Validate(Request{UserAgent: hookshot, EventType: "star", Body: body})
	require.NoError(t, err)

	star, ok := As[*github.StarEvent](env)
	require.True(t, ok)
	assert.Equal(t, "created", star.GetAction())
}

func TestValidate_NullableFields(t *testing.T) {
	v := newTestValidator(t)

	body := mutate(t, "issues", func(m map[string]any) {
		m["issue"].(map[string]any)["body"] = nil
	})
	env, err := v.Validate(Request{UserAgent: hookshot, EventType: "issues", Body: body})
	require.NoError(t, err)

	issues, ok := As[*github.IssuesEvent](env)
	require.True(t, ok)
	assert.Empty(t, issues.GetIssue().GetBody())
}

func TestParseEventType(t *testing.T) {
	for _, eventType := range SupportedEventTypes() {
		got, ok := ParseEventType(eventType.String())
		assert.True(t, ok)
		assert.Equal(t, eventType, got)
	}
	_, ok := ParseEventType("deployment_status")
	assert.False(t, ok)
}

func TestError_Format(t *testing.T) {
	err := schemaViolation("", "boom")
	assert.Equal(t, "/", err.Path)
	assert.Contains(t, err.Error(), "SchemaViolation")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "BadUserAgent: Invalid user agent.", errBadUserAgent.Error())
}
