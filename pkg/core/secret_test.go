package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretMarshalJSON(t *testing.T) {
	secret := Secret{Value: "supersecret"}
	data, err := json.Marshal(secret)
	assert.NoError(t, err)
	assert.Equal(t, "\"REDACTED\"", string(data))

	empty := Secret{}
	data, err = json.Marshal(empty)
	assert.NoError(t, err)
	assert.Equal(t, "\"\"", string(data))
}

func TestSecretNeverPrinted(t *testing.T) {
	secret := NewSecret("webhook-token")
	assert.Equal(t, "REDACTED", fmt.Sprint(secret))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("delivering", "token", secret)
	assert.NotContains(t, buf.String(), "webhook-token")
	assert.Contains(t, buf.String(), "REDACTED")
}
