package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeConfigSection(t *testing.T) {
	var out struct {
		Addr    string `yaml:"http_addr"`
		MaxBody int64  `yaml:"max_body_bytes"`
	}

	err := DecodeConfigSection(map[string]any{"http_addr": ":9000", "max_body_bytes": 1024}, &out)
	assert.NoError(t, err)
	assert.Equal(t, ":9000", out.Addr)
	assert.Equal(t, int64(1024), out.MaxBody)

	assert.NoError(t, DecodeConfigSection(nil, &out))
	assert.Equal(t, ":9000", out.Addr)

	err = DecodeConfigSection(map[string]any{"max_body_bytes": "lots"}, &out)
	assert.Error(t, err)
}
