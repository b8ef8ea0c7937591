package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want zerolog.Level
	}{
		{"default", Config{}, zerolog.InfoLevel},
		{"named", Config{Level: "warn"}, zerolog.WarnLevel},
		{"debug wins over level", Config{Level: "error", Debug: true}, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := build(tt.cfg, &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "chatty"}))
}

func TestInitSetsComponentLevel(t *testing.T) {
	require.NoError(t, Init(Config{Level: "warn", Output: "stderr"}))
	assert.Equal(t, zerolog.WarnLevel, WithComponent("gateway").GetLevel())

	require.NoError(t, Init(Config{}))
	assert.Equal(t, zerolog.InfoLevel, WithComponent("gateway").GetLevel())
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	l, err := build(Config{}, &buf)
	require.NoError(t, err)

	mu.Lock()
	prev := root
	root = l
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		root = prev
		mu.Unlock()
	})

	component := WithComponent("discovery")
	component.Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "discovery", line["component"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "hello", line["message"])
}
