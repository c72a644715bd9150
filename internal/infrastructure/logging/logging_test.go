package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{
			name:     "default level is info",
			cfg:      config.LogConfig{},
			enabled:  zapcore.InfoLevel,
			disabled: zapcore.DebugLevel,
		},
		{
			name:     "console debug",
			cfg:      config.LogConfig{Level: "debug"},
			enabled:  zapcore.DebugLevel,
			disabled: zapcore.DebugLevel - 1,
		},
		{
			name:     "json warn",
			cfg:      config.LogConfig{Level: "warn", JSON: true},
			enabled:  zapcore.WarnLevel,
			disabled: zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			core := logger.Desugar().Core()
			assert.True(t, core.Enabled(tt.enabled))
			assert.False(t, core.Enabled(tt.disabled))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotNil(t, Nop())
}
