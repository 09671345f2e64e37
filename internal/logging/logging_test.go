package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig(t *testing.T) {
	console, err := Config("debug", "console")
	require.NoError(t, err)
	assert.Equal(t, "console", console.Encoding)
	assert.Equal(t, zapcore.DebugLevel, console.Level.Level())
	assert.Equal(t, []string{"stderr"}, console.OutputPaths)

	json, err := Config("warn", "json")
	require.NoError(t, err)
	assert.Equal(t, "json", json.Encoding)
	assert.Equal(t, zapcore.WarnLevel, json.Level.Level())

	_, err = Config("info", "xml")
	assert.Error(t, err)
	_, err = Config("loud", "json")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	logger, err := New("info", "json")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
