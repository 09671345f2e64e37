package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", settings.Server.Address)
	assert.Equal(t, "info", settings.Logging.Level)
	assert.Equal(t, "console", settings.Logging.Format)
	assert.Empty(t, settings.RatesFile)
	assert.Equal(t, domain.TaxYear(""), settings.DefaultTaxYear())
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := writeTemp(t, "ukcalc.yaml", "server:\n  address: \"127.0.0.1:9000\"\n"+
		"logging:\n  level: debug\n  format: json\n"+
		"tax:\n  default_year: \"2024-25\"\n"+
		"rates_file: rates.yaml\n")

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", settings.Server.Address)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "rates.yaml", settings.RatesFile)
	assert.Equal(t, domain.TaxYear2024, settings.DefaultTaxYear())
}

func TestLoadSettingsEnvironmentOverrides(t *testing.T) {
	path := writeTemp(t, "ukcalc.yaml", "logging:\n  level: debug\n")
	t.Setenv("UKCALC_LOGGING_LEVEL", "warn")
	t.Setenv("UKCALC_SERVER_ADDRESS", ":7000")
	t.Setenv("UKCALC_TAX_DEFAULT_YEAR", "2025/26")

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, ":7000", settings.Server.Address)
	assert.Equal(t, domain.TaxYear2025, settings.DefaultTaxYear())
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad level", "logging:\n  level: loud\n", "invalid logging.level"},
		{"bad format", "logging:\n  format: xml\n", "invalid logging.format"},
		{"bad year", "tax:\n  default_year: \"2010/11\"\n", "invalid tax.default_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeTemp(t, "ukcalc.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadSettings("/nonexistent/ukcalc.yaml")
	assert.Error(t, err)
}

func TestSettingsDebugEnabled(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"debug", true},
		{"DEBUG", true},
		{"Debug", true},
		{"info", false},
		{"error", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			s := &Settings{Logging: LoggingSettings{Level: tt.level, Format: "console"}}
			assert.Equal(t, tt.want, s.DebugEnabled())
		})
	}
}
