package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. UKCALC_LOGGING_LEVEL.
const EnvPrefix = "UKCALC"

// DefaultSettingsName is the settings file looked up when none is given.
const DefaultSettingsName = "ukcalc"

// Settings is the application configuration.
type Settings struct {
	Server    ServerSettings  `mapstructure:"server"`
	Logging   LoggingSettings `mapstructure:"logging"`
	Tax       TaxSettings     `mapstructure:"tax"`
	RatesFile string          `mapstructure:"rates_file"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Address string `mapstructure:"address"`
}

// LoggingSettings holds logging configuration options
type LoggingSettings struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// TaxSettings holds calculation defaults.
type TaxSettings struct {
	DefaultYear string `mapstructure:"default_year"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("tax.default_year", "")
	v.SetDefault("rates_file", "")
}

// LoadSettings reads settings from path, or from ukcalc.yaml in the working
// directory when path is empty (a missing default file is not an error).
// Environment variables override the file.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultSettingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading settings: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks enumerated settings.
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", s.Logging.Level)
	}
	switch strings.ToLower(s.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %q", s.Logging.Format)
	}
	if s.Tax.DefaultYear != "" {
		if _, err := domain.ParseTaxYear(s.Tax.DefaultYear); err != nil {
			return fmt.Errorf("invalid tax.default_year: %w", err)
		}
	}
	return nil
}

// DefaultTaxYear returns the configured default year, or "" to let the
// engine choose.
func (s *Settings) DefaultTaxYear() domain.TaxYear {
	if s.Tax.DefaultYear == "" {
		return ""
	}
	year, err := domain.ParseTaxYear(s.Tax.DefaultYear)
	if err != nil {
		return ""
	}
	return year
}

// DebugEnabled reports whether the logging level is debug, in any case.
func (s *Settings) DebugEnabled() bool {
	return strings.EqualFold(s.Logging.Level, "debug")
}
