package domain

import "fmt"

// Locale selects the message catalog used to word alerts.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

// ValidLocales enumerates the supported message catalogs.
var ValidLocales = []Locale{LocaleFR, LocaleEN}

// Config holds the settings loaded from .coherence.yaml.
type Config struct {
	Locale      Locale    `yaml:"locale"       json:"locale,omitempty"`
	Skip        []AlertID `yaml:"skip"         json:"skip,omitempty"`
	MinSeverity Severity  `yaml:"min_severity" json:"min_severity,omitempty"`
	Strict      bool      `yaml:"strict"       json:"strict,omitempty"`
}

// DefaultConfig returns a config that reports every alert in French.
func DefaultConfig() Config {
	return Config{Locale: LocaleFR}
}

// EffectiveLocale returns the configured locale, French when unset.
func (c Config) EffectiveLocale() Locale {
	if c.Locale == "" {
		return LocaleFR
	}
	return c.Locale
}

// IsSkipped reports whether alerts with the given id are excluded.
func (c Config) IsSkipped(id AlertID) bool {
	for _, s := range c.Skip {
		if s == id {
			return true
		}
	}
	return false
}

// Keeps reports whether an alert survives the skip and min_severity filters.
func (c Config) Keeps(a Alert) bool {
	if c.IsSkipped(a.ID) {
		return false
	}
	if c.MinSeverity != "" && a.Severity.Rank() > c.MinSeverity.Rank() {
		return false
	}
	return true
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Locale != "" {
		valid := false
		for _, l := range ValidLocales {
			if c.Locale == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown locale %q (valid: fr, en)", c.Locale)
		}
	}

	for _, id := range c.Skip {
		if !IsValidAlertID(id) {
			return fmt.Errorf("unknown alert id %q in skip", id)
		}
	}

	if c.MinSeverity != "" && c.MinSeverity.Rank() > SeverityInfo.Rank() {
		return fmt.Errorf("unknown min_severity %q (valid: error, warning, info)", c.MinSeverity)
	}

	return nil
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr             string `mapstructure:"addr"`
	ShutdownTimeout  string `mapstructure:"shutdown_timeout"`
	LogLevel         string `mapstructure:"log_level"`
	BatchConcurrency int    `mapstructure:"batch_concurrency"`
	ConfigPath       string `mapstructure:"config_path"`
}
