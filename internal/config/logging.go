package config

// LoggingConfig controls the category logging system. When DebugMode is
// false the engine stays silent; persistence and catalog failures are
// swallowed either way.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"`
	Level      string          `yaml:"level" json:"level,omitempty"`
	Categories map[string]bool `yaml:"categories" json:"categories,omitempty"`
}

// DefaultLoggingConfig returns the logging defaults (silent).
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		DebugMode: false,
		Level:     "info",
	}
}
