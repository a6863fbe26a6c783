package config

import "time"

// PlaybackConfig configures the playback controller.
type PlaybackConfig struct {
	// Interval between auto-advance ticks while playing.
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval,omitempty"`
}

// DefaultPlaybackConfig returns the playback defaults (800ms tick).
func DefaultPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{TickInterval: 800 * time.Millisecond}
}
