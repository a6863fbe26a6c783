package config

// HashConfig configures instrumented hash tables.
type HashConfig struct {
	// Bucket count at construction.
	InitialCapacity int `yaml:"initial_capacity" json:"initial_capacity,omitempty"`

	// Load factor threshold; checked after every set. Exceeding it doubles
	// the capacity and rehashes every entry.
	LoadFactor float64 `yaml:"load_factor" json:"load_factor,omitempty"`
}

// DefaultHashConfig returns the hash-table defaults.
func DefaultHashConfig() HashConfig {
	return HashConfig{
		InitialCapacity: 16,
		LoadFactor:      0.75,
	}
}
