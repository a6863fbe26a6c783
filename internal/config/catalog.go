package config

// CatalogConfig configures the scenario catalog.
type CatalogConfig struct {
	// Directory of scenario suite YAML files. Empty means the embedded
	// default suite only.
	Dir string `yaml:"dir" json:"dir,omitempty"`

	// Watch enables hot-reload of suite files via fsnotify.
	Watch bool `yaml:"watch" json:"watch,omitempty"`
}

// DefaultCatalogConfig returns the catalog defaults.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{}
}
