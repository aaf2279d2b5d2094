// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the crime CSV loaded on startup. Empty means
	// the service starts without data and waits for an upload.
	DatasetPath string `koanf:"dataset_path"`

	// BoundariesPath points at the GeoJSON boundary file. Empty disables
	// the choropleth join and known-region zero-fill.
	BoundariesPath string `koanf:"boundaries_path"`

	// RegionColumn, ValueColumn, and CategoryColumn pin dataset columns
	// by header name. Empty values fall back to detection.
	RegionColumn   string `koanf:"region_column"`
	ValueColumn    string `koanf:"value_column"`
	CategoryColumn string `koanf:"category_column"`

	// RegionAliases merges extra region-name aliases over the built-in
	// set, canonical spelling on the right.
	RegionAliases map[string]string `koanf:"region_aliases"`

	// MaxRegionsLimit caps GET /regions?limit.
	MaxRegionsLimit int `koanf:"max_regions_limit"`

	// MaxSnapshots bounds how many uploaded datasets are retained.
	MaxSnapshots int `koanf:"max_snapshots"`

	// MaxUploadBytes bounds the accepted size of POST /datasets bodies.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		MaxRegionsLimit: 100,
		MaxSnapshots:    16,
		MaxUploadBytes:  32 << 20,
	}
	return c
}
