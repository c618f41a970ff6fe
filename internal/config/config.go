// Package config loads runtime settings for the filedock CLI. Values come
// from defaults, then an optional JSON file, then command-line flags, with
// later sources taking precedence.
package config

// Config holds runtime settings for the filedock CLI.
//
// Fields:
//   - UploadEndpoint: resumable-upload endpoint path.
//   - DownloadEndpoint: download URL prefix.
//   - ChunkSize: upload chunk size in bytes.
type Config struct {
	UploadEndpoint   string
	DownloadEndpoint string
	ChunkSize        int64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.UploadEndpoint = "/uploads/"
	c.DownloadEndpoint = "/files"
	c.ChunkSize = 5 << 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
