package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/filedock/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero-value
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	UploadEndpoint   string `json:"upload_endpoint"`
	DownloadEndpoint string `json:"download_endpoint"`
	ChunkSize        int64  `json:"chunk_size"`
}

// parseJson overlays cfg with values loaded from the JSON file given via
// the -c/-config flags. Without those flags nothing is loaded. Read or
// unmarshal errors panic; the caller decides whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.UploadEndpoint != "" {
		cfg.UploadEndpoint = jc.UploadEndpoint
	}
	if jc.DownloadEndpoint != "" {
		cfg.DownloadEndpoint = jc.DownloadEndpoint
	}
	if jc.ChunkSize > 0 {
		cfg.ChunkSize = jc.ChunkSize
	}
}
