package config

import (
	"sync"
)

type UploadConfig struct {
	Path        string
	MaxFileSize int64
	// GatewayURL points the wizard at a remote upload gateway. Empty means local disk.
	GatewayURL string
}

var (
	uploadConfig *UploadConfig
	uploadOnce   sync.Once
)

func LoadUploadConfig() *UploadConfig {
	uploadOnce.Do(func() {
		uploadConfig = &UploadConfig{
			Path:        getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("UPLOAD_MAX_SIZE", 5*1024*1024),
			GatewayURL:  getEnv("UPLOAD_GATEWAY_URL", ""),
		}
	})
	return uploadConfig
}
