package config

import (
	"os"
)

// StorageConfig describes the S3-compatible bucket discussion images are
// written to. An empty Bucket disables image uploads.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	MaxImageSize    int64
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Bucket:          os.Getenv("S3_BUCKET"),
		Region:          getEnv("S3_REGION", "auto"),
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		PublicURL:       os.Getenv("S3_PUBLIC_URL"),
	}
}
