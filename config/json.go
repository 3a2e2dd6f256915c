package config

import (
	"encoding/json"
	"os"

	"shop-service/flagx"
	"shop-service/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Fields left
// out of the file keep their previous value.
type JsonConfig struct {
	Addr            string         `json:"addr"`
	DatabaseDriver  string         `json:"database_driver"`
	DatabaseDSN     string         `json:"database_dsn"`
	SecretKey       string         `json:"secret_key"`
	TokenTTL        timex.Duration `json:"token_ttl"`
	BcryptCost      int            `json:"bcrypt_cost"`
	HashWorkers     int            `json:"hash_workers"`
	ImageStorage    string         `json:"image_storage"`
	UploadDir       string         `json:"upload_dir"`
	ImageMaxWidth   uint           `json:"image_max_width"`
	ImageMaxPixels  int            `json:"image_max_pixels"`
	MaxUploadSize   int64          `json:"max_upload_size"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3PublicURL     string         `json:"s3_public_url"`
	CacheType       string         `json:"cache_type"`
	RedisAddr       string         `json:"redis_addr"`
	RedisPassword   string         `json:"redis_password"`
	RedisDB         int            `json:"redis_db"`
	ProductCacheTTL timex.Duration `json:"product_cache_ttl"`
	LogLevel        string         `json:"log_level"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config onto config. A missing
// flag means no file; an unreadable or invalid file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	if err := applyJson(config, file); err != nil {
		panic(err)
	}
}

func applyJson(config *Config, data []byte) error {
	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}

	setString(&config.Addr, c.Addr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.HashWorkers != 0 {
		config.HashWorkers = c.HashWorkers
	}
	setString(&config.ImageStorage, c.ImageStorage)
	setString(&config.UploadDir, c.UploadDir)
	if c.ImageMaxWidth != 0 {
		config.ImageMaxWidth = c.ImageMaxWidth
	}
	if c.ImageMaxPixels != 0 {
		config.ImageMaxPixels = c.ImageMaxPixels
	}
	if c.MaxUploadSize != 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicURL, c.S3PublicURL)
	setString(&config.CacheType, c.CacheType)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != 0 {
		config.RedisDB = c.RedisDB
	}
	if c.ProductCacheTTL.Duration != 0 {
		config.ProductCacheTTL = c.ProductCacheTTL.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
