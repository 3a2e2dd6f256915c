package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv loads ./.env when present (without overriding variables that
// are already set) and overlays recognised variables onto config.
// Malformed numeric or duration values are ignored.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		config.Addr = ":" + port
	}
	envString(&config.Addr, "ADDR")
	envString(&config.DatabaseDriver, "DB_DRIVER")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")
	envDuration(&config.TokenTTL, "TOKEN_TTL")
	envInt(&config.BcryptCost, "BCRYPT_COST")
	envInt(&config.HashWorkers, "HASH_WORKERS")
	envString(&config.ImageStorage, "IMAGE_STORAGE")
	envString(&config.UploadDir, "UPLOAD_DIR")
	envInt(&config.ImageMaxPixels, "IMAGE_MAX_PIXELS")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.S3PublicURL, "S3_PUBLIC_URL")
	envString(&config.CacheType, "CACHE_TYPE")
	envString(&config.RedisAddr, "REDIS_ADDR")
	envString(&config.RedisPassword, "REDIS_PASSWORD")
	envInt(&config.RedisDB, "REDIS_DB")
	envDuration(&config.ProductCacheTTL, "PRODUCT_CACHE_TTL")
	envString(&config.LogLevel, "LOG_LEVEL")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
