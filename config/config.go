// Package config handles configuration for the shop server: defaults,
// then a JSON file, then .env/environment, then command-line flags.
// Later sources win.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Config holds runtime settings for the shop server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - DatabaseDriver / DatabaseDSN: "sqlite3" (default) or "pgx" and its DSN.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenTTL: lifetime of an issued token.
//   - BcryptCost / HashWorkers: password hashing cost and parallelism bound.
//   - ImageStorage: "local" (UploadDir) or "s3".
//   - ImageMaxPixels: largest width*height accepted before decoding.
//   - CacheType: "none" disables the product list cache; "memory" and
//     "redis" select a go-utils cache backend.
type Config struct {
	Addr            string
	DatabaseDriver  string
	DatabaseDSN     string
	SecretKey       string
	TokenTTL        time.Duration
	BcryptCost      int
	HashWorkers     int
	ImageStorage    string
	UploadDir       string
	ImageMaxWidth   uint
	ImageMaxPixels  int
	MaxUploadSize   int64
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3PublicURL     string
	CacheType       string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ProductCacheTTL time.Duration
	LogLevel        string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
// NOTE: SecretKey must be overridden outside of local development.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.DatabaseDriver = "sqlite3"
	c.DatabaseDSN = "./shop_service.db"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.BcryptCost = 10
	c.HashWorkers = runtime.NumCPU()
	c.ImageStorage = "local"
	c.UploadDir = "./public/uploads"
	c.ImageMaxWidth = 800
	c.ImageMaxPixels = 40_000_000
	c.MaxUploadSize = 10 << 20
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "products"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3PublicURL = "http://127.0.0.1:9000/products"
	c.CacheType = "none"
	c.RedisAddr = "localhost:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.ProductCacheTTL = 5 * time.Minute
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost must be within 4..31, got %d", c.BcryptCost))
	}
	if c.HashWorkers < 1 {
		errs = append(errs, fmt.Errorf("hash workers must be at least 1, got %d", c.HashWorkers))
	}
	switch c.DatabaseDriver {
	case "sqlite3", "pgx":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	switch c.ImageStorage {
	case "local", "s3":
	default:
		errs = append(errs, fmt.Errorf("unsupported image storage %q", c.ImageStorage))
	}
	switch c.CacheType {
	case "none", "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unsupported cache type %q", c.CacheType))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, an optional JSON file, the
// environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
