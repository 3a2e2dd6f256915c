package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":5000", c.Addr)
	assert.Equal(t, "sqlite3", c.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "local", c.ImageStorage)
	assert.Equal(t, uint(800), c.ImageMaxWidth)
	assert.Equal(t, 40_000_000, c.ImageMaxPixels)
	assert.Equal(t, int64(10<<20), c.MaxUploadSize)
	assert.Equal(t, "none", c.CacheType)
	assert.GreaterOrEqual(t, c.HashWorkers, 1)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"pgx driver", func(c *Config) { c.DatabaseDriver = "pgx" }, true},
		{"empty secret", func(c *Config) { c.SecretKey = "" }, false},
		{"zero ttl", func(c *Config) { c.TokenTTL = 0 }, false},
		{"cost too low", func(c *Config) { c.BcryptCost = 2 }, false},
		{"no workers", func(c *Config) { c.HashWorkers = 0 }, false},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "oracle" }, false},
		{"unknown storage", func(c *Config) { c.ImageStorage = "ftp" }, false},
		{"redis cache", func(c *Config) { c.CacheType = "redis" }, true},
		{"memory cache", func(c *Config) { c.CacheType = "memory" }, true},
		{"unknown cache", func(c *Config) { c.CacheType = "memcached" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			if tt.ok {
				assert.NoError(t, c.Validate())
			} else {
				assert.Error(t, c.Validate())
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"cmd",
		"-command", "start",
		"-a", "127.0.0.1:9090", "-driver", "pgx", "-d", "postgres://db", "-s", "secret",
		"-t", "1h", "-cost", "12", "-workers", "2", "-storage", "s3", "-b", "bucket",
		"-g", "eu-west-1", "-e", "http://minio:9000", "-cache", "redis", "-l", "debug",
	}

	c := defaults()
	require.NotPanics(t, func() { parseFlags(c) })

	want := defaults()
	want.Addr = "127.0.0.1:9090"
	want.DatabaseDriver = "pgx"
	want.DatabaseDSN = "postgres://db"
	want.SecretKey = "secret"
	want.TokenTTL = time.Hour
	want.BcryptCost = 12
	want.HashWorkers = 2
	want.ImageStorage = "s3"
	want.S3Bucket = "bucket"
	want.S3Region = "eu-west-1"
	want.S3BaseEndpoint = "http://minio:9000"
	want.CacheType = "redis"
	want.LogLevel = "debug"

	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValuePanics(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"cmd", "-cost", "abc"}
	assert.Panics(t, func() { parseFlags(defaults()) })
}

func TestApplyJson_OnlyOverridesPresentFields(t *testing.T) {
	c := defaults()

	err := applyJson(c, []byte(`{
		"addr": ":7000",
		"token_ttl": "2h",
		"product_cache_ttl": 60000000000,
		"cache_type": "redis",
		"image_max_pixels": 1000000
	}`))
	require.NoError(t, err)

	want := defaults()
	want.Addr = ":7000"
	want.TokenTTL = 2 * time.Hour
	want.ProductCacheTTL = time.Minute
	want.CacheType = "redis"
	want.ImageMaxPixels = 1_000_000

	assert.Empty(t, cmp.Diff(want, c))
}

func TestApplyJson_Invalid(t *testing.T) {
	assert.Error(t, applyJson(defaults(), []byte(`{"token_ttl": true}`)))
	assert.Error(t, applyJson(defaults(), []byte(`not json`)))
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("REDIS_DB", "not-a-number")

	c := defaults()
	parseEnv(c)

	assert.Equal(t, ":8081", c.Addr)
	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.TokenTTL)
	assert.Equal(t, 11, c.BcryptCost)
	assert.Equal(t, 0, c.RedisDB)
}
