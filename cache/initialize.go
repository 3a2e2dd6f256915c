// Package cache builds the optional response cache shared by the services.
package cache

import (
	"time"

	"shop-service/config"

	"github.com/umakantv/go-utils/cache"
	"go.uber.org/zap"
)

// ResponseCache stores serialized responses in a go-utils cache. A nil
// *ResponseCache is valid and never hits.
type ResponseCache struct {
	backend cache.Cache
	log     *zap.Logger
}

// InitializeCache connects to the configured cache backend. It returns nil
// when caching is disabled.
func InitializeCache(cfg *config.Config, logger *zap.Logger) (*ResponseCache, error) {
	if cfg.CacheType == "" || cfg.CacheType == "none" {
		logger.Info("Cache disabled")
		return nil, nil
	}

	backend, err := cache.New(cache.Config{
		Type:          cfg.CacheType,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cache initialized", zap.String("type", cfg.CacheType), zap.String("addr", cfg.RedisAddr))
	return &ResponseCache{backend: backend, log: logger}, nil
}

// Get returns the bytes stored under key.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, err := c.backend.Get(key)
	if err != nil {
		return nil, false
	}
	return asBytes(v)
}

func (c *ResponseCache) Set(key string, data []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.backend.Set(key, data, ttl); err != nil {
		c.log.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *ResponseCache) Delete(key string) {
	if c == nil {
		return
	}
	if err := c.backend.Delete(key); err != nil {
		c.log.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *ResponseCache) Close() {
	if c == nil {
		return
	}
	if err := c.backend.Close(); err != nil {
		c.log.Warn("Cache close failed", zap.Error(err))
	}
}

// Redis hands values back as strings or byte slices depending on the path
// they took.
func asBytes(v interface{}) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case string:
		return []byte(b), true
	default:
		return nil, false
	}
}
