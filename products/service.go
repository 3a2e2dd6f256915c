// Package products implements the catalogue: listing and creating products
// with an optional normalized image.
package products

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"shop-service/common"
	"shop-service/models"
	"shop-service/uploads"

	"go.uber.org/zap"
)

const listCacheKey = "products:list"

// Cache holds the serialized product list between requests.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte, ttl time.Duration)
	Delete(key string)
}

type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// Input is a product as submitted by a client. Price is kept as text so
// that parsing errors surface as validation errors.
type Input struct {
	Name        string
	Description string
	Price       string
}

// Image is an uploaded file waiting to be normalized.
type Image struct {
	Filename string
	Body     io.Reader
}

type Service struct {
	repo     Repository
	images   uploads.Store
	cache    Cache
	ttl      time.Duration
	limits   uploads.Limits
	log      *zap.Logger
}

// NewService wires the catalogue. c may be nil to disable caching.
func NewService(repo Repository, images uploads.Store, c Cache, ttl time.Duration, limits uploads.Limits, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		images:   images,
		cache:    c,
		ttl:      ttl,
		limits:   limits,
		log:      log,
	}
}

// List returns all products, newest first.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	if products, ok := s.cachedList(); ok {
		return products, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			s.cache.Set(listCacheKey, data, s.ttl)
		}
	}
	return products, nil
}

func (s *Service) cachedList() ([]models.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok := s.cache.Get(listCacheKey)
	if !ok {
		return nil, false
	}

	products := []models.Product{}
	if err := json.Unmarshal(data, &products); err != nil {
		s.log.Warn("Dropping unreadable cached product list", zap.Error(err))
		s.cache.Delete(listCacheKey)
		return nil, false
	}
	s.log.Debug("Serving products from cache")
	return products, true
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates in, stores the optional image and inserts the product.
// The stored image is removed again when the insert fails.
func (s *Service) Create(ctx context.Context, in Input, img *Image) (*models.Product, error) {
	product, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	var key string
	if img != nil {
		data, err := uploads.Normalize(img.Body, img.Filename, s.limits)
		if err != nil {
			return nil, err
		}

		key = uploads.NewKey()
		url, err := s.images.Save(ctx, key, data)
		if err != nil {
			return nil, common.Storage(err)
		}
		product.Image = &url
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if key != "" {
			if delErr := s.images.Delete(ctx, key); delErr != nil {
				s.log.Error("Failed to remove orphaned image", zap.String("key", key), zap.Error(delErr))
			}
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Delete(listCacheKey)
	}

	s.log.Info("Product created", zap.Int64("product_id", created.ID))
	return created, nil
}

func parseInput(in Input) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, common.Validation("Name is required")
	}

	raw := strings.TrimSpace(in.Price)
	if raw == "" {
		return nil, common.Validation("Price is required")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, common.Validation("Price must be a number")
	}
	if price < 0 {
		return nil, common.Validation("Price must not be negative")
	}

	return &models.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
	}, nil
}
