package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shop-service/common"
	"shop-service/models"

	"github.com/jmoiron/sqlx"
)

// ProductStore persists catalogue entries.
type ProductStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db, now: time.Now}
}

// List returns every product, newest first. The result is never nil.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, name, description, price, image, created_at FROM products
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, common.Storage(fmt.Errorf("db error: %w", err))
	}
	return products, nil
}

// Create inserts p and fills in its ID and CreatedAt.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := s.db.Rebind(
		`INSERT INTO products (name, description, price, image, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`)

	createdAt := s.now().UTC()
	err := s.db.QueryRowxContext(ctx, query,
		p.Name, p.Description, p.Price, p.Image, createdAt).Scan(&p.ID)
	if err != nil {
		return nil, common.Storage(fmt.Errorf("db error: %w", err))
	}

	p.CreatedAt = createdAt
	return p, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p := &models.Product{}
	err := s.db.GetContext(ctx, p, s.db.Rebind(
		`SELECT id, name, description, price, image, created_at FROM products
		 WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Product not found")
		}
		return nil, common.Storage(fmt.Errorf("db error: %w", err))
	}
	return p, nil
}
