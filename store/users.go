// Package store holds the SQL repositories behind the server services.
// Queries are written with ? placeholders and rebound for the driver.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shop-service/common"
	"shop-service/database"
	"shop-service/models"

	"github.com/jmoiron/sqlx"
)

// UserStore persists user identities.
type UserStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

// Create inserts user and fills in its ID and CreatedAt.
// A duplicate email yields a common.ErrConflict error.
func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := s.db.Rebind(
		`INSERT INTO users (name, email, password, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	createdAt := s.now().UTC()
	err := s.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.Password, createdAt).Scan(&user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, common.Conflict("Email already registered")
		}
		return nil, common.Storage(fmt.Errorf("db error: %w", err))
	}

	user.CreatedAt = createdAt
	return user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := s.db.Rebind(
		`SELECT id, name, email, password, created_at FROM users
		 WHERE email = ?`)

	return s.getOne(ctx, query, email)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := s.db.Rebind(
		`SELECT id, name, email, password, created_at FROM users
		 WHERE id = ?`)

	return s.getOne(ctx, query, id)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	if err := s.db.GetContext(ctx, user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("User not found")
		}
		return nil, common.Storage(fmt.Errorf("db error: %w", err))
	}
	return user, nil
}
