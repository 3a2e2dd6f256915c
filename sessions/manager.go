// Package sessions issues and verifies bearer tokens for registered users.
//
// Tokens are stateless: logout happens on the client by discarding the
// token, and a token stays valid until it expires.
package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"shop-service/common"
	"shop-service/models"

	"go.uber.org/zap"
)

// UserRepository is the identity storage used by Manager.
// Create must report a duplicate email as common.ErrConflict and lookups
// must report a missing user as common.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Session is the outcome of a successful login.
type Session struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	User      models.Identity
}

type Manager struct {
	users  UserRepository
	tokens *TokenIssuer
	hasher *Hasher
	log    *zap.Logger
}

func NewManager(users UserRepository, tokens *TokenIssuer, hasher *Hasher, log *zap.Logger) *Manager {
	return &Manager{users: users, tokens: tokens, hasher: hasher, log: log}
}

// Register creates a new identity after checking the password policy and
// email uniqueness.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	// The unique constraint is authoritative; this only avoids hashing
	// for an obvious duplicate.
	_, err := m.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.Conflict("Email already registered")
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	hash, err := m.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	user, err := m.users.Create(ctx, &models.User{Name: name, Email: email, Password: hash})
	if err != nil {
		return nil, err
	}

	m.log.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	user, err := m.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	var hash string
	if user != nil {
		hash = user.Password
	}
	ok, err := m.hasher.Compare(ctx, hash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, issuedAt, expiresAt, err := m.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	m.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return &Session{
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		User:      user.Identity(),
	}, nil
}

// Verify resolves the identity behind token. The user is always read back
// from storage so deleted or changed accounts stop authenticating.
func (m *Manager) Verify(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnknownSubject
		}
		return nil, err
	}
	if user.Email != claims.Email {
		return nil, common.ErrUnknownSubject
	}

	identity := user.Identity()
	return &identity, nil
}
