package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"shop-service/common"
	"shop-service/models"
	"shop-service/sessions"

	"go.uber.org/zap"
)

// SessionManager is the part of sessions.Manager the HTTP layer needs.
type SessionManager interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*sessions.Session, error)
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

type identityKey struct{}

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*models.Identity)
	return identity, ok
}

var errMissingToken = &common.Error{Kind: common.ErrAuth, Message: "Missing token"}

// AuthHandler serves registration, login and the current-user lookup.
type AuthHandler struct {
	sessions SessionManager
	log      *zap.Logger
}

func NewAuthHandler(sessions SessionManager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: log}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logRequest(h.log, r, "info", "Register request")

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(h.log, r, "error", "Invalid register body", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	logRequest(h.log, r, "info", "User registered", zap.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, models.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logRequest(h.log, r, "info", "Login request")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(h.log, r, "error", "Invalid login body", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: sess.Token, User: sess.User})
}

// Me handles GET /auth/me. It must run behind RequireAuth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(h.log, w, r, errMissingToken)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

// RequireAuth verifies the bearer token and stores the resolved identity
// in the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(h.log, w, r, errMissingToken)
			return
		}

		identity, err := h.sessions.Verify(r.Context(), token)
		if err != nil {
			writeError(h.log, w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
