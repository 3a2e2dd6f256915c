package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shop-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRequest_TokenOnlyWhenGiven(t *testing.T) {
	c := New("http://shop.local", time.Second)

	req, err := c.newRequest(context.Background(), http.MethodGet, "/auth/me", "", nil)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Equal(t, "http://shop.local/auth/me", req.URL.String())

	req, err = c.newRequest(context.Background(), http.MethodGet, "/auth/me", "tok", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var in models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Password != "password1" {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Token: "tok",
			User:  models.Identity{ID: 1, Name: "Ada", Email: in.Email},
		})
	})

	out, err := c.Login(context.Background(), "ada@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, "Ada", out.User.Name)

	_, err = c.Login(context.Background(), "ada@x.com", "wrongpass")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Ada", in.Name)
		if in.Email == "taken@x.com" {
			writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, models.RegisterResponse{Message: "User registered successfully", UserID: 7})
	})

	out, err := c.Register(context.Background(), "  Ada ", "ada@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.UserID)

	_, err = c.Register(context.Background(), "Ada", "taken@x.com", "password1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Email already registered")
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestClient_LocalValidationSkipsNetwork(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	tests := []struct {
		name, userName, email, password string
	}{
		{"short name", " A ", "ada@x.com", "password1"},
		{"bad email", "Ada", "ada.x.com", "password1"},
		{"email without dot", "Ada", "ada@x", "password1"},
		{"short password", "Ada", "ada@x.com", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.False(t, called)
}

func TestClient_Me(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, models.Identity{ID: 1, Name: "Ada", Email: "ada@x.com"})
	})

	me, err := c.Me(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: 1, Name: "Ada", Email: "ada@x.com"}, *me)

	_, err = c.Me(context.Background(), "goodgarbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Me(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, 50*time.Millisecond)
	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ServerErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListProducts(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Internal Server Error")
}

func TestClient_Products(t *testing.T) {
	img := filepath.Join(t.TempDir(), "mug.jpg")
	require.NoError(t, os.WriteFile(img, []byte("fake image"), 0o600))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			writeJSON(w, http.StatusOK, []models.Product{{ID: 1, Name: "Mug", Price: 9.5}})
		case r.Method == http.MethodGet && r.URL.Path == "/products/1":
			writeJSON(w, http.StatusOK, models.Product{ID: 1, Name: "Mug", Price: 9.5})
		case r.Method == http.MethodGet:
			writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Product not found"})
		case r.Method == http.MethodPost:
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Mug", r.FormValue("name"))
			assert.Equal(t, "9.50", r.FormValue("price"))

			f, hdr, err := r.FormFile("image")
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "mug.jpg", hdr.Filename)
			assert.Equal(t, "fake image", string(data))

			writeJSON(w, http.StatusCreated, models.Product{ID: 2, Name: "Mug", Price: 9.5})
		}
	})

	list, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", p.Name)

	_, err = c.GetProduct(context.Background(), 99)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	created, err := c.CreateProduct(context.Background(), ProductForm{Name: "Mug", Price: "9.50", ImagePath: img})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
}

func TestClient_CreateProductMissingImageFile(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.CreateProduct(context.Background(), ProductForm{Name: "Mug", Price: "1", ImagePath: "/does/not/exist.jpg"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
