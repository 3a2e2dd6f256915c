package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-service/common"
	"shop-service/models"
	"shop-service/products"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProducts struct {
	list      []models.Product
	err       error
	gotInput  products.Input
	gotImage  []byte
	gotName   string
	createErr error
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	return f.list, f.err
}

func (f *fakeProducts) Get(_ context.Context, id int64) (*models.Product, error) {
	for _, p := range f.list {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, common.NotFound("Product not found")
}

func (f *fakeProducts) Create(_ context.Context, in products.Input, img *products.Image) (*models.Product, error) {
	f.gotInput = in
	if img != nil {
		f.gotName = img.Filename
		f.gotImage, _ = io.ReadAll(img.Body)
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Product{ID: 9, Name: in.Name}, nil
}

func multipartBody(t *testing.T, fields map[string]string, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestListProducts(t *testing.T) {
	fake := &fakeProducts{list: []models.Product{{ID: 2, Name: "Mug"}, {ID: 1, Name: "Hat"}}}
	h := NewProductHandler(fake, 10<<20, zap.NewNop())
	rec := httptest.NewRecorder()

	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Mug", got[0].Name)
}

func TestListProducts_StorageFailure(t *testing.T) {
	h := NewProductHandler(&fakeProducts{err: common.Storage(assert.AnError)}, 10<<20, zap.NewNop())
	rec := httptest.NewRecorder()

	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeMessage(t, rec))
}

func TestGetProduct(t *testing.T) {
	fake := &fakeProducts{list: []models.Product{{ID: 2, Name: "Mug"}}}
	r := mux.NewRouter()
	r.HandleFunc("/products/{id}", NewProductHandler(fake, 10<<20, zap.NewNop()).GetProduct)

	tests := []struct {
		path string
		want int
	}{
		{"/products/2", http.StatusOK},
		{"/products/3", http.StatusNotFound},
		{"/products/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, tt.path)
	}
}

func TestCreateProduct_WithImage(t *testing.T) {
	fake := &fakeProducts{}
	h := NewProductHandler(fake, 10<<20, zap.NewNop())
	body, contentType := multipartBody(t,
		map[string]string{"name": "Mug", "description": "Blue", "price": "9.5"},
		"mug.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreateProduct(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, products.Input{Name: "Mug", Description: "Blue", Price: "9.5"}, fake.gotInput)
	assert.Equal(t, "mug.png", fake.gotName)
	assert.Equal(t, []byte("png-bytes"), fake.gotImage)
}

func TestCreateProduct_WithoutImage(t *testing.T) {
	fake := &fakeProducts{}
	h := NewProductHandler(fake, 10<<20, zap.NewNop())
	body, contentType := multipartBody(t, map[string]string{"name": "Mug", "price": "1"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CreateProduct(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, fake.gotName)
}

func TestCreateProduct_Rejections(t *testing.T) {
	t.Run("not multipart", func(t *testing.T) {
		h := NewProductHandler(&fakeProducts{}, 10<<20, zap.NewNop())
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Mug"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.CreateProduct(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		h := NewProductHandler(&fakeProducts{}, 1024, zap.NewNop())
		body, contentType := multipartBody(t, map[string]string{"name": "Mug", "price": "1"},
			"big.png", bytes.Repeat([]byte("x"), 4096))
		req := httptest.NewRequest(http.MethodPost, "/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.CreateProduct(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		h := NewProductHandler(&fakeProducts{createErr: common.Validation("Price must be a number")}, 10<<20, zap.NewNop())
		body, contentType := multipartBody(t, map[string]string{"name": "Mug", "price": "abc"}, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/products", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.CreateProduct(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Price must be a number", decodeMessage(t, rec))
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(common.Validation("x")))
	assert.Equal(t, http.StatusBadRequest, statusFor(common.Conflict("x")))
	assert.Equal(t, http.StatusUnauthorized, statusFor(common.ErrUnknownSubject))
	assert.Equal(t, http.StatusNotFound, statusFor(common.NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, statusFor(common.Storage(assert.AnError)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.Canceled))
}

func TestFallbackHandlers(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeMessage(t, rec))

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"shop-service"}`, rec.Body.String())
}
