// Package handlers exposes the services over HTTP with JSON bodies.
// Every error response has the shape {"message": "..."}.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"shop-service/models"
	"shop-service/products"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, in products.Input, img *products.Image) (*models.Product, error)
}

// ProductHandler serves the catalogue.
type ProductHandler struct {
	products      ProductService
	maxUploadSize int64
	log           *zap.Logger
}

func NewProductHandler(products ProductService, maxUploadSize int64, log *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, maxUploadSize: maxUploadSize, log: log}
}

// ListProducts handles GET /products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	logRequest(h.log, r, "info", "Listing products")

	list, err := h.products.List(r.Context())
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	logRequest(h.log, r, "debug", "Products retrieved", zap.Int("count", len(list)))
	writeJSON(w, http.StatusOK, list)
}

// GetProduct handles GET /products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logRequest(h.log, r, "error", "Invalid product ID", zap.String("id", idStr))
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /products, a multipart form with name,
// description, price and an optional image file.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	logRequest(h.log, r, "info", "Creating product")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusBadRequest, "Upload too large")
			return
		}
		logRequest(h.log, r, "error", "Invalid product form", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := products.Input{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}

	var img *products.Image
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		img = &products.Image{Filename: header.Filename, Body: file}
	case errors.Is(err, http.ErrMissingFile):
	default:
		logRequest(h.log, r, "error", "Unreadable image upload", zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Invalid image upload")
		return
	}

	product, err := h.products.Create(r.Context(), in, img)
	if err != nil {
		writeError(h.log, w, r, err)
		return
	}

	logRequest(h.log, r, "info", "Product created", zap.Int64("product_id", product.ID))
	writeJSON(w, http.StatusCreated, product)
}

