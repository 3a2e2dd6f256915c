package server

import (
	"net/http"

	"shop-service/handlers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Routes groups what NewRouter serves. UploadDir may be empty when images
// live outside the local disk.
type Routes struct {
	Auth      *handlers.AuthHandler
	Products  *handlers.ProductHandler
	UploadDir string
	Logger    *zap.Logger
}

// NewRouter registers every endpoint. The API is mounted at the root and
// again under /api for browser clients built against that prefix.
func NewRouter(rt Routes) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	r.Use(loggingMiddleware(rt.Logger))

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet).Name("HealthCheck")

	registerAPI(r, rt)
	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	registerAPI(api, rt)

	if rt.UploadDir != "" {
		files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(rt.UploadDir)))
		r.PathPrefix("/uploads/").Handler(files).Methods(http.MethodGet, http.MethodHead).Name("Uploads")
	}

	return r
}

func registerAPI(r *mux.Router, rt Routes) {
	r.HandleFunc("/auth/register", rt.Auth.Register).Methods(http.MethodPost).Name("Register")
	r.HandleFunc("/auth/login", rt.Auth.Login).Methods(http.MethodPost).Name("Login")
	r.Handle("/auth/me", rt.Auth.RequireAuth(http.HandlerFunc(rt.Auth.Me))).Methods(http.MethodGet).Name("Me")

	r.HandleFunc("/products", rt.Products.ListProducts).Methods(http.MethodGet).Name("ListProducts")
	r.HandleFunc("/products", rt.Products.CreateProduct).Methods(http.MethodPost).Name("CreateProduct")
	r.HandleFunc("/products/{id:[0-9]+}", rt.Products.GetProduct).Methods(http.MethodGet).Name("GetProduct")
}
