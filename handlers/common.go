package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop-service/common"
	"shop-service/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// logRequest logs message with the route name, method and path of r.
func logRequest(log *zap.Logger, r *http.Request, level string, message string, fields ...zap.Field) {
	routeName := ""
	if route := mux.CurrentRoute(r); route != nil {
		routeName = route.GetName()
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)

	switch level {
	case "info":
		log.Info(message, allFields...)
	case "error":
		log.Error(message, allFields...)
	case "debug":
		log.Debug(message, allFields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.MessageResponse{Message: message})
}

// statusFor maps an error kind to its HTTP status. A duplicate email is a
// client mistake and shares 400 with validation failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status for err. Server-side failures are
// logged in full and reported with a generic message.
func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logRequest(log, r, "error", "Request failed", zap.Error(err))
		writeMessage(w, status, internalErrorMessage)
		return
	}

	logRequest(log, r, "info", "Request rejected", zap.Int("status", status), zap.Error(err))
	writeMessage(w, status, common.PublicMessage(err, http.StatusText(status)))
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed answers known paths requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "shop-service"})
}
