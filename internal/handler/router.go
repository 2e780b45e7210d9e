package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/yusufkecer/ecommerce-password-reset/internal/metrics"
	"github.com/yusufkecer/ecommerce-password-reset/internal/middleware"
)

type RouterOptions struct {
	AllowedOrigins string
	APIKey         string
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// NewRouter mounts the public routes. Middleware order: request logging,
// CORS, security headers, body limit.
func NewRouter(opts RouterOptions, reset *PasswordResetHandler, health *HealthHandler) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodyBytes(opts.MaxBodyBytes))

	r.HandleFunc("/health", health.Health).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(middleware.APIKeyMiddleware(opts.APIKey))
	api.HandleFunc("/forgot_password", reset.ForgotPassword).Methods(http.MethodPost, http.MethodOptions)

	return r
}
