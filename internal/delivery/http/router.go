package http

import (
	"log/slog"
	"net/http"

	"ordermail/internal/delivery/http/controllers"
	"ordermail/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Anything the routes below do not match, wrong methods included, gets the 404 responder.
func NewRouter(orderController *controllers.OrderEmailController, systemController *controllers.SystemController) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", systemController.Health)

	// API Routes
	mux.HandleFunc("POST /api/send-order-created", orderController.SendOrderCreated)
	mux.HandleFunc("POST /api/send-order-shipped", orderController.SendOrderShipped)
	mux.HandleFunc("POST /api/test-email", orderController.SendTestEmail)

	mux.HandleFunc("/", systemController.NotFound)

	return mux
}

// NewHandler wraps the router in the middleware chain: panic recovery outermost, then request logging, then CORS.
func NewHandler(router http.Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	return middleware.Recover(logger, middleware.Logging(logger, middleware.CORS(allowedOrigins, router)))
}
