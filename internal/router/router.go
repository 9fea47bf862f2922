package router

import (
	"net/http"

	"cart-bundler/internal/handler"
	"cart-bundler/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	bundleHandler *handler.BundleHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Cart functions called by the storefront host
	mux.HandleFunc("/api/cart/transform", cartHandler.Transform)
	mux.HandleFunc("/api/cart/discount", cartHandler.Discount)

	// Bundle catalog routes (both with and without trailing slash)
	bundleRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bundles" && r.URL.Path != "/api/bundles/" {
			bundleHandler.Item(w, r)
			return
		}
		bundleHandler.GetAll(w, r)
	}
	mux.HandleFunc("/api/bundles", bundleRouteHandler)
	mux.HandleFunc("/api/bundles/", bundleRouteHandler)

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
