package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/PraneethShetty626/rapidcart/platform/health/http"
	platformobservability "github.com/PraneethShetty626/rapidcart/platform/observability"
)

// NewRouter создаёт и настраивает HTTP роутер Catalog Service
// readiness - функция для проверки готовности сервиса (например, ping БД).
// Если readiness возвращает false, health endpoint вернёт 503 Service Unavailable.
func NewRouter(handler *Handler, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware("catalog", logger))
	}

	router.Route("/api/products", func(r chi.Router) {
		r.Post("/", handler.PostProducts)
		r.Get("/", handler.GetProducts)
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.GetProductsId(w, r, chi.URLParam(r, "id"))
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.PutProductsId(w, r, chi.URLParam(r, "id"))
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.DeleteProductsId(w, r, chi.URLParam(r, "id"))
		})
		r.Get("/{id}/stock", func(w http.ResponseWriter, r *http.Request) {
			handler.GetProductsIdStock(w, r, chi.URLParam(r, "id"))
		})
		r.Put("/{id}/reduce-stock", func(w http.ResponseWriter, r *http.Request) {
			handler.PutProductsIdReduceStock(w, r, chi.URLParam(r, "id"))
		})
	})

	// Health без middleware
	router.Get("/health", platformhealth.Handler(readiness))

	return router
}
