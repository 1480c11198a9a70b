package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	platformhealth "github.com/PraneethShetty626/rapidcart/platform/health/http"
	platformobservability "github.com/PraneethShetty626/rapidcart/platform/observability"
)

// NewRouter создаёт и настраивает HTTP роутер Order Service
// readiness - функция для проверки готовности сервиса (например, ping БД).
// Если readiness возвращает false, health endpoint вернёт 503 Service Unavailable.
func NewRouter(handler *Handler, readiness func() bool, logger *zap.Logger) chi.Router {
	router := chi.NewRouter()

	// Observability: trace context + span на каждый запрос, logger с trace_id в контексте
	if logger != nil {
		router.Use(platformobservability.HTTPMiddleware("order", logger))
	}

	router.Route("/api/orders", func(r chi.Router) {
		r.Post("/", handler.PostOrders)
		r.Get("/", handler.GetOrders)
		r.Get("/customer/{customerId}", func(w http.ResponseWriter, r *http.Request) {
			handler.GetOrdersByCustomer(w, r, chi.URLParam(r, "customerId"))
		})
		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			handler.GetOrdersId(w, r, chi.URLParam(r, "id"))
		})
	})

	// Health без middleware
	router.Get("/health", platformhealth.Handler(readiness))

	return router
}
