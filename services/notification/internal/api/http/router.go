package httpapi

import (
	"github.com/go-chi/chi/v5"

	platformhealth "github.com/PraneethShetty626/rapidcart/platform/health/http"
)

// NewRouter создаёт HTTP роутер Notification Service
// У сервиса нет публичного API, наружу торчит только health endpoint
func NewRouter(readiness func() bool) chi.Router {
	router := chi.NewRouter()
	router.Get("/health", platformhealth.Handler(readiness))
	return router
}
