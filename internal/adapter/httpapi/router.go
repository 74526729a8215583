package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arthurCDG/Vinted-clone-server/internal/adapter/httpapi/middleware"
	"github.com/arthurCDG/Vinted-clone-server/internal/domain"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/metrics"
)

// NewRouter wires the HTTP surface: public account and catalog routes, and
// the write routes gated by the bearer-token authentication middleware.
func NewRouter(
	serviceName string,
	users domain.UserRepository,
	userHandler *UserHandler,
	offerHandler *OfferHandler,
	m *metrics.Manager,
	log *logger.Logger,
) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.Tracing(serviceName))
	mux.Use(middleware.Logger(log))
	mux.Use(middleware.Metrics(m))

	// Public routes
	mux.Post("/auth/signup", userHandler.Signup)
	mux.Post("/auth/login", userHandler.Login)
	mux.Get("/offer", offerHandler.Search)
	mux.Get("/offer/{id}", offerHandler.GetByID)

	// Protected routes (require a valid bearer token)
	mux.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(users, log))

		r.Post("/offer/publish", offerHandler.Publish)
		r.Delete("/offer/delete/{id}", offerHandler.Delete)
		r.Put("/offer/modify/{id}", offerHandler.Modify)
	})

	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Page not found"})
	})

	return mux
}
