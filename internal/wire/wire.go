// internal/wire/wire.go
package wire

import (
	"net/http"

	"experience-booking/internal/adaptor"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/usecase"
	"experience-booking/pkg/gateway"
	"experience-booking/pkg/middleware"
	"experience-booking/pkg/mq"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers, and routes.
func Wiring(repo *repository.Repository, config *utils.Config, pg gateway.Client, publisher *mq.Publisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, pg, publisher, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, handler.Notification, repo, config, logger)
	wireExperience(r, handler.Experience, repo, config, logger)
	wireBooking(r, handler.Booking, handler.Payment, repo, config, logger)
	wireScheduler(r, handler.Scheduler, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
