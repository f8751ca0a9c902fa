package wire

import (
	"experience-booking/internal/adaptor"
	"experience-booking/internal/data/repository"
	"experience-booking/pkg/middleware"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireExperience(
	r chi.Router,
	experienceHandler *adaptor.ExperienceHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Only active (admin-approved) listings show up here.
	r.Get("/api/experiences", experienceHandler.ListExperiences)
	r.Get("/api/experiences/{id}", experienceHandler.GetExperience)

	// ==================== PROTECTED ROUTES ====================
	// Hosts submit listings; they land in pending review.
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Post("/api/experiences", experienceHandler.CreateExperience)

	// ==================== ADMIN ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.Admin(repo.User, log),
	).Put("/api/admin/experiences/{id}/status", experienceHandler.UpdateStatus)
}
