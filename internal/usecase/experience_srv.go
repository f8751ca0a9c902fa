package usecase

import (
	"context"
	"fmt"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/request"
	"experience-booking/internal/dto/response"
	"experience-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExperienceService interface {
	CreateExperience(ctx context.Context, hostID string, req *request.CreateExperienceRequest) (*response.ExperienceResponse, error)
	ListActive(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ExperienceResponse], error)
	GetExperienceByID(ctx context.Context, experienceID string) (*response.ExperienceResponse, error)

	// Admin
	UpdateStatus(ctx context.Context, adminID, experienceID string, req *request.UpdateExperienceStatusRequest) error
}

type experienceService struct {
	repo  repository.ExperienceRepository
	audit AuditService
	log   *zap.Logger
}

func NewExperienceService(repo repository.ExperienceRepository, audit AuditService, log *zap.Logger) ExperienceService {
	return &experienceService{
		repo:  repo,
		audit: audit,
		log:   log.With(zap.String("service", "experience")),
	}
}

// CreateExperience registers a host's listing. New listings start in
// pending review and are invisible to guests until an admin activates
// them.
func (s *experienceService) CreateExperience(ctx context.Context, hostID string, req *request.CreateExperienceRequest) (*response.ExperienceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create experience validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hostUUID, err := uuid.Parse(hostID)
	if err != nil {
		return nil, fmt.Errorf("invalid host ID format %s: %w", hostID, err)
	}

	now := time.Now()
	experience := &entity.Experience{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		HostID:       hostUUID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Price:        req.Price,
		PrivatePrice: req.PrivatePrice,
		MaxCapacity:  req.MaxCapacity,
		Status:       entity.ExperienceStatusPending,
	}

	if err := s.repo.Create(ctx, experience); err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}

	s.log.Info("Experience created",
		zap.String("experience_id", experience.ID.String()),
		zap.String("host_id", hostID),
		zap.String("title", req.Title),
	)

	resp := response.ExperienceToResponse(experience)
	return &resp, nil
}

func (s *experienceService) ListActive(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ExperienceResponse], error) {
	experiences, err := s.repo.FindActive(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}

	total, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("count experiences: %w", err)
	}

	items := make([]response.ExperienceResponse, len(experiences))
	for i, exp := range experiences {
		items[i] = response.ExperienceToResponse(exp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *experienceService) GetExperienceByID(ctx context.Context, experienceID string) (*response.ExperienceResponse, error) {
	id, err := uuid.Parse(experienceID)
	if err != nil {
		return nil, fmt.Errorf("invalid experience ID format %s: %w", experienceID, err)
	}

	experience, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	if experience == nil {
		return nil, fmt.Errorf("experience %s not found", experienceID)
	}

	resp := response.ExperienceToResponse(experience)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *experienceService) UpdateStatus(ctx context.Context, adminID, experienceID string, req *request.UpdateExperienceStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update experience status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	id, err := uuid.Parse(experienceID)
	if err != nil {
		return fmt.Errorf("invalid experience ID format %s: %w", experienceID, err)
	}

	status := entity.ExperienceStatus(req.Status)
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update experience status: %w", err)
	}

	s.log.Info("Experience status updated",
		zap.String("experience_id", experienceID),
		zap.String("status", req.Status),
		zap.String("admin_id", adminID),
	)

	s.audit.Record(ctx, &adminUUID, "experience.status", "experience", experienceID, map[string]any{
		"status": req.Status,
	})

	return nil
}
