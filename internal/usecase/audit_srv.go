package usecase

import (
	"context"
	"encoding/json"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService appends to the administrative audit trail. Entries are
// immutable once written. Recording is best-effort: a failed write is
// logged loudly but never fails the operation being audited.
type AuditService interface {
	Record(ctx context.Context, actorID *uuid.UUID, action, targetType, targetID string, detail any)
}

type auditService struct {
	repo repository.AuditLogRepository
	log  *zap.Logger
}

func NewAuditService(repo repository.AuditLogRepository, log *zap.Logger) AuditService {
	return &auditService{
		repo: repo,
		log:  log.With(zap.String("service", "audit")),
	}
}

func (s *auditService) Record(ctx context.Context, actorID *uuid.UUID, action, targetType, targetID string, detail any) {
	payload := "{}"
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			payload = string(b)
		}
	}

	entry := &entity.AuditLogEntry{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     payload,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("Audit entry lost",
			zap.Error(err),
			zap.String("action", action),
			zap.String("target_type", targetType),
			zap.String("target_id", targetID),
		)
	}
}
