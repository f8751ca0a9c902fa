package repository

import (
	"context"
	"fmt"

	"experience-booking/internal/data/entity"
	"experience-booking/pkg/database"

	"go.uber.org/zap"
)

// AuditLogRepository is insert-only. The audit trail is immutable once
// written, so no update or delete methods exist.
type AuditLogRepository interface {
	Create(ctx context.Context, e *entity.AuditLogEntry) error
	FindByTarget(ctx context.Context, targetType, targetID string, limit int) ([]*entity.AuditLogEntry, error)
}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func (r *auditLogRepository) Create(ctx context.Context, e *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, action, target_type, target_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.ActorID,
		e.Action,
		e.TargetType,
		e.TargetID,
		e.Detail,
		e.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create audit log entry",
			zap.Error(err),
			zap.String("action", e.Action),
			zap.String("target_type", e.TargetType),
			zap.String("target_id", e.TargetID),
		)
		return fmt.Errorf("create audit log entry %s: %w", e.Action, err)
	}

	return nil
}

func (r *auditLogRepository) FindByTarget(ctx context.Context, targetType, targetID string, limit int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, actor_id, action, target_type, target_id, detail, created_at
		FROM audit_logs
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, targetType, targetID, limit)
	if err != nil {
		r.log.Error("Failed to find audit log entries",
			zap.Error(err),
			zap.String("target_type", targetType),
			zap.String("target_id", targetID),
		)
		return nil, fmt.Errorf("find audit log entries for %s %s: %w", targetType, targetID, err)
	}
	defer rows.Close()

	var entries []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		err := rows.Scan(
			&e.ID,
			&e.ActorID,
			&e.Action,
			&e.TargetType,
			&e.TargetID,
			&e.Detail,
			&e.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
