package entity

import "github.com/google/uuid"

// AuditLogEntry is append-only. No update or delete path exists.
type AuditLogEntry struct {
	BaseSimple
	ActorID    *uuid.UUID `db:"actor_id"` // nil for system actions (sweeps)
	Action     string     `db:"action"`
	TargetType string     `db:"target_type"`
	TargetID   string     `db:"target_id"`
	Detail     string     `db:"detail"` // free-form JSON payload
}
