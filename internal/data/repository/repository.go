package repository

import (
	"experience-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Experience   ExperienceRepository
	Booking      BookingRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Experience:   NewExperienceRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		AuditLog:     NewAuditLogRepository(db, log),
	}
}
