package usecase

import (
	"experience-booking/internal/data/repository"
	"experience-booking/pkg/gateway"
	"experience-booking/pkg/mq"
	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Experience   ExperienceService
	Booking      BookingService
	Payment      PaymentService
	Scheduler    SchedulerService
	Notification NotificationService
	Audit        AuditService
}

func NewService(repo *repository.Repository, config *utils.Config, pg gateway.Client, pub *mq.Publisher, log *zap.Logger) *Service {
	notifier := NewNotificationService(repo.Notification, pub, log)
	audit := NewAuditService(repo.AuditLog, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, audit, log),
		Experience:   NewExperienceService(repo.Experience, audit, log),
		Booking:      NewBookingService(repo, pg, notifier, audit, log),
		Payment:      NewPaymentService(repo, notifier, audit, log),
		Scheduler:    NewSchedulerService(repo, audit, log),
		Notification: notifier,
		Audit:        audit,
	}
}
