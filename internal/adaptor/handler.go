package adaptor

import (
	"experience-booking/internal/usecase"
	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Experience   *ExperienceHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Scheduler    *SchedulerHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Experience:   NewExperienceHandler(service.Experience, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, config, log),
		Scheduler:    NewSchedulerHandler(service.Scheduler, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}
