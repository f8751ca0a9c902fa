package usecase

import (
	"context"
	"fmt"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/request"
	"experience-booking/internal/dto/response"
	"experience-booking/pkg/mq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the best-effort, fire-and-forget notification channel.
// Dispatch never blocks the calling workflow and never reports failure to
// it; a lost notification is logged and dropped.
type Notifier interface {
	Notify(userID uuid.UUID, kind entity.NotificationKind, message string)
}

// NotificationService adds the read side: users listing and acking their
// own inbox.
type NotificationService interface {
	Notifier
	GetUserNotifications(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	pub  *mq.Publisher
	log  *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, pub *mq.Publisher, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		pub:  pub,
		log:  log.With(zap.String("service", "notification")),
	}
}

type notificationEvent struct {
	UserID  string `json:"user_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *notificationService) Notify(userID uuid.UUID, kind entity.NotificationKind, message string) {
	go func() {
		// Detached from the request context on purpose: the triggering
		// operation has already committed and must not be tied to this.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		now := time.Now()
		n := &entity.Notification{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			UserID:  userID,
			Kind:    kind,
			Message: message,
		}

		if err := s.repo.Create(ctx, n); err != nil {
			s.log.Warn("Dropped notification",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("kind", string(kind)),
			)
			return
		}

		if err := s.pub.PublishJSON(ctx, "notification."+string(kind), notificationEvent{
			UserID:  userID.String(),
			Kind:    string(kind),
			Message: message,
		}); err != nil {
			s.log.Warn("Notification stored but not published",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("kind", string(kind)),
			)
		}
	}()
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.NotificationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	notifications, err := s.repo.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list notifications",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = response.NotificationToResponse(n)
	}

	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	id, err := uuid.Parse(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID format %s: %w", notificationID, err)
	}

	if err := s.repo.MarkRead(ctx, id, userUUID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}
