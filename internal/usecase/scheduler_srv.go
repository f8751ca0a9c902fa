package usecase

import (
	"context"
	"fmt"
	"time"

	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/response"

	"go.uber.org/zap"
)

// pendingTTL is how long an unpaid booking holds its order before the
// expiry sweep reaps it.
const pendingTTL = time.Hour

// SchedulerService backs the cron-invoked sweep endpoints. Both sweeps
// are idempotent: running them twice in a row, or concurrently, settles
// on the same end state.
type SchedulerService interface {
	ExpirePending(ctx context.Context) (*response.SweepResult, error)
	AutoComplete(ctx context.Context) (*response.SweepResult, error)
}

type schedulerService struct {
	repo  *repository.Repository
	audit AuditService
	log   *zap.Logger
}

func NewSchedulerService(repo *repository.Repository, audit AuditService, log *zap.Logger) SchedulerService {
	return &schedulerService{
		repo:  repo,
		audit: audit,
		log:   log.With(zap.String("service", "scheduler")),
	}
}

// ExpirePending cancels bookings that have sat unpaid past the TTL,
// releasing their hold on order IDs and customer intent.
func (s *schedulerService) ExpirePending(ctx context.Context) (*response.SweepResult, error) {
	cutoff := time.Now().Add(-pendingTTL)

	orderIDs, err := s.repo.Booking.ExpirePendingBefore(ctx, cutoff, "payment window expired")
	if err != nil {
		return nil, fmt.Errorf("expire pending bookings: %w", err)
	}

	if len(orderIDs) > 0 {
		s.log.Info("Expired unpaid bookings",
			zap.Int("count", len(orderIDs)),
			zap.Strings("order_ids", orderIDs),
		)
		s.audit.Record(ctx, nil, "sweep.expire_pending", "booking", "batch", map[string]any{
			"count": len(orderIDs),
			"ids":   orderIDs,
		})
	}

	return &response.SweepResult{Count: len(orderIDs), OrderIDs: orderIDs}, nil
}

// AutoComplete moves paid bookings whose start time has passed into the
// completed state, making them eligible for settlement reporting.
func (s *schedulerService) AutoComplete(ctx context.Context) (*response.SweepResult, error) {
	bookings, err := s.repo.Booking.FindPaidAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load paid bookings: %w", err)
	}

	now := time.Now()
	var completed []string
	for _, booking := range bookings {
		if !booking.ScheduledAt().Before(now) {
			continue
		}

		ok, err := s.repo.Booking.MarkCompleted(ctx, booking.ID)
		if err != nil {
			// Keep sweeping; the failed row is picked up next run.
			s.log.Error("Failed to complete booking",
				zap.Error(err),
				zap.String("order_id", booking.OrderID),
			)
			continue
		}
		if ok {
			completed = append(completed, booking.OrderID)
		}
	}

	if len(completed) > 0 {
		s.log.Info("Auto-completed bookings",
			zap.Int("count", len(completed)),
			zap.Strings("order_ids", completed),
		)
		s.audit.Record(ctx, nil, "sweep.auto_complete", "booking", "batch", map[string]any{
			"count": len(completed),
			"ids":   completed,
		})
	}

	return &response.SweepResult{Count: len(completed), OrderIDs: completed}, nil
}
