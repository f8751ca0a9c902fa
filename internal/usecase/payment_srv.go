package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/request"
	"experience-booking/internal/dto/response"
	"experience-booking/internal/pricing"
	"experience-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPaymentDeclined reports a callback whose gateway verdict was a
// decline. The booking stays pending for a retry; the handler routes the
// customer to the failure page instead of the success one.
var ErrPaymentDeclined = errors.New("payment declined by gateway")

type PaymentService interface {
	HandleCallback(ctx context.Context, cb *request.GatewayCallback) error

	// Admin
	ConfirmSettlement(ctx context.Context, adminID string, req *request.ConfirmBookingRequest) (*response.SettlementResponse, error)
}

type paymentService struct {
	repo     *repository.Repository
	notifier Notifier
	audit    AuditService
	log      *zap.Logger
}

func NewPaymentService(repo *repository.Repository, notifier Notifier, audit AuditService, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		log:      log.With(zap.String("service", "payment")),
	}
}

// HandleCallback reconciles a gateway callback against the booking it
// names. Callbacks arrive at-least-once and possibly out of order, so
// every outcome here has to be safe to replay.
func (s *paymentService) HandleCallback(ctx context.Context, cb *request.GatewayCallback) error {
	if cb.OrderID == "" {
		return fmt.Errorf("callback missing order ID")
	}

	if !cb.Success {
		// A declined payment leaves the booking pending; the customer can
		// retry checkout, and the expiry sweep reaps it eventually.
		s.log.Info("Payment failed at gateway, booking stays pending",
			zap.String("order_id", cb.OrderID),
			zap.String("transaction_id", cb.TransactionID),
		)
		return ErrPaymentDeclined
	}

	ok, err := s.repo.Booking.MarkPaidByOrderID(ctx, cb.OrderID, cb.TransactionID, time.Now())
	if err != nil {
		return fmt.Errorf("mark booking %s paid: %w", cb.OrderID, err)
	}

	if !ok {
		// Zero rows means the booking is not pending. Distinguish the
		// harmless duplicate delivery from the cases that need a human.
		booking, err := s.repo.Booking.FindByOrderID(ctx, cb.OrderID)
		if err != nil {
			return fmt.Errorf("load booking %s: %w", cb.OrderID, err)
		}
		if booking == nil {
			return fmt.Errorf("booking %s not found", cb.OrderID)
		}

		switch {
		case booking.Status.IsPaid() || booking.Status == entity.BookingStatusCompleted:
			s.log.Info("Duplicate payment callback ignored",
				zap.String("order_id", cb.OrderID),
				zap.String("status", string(booking.Status)),
			)
			return nil
		default:
			// Paid callback for a cancelled booking: money moved but the
			// reservation is gone. Needs manual review.
			s.log.Error("Payment callback for non-payable booking",
				zap.String("order_id", cb.OrderID),
				zap.String("status", string(booking.Status)),
				zap.String("transaction_id", cb.TransactionID),
			)
			return fmt.Errorf("booking %s is %s, payment %s needs manual review",
				cb.OrderID, booking.Status, cb.TransactionID)
		}
	}

	booking, err := s.repo.Booking.FindByOrderID(ctx, cb.OrderID)
	if err != nil || booking == nil {
		// The transition landed; reporting failure now would only trigger a
		// redundant gateway retry.
		s.log.Warn("Booking paid but reload failed", zap.String("order_id", cb.OrderID), zap.Error(err))
		return nil
	}

	if cb.Amount != 0 && cb.Amount != booking.Amount {
		s.log.Warn("Callback amount differs from booked amount",
			zap.String("order_id", cb.OrderID),
			zap.Int64("callback_amount", cb.Amount),
			zap.Int64("booked_amount", booking.Amount),
		)
	}

	s.log.Info("Booking paid",
		zap.String("order_id", cb.OrderID),
		zap.String("transaction_id", cb.TransactionID),
		zap.Int64("amount", booking.Amount),
	)

	s.audit.Record(ctx, nil, "payment.confirmed", "booking", cb.OrderID, map[string]any{
		"transaction_id": cb.TransactionID,
		"amount":         cb.Amount,
	})

	s.notifier.Notify(booking.UserID, entity.NotificationBookingPaid,
		fmt.Sprintf("Payment received for booking %s", booking.OrderID))

	if exp, _ := s.repo.Experience.FindByID(ctx, booking.ExperienceID); exp != nil {
		s.notifier.Notify(exp.HostID, entity.NotificationBookingPaid,
			fmt.Sprintf("Booking %s for %s is paid", booking.OrderID, exp.Title))
	}

	return nil
}

// ==================== ADMIN METHODS ====================

// ConfirmSettlement finalizes the revenue split for a booking. The split
// is recomputed from the experience's current price at confirmation
// time, not from the snapshot taken at booking.
func (s *paymentService) ConfirmSettlement(ctx context.Context, adminID string, req *request.ConfirmBookingRequest) (*response.SettlementResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm settlement validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return nil, fmt.Errorf("invalid admin ID format %s: %w", adminID, err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}

	experience, err := s.repo.Experience.FindByID(ctx, booking.ExperienceID)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	if experience == nil {
		return nil, fmt.Errorf("experience %s not found", booking.ExperienceID)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("cannot settle cancelled booking %s", booking.OrderID)
	}
	if booking.Status == entity.BookingStatusCompleted {
		return nil, fmt.Errorf("cannot settle completed booking %s", booking.OrderID)
	}
	if booking.IsSettled() {
		return nil, fmt.Errorf("booking %s already settled", booking.OrderID)
	}

	quote := pricing.NewQuote(experience.Price, experience.PrivatePrice,
		booking.Guests, booking.Type == entity.BookingTypePrivate)
	settlement := pricing.Settle(quote)

	ok, err := s.repo.Booking.MarkSettled(ctx, bookingID, quote.HostPrice, settlement.HostPayout, settlement.PlatformRevenue)
	if err != nil {
		return nil, fmt.Errorf("settle booking %s: %w", booking.OrderID, err)
	}
	if !ok {
		return nil, fmt.Errorf("booking %s already settled", booking.OrderID)
	}

	s.log.Info("Settlement confirmed",
		zap.String("order_id", booking.OrderID),
		zap.String("admin_id", adminID),
		zap.Int64("total_experience_price", quote.HostPrice),
		zap.Int64("host_payout", settlement.HostPayout),
		zap.Int64("platform_revenue", settlement.PlatformRevenue),
	)

	s.audit.Record(ctx, &adminUUID, "settlement.confirm", "booking", booking.OrderID, map[string]any{
		"total_experience_price": quote.HostPrice,
		"host_payout_amount":     settlement.HostPayout,
		"platform_revenue":       settlement.PlatformRevenue,
	})

	s.notifier.Notify(experience.HostID, entity.NotificationPaymentConfirmed,
		fmt.Sprintf("Payout of ₩%d scheduled for booking %s", settlement.HostPayout, booking.OrderID))
	s.notifier.Notify(booking.UserID, entity.NotificationBookingConfirmed,
		fmt.Sprintf("Booking %s confirmed by %s", booking.OrderID, experience.Title))

	return &response.SettlementResponse{
		BookingID:            booking.ID.String(),
		OrderID:              booking.OrderID,
		TotalExperiencePrice: quote.HostPrice,
		HostPayoutAmount:     settlement.HostPayout,
		PlatformRevenue:      settlement.PlatformRevenue,
		PayoutStatus:         string(entity.PayoutStatusPending),
	}, nil
}
