package usecase

import (
	"context"
	"fmt"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/request"
	"experience-booking/internal/dto/response"
	"experience-booking/internal/pricing"
	"experience-booking/pkg/gateway"
	"experience-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, userID string, req *request.CancelBookingRequest) error

	// Admin
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	gateway  gateway.Client
	notifier Notifier
	audit    AuditService
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, pg gateway.Client, notifier Notifier, audit AuditService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		gateway:  pg,
		notifier: notifier,
		audit:    audit,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.CreateBookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	experienceID, err := uuid.Parse(req.ExperienceID)
	if err != nil {
		return nil, fmt.Errorf("invalid experience ID format %s: %w", req.ExperienceID, err)
	}

	slotDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	// Price and capacity always come from a fresh server-side read; the
	// client never supplies either.
	experience, err := s.repo.Experience.FindByID(ctx, experienceID)
	if err != nil {
		return nil, fmt.Errorf("load experience: %w", err)
	}
	if experience == nil || experience.Status != entity.ExperienceStatusActive {
		return nil, fmt.Errorf("experience %s not found", req.ExperienceID)
	}

	quote := pricing.NewQuote(experience.Price, experience.PrivatePrice, req.Guests, req.IsPrivate)

	// Only paid-state bookings reserve capacity; pending holds do not.
	existing, err := s.repo.Booking.FindPaidBySlot(ctx, experienceID, slotDate, req.Time)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}

	if err := checkSlotAvailability(existing, req.Guests, req.IsPrivate, experience.MaxCapacity); err != nil {
		s.log.Info("Slot unavailable",
			zap.String("experience_id", req.ExperienceID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Error(err),
		)
		return nil, err
	}

	bookingType := entity.BookingTypeGroup
	if req.IsPrivate {
		bookingType = entity.BookingTypePrivate
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:        utils.GenerateOrderID(),
		ExperienceID:   experienceID,
		UserID:         userUUID,
		SlotDate:       slotDate,
		SlotTime:       req.Time,
		Guests:         req.Guests,
		Type:           bookingType,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		PaymentMethod:  req.PaymentMethod,
		Amount:         quote.Total,
		HostPrice:      quote.HostPrice,
		GuestFee:       quote.GuestFee,
		PriceAtBooking: experience.Price,
		Status:         entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("experience_id", req.ExperienceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID),
		zap.Int("guests", req.Guests),
		zap.Bool("private", req.IsPrivate),
		zap.Int64("amount", quote.Total),
	)

	// Best-effort: a failed notification never fails the booking.
	s.notifier.Notify(experience.HostID, entity.NotificationBookingRequested,
		fmt.Sprintf("New booking request %s for %s on %s %s", booking.OrderID, experience.Title, req.Date, req.Time))

	return &response.CreateBookingResponse{
		OrderID:     booking.OrderID,
		FinalAmount: booking.Amount,
	}, nil
}

// checkSlotAvailability decides whether a new request fits into a slot
// given the bookings already holding it. A private booking excludes the
// whole slot in both directions; group bookings share it up to the
// experience's max capacity.
func checkSlotAvailability(existing []*entity.Booking, newGuests int, newPrivate bool, maxCapacity int) error {
	if len(existing) > 0 && newPrivate {
		return fmt.Errorf("slot unavailable: already booked")
	}

	taken := 0
	for _, b := range existing {
		if b.Type == entity.BookingTypePrivate {
			return fmt.Errorf("slot unavailable: privately booked")
		}
		taken += b.Guests
	}

	if taken+newGuests > maxCapacity {
		return fmt.Errorf("slot unavailable: capacity %d exceeded (%d taken, %d requested)",
			maxCapacity, taken, newGuests)
	}

	return nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	now := time.Now()
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		// Lazy completion: a paid booking whose start time has passed is
		// completed on read, without waiting for the next sweep.
		if booking.Status.IsPaid() && booking.ScheduledAt().Before(now) {
			if ok, err := s.repo.Booking.MarkCompleted(ctx, booking.ID); err == nil && ok {
				booking.Status = entity.BookingStatusCompleted
			}
		}

		var title string
		if exp, _ := s.repo.Experience.FindByID(ctx, booking.ExperienceID); exp != nil {
			title = exp.Title
		}

		bookingResponses[i] = response.BookingToResponse(booking, title)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID string, req *request.CancelBookingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", req.BookingID)
	}

	if booking.UserID != userUUID {
		return fmt.Errorf("unauthorized to cancel this booking")
	}

	if booking.Status == entity.BookingStatusCancelled {
		// Retried cancellation after a crash between the gateway call and
		// the local write; nothing left to do.
		return nil
	}

	if !booking.Status.IsPaid() {
		return fmt.Errorf("cannot cancel booking in status %s", booking.Status)
	}

	if booking.TransactionID == nil {
		return fmt.Errorf("cannot refund booking %s: no payment transaction on record", booking.OrderID)
	}

	var paidAt time.Time
	if booking.PaidAt != nil {
		paidAt = *booking.PaidAt
	}

	pct := pricing.RefundPercent(time.Now(), paidAt, booking.ScheduledAt())
	if pct == 0 {
		return fmt.Errorf("cannot cancel booking %s: outside the refund window", booking.OrderID)
	}
	refund := pricing.RefundAmount(booking.Amount, pct)

	// Local state changes only after the gateway confirms the refund.
	if err := s.gateway.Cancel(ctx, *booking.TransactionID, refund, req.Reason); err != nil {
		s.log.Error("Gateway refund failed, booking left untouched",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
		)
		return fmt.Errorf("gateway refund failed: %w", err)
	}

	ok, err := s.repo.Booking.MarkCancelled(ctx, bookingID, req.Reason, time.Now())
	if err != nil {
		// Money has been refunded but the row still shows paid; surfacing
		// the error lets the caller retry, and the retry path above is a
		// no-op once the write lands.
		return fmt.Errorf("cancel booking %s: %w", req.BookingID, err)
	}
	if !ok {
		s.log.Warn("Booking already transitioned during cancellation",
			zap.String("booking_id", req.BookingID))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", req.BookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("refund_pct", pct),
		zap.Int64("refund_amount", refund),
	)

	s.audit.Record(ctx, &userUUID, "booking.cancel", "booking", booking.OrderID, map[string]any{
		"reason":        req.Reason,
		"refund_pct":    pct,
		"refund_amount": refund,
	})

	s.notifier.Notify(booking.UserID, entity.NotificationBookingCancelled,
		fmt.Sprintf("Booking %s cancelled, refund %d%% (₩%d)", booking.OrderID, pct, refund))

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	var title string
	if exp, _ := s.repo.Experience.FindByID(ctx, booking.ExperienceID); exp != nil {
		title = exp.Title
	}

	resp := response.BookingToResponse(booking, title)
	return &resp, nil
}
