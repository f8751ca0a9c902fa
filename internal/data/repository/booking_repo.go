package repository

import (
	"context"
	"fmt"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const bookingColumns = `id, order_id, experience_id, user_id, slot_date, slot_time, guests,
	       booking_type, customer_name, customer_phone, payment_method,
	       amount, host_price, guest_fee, price_at_booking,
	       total_experience_price, host_payout_amount, platform_revenue, payout_status,
	       status, transaction_id, cancel_reason, paid_at, cancelled_at,
	       created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Slot reads for the availability check. Only paid-state bookings
	// reserve capacity; pending holds do not.
	FindPaidBySlot(ctx context.Context, experienceID uuid.UUID, slotDate time.Time, slotTime string) ([]*entity.Booking, error)

	// Conditional single-statement transitions. Each returns false when
	// the precondition no longer held, so a lost race or a duplicate
	// delivery is a no-op instead of a double transition.
	MarkPaidByOrderID(ctx context.Context, orderID, transactionID string, paidAt time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error)
	MarkSettled(ctx context.Context, id uuid.UUID, totalExperiencePrice, hostPayout, platformRevenue int64) (bool, error)

	// Sweep queries.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time, reason string) ([]string, error)
	FindPaidAll(ctx context.Context) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, order_id, experience_id, user_id, slot_date, slot_time, guests,
		                      booking_type, customer_name, customer_phone, payment_method,
		                      amount, host_price, guest_fee, price_at_booking,
		                      status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.ExperienceID,
		booking.UserID,
		booking.SlotDate,
		booking.SlotTime,
		booking.Guests,
		booking.Type,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.PaymentMethod,
		booking.Amount,
		booking.HostPrice,
		booking.GuestFee,
		booking.PriceAtBooking,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.OrderID,
		&b.ExperienceID,
		&b.UserID,
		&b.SlotDate,
		&b.SlotTime,
		&b.Guests,
		&b.Type,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.PaymentMethod,
		&b.Amount,
		&b.HostPrice,
		&b.GuestFee,
		&b.PriceAtBooking,
		&b.TotalExperiencePrice,
		&b.HostPayoutAmount,
		&b.PlatformRevenue,
		&b.PayoutStatus,
		&b.Status,
		&b.TransactionID,
		&b.CancelReason,
		&b.PaidAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// Legacy rows still carry the confirmed spelling.
	b.Status = b.Status.Normalize()
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE order_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, orderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by order ID",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find booking by order ID %s: %w", orderID, err)
	}

	return booking, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.findMany(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindPaidBySlot(ctx context.Context, experienceID uuid.UUID, slotDate time.Time, slotTime string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE experience_id = $1 AND slot_date = $2 AND slot_time = $3
		  AND status IN ('paid', 'confirmed')
	`

	bookings, err := r.findMany(ctx, query, experienceID, slotDate, slotTime)
	if err != nil {
		r.log.Error("Failed to find paid bookings by slot",
			zap.Error(err),
			zap.String("experience_id", experienceID.String()),
			zap.Time("slot_date", slotDate),
			zap.String("slot_time", slotTime),
		)
		return nil, fmt.Errorf("find paid bookings for experience %s: %w", experienceID.String(), err)
	}

	return bookings, nil
}

// MarkPaidByOrderID flips a pending booking to paid, stamping the gateway
// transaction id. The status precondition makes a retried gateway callback
// for an already-paid order a harmless no-op.
func (r *bookingRepository) MarkPaidByOrderID(ctx context.Context, orderID, transactionID string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'paid', transaction_id = $2, paid_at = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, orderID, transactionID, paidAt)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("transaction_id", transactionID),
		)
		return false, fmt.Errorf("mark booking %s paid: %w", orderID, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, reason string, cancelledAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancel_reason = $2, cancelled_at = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'paid', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, id, reason, cancelledAt)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status IN ('paid', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to complete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("complete booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// MarkSettled writes the payout split exactly once: the IS NULL guard
// keeps a re-confirmed booking from being settled twice.
func (r *bookingRepository) MarkSettled(ctx context.Context, id uuid.UUID, totalExperiencePrice, hostPayout, platformRevenue int64) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'paid',
		    total_experience_price = $2,
		    host_payout_amount = $3,
		    platform_revenue = $4,
		    payout_status = 'pending',
		    paid_at = COALESCE(paid_at, NOW()),
		    updated_at = NOW()
		WHERE id = $1
		  AND status IN ('pending', 'paid', 'confirmed')
		  AND host_payout_amount IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, totalExperiencePrice, hostPayout, platformRevenue)
	if err != nil {
		r.log.Error("Failed to settle booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("settle booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// ExpirePendingBefore bulk-cancels stale pending bookings and returns the
// affected order ids. The status filter re-evaluates per row inside the
// statement, so a booking paid between selection and update is skipped.
func (r *bookingRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time, reason string) ([]string, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancel_reason = $2, cancelled_at = NOW(), updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
		RETURNING order_id
	`

	rows, err := r.db.Query(ctx, query, cutoff, reason)
	if err != nil {
		r.log.Error("Failed to expire pending bookings",
			zap.Error(err),
			zap.Time("cutoff", cutoff),
		)
		return nil, fmt.Errorf("expire pending bookings before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var orderIDs []string
	for rows.Next() {
		var orderID string
		if err := rows.Scan(&orderID); err != nil {
			r.log.Error("Failed to scan expired order ID", zap.Error(err))
			return nil, fmt.Errorf("scan expired order ID: %w", err)
		}
		orderIDs = append(orderIDs, orderID)
	}

	return orderIDs, rows.Err()
}

func (r *bookingRepository) FindPaidAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status IN ('paid', 'confirmed')
		ORDER BY slot_date, slot_time
	`

	bookings, err := r.findMany(ctx, query)
	if err != nil {
		r.log.Error("Failed to find paid bookings", zap.Error(err))
		return nil, fmt.Errorf("find paid bookings: %w", err)
	}

	return bookings, nil
}
