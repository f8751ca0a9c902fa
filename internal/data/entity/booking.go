package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	// BookingStatusConfirmed is a legacy spelling of the paid state that
	// still exists in older rows. Reads normalize it to paid; SQL status
	// filters must keep matching both spellings.
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// IsPaid reports whether the booking holds a paid slot, accepting both
// spellings of the paid state.
func (s BookingStatus) IsPaid() bool {
	return s == BookingStatusPaid || s == BookingStatusConfirmed
}

// Normalize collapses the legacy confirmed spelling into paid.
func (s BookingStatus) Normalize() BookingStatus {
	if s == BookingStatusConfirmed {
		return BookingStatusPaid
	}
	return s
}

type BookingType string

const (
	BookingTypeGroup   BookingType = "group"
	BookingTypePrivate BookingType = "private"
)

type PayoutStatus string

const (
	PayoutStatusPending PayoutStatus = "pending"
	PayoutStatusDone    PayoutStatus = "done"
)

type Booking struct {
	Base
	OrderID      string      `db:"order_id"`
	ExperienceID uuid.UUID   `db:"experience_id"`
	UserID       uuid.UUID   `db:"user_id"`
	SlotDate     time.Time   `db:"slot_date"`
	SlotTime     string      `db:"slot_time"` // "15:04"
	Guests       int         `db:"guests"`
	Type         BookingType `db:"booking_type"`

	CustomerName  string `db:"customer_name"`
	CustomerPhone string `db:"customer_phone"`
	PaymentMethod string `db:"payment_method"`

	// Monetary breakdown, all in KRW. Amount = HostPrice + GuestFee,
	// computed server-side at creation. PriceAtBooking snapshots the
	// per-person experience price current at creation, for audit.
	Amount         int64 `db:"amount"`
	HostPrice      int64 `db:"host_price"`
	GuestFee       int64 `db:"guest_fee"`
	PriceAtBooking int64 `db:"price_at_booking"`

	// Settlement fields, populated exactly once at settlement from a
	// fresh read of the experience price.
	TotalExperiencePrice *int64        `db:"total_experience_price"`
	HostPayoutAmount     *int64        `db:"host_payout_amount"`
	PlatformRevenue      *int64        `db:"platform_revenue"`
	PayoutStatus         *PayoutStatus `db:"payout_status"`

	Status        BookingStatus `db:"status"`
	TransactionID *string       `db:"transaction_id"`
	CancelReason  *string       `db:"cancel_reason"`
	PaidAt        *time.Time    `db:"paid_at"`
	CancelledAt   *time.Time    `db:"cancelled_at"`
}

// ScheduledAt combines SlotDate and SlotTime into the moment the
// experience starts. A malformed slot time falls back to midnight.
func (b *Booking) ScheduledAt() time.Time {
	t, err := time.Parse("15:04", b.SlotTime)
	if err != nil {
		return time.Date(b.SlotDate.Year(), b.SlotDate.Month(), b.SlotDate.Day(),
			0, 0, 0, 0, b.SlotDate.Location())
	}
	return time.Date(b.SlotDate.Year(), b.SlotDate.Month(), b.SlotDate.Day(),
		t.Hour(), t.Minute(), 0, 0, b.SlotDate.Location())
}

// IsSettled reports whether the payout split has been persisted.
func (b *Booking) IsSettled() bool {
	return b.HostPayoutAmount != nil
}
