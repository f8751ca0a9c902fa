package entity

import "github.com/google/uuid"

type NotificationKind string

const (
	NotificationBookingRequested NotificationKind = "booking_requested"
	NotificationBookingPaid      NotificationKind = "booking_paid"
	NotificationBookingConfirmed NotificationKind = "booking_confirmed"
	NotificationPaymentConfirmed NotificationKind = "payment_confirmed"
	NotificationBookingCancelled NotificationKind = "booking_cancelled"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Kind    NotificationKind `db:"kind"`
	Message string           `db:"message"`
	Read    bool             `db:"read"`
}
