package response

import (
	"time"

	"experience-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	OrderID         string               `json:"order_id"`
	ExperienceID    string               `json:"experience_id"`
	ExperienceTitle string               `json:"experience_title,omitempty"`
	UserID          string               `json:"user_id"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Guests          int                  `json:"guests"`
	Type            entity.BookingType   `json:"booking_type"`
	Amount          int64                `json:"amount"`
	HostPrice       int64                `json:"host_price"`
	GuestFee        int64                `json:"guest_fee"`
	Status          entity.BookingStatus `json:"status"`
	TransactionID   *string              `json:"transaction_id,omitempty"`
	CancelReason    *string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// SettlementResponse is returned from the admin confirm endpoint.
type SettlementResponse struct {
	BookingID            string `json:"booking_id"`
	OrderID              string `json:"order_id"`
	TotalExperiencePrice int64  `json:"total_experience_price"`
	HostPayoutAmount     int64  `json:"host_payout_amount"`
	PlatformRevenue      int64  `json:"platform_revenue"`
	PayoutStatus         string `json:"payout_status"`
}

// CreateBookingResponse is the minimal payload the checkout page needs.
type CreateBookingResponse struct {
	OrderID     string `json:"order_id"`
	FinalAmount int64  `json:"final_amount"`
}

// SweepResult reports one scheduler sweep run.
type SweepResult struct {
	Count    int      `json:"count"`
	OrderIDs []string `json:"ids"`
}

func BookingToResponse(b *entity.Booking, experienceTitle string) BookingResponse {
	return BookingResponse{
		ID:              b.ID.String(),
		OrderID:         b.OrderID,
		ExperienceID:    b.ExperienceID.String(),
		ExperienceTitle: experienceTitle,
		UserID:          b.UserID.String(),
		Date:            b.SlotDate.Format("2006-01-02"),
		Time:            b.SlotTime,
		Guests:          b.Guests,
		Type:            b.Type,
		Amount:          b.Amount,
		HostPrice:       b.HostPrice,
		GuestFee:        b.GuestFee,
		Status:          b.Status,
		TransactionID:   b.TransactionID,
		CancelReason:    b.CancelReason,
		CreatedAt:       b.CreatedAt,
	}
}
