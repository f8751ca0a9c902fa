package request

type CreateBookingRequest struct {
	ExperienceID  string `json:"experience_id" validate:"required,uuid4"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required,datetime=15:04"`
	Guests        int    `json:"guests" validate:"required,min=1"`
	IsPrivate     bool   `json:"is_private"`
	CustomerName  string `json:"customer_name" validate:"required,min=1,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=9,max=20"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card bank_transfer"`
}

type CancelBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	Reason    string `json:"reason" validate:"required,min=1,max=500"`
}

type ConfirmBookingRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}
