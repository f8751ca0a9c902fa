package wire

import (
	"experience-booking/internal/adaptor"
	"experience-booking/internal/data/repository"
	"experience-booking/pkg/middleware"
	"experience-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking (authenticated users only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// POST /api/bookings/cancel - Cancel and refund own booking
		r.Post("/api/bookings/cancel", bookingHandler.CancelBooking)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/callback - payment gateway webhook.
	// Unauthenticated: the gateway holds no session, the booking order ID
	// is the correlation key.
	r.Post("/api/payments/callback", paymentHandler.Callback)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings/{id} - View any booking details (admin)
		r.Get("/{id}", bookingHandler.GetBookingByID)

		// POST /api/admin/bookings/{id}/confirm - Confirm settlement split (admin)
		r.Post("/{id}/confirm", paymentHandler.ConfirmSettlement)
	})
}
