package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newPaymentFixture() (*fakeBookingRepo, *fakeExperienceRepo, *fakeNotifier, *fakeAudit, PaymentService, *entity.Experience) {
	bookings := newFakeBookingRepo()
	experiences := newFakeExperienceRepo()
	notifier := &fakeNotifier{}
	audit := &fakeAudit{}

	exp := &entity.Experience{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		HostID:       uuid.New(),
		Title:        "Hanok Tea Ceremony",
		Description:  "Traditional tea ceremony in Bukchon",
		Location:     "Seoul",
		Price:        50000,
		PrivatePrice: 200000,
		MaxCapacity:  6,
		Status:       entity.ExperienceStatusActive,
	}
	experiences.Create(context.Background(), exp)

	repo := &repository.Repository{Booking: bookings, Experience: experiences}
	svc := NewPaymentService(repo, notifier, audit, zap.NewNop())

	return bookings, experiences, notifier, audit, svc, exp
}

func seedPendingBooking(bookings *fakeBookingRepo, exp *entity.Experience) *entity.Booking {
	b := &entity.Booking{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		OrderID:      "EXP-20260815-100000-0042",
		ExperienceID: exp.ID,
		UserID:       uuid.New(),
		SlotDate:     time.Now().AddDate(0, 0, 14),
		SlotTime:     "10:00",
		Guests:       2,
		Type:         entity.BookingTypeGroup,
		Amount:       110000,
		HostPrice:    100000,
		GuestFee:     10000,
		Status:       entity.BookingStatusPending,
	}
	bookings.Create(context.Background(), b)
	return b
}

func TestHandleCallbackSuccess(t *testing.T) {
	bookings, _, notifier, audit, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)

	err := svc.HandleCallback(context.Background(), &request.GatewayCallback{
		Success:       true,
		Amount:        110000,
		OrderID:       b.OrderID,
		TransactionID: "pg-tid-777",
	})
	if err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}

	stored, _ := bookings.FindByOrderID(context.Background(), b.OrderID)
	if stored.Status != entity.BookingStatusPaid {
		t.Errorf("status = %s, want paid", stored.Status)
	}
	if stored.TransactionID == nil || *stored.TransactionID != "pg-tid-777" {
		t.Errorf("transaction_id = %v, want pg-tid-777", stored.TransactionID)
	}
	if stored.PaidAt == nil {
		t.Error("paid_at not stamped")
	}

	notifier.mu.Lock()
	if len(notifier.calls) != 2 {
		t.Errorf("got %d notifications, want guest + host", len(notifier.calls))
	}
	notifier.mu.Unlock()

	audit.mu.Lock()
	if len(audit.calls) != 1 || audit.calls[0].action != "payment.confirmed" {
		t.Errorf("audit = %+v, want payment.confirmed", audit.calls)
	}
	audit.mu.Unlock()
}

func TestHandleCallbackDuplicateIsNoOp(t *testing.T) {
	bookings, _, notifier, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)

	cb := &request.GatewayCallback{Success: true, Amount: 110000, OrderID: b.OrderID, TransactionID: "pg-tid-777"}
	if err := svc.HandleCallback(context.Background(), cb); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.HandleCallback(context.Background(), cb); err != nil {
		t.Fatalf("duplicate delivery must succeed: %v", err)
	}

	stored, _ := bookings.FindByOrderID(context.Background(), b.OrderID)
	if stored.Status != entity.BookingStatusPaid {
		t.Errorf("status = %s, want paid", stored.Status)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.calls) != 2 {
		t.Errorf("duplicate must not re-notify, got %d calls", len(notifier.calls))
	}
}

func TestHandleCallbackFailureLeavesPending(t *testing.T) {
	bookings, _, notifier, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)

	err := svc.HandleCallback(context.Background(), &request.GatewayCallback{
		Success: false,
		OrderID: b.OrderID,
	})
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("got %v, want ErrPaymentDeclined", err)
	}

	stored, _ := bookings.FindByOrderID(context.Background(), b.OrderID)
	if stored.Status != entity.BookingStatusPending {
		t.Errorf("status = %s, want pending left for retry", stored.Status)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.calls) != 0 {
		t.Errorf("failed payment must not notify, got %+v", notifier.calls)
	}
}

func TestHandleCallbackUnknownOrder(t *testing.T) {
	_, _, _, _, svc, _ := newPaymentFixture()

	err := svc.HandleCallback(context.Background(), &request.GatewayCallback{
		Success:       true,
		OrderID:       "EXP-20260101-000000-9999",
		TransactionID: "pg-tid-1",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestHandleCallbackCancelledBookingNeedsReview(t *testing.T) {
	bookings, _, _, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)
	bookings.MarkCancelled(context.Background(), b.ID, "expired", time.Now())

	err := svc.HandleCallback(context.Background(), &request.GatewayCallback{
		Success:       true,
		Amount:        110000,
		OrderID:       b.OrderID,
		TransactionID: "pg-tid-late",
	})
	if err == nil || !strings.Contains(err.Error(), "manual review") {
		t.Fatalf("got %v, want manual review error", err)
	}

	stored, _ := bookings.FindByOrderID(context.Background(), b.OrderID)
	if stored.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, cancelled booking must stay cancelled", stored.Status)
	}
}

func TestConfirmSettlement(t *testing.T) {
	bookings, _, notifier, audit, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)
	adminID := uuid.New().String()

	resp, err := svc.ConfirmSettlement(context.Background(), adminID, &request.ConfirmBookingRequest{BookingID: b.ID.String()})
	if err != nil {
		t.Fatalf("ConfirmSettlement: %v", err)
	}

	// 2 guests x 50,000 = 100,000 total; 80% payout, remainder platform.
	if resp.TotalExperiencePrice != 100000 {
		t.Errorf("total = %d, want 100000", resp.TotalExperiencePrice)
	}
	if resp.HostPayoutAmount != 80000 {
		t.Errorf("payout = %d, want 80000", resp.HostPayoutAmount)
	}
	if resp.PlatformRevenue != 30000 {
		t.Errorf("platform revenue = %d, want 30000", resp.PlatformRevenue)
	}
	if resp.PayoutStatus != string(entity.PayoutStatusPending) {
		t.Errorf("payout status = %s, want pending", resp.PayoutStatus)
	}

	stored, _ := bookings.FindByID(context.Background(), b.ID)
	if !stored.IsSettled() {
		t.Error("booking not settled")
	}
	if stored.Status != entity.BookingStatusPaid {
		t.Errorf("status = %s, want paid", stored.Status)
	}
	if stored.PaidAt == nil {
		t.Error("settlement of unpaid booking must stamp paid_at")
	}

	notifier.mu.Lock()
	if len(notifier.calls) != 2 {
		t.Errorf("got %d notifications, want host + guest", len(notifier.calls))
	}
	notifier.mu.Unlock()

	audit.mu.Lock()
	if len(audit.calls) != 1 || audit.calls[0].action != "settlement.confirm" {
		t.Errorf("audit = %+v, want settlement.confirm", audit.calls)
	}
	audit.mu.Unlock()
}

func TestConfirmSettlementTwiceRejected(t *testing.T) {
	bookings, _, _, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)
	adminID := uuid.New().String()
	req := &request.ConfirmBookingRequest{BookingID: b.ID.String()}

	if _, err := svc.ConfirmSettlement(context.Background(), adminID, req); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err := svc.ConfirmSettlement(context.Background(), adminID, req)
	if err == nil || !strings.Contains(err.Error(), "already settled") {
		t.Fatalf("got %v, want already settled", err)
	}
}

func TestConfirmSettlementUsesCurrentPrice(t *testing.T) {
	bookings, experiences, _, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)

	// Host raised the price after the booking was taken; the split follows
	// the current price, not the snapshot.
	experiences.mu.Lock()
	experiences.experiences[exp.ID].Price = 60000
	experiences.mu.Unlock()

	resp, err := svc.ConfirmSettlement(context.Background(), uuid.New().String(), &request.ConfirmBookingRequest{BookingID: b.ID.String()})
	if err != nil {
		t.Fatalf("ConfirmSettlement: %v", err)
	}
	if resp.TotalExperiencePrice != 120000 {
		t.Errorf("total = %d, want 120000 from current price", resp.TotalExperiencePrice)
	}
	if resp.HostPayoutAmount != 96000 {
		t.Errorf("payout = %d, want 96000", resp.HostPayoutAmount)
	}
}

func TestConfirmSettlementCancelledRejected(t *testing.T) {
	bookings, _, _, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)
	bookings.MarkCancelled(context.Background(), b.ID, "expired", time.Now())

	_, err := svc.ConfirmSettlement(context.Background(), uuid.New().String(), &request.ConfirmBookingRequest{BookingID: b.ID.String()})
	if err == nil || !strings.Contains(err.Error(), "cancelled") {
		t.Fatalf("got %v, want cancelled rejection", err)
	}
}

func TestConfirmSettlementMissingExperience(t *testing.T) {
	bookings, _, _, _, svc, exp := newPaymentFixture()
	b := seedPendingBooking(bookings, exp)

	// Orphan the booking from its experience.
	bookings.mu.Lock()
	bookings.bookings[b.ID].ExperienceID = uuid.New()
	bookings.mu.Unlock()

	_, err := svc.ConfirmSettlement(context.Background(), uuid.New().String(), &request.ConfirmBookingRequest{BookingID: b.ID.String()})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("got %v, want not found", err)
	}
}
