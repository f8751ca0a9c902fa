package usecase

import (
	"context"
	"testing"
	"time"

	"experience-booking/internal/data/entity"
	"experience-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newSchedulerFixture() (*fakeBookingRepo, *fakeAudit, SchedulerService) {
	bookings := newFakeBookingRepo()
	audit := &fakeAudit{}
	repo := &repository.Repository{Booking: bookings}
	return bookings, audit, NewSchedulerService(repo, audit, zap.NewNop())
}

func seedSweepBooking(bookings *fakeBookingRepo, status entity.BookingStatus, createdAgo, scheduledIn time.Duration) *entity.Booking {
	scheduled := time.Now().Add(scheduledIn)
	b := &entity.Booking{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now().Add(-createdAgo)},
		OrderID:      "EXP-20260810-080000-" + uuid.New().String()[:4],
		ExperienceID: uuid.New(),
		UserID:       uuid.New(),
		SlotDate:     time.Date(scheduled.Year(), scheduled.Month(), scheduled.Day(), 0, 0, 0, 0, scheduled.Location()),
		SlotTime:     scheduled.Format("15:04"),
		Guests:       2,
		Type:         entity.BookingTypeGroup,
		Amount:       110000,
		Status:       status,
	}
	bookings.Create(context.Background(), b)
	return b
}

func TestExpirePending(t *testing.T) {
	bookings, audit, svc := newSchedulerFixture()

	stale := seedSweepBooking(bookings, entity.BookingStatusPending, 2*time.Hour, 7*24*time.Hour)
	fresh := seedSweepBooking(bookings, entity.BookingStatusPending, 10*time.Minute, 7*24*time.Hour)
	paid := seedSweepBooking(bookings, entity.BookingStatusPaid, 3*time.Hour, 7*24*time.Hour)

	result, err := svc.ExpirePending(context.Background())
	if err != nil {
		t.Fatalf("ExpirePending: %v", err)
	}
	if result.Count != 1 || len(result.OrderIDs) != 1 || result.OrderIDs[0] != stale.OrderID {
		t.Errorf("result = %+v, want only %s expired", result, stale.OrderID)
	}

	if b, _ := bookings.FindByID(context.Background(), stale.ID); b.Status != entity.BookingStatusCancelled {
		t.Errorf("stale status = %s, want cancelled", b.Status)
	}
	if b, _ := bookings.FindByID(context.Background(), fresh.ID); b.Status != entity.BookingStatusPending {
		t.Errorf("fresh status = %s, want pending", b.Status)
	}
	if b, _ := bookings.FindByID(context.Background(), paid.ID); b.Status != entity.BookingStatusPaid {
		t.Errorf("paid status = %s, must not be swept", b.Status)
	}

	audit.mu.Lock()
	if len(audit.calls) != 1 || audit.calls[0].action != "sweep.expire_pending" {
		t.Errorf("audit = %+v, want sweep.expire_pending", audit.calls)
	}
	audit.mu.Unlock()
}

func TestExpirePendingEmptyRunSkipsAudit(t *testing.T) {
	_, audit, svc := newSchedulerFixture()

	result, err := svc.ExpirePending(context.Background())
	if err != nil {
		t.Fatalf("ExpirePending: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("count = %d, want 0", result.Count)
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.calls) != 0 {
		t.Errorf("empty sweep must not audit, got %+v", audit.calls)
	}
}

func TestAutoComplete(t *testing.T) {
	bookings, audit, svc := newSchedulerFixture()

	past := seedSweepBooking(bookings, entity.BookingStatusPaid, 48*time.Hour, -2*time.Hour)
	legacy := seedSweepBooking(bookings, entity.BookingStatusConfirmed, 48*time.Hour, -3*time.Hour)
	future := seedSweepBooking(bookings, entity.BookingStatusPaid, 48*time.Hour, 24*time.Hour)

	result, err := svc.AutoComplete(context.Background())
	if err != nil {
		t.Fatalf("AutoComplete: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("count = %d, want 2 (paid and legacy confirmed)", result.Count)
	}

	if b, _ := bookings.FindByID(context.Background(), past.ID); b.Status != entity.BookingStatusCompleted {
		t.Errorf("past status = %s, want completed", b.Status)
	}
	if b, _ := bookings.FindByID(context.Background(), legacy.ID); b.Status != entity.BookingStatusCompleted {
		t.Errorf("legacy confirmed status = %s, want completed", b.Status)
	}
	if b, _ := bookings.FindByID(context.Background(), future.ID); b.Status != entity.BookingStatusPaid {
		t.Errorf("future status = %s, must stay paid", b.Status)
	}

	audit.mu.Lock()
	if len(audit.calls) != 1 || audit.calls[0].action != "sweep.auto_complete" {
		t.Errorf("audit = %+v, want sweep.auto_complete", audit.calls)
	}
	audit.mu.Unlock()
}

func TestAutoCompleteIdempotent(t *testing.T) {
	bookings, _, svc := newSchedulerFixture()
	seedSweepBooking(bookings, entity.BookingStatusPaid, 48*time.Hour, -2*time.Hour)

	first, err := svc.AutoComplete(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Count != 1 {
		t.Fatalf("first count = %d, want 1", first.Count)
	}

	second, err := svc.AutoComplete(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Count != 0 {
		t.Errorf("second count = %d, want 0", second.Count)
	}
}
