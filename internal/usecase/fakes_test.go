package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"experience-booking/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory repository fakes mirroring the conditional-update semantics
// of the SQL layer.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	clone.Status = clone.Status.Normalize()
	return &clone, nil
}

func (f *fakeBookingRepo) FindByOrderID(_ context.Context, orderID string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.OrderID == orderID {
			clone := *b
			clone.Status = clone.Status.Normalize()
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			clone := *b
			clone.Status = clone.Status.Normalize()
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) FindPaidBySlot(_ context.Context, experienceID uuid.UUID, slotDate time.Time, slotTime string) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ExperienceID == experienceID && b.SlotDate.Equal(slotDate) && b.SlotTime == slotTime && b.Status.IsPaid() {
			clone := *b
			clone.Status = clone.Status.Normalize()
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) MarkPaidByOrderID(_ context.Context, orderID, transactionID string, paidAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.OrderID == orderID && b.Status == entity.BookingStatusPending {
			b.Status = entity.BookingStatusPaid
			tid := transactionID
			b.TransactionID = &tid
			at := paidAt
			b.PaidAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id uuid.UUID, reason string, cancelledAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return false, nil
	}
	switch b.Status {
	case entity.BookingStatusPending, entity.BookingStatusPaid, entity.BookingStatusConfirmed:
		b.Status = entity.BookingStatusCancelled
		r := reason
		b.CancelReason = &r
		at := cancelledAt
		b.CancelledAt = &at
		return true, nil
	}
	return false, nil
}

func (f *fakeBookingRepo) MarkCompleted(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || !b.Status.IsPaid() {
		return false, nil
	}
	b.Status = entity.BookingStatusCompleted
	return true, nil
}

func (f *fakeBookingRepo) MarkSettled(_ context.Context, id uuid.UUID, totalExperiencePrice, hostPayout, platformRevenue int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok || b.HostPayoutAmount != nil {
		return false, nil
	}
	switch b.Status {
	case entity.BookingStatusPending, entity.BookingStatusPaid, entity.BookingStatusConfirmed:
	default:
		return false, nil
	}
	b.Status = entity.BookingStatusPaid
	b.TotalExperiencePrice = &totalExperiencePrice
	b.HostPayoutAmount = &hostPayout
	b.PlatformRevenue = &platformRevenue
	ps := entity.PayoutStatusPending
	b.PayoutStatus = &ps
	if b.PaidAt == nil {
		now := time.Now()
		b.PaidAt = &now
	}
	return true, nil
}

func (f *fakeBookingRepo) ExpirePendingBefore(_ context.Context, cutoff time.Time, reason string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, b := range f.bookings {
		if b.Status == entity.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			b.Status = entity.BookingStatusCancelled
			r := reason
			b.CancelReason = &r
			ids = append(ids, b.OrderID)
		}
	}
	return ids, nil
}

func (f *fakeBookingRepo) FindPaidAll(_ context.Context) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status.IsPaid() {
			clone := *b
			clone.Status = clone.Status.Normalize()
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeExperienceRepo struct {
	mu          sync.Mutex
	experiences map[uuid.UUID]*entity.Experience
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{experiences: make(map[uuid.UUID]*entity.Experience)}
}

func (f *fakeExperienceRepo) Create(_ context.Context, exp *entity.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *exp
	f.experiences[exp.ID] = &clone
	return nil
}

func (f *fakeExperienceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exp, ok := f.experiences[id]
	if !ok {
		return nil, nil
	}
	clone := *exp
	return &clone, nil
}

func (f *fakeExperienceRepo) FindActive(_ context.Context, limit, offset int) ([]*entity.Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Experience
	for _, exp := range f.experiences {
		if exp.Status == entity.ExperienceStatusActive {
			clone := *exp
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeExperienceRepo) CountActive(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, exp := range f.experiences {
		if exp.Status == entity.ExperienceStatusActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeExperienceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ExperienceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	exp, ok := f.experiences[id]
	if !ok {
		return fmt.Errorf("experience %s not found", id.String())
	}
	exp.Status = status
	return nil
}

// Fakes for the service-level collaborators.

type notifyCall struct {
	userID uuid.UUID
	kind   entity.NotificationKind
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(userID uuid.UUID, kind entity.NotificationKind, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifyCall{userID: userID, kind: kind})
}

type auditCall struct {
	action   string
	targetID string
}

type fakeAudit struct {
	mu    sync.Mutex
	calls []auditCall
}

func (f *fakeAudit) Record(_ context.Context, _ *uuid.UUID, action, _, targetID string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, auditCall{action: action, targetID: targetID})
}

type cancelCall struct {
	transactionID string
	amount        int64
}

type fakeGateway struct {
	mu    sync.Mutex
	err   error
	calls []cancelCall
}

func (f *fakeGateway) Cancel(_ context.Context, transactionID string, amount int64, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cancelCall{transactionID: transactionID, amount: amount})
	return f.err
}
