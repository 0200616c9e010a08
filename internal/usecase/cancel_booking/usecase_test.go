package cancel_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelErr error

	cancelled      bool
	gotCancelledAt time.Time
	gotReason      *string
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, cancelledAt time.Time, reason *string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = true
	f.gotCancelledAt = cancelledAt
	f.gotReason = reason
	return nil
}

type fakeFacilityRepo struct {
	ownerID    int64
	ownerErr   error
	releaseErr error

	releasedSlot string
}

func (f *fakeFacilityRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	if f.ownerErr != nil {
		return 0, f.ownerErr
	}
	return f.ownerID, nil
}

func (f *fakeFacilityRepo) ReleaseSlot(ctx context.Context, facilityID int64, slotID string) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.releasedSlot = slotID
	return nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2026, 8, 23, 12, 30, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	start := testNow.Add(-time.Hour)
	return &domain.Booking{
		ID:              42,
		CustomerID:      100,
		FacilityID:      1,
		SlotID:          "F1-A1",
		VehicleCategory: domain.CategoryCar,
		StartTime:       start,
		Status:          domain.StatusActive,
		PaymentStatus:   domain.PaymentPending,
		RateSnapshot:    120,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, facilities *fakeFacilityRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, facilities, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_CancelsByCustomer(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	facilities := &fakeFacilityRepo{ownerID: 10}
	tx := &fakeTxManager{}
	uc := newTestUseCase(bookings, facilities, tx)

	err := uc.Execute(context.Background(), &Request{
		BookingID:          42,
		UserID:             100,
		CancellationReason: ptr.Ptr("plans changed"),
	})
	require.NoError(t, err)

	assert.True(t, bookings.cancelled)
	assert.Equal(t, testNow, bookings.gotCancelledAt)
	require.NotNil(t, bookings.gotReason)
	assert.Equal(t, "plans changed", *bookings.gotReason)
	assert.Equal(t, "F1-A1", facilities.releasedSlot)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_CancelsByOwner(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	facilities := &fakeFacilityRepo{ownerID: 10}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 10})
	require.NoError(t, err)

	assert.True(t, bookings.cancelled)
	assert.Equal(t, "F1-A1", facilities.releasedSlot)
}

func TestExecute_WithoutReason(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})
	require.NoError(t, err)

	assert.True(t, bookings.cancelled)
	assert.Nil(t, bookings.gotReason)
}

func TestExecute_AccessDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	facilities := &fakeFacilityRepo{ownerID: 10}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 55})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.cancelled)
	assert.Empty(t, facilities.releasedSlot)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotActive(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := activeBooking()
			booking.Status = status
			bookings := &fakeBookingRepo{booking: booking}
			facilities := &fakeFacilityRepo{ownerID: 10}
			uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

			err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.False(t, bookings.cancelled)
			assert.Empty(t, facilities.releasedSlot)
		})
	}
}

func TestExecute_ConcurrentStateConflict(t *testing.T) {
	// CAS-обновление не прошло: бронирование уже переведено в терминальный статус
	bookings := &fakeBookingRepo{
		booking:   activeBooking(),
		cancelErr: bookingRepo.ErrStateConflict,
	}
	uc := newTestUseCase(bookings, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestExecute_ReleaseFailureAbortsTransaction(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	facilities := &fakeFacilityRepo{ownerID: 10, releaseErr: facilityRepo.ErrSlotNotFound}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"zero booking", &Request{BookingID: 0, UserID: 100}},
		{"zero user", &Request{BookingID: 42, UserID: 0}},
		{"empty reason", &Request{BookingID: 42, UserID: 100, CancellationReason: ptr.Ptr("   ")}},
		{"reason too long", &Request{BookingID: 42, UserID: 100, CancellationReason: ptr.Ptr(strings.Repeat("a", 501))}},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFacilityRepo{}, &fakeTxManager{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
