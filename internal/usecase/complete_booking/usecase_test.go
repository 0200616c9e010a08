package complete_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
)

type fakeBookingRepo struct {
	booking     *domain.Booking
	getErr      error
	completeErr error

	completed   bool
	gotEnd      time.Time
	gotDuration int
	gotTotal    float64
	gotRef      string
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

func (f *fakeBookingRepo) Complete(ctx context.Context, id int64, endTime time.Time, durationMinutes int, totalAmount float64, paymentRef string) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = true
	f.gotEnd = endTime
	f.gotDuration = durationMinutes
	f.gotTotal = totalAmount
	f.gotRef = paymentRef
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

func activeBooking(start time.Time) *domain.Booking {
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
		Pricing: domain.PriceBreakdown{
			BaseRate:            100,
			OccupancyMultiplier: 1.0,
			PeakMultiplier:      1.2,
			PeakLabel:           "Peak hours",
			FinalRate:           120,
		},
		CreatedAt: start,
		UpdatedAt: start,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, facilities *fakeFacilityRepo, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, facilities, tx, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_CompletesByCustomer(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(testNow.Add(-90 * time.Minute))}
	facilities := &fakeFacilityRepo{ownerID: 10}
	tx := &fakeTxManager{}
	uc := newTestUseCase(bookings, facilities, tx)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})
	require.NoError(t, err)

	// 90 минут по ставке 120/час = 180.00
	assert.Equal(t, 90, bookings.gotDuration)
	assert.Equal(t, 180.0, bookings.gotTotal)
	assert.Equal(t, testNow, bookings.gotEnd)
	assert.Len(t, bookings.gotRef, 36)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, bookings.gotRef, resp.PaymentRef)
	assert.Equal(t, testNow, resp.EndTime)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 180.0, resp.TotalAmount)
	assert.Equal(t, 120.0, resp.RateSnapshot)

	assert.Equal(t, "F1-A1", facilities.releasedSlot)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_RoundsUpToNextMinute(t *testing.T) {
	// 90 секунд парковки оплачиваются как 2 минуты
	bookings := &fakeBookingRepo{booking: activeBooking(testNow.Add(-90 * time.Second))}
	uc := newTestUseCase(bookings, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DurationMinutes)
	assert.Equal(t, 4.0, resp.TotalAmount)
}

func TestExecute_MinimumOneMinute(t *testing.T) {
	// Мгновенное завершение оплачивается как одна минута
	bookings := &fakeBookingRepo{booking: activeBooking(testNow)}
	uc := newTestUseCase(bookings, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.DurationMinutes)
	assert.Equal(t, 2.0, resp.TotalAmount)
}

func TestExecute_CompletesByOwner(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(testNow.Add(-time.Hour))}
	facilities := &fakeFacilityRepo{ownerID: 10}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 10})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestExecute_AccessDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(testNow.Add(-time.Hour))}
	facilities := &fakeFacilityRepo{ownerID: 10}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 55})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.completed)
	assert.Empty(t, facilities.releasedSlot)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_NotActive(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := activeBooking(testNow.Add(-time.Hour))
			booking.Status = status
			bookings := &fakeBookingRepo{booking: booking}
			facilities := &fakeFacilityRepo{ownerID: 10}
			uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

			_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.False(t, bookings.completed)
			assert.Empty(t, facilities.releasedSlot)
		})
	}
}

func TestExecute_ConcurrentStateConflict(t *testing.T) {
	// CAS-обновление не прошло: бронирование уже завершено конкурентной транзакцией
	bookings := &fakeBookingRepo{
		booking:     activeBooking(testNow.Add(-time.Hour)),
		completeErr: bookingRepo.ErrStateConflict,
	}
	uc := newTestUseCase(bookings, &fakeFacilityRepo{ownerID: 10}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestExecute_ReleaseFailureAbortsTransaction(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(testNow.Add(-time.Hour))}
	facilities := &fakeFacilityRepo{ownerID: 10, releaseErr: facilityRepo.ErrSlotNotFound}
	uc := newTestUseCase(bookings, facilities, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"zero booking", &Request{BookingID: 0, UserID: 100}},
		{"zero user", &Request{BookingID: 42, UserID: 0}},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeFacilityRepo{}, &fakeTxManager{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBillableMinutes(t *testing.T) {
	start := testNow

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"instant", start, 1},
		{"thirty seconds", start.Add(30 * time.Second), 1},
		{"exactly one minute", start.Add(time.Minute), 1},
		{"one minute one second", start.Add(time.Minute + time.Second), 2},
		{"ninety minutes", start.Add(90 * time.Minute), 90},
		{"clock skew", start.Add(-time.Minute), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billableMinutes(start, tt.end))
		})
	}
}
