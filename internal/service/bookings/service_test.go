package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Фейки репозиториев

type fakeBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking

	getErr  error
	listErr error

	gotCustomerID int64
	gotStatus     *domain.BookingStatus
	gotFilter     domain.FacilityBookingsFilter
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.gotCustomerID = customerID
	f.gotStatus = status
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.gotFilter = filter
	return f.bookings, nil
}

type fakeFacilityRepo struct {
	facilityID int64
	ownerID    int64
	ownerErr   error
}

func (f *fakeFacilityRepo) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	if f.ownerErr != nil {
		return 0, f.ownerErr
	}
	if id != f.facilityID {
		return 0, facilityRepo.ErrFacilityNotFound
	}
	return f.ownerID, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testStart = time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:              5,
		CustomerID:      100,
		FacilityID:      1,
		SlotID:          "F1-A1",
		VehicleCategory: domain.CategoryCar,
		VehiclePlate:    ptr.Ptr("A123BC"),
		StartTime:       testStart,
		Status:          domain.StatusActive,
		PaymentStatus:   domain.PaymentPending,
		RateSnapshot:    120,
		Pricing: domain.PriceBreakdown{
			BaseRate:            100,
			OccupancyMultiplier: 1.2,
			OccupancyLabel:      domain.ModerateDemandLabel,
			PeakMultiplier:      1,
			FinalRate:           120,
		},
		CreatedAt: testStart,
		UpdatedAt: testStart,
	}
}

func newTestService(bookings *fakeBookingRepo, facilities *fakeFacilityRepo) *Service {
	return NewService(bookings, facilities, nopLogger{})
}

func TestGetByID_ReturnsBookingToCustomer(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetByID(context.Background(), 5, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, int64(100), resp.CustomerID)
	assert.Equal(t, "F1-A1", resp.SlotID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 120.0, resp.RateSnapshot)
	assert.Equal(t, 1.2, resp.Pricing.OccupancyMultiplier)
}

func TestGetByID_ReturnsBookingToFacilityOwner(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetByID(context.Background(), 5, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: activeBooking()}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetByID(context.Background(), 5, 77)

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetByID(context.Background(), 99, 100)

	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.Nil(t, resp)
}

func TestGetUserBookings_ReturnsOwnHistory(t *testing.T) {
	cancelled := activeBooking()
	cancelled.ID = 6
	cancelled.Status = domain.StatusCancelled
	cancelled.PaymentStatus = domain.PaymentCancelled
	cancelled.EndTime = ptr.Ptr(testStart.Add(30 * time.Minute))
	cancelled.CancelledAt = ptr.Ptr(testStart.Add(30 * time.Minute))
	cancelled.CancellationReason = ptr.Ptr("plans changed")

	repo := &fakeBookingRepo{bookings: []*domain.Booking{activeBooking(), cancelled}}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  100,
		ActorID: 100,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(100), repo.gotCustomerID)
	assert.Nil(t, repo.gotStatus)

	assert.Equal(t, "active", resp.Bookings[0].Status)
	assert.Equal(t, "cancelled", resp.Bookings[1].Status)
	require.NotNil(t, resp.Bookings[1].CancelledAt)
	assert.Equal(t, "2026-08-23T10:30:00Z", *resp.Bookings[1].CancelledAt)
	require.NotNil(t, resp.Bookings[1].CancellationReason)
	assert.Equal(t, "plans changed", *resp.Bookings[1].CancellationReason)
}

func TestGetUserBookings_PassesStatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  100,
		ActorID: 100,
		Status:  ptr.Ptr("completed"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	require.NotNil(t, repo.gotStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.gotStatus)
}

func TestGetUserBookings_ForeignHistoryDenied(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  100,
		ActorID: 200,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID:  100,
		ActorID: 100,
		Status:  ptr.Ptr("parked"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetFacilityBookings_ReturnsBookingsToOwner(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	repo := &fakeBookingRepo{bookings: []*domain.Booking{activeBooking()}}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:          10,
		FacilityID:      1,
		StartDate:       &start,
		EndDate:         &end,
		Status:          ptr.Ptr("active"),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), repo.gotFilter.FacilityID)
	assert.Equal(t, &start, repo.gotFilter.StartDate)
	assert.Equal(t, &end, repo.gotFilter.EndDate)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusActive, *repo.gotFilter.Status)
	assert.True(t, repo.gotFilter.IncludeInactive)
}

func TestGetFacilityBookings_NonOwnerDenied(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	resp, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     100,
		FacilityID: 1,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, resp)
}

func TestGetFacilityBookings_FacilityNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     10,
		FacilityID: 99,
	})

	require.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestGetFacilityBookings_InvalidStatus(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	_, err := svc.GetFacilityBookings(context.Background(), &models.GetFacilityBookingsRequest{
		UserID:     10,
		FacilityID: 1,
		Status:     ptr.Ptr("parked"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_InternalErrorWrapping(t *testing.T) {
	repo := &fakeBookingRepo{getErr: errors.New("connection refused")}
	svc := newTestService(repo, &fakeFacilityRepo{facilityID: 1, ownerID: 10})

	_, err := svc.GetByID(context.Background(), 5, 100)

	require.ErrorIs(t, err, ErrInternal)
}
