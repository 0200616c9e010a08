package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
)

// FacilityRepository интерфейс репозитория парковок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	ReserveSlot(ctx context.Context, facilityID int64, slotID string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	HasActiveBooking(ctx context.Context, customerID, facilityID int64) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetSelectedVehicleWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Vehicle, error)
}

// AllocationEngine интерфейс движка подбора оптимального слота
type AllocationEngine interface {
	FindOptimal(facility *domain.Facility, category domain.VehicleCategory) (domain.Slot, error)
}

// PricingEngine интерфейс движка расчета ставки
type PricingEngine interface {
	Quote(facility *domain.Facility, now time.Time) domain.PriceBreakdown
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
