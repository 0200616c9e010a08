package facilities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// FacilityRepository интерфейс репозитория парковок
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
	List(ctx context.Context) ([]*domain.Facility, error)
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	GetSlotCounts(ctx context.Context, facilityIDs []int64) (map[int64]domain.SlotCounts, error)
	UpdateConfig(ctx context.Context, id int64, facility *domain.Facility) (*domain.Facility, error)
	ChangeSlotStatus(ctx context.Context, facilityID int64, slotID string, from, to domain.SlotStatus) error
}

// AllocationEngine интерфейс движка подбора оптимального слота
type AllocationEngine interface {
	FindOptimal(facility *domain.Facility, category domain.VehicleCategory) (domain.Slot, error)
}

// PricingEngine интерфейс движка ценообразования
type PricingEngine interface {
	Quote(facility *domain.Facility, now time.Time) domain.PriceBreakdown
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
