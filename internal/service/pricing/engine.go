package pricing

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Engine вычисляет действующий часовой тариф парковки
//
// Тариф зависит от текущей загруженности и времени суток. Quote - чистая функция
// от статусов слотов и переданного времени: повторный вызов с теми же входными
// данными даёт тот же результат
type Engine struct{}

// NewEngine создает движок ценообразования
func NewEngine() *Engine {
	return &Engine{}
}

// Quote вычисляет разбивку тарифа для парковки на момент now
//
// При выключенном динамическом ценообразовании возвращает базовый тариф
// с единичными множителями. Иначе применяется ровно один тариф по загруженности
// и, независимо от него, множитель пикового часа
func (e *Engine) Quote(facility *domain.Facility, now time.Time) domain.PriceBreakdown {
	breakdown := domain.PriceBreakdown{
		BaseRate:            facility.BaseRate,
		OccupancyMultiplier: 1,
		PeakMultiplier:      1,
		FinalRate:           facility.BaseRate,
	}

	if !facility.DynamicPricing {
		return breakdown
	}

	occupancy := facility.Occupancy()
	switch {
	case occupancy > domain.HighDemandThreshold:
		breakdown.OccupancyMultiplier = domain.HighDemandMultiplier
		breakdown.OccupancyLabel = domain.HighDemandLabel
	case occupancy >= domain.ModerateDemandThreshold:
		breakdown.OccupancyMultiplier = domain.ModerateDemandMultiplier
		breakdown.OccupancyLabel = domain.ModerateDemandLabel
	case occupancy < domain.LowDemandThreshold:
		breakdown.OccupancyMultiplier = domain.LowDemandMultiplier
		breakdown.OccupancyLabel = domain.LowDemandLabel
	}
	// Загруженность в [0.4, 0.5) оставляет базовый тариф без надбавки

	hour := now.Hour()
	if hour >= domain.PeakHourStart && hour <= domain.PeakHourEnd {
		breakdown.PeakMultiplier = domain.PeakMultiplier
		breakdown.PeakLabel = domain.PeakLabel
	}

	breakdown.FinalRate = domain.RoundMoney(facility.BaseRate * breakdown.OccupancyMultiplier * breakdown.PeakMultiplier)

	return breakdown
}
