package pricing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// facilityWithOccupancy создает парковку с одним рядом из total слотов,
// из которых busy зарезервированы
func facilityWithOccupancy(total, busy int, baseRate float64, dynamic bool) *domain.Facility {
	facility := &domain.Facility{
		ID:             1,
		OwnerID:        10,
		Name:           "Central Parking",
		Floors:         1,
		Rows:           1,
		Columns:        total,
		Categories:     []domain.VehicleCategory{domain.CategoryCar},
		BaseRate:       baseRate,
		DynamicPricing: dynamic,
		Slots:          domain.GenerateSlots(1, 1, total, []domain.VehicleCategory{domain.CategoryCar}),
	}

	for i := 0; i < busy; i++ {
		facility.Slots[i].Status = domain.SlotStatusReserved
	}

	return facility
}

// offPeak фиксированное время вне пикового окна
var offPeak = time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

func TestQuote_DynamicPricingDisabled(t *testing.T) {
	// Даже при полной загрузке и пиковом часе тариф остаётся базовым
	facility := facilityWithOccupancy(10, 10, 150, false)
	engine := NewEngine()

	peak := time.Date(2026, 8, 23, 19, 0, 0, 0, time.UTC)
	breakdown := engine.Quote(facility, peak)

	assert.Equal(t, 150.0, breakdown.BaseRate)
	assert.Equal(t, 1.0, breakdown.OccupancyMultiplier)
	assert.Empty(t, breakdown.OccupancyLabel)
	assert.Equal(t, 1.0, breakdown.PeakMultiplier)
	assert.Empty(t, breakdown.PeakLabel)
	assert.Equal(t, 150.0, breakdown.FinalRate)
}

func TestQuote_OccupancyTiers(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		busy           int
		wantMultiplier float64
		wantLabel      string
	}{
		{"empty facility", 10, 0, 0.8, "Low demand"},
		{"below low threshold", 10, 3, 0.8, "Low demand"},
		{"at neutral band start", 10, 4, 1.0, ""},
		{"inside neutral band", 20, 9, 1.0, ""},
		{"at moderate threshold", 10, 5, 1.2, "Moderate demand"},
		{"at high threshold boundary", 10, 8, 1.2, "Moderate demand"},
		{"above high threshold", 10, 9, 1.5, "High demand"},
		{"full facility", 10, 10, 1.5, "High demand"},
	}

	engine := NewEngine()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := facilityWithOccupancy(tt.total, tt.busy, 100, true)

			breakdown := engine.Quote(facility, offPeak)

			assert.Equal(t, tt.wantMultiplier, breakdown.OccupancyMultiplier)
			assert.Equal(t, tt.wantLabel, breakdown.OccupancyLabel)
			assert.Equal(t, domain.RoundMoney(100*tt.wantMultiplier), breakdown.FinalRate)
		})
	}
}

func TestQuote_PeakHours(t *testing.T) {
	tests := []struct {
		hour           int
		wantMultiplier float64
		wantLabel      string
	}{
		{17, 1.0, ""},
		{18, 1.2, "Peak hours"},
		{20, 1.2, "Peak hours"},
		{22, 1.2, "Peak hours"},
		{23, 1.0, ""},
		{0, 1.0, ""},
	}

	engine := NewEngine()

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hour %d", tt.hour), func(t *testing.T) {
			facility := facilityWithOccupancy(10, 0, 100, true)
			now := time.Date(2026, 8, 23, tt.hour, 30, 0, 0, time.UTC)

			breakdown := engine.Quote(facility, now)

			assert.Equal(t, tt.wantMultiplier, breakdown.PeakMultiplier)
			assert.Equal(t, tt.wantLabel, breakdown.PeakLabel)
		})
	}
}

func TestQuote_CombinedMultipliers(t *testing.T) {
	// Загруженность 9/10 и пиковый час применяются независимо:
	// 60 * 1.5 * 1.2 = 108.00
	facility := facilityWithOccupancy(10, 9, 60, true)
	engine := NewEngine()

	peak := time.Date(2026, 8, 23, 19, 0, 0, 0, time.UTC)
	breakdown := engine.Quote(facility, peak)

	assert.Equal(t, 1.5, breakdown.OccupancyMultiplier)
	assert.Equal(t, "High demand", breakdown.OccupancyLabel)
	assert.Equal(t, 1.2, breakdown.PeakMultiplier)
	assert.Equal(t, "Peak hours", breakdown.PeakLabel)
	assert.Equal(t, 108.0, breakdown.FinalRate)
}

func TestQuote_RoundsFinalRate(t *testing.T) {
	// 10.55 * 1.2 = 12.66 после округления до цента
	facility := facilityWithOccupancy(10, 5, 10.55, true)
	engine := NewEngine()

	breakdown := engine.Quote(facility, offPeak)

	assert.Equal(t, 12.66, breakdown.FinalRate)
}

func TestQuote_PureFunction(t *testing.T) {
	facility := facilityWithOccupancy(10, 6, 100, true)
	engine := NewEngine()

	first := engine.Quote(facility, offPeak)
	second := engine.Quote(facility, offPeak)

	require.Equal(t, first, second)

	// Котировка не меняет статусы слотов
	reserved := 0
	for _, s := range facility.Slots {
		if s.Status == domain.SlotStatusReserved {
			reserved++
		}
	}
	assert.Equal(t, 6, reserved)
}
