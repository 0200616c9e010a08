package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func testFacility(floors, rows, columns int, categories []domain.VehicleCategory) *domain.Facility {
	return &domain.Facility{
		ID:             1,
		OwnerID:        10,
		Name:           "Central Parking",
		Floors:         floors,
		Rows:           rows,
		Columns:        columns,
		Categories:     categories,
		BaseRate:       100,
		DynamicPricing: true,
		Slots:          domain.GenerateSlots(floors, rows, columns, categories),
	}
}

func TestFindOptimal_EmptyFacilityPicksEntranceSlot(t *testing.T) {
	facility := testFacility(3, 4, 5, []domain.VehicleCategory{domain.CategoryCar})
	engine := NewEngine()

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	// На пустой парковке ближайший к входу слот имеет минимальную оценку
	assert.Equal(t, "F1-A1", slot.ID)
	assert.Equal(t, 0, slot.Floor)
	assert.Equal(t, 0, slot.Row)
	assert.Equal(t, 0, slot.Column)
}

func TestFindOptimal_SkipsWrongCategory(t *testing.T) {
	categories := []domain.VehicleCategory{domain.CategoryCar, domain.CategoryBike, domain.CategoryEV}
	facility := testFacility(1, 1, 6, categories)
	engine := NewEngine()

	// Слоты чередуются car, bike, ev: первый bike-слот - второй в ряду
	slot, err := engine.FindOptimal(facility, domain.CategoryBike)
	require.NoError(t, err)

	assert.Equal(t, "F1-A2", slot.ID)
	assert.Equal(t, domain.CategoryBike, slot.Category)
}

func TestFindOptimal_SkipsReservedAndOccupied(t *testing.T) {
	facility := testFacility(1, 1, 4, []domain.VehicleCategory{domain.CategoryCar})
	facility.SetSlotStatus("F1-A1", domain.SlotStatusReserved)
	facility.SetSlotStatus("F1-A2", domain.SlotStatusOccupied)
	engine := NewEngine()

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	assert.Equal(t, "F1-A3", slot.ID)
}

func TestFindOptimal_AvoidsBusyFloor(t *testing.T) {
	facility := testFacility(2, 1, 3, []domain.VehicleCategory{domain.CategoryCar})
	// Первый этаж загружен на 2/3: выгоднее подняться на пустой второй
	facility.SetSlotStatus("F1-A2", domain.SlotStatusOccupied)
	facility.SetSlotStatus("F1-A3", domain.SlotStatusOccupied)
	engine := NewEngine()

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	// F1-A1: 0.5*0 + 0.3*(2/3) + 0.2*0 = 0.2
	// F2-A1: 0.5*(1/4) + 0.3*0 + 0.2*0 = 0.125
	assert.Equal(t, "F2-A1", slot.ID)
}

func TestFindOptimal_TieResolvesToGenerationOrder(t *testing.T) {
	facility := testFacility(2, 2, 2, []domain.VehicleCategory{domain.CategoryCar})
	// Нулевые веса дают всем кандидатам одинаковую оценку
	engine := NewEngine(WithWeights(0, 0, 0))

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	assert.Equal(t, "F1-A1", slot.ID)

	// После резервирования первого побеждает следующий в порядке генерации
	facility.SetSlotStatus("F1-A1", domain.SlotStatusReserved)

	slot, err = engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	assert.Equal(t, "F1-A2", slot.ID)
}

func TestFindOptimal_NoCandidates(t *testing.T) {
	t.Run("unsupported category", func(t *testing.T) {
		facility := testFacility(1, 1, 2, []domain.VehicleCategory{domain.CategoryCar})
		engine := NewEngine()

		_, err := engine.FindOptimal(facility, domain.CategoryEV)
		assert.ErrorIs(t, err, ErrNoSlotAvailable)
	})

	t.Run("everything reserved", func(t *testing.T) {
		facility := testFacility(1, 1, 2, []domain.VehicleCategory{domain.CategoryCar})
		facility.SetSlotStatus("F1-A1", domain.SlotStatusReserved)
		facility.SetSlotStatus("F1-A2", domain.SlotStatusReserved)
		engine := NewEngine()

		_, err := engine.FindOptimal(facility, domain.CategoryCar)
		assert.ErrorIs(t, err, ErrNoSlotAvailable)
	})
}

func TestFindOptimal_DoesNotMutateFacility(t *testing.T) {
	facility := testFacility(2, 2, 2, []domain.VehicleCategory{domain.CategoryCar})
	facility.SetSlotStatus("F1-A2", domain.SlotStatusOccupied)
	engine := NewEngine()

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)

	// Возвращается копия: изменение результата не трогает слоты парковки
	slot.Status = domain.SlotStatusReserved

	found := facility.FindSlot(slot.ID)
	require.NotNil(t, found)
	assert.Equal(t, domain.SlotStatusAvailable, found.Status)

	occupied := 0
	for _, s := range facility.Slots {
		if s.Status != domain.SlotStatusAvailable {
			occupied++
		}
	}
	assert.Equal(t, 1, occupied)
}

func TestScore_WithinUnitRange(t *testing.T) {
	facility := testFacility(3, 4, 5, []domain.VehicleCategory{domain.CategoryCar, domain.CategoryBike})
	facility.SetSlotStatus("F1-A1", domain.SlotStatusOccupied)
	facility.SetSlotStatus("F2-B3", domain.SlotStatusReserved)
	facility.SetSlotStatus("F3-D5", domain.SlotStatusOccupied)
	engine := NewEngine()

	for i := range facility.Slots {
		slot := &facility.Slots[i]
		score := engine.Score(facility, slot)
		assert.GreaterOrEqual(t, score, 0.0, "slot %s", slot.ID)
		assert.LessOrEqual(t, score, 1.0, "slot %s", slot.ID)
	}
}

func TestScore_SingleSlotFacility(t *testing.T) {
	// Вырожденная сетка 1x1x1 не должна давать деления на ноль
	facility := testFacility(1, 1, 1, []domain.VehicleCategory{domain.CategoryCar})
	engine := NewEngine()

	slot, err := engine.FindOptimal(facility, domain.CategoryCar)
	require.NoError(t, err)
	assert.Equal(t, "F1-A1", slot.ID)

	score := engine.Score(facility, &facility.Slots[0])
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
