package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFacility() *Facility {
	return &Facility{
		ID:         1,
		OwnerID:    10,
		Name:       "Central Parking",
		Floors:     2,
		Rows:       2,
		Columns:    2,
		Categories: []VehicleCategory{CategoryCar, CategoryBike},
		BaseRate:   50,
		Slots:      GenerateSlots(2, 2, 2, []VehicleCategory{CategoryCar, CategoryBike}),
	}
}

func TestFacility_Occupancy(t *testing.T) {
	f := testFacility()
	assert.Equal(t, 0.0, f.Occupancy())

	require.True(t, f.SetSlotStatus("F1-A1", SlotStatusReserved))
	require.True(t, f.SetSlotStatus("F1-A2", SlotStatusOccupied))

	// 2 из 8 слотов заняты
	assert.InDelta(t, 0.25, f.Occupancy(), 1e-9)
}

func TestFacility_FloorOccupancy(t *testing.T) {
	f := testFacility()

	require.True(t, f.SetSlotStatus("F1-A1", SlotStatusReserved))
	require.True(t, f.SetSlotStatus("F1-B1", SlotStatusOccupied))

	assert.InDelta(t, 0.5, f.FloorOccupancy(0), 1e-9)
	assert.Equal(t, 0.0, f.FloorOccupancy(1))
	assert.Equal(t, 0.0, f.FloorOccupancy(5))
}

func TestFacility_FindSlot(t *testing.T) {
	f := testFacility()

	slot := f.FindSlot("F2-B2")
	require.NotNil(t, slot)
	assert.Equal(t, 1, slot.Floor)
	assert.Equal(t, 1, slot.Row)
	assert.Equal(t, 1, slot.Column)

	assert.Nil(t, f.FindSlot("F9-Z9"))
}

func TestFacility_SetSlotStatus_UnknownSlot(t *testing.T) {
	f := testFacility()
	assert.False(t, f.SetSlotStatus("F9-Z9", SlotStatusReserved))
}

func TestFacility_SupportsCategory(t *testing.T) {
	f := testFacility()

	assert.True(t, f.SupportsCategory(CategoryCar))
	assert.True(t, f.SupportsCategory(CategoryBike))
	assert.False(t, f.SupportsCategory(CategoryEV))
}

func TestFacility_AvailableCount(t *testing.T) {
	f := testFacility()

	assert.Equal(t, 4, f.AvailableCount(CategoryCar))
	assert.Equal(t, 4, f.AvailableCount(CategoryBike))

	require.True(t, f.SetSlotStatus("F1-A1", SlotStatusReserved)) // car slot
	assert.Equal(t, 3, f.AvailableCount(CategoryCar))
	assert.Equal(t, 4, f.AvailableCount(CategoryBike))
}
