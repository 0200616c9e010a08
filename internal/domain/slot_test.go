package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotID(t *testing.T) {
	tests := []struct {
		floor, row, column int
		want               string
	}{
		{0, 0, 0, "F1-A1"},
		{0, 0, 7, "F1-A8"},
		{1, 2, 11, "F2-C12"},
		{9, 25, 49, "F10-Z50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SlotID(tt.floor, tt.row, tt.column))
	}
}

func TestGenerateSlots(t *testing.T) {
	categories := []VehicleCategory{CategoryCar, CategoryBike, CategoryEV}

	slots := GenerateSlots(3, 5, 8, categories)

	require.Len(t, slots, 120)

	// Все ID уникальны
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		_, dup := seen[s.ID]
		require.False(t, dup, "duplicate slot id %s", s.ID)
		seen[s.ID] = struct{}{}
	}

	// Порядок генерации: этаж, ряд, место
	assert.Equal(t, "F1-A1", slots[0].ID)
	assert.Equal(t, "F1-A2", slots[1].ID)
	assert.Equal(t, "F1-B1", slots[8].ID)
	assert.Equal(t, "F2-A1", slots[40].ID)
	assert.Equal(t, "F3-E8", slots[119].ID)

	// Категории назначаются по кругу по плоскому индексу
	for i, s := range slots {
		assert.Equal(t, categories[i%3], s.Category, "slot %s", s.ID)
		assert.Equal(t, SlotStatusAvailable, s.Status)
	}
}

func TestGenerateSlots_SingleCategory(t *testing.T) {
	slots := GenerateSlots(1, 2, 3, []VehicleCategory{CategoryCar})

	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.Equal(t, CategoryCar, s.Category)
	}
}

func TestValidSlotStatus(t *testing.T) {
	assert.True(t, ValidSlotStatus(SlotStatusAvailable))
	assert.True(t, ValidSlotStatus(SlotStatusReserved))
	assert.True(t, ValidSlotStatus(SlotStatusOccupied))
	assert.False(t, ValidSlotStatus("vacant"))
}

func TestValidVehicleCategory(t *testing.T) {
	assert.True(t, ValidVehicleCategory(CategoryCar))
	assert.True(t, ValidVehicleCategory(CategoryBike))
	assert.True(t, ValidVehicleCategory(CategoryEV))
	assert.False(t, ValidVehicleCategory("truck"))
}
