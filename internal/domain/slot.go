package domain

import "fmt"

// VehicleCategory represents the vehicle category a slot accepts
type VehicleCategory string

const (
	CategoryCar  VehicleCategory = "car"
	CategoryBike VehicleCategory = "bike"
	CategoryEV   VehicleCategory = "ev"
)

// SlotStatus represents the current status of a parking slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusReserved  SlotStatus = "reserved"
	SlotStatusOccupied  SlotStatus = "occupied"
)

// Slot represents a single parking slot in a facility grid.
// Floor, Row and Column are zero-based grid coordinates.
type Slot struct {
	ID       string
	Floor    int
	Row      int
	Column   int
	Category VehicleCategory
	Status   SlotStatus
}

// IsAvailable returns true if the slot can be reserved
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// Accepts returns true if the slot accepts the given vehicle category
func (s *Slot) Accepts(category VehicleCategory) bool {
	return s.Category == category
}

// SlotID builds the human-readable slot identifier for grid coordinates.
// Floors and columns are displayed one-based, rows as letters: F1-A1, F2-C12.
func SlotID(floor, row, column int) string {
	return fmt.Sprintf("F%d-%s%d", floor+1, string(rune('A'+row)), column+1)
}

// GenerateSlots builds the full slot grid for a facility.
// Slots are generated floor by floor, row by row, column by column;
// categories are assigned round-robin over the flat slot index, so a
// facility mixes categories evenly across the whole grid.
func GenerateSlots(floors, rows, columns int, categories []VehicleCategory) []Slot {
	slots := make([]Slot, 0, floors*rows*columns)

	idx := 0
	for f := 0; f < floors; f++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < columns; c++ {
				slots = append(slots, Slot{
					ID:       SlotID(f, r, c),
					Floor:    f,
					Row:      r,
					Column:   c,
					Category: categories[idx%len(categories)],
					Status:   SlotStatusAvailable,
				})
				idx++
			}
		}
	}

	return slots
}

// ValidSlotStatus returns true for a known slot status value
func ValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotStatusAvailable, SlotStatusReserved, SlotStatusOccupied:
		return true
	}
	return false
}

// ValidVehicleCategory returns true for a known vehicle category value
func ValidVehicleCategory(c VehicleCategory) bool {
	switch c {
	case CategoryCar, CategoryBike, CategoryEV:
		return true
	}
	return false
}
