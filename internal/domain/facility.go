package domain

import "time"

// Facility represents a parking facility with its slot grid.
// The grid geometry (Floors, Rows, Columns) is fixed at creation;
// name, base rate and the dynamic pricing flag can be changed later.
type Facility struct {
	ID             int64
	OwnerID        int64
	Name           string
	Floors         int
	Rows           int
	Columns        int
	Categories     []VehicleCategory
	BaseRate       float64 // стоимость часа парковки в базовой валюте
	DynamicPricing bool
	Slots          []Slot // generation order: floor, row, column

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalSlots returns the expected grid size
func (f *Facility) TotalSlots() int {
	return f.Floors * f.Rows * f.Columns
}

// FindSlot returns a pointer to the slot with the given ID, or nil
func (f *Facility) FindSlot(slotID string) *Slot {
	for i := range f.Slots {
		if f.Slots[i].ID == slotID {
			return &f.Slots[i]
		}
	}
	return nil
}

// SetSlotStatus updates the status of one slot in the in-memory grid.
// Returns false if the slot does not exist.
func (f *Facility) SetSlotStatus(slotID string, status SlotStatus) bool {
	slot := f.FindSlot(slotID)
	if slot == nil {
		return false
	}
	slot.Status = status
	return true
}

// Occupancy returns the overall occupancy ratio in [0, 1]:
// the share of slots that are not available (reserved or occupied).
func (f *Facility) Occupancy() float64 {
	if len(f.Slots) == 0 {
		return 0
	}

	taken := 0
	for i := range f.Slots {
		if f.Slots[i].Status != SlotStatusAvailable {
			taken++
		}
	}
	return float64(taken) / float64(len(f.Slots))
}

// FloorOccupancy returns the occupancy ratio of a single floor in [0, 1]
func (f *Facility) FloorOccupancy(floor int) float64 {
	total := 0
	taken := 0
	for i := range f.Slots {
		if f.Slots[i].Floor != floor {
			continue
		}
		total++
		if f.Slots[i].Status != SlotStatusAvailable {
			taken++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(taken) / float64(total)
}

// SupportsCategory returns true if the facility was configured with the category
func (f *Facility) SupportsCategory(category VehicleCategory) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// AvailableCount returns the number of available slots for a category
func (f *Facility) AvailableCount(category VehicleCategory) int {
	count := 0
	for i := range f.Slots {
		if f.Slots[i].Status == SlotStatusAvailable && f.Slots[i].Category == category {
			count++
		}
	}
	return count
}

// SlotCounts aggregated slot counters of a facility, used for list views
type SlotCounts struct {
	Total     int
	Available int
	Reserved  int
	Occupied  int
}
