package domain

// Slot allocation scoring weights
const (
	WeightDistance      = 0.5
	WeightOccupancy     = 0.3
	WeightAccessibility = 0.2
)

// Occupancy pricing tiers. Exactly one tier applies per quote:
// occupancy above the high threshold wins, then at or above moderate,
// then below low; the [0.4, 0.5) band keeps the base rate.
const (
	HighDemandThreshold     = 0.8
	ModerateDemandThreshold = 0.5
	LowDemandThreshold      = 0.4

	HighDemandMultiplier     = 1.5
	ModerateDemandMultiplier = 1.2
	LowDemandMultiplier      = 0.8

	HighDemandLabel     = "High demand"
	ModerateDemandLabel = "Moderate demand"
	LowDemandLabel      = "Low demand"
)

// Peak hour pricing: applied when the quote hour of day falls into
// [PeakHourStart, PeakHourEnd], bounds inclusive
const (
	PeakHourStart  = 18
	PeakHourEnd    = 22
	PeakMultiplier = 1.2
	PeakLabel      = "Peak hours"
)

// Facility geometry bounds. Rows map to letters in slot IDs, so A-Z
// caps the row count at 26.
const (
	MinFloors  = 1
	MaxFloors  = 10
	MinRows    = 1
	MaxRows    = 26
	MinColumns = 1
	MaxColumns = 50
)

// Business validation constants
const (
	MinBaseRate                 = 0.01
	MaxBaseRate                 = 100000
	MaxFacilityNameLength       = 200
	MaxCancellationReasonLength = 500
)

// DateFormat is the wire format for date-only query parameters.
const DateFormat = "2006-01-02"

// DefaultCategories is the slot category mix used when a facility does not
// specify its own.
var DefaultCategories = []VehicleCategory{CategoryCar, CategoryBike, CategoryEV}

// InactiveStatuses lists booking statuses excluded from facility booking
// listings unless explicitly requested.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
