package domain

import "math"

// PriceBreakdown is the result of a rate quote: the base rate and the
// multipliers that were applied to it. Labels are empty when the
// corresponding multiplier is neutral.
type PriceBreakdown struct {
	BaseRate            float64 `json:"baseRate"`
	OccupancyMultiplier float64 `json:"occupancyMultiplier"`
	OccupancyLabel      string  `json:"occupancyLabel,omitempty"`
	PeakMultiplier      float64 `json:"peakMultiplier"`
	PeakLabel           string  `json:"peakLabel,omitempty"`
	FinalRate           float64 `json:"finalRate"`
}

// RoundMoney rounds a monetary amount to 2 decimal places, half up
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
