package complete_booking

import (
	"time"

	completeBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/complete_booking"
)

// PricingResponse разбивка ставки в HTTP ответе
type PricingResponse struct {
	BaseRate            float64 `json:"baseRate"`
	OccupancyMultiplier float64 `json:"occupancyMultiplier"`
	OccupancyLabel      string  `json:"occupancyLabel,omitempty"`
	PeakMultiplier      float64 `json:"peakMultiplier"`
	PeakLabel           string  `json:"peakLabel,omitempty"`
	FinalRate           float64 `json:"finalRate"`
}

// CompleteBookingResponse HTTP модель ответа с завершенным бронированием (чек)
type CompleteBookingResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	FacilityID      int64           `json:"facilityId"`
	SlotID          string          `json:"slotId"`
	VehicleCategory string          `json:"vehicleCategory"`
	VehiclePlate    *string         `json:"vehiclePlate,omitempty"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentRef      string          `json:"paymentRef"`
	RateSnapshot    float64         `json:"rateSnapshot"`
	Pricing         PricingResponse `json:"pricing"`
	DurationMinutes int             `json:"durationMinutes"`
	TotalAmount     float64         `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *completeBooking.Response) *CompleteBookingResponse {
	return &CompleteBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		FacilityID:      resp.FacilityID,
		SlotID:          resp.SlotID,
		VehicleCategory: resp.VehicleCategory,
		VehiclePlate:    resp.VehiclePlate,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		PaymentRef:      resp.PaymentRef,
		RateSnapshot:    resp.RateSnapshot,
		Pricing: PricingResponse{
			BaseRate:            resp.Pricing.BaseRate,
			OccupancyMultiplier: resp.Pricing.OccupancyMultiplier,
			OccupancyLabel:      resp.Pricing.OccupancyLabel,
			PeakMultiplier:      resp.Pricing.PeakMultiplier,
			PeakLabel:           resp.Pricing.PeakLabel,
			FinalRate:           resp.Pricing.FinalRate,
		},
		DurationMinutes: resp.DurationMinutes,
		TotalAmount:     resp.TotalAmount,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
