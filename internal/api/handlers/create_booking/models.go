package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP модель запроса на создание бронирования
// ID пользователя приходит не в теле, а через заголовок X-User-ID
type CreateBookingRequest struct {
	FacilityID      int64   `json:"facilityId"`
	SlotID          *string `json:"slotId,omitempty"`
	VehicleCategory *string `json:"vehicleCategory,omitempty"`
	VehiclePlate    *string `json:"vehiclePlate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) *createBooking.Request {
	return &createBooking.Request{
		CustomerID:      customerID,
		FacilityID:      r.FacilityID,
		SlotID:          r.SlotID,
		VehicleCategory: r.VehicleCategory,
		VehiclePlate:    r.VehiclePlate,
	}
}

// PricingResponse разбивка ставки в HTTP ответе
type PricingResponse struct {
	BaseRate            float64 `json:"baseRate"`
	OccupancyMultiplier float64 `json:"occupancyMultiplier"`
	OccupancyLabel      string  `json:"occupancyLabel,omitempty"`
	PeakMultiplier      float64 `json:"peakMultiplier"`
	PeakLabel           string  `json:"peakLabel,omitempty"`
	FinalRate           float64 `json:"finalRate"`
}

// CreateBookingResponse HTTP модель ответа с созданным бронированием
type CreateBookingResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	FacilityID      int64           `json:"facilityId"`
	SlotID          string          `json:"slotId"`
	VehicleCategory string          `json:"vehicleCategory"`
	VehiclePlate    *string         `json:"vehiclePlate,omitempty"`
	StartTime       time.Time       `json:"startTime"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"paymentStatus"`
	RateSnapshot    float64         `json:"rateSnapshot"`
	Pricing         PricingResponse `json:"pricing"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		FacilityID:      resp.FacilityID,
		SlotID:          resp.SlotID,
		VehicleCategory: resp.VehicleCategory,
		VehiclePlate:    resp.VehiclePlate,
		StartTime:       resp.StartTime,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		RateSnapshot:    resp.RateSnapshot,
		Pricing: PricingResponse{
			BaseRate:            resp.Pricing.BaseRate,
			OccupancyMultiplier: resp.Pricing.OccupancyMultiplier,
			OccupancyLabel:      resp.Pricing.OccupancyLabel,
			PeakMultiplier:      resp.Pricing.PeakMultiplier,
			PeakLabel:           resp.Pricing.PeakLabel,
			FinalRate:           resp.Pricing.FinalRate,
		},
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}
