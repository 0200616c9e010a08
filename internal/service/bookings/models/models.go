package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID  int64   `json:"userId"`
	ActorID int64   `json:"actorId"`
	Status  *string `json:"status,omitempty"`
}

// GetFacilityBookingsRequest запрос на получение бронирований парковки
type GetFacilityBookingsRequest struct {
	UserID          int64      `json:"userId"`
	FacilityID      int64      `json:"facilityId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityBookingsRequest) ToDomainFilter() (domain.FacilityBookingsFilter, error) {
	filter := domain.FacilityBookingsFilter{
		FacilityID:      r.FacilityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PriceBreakdownResponse разбивка тарифа, снятая при создании бронирования
type PriceBreakdownResponse struct {
	BaseRate            float64 `json:"baseRate"`
	OccupancyMultiplier float64 `json:"occupancyMultiplier"`
	OccupancyLabel      string  `json:"occupancyLabel,omitempty"`
	PeakMultiplier      float64 `json:"peakMultiplier"`
	PeakLabel           string  `json:"peakLabel,omitempty"`
	FinalRate           float64 `json:"finalRate"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customerId"`
	FacilityID      int64      `json:"facilityId"`
	SlotID          string     `json:"slotId"`
	VehicleCategory string     `json:"vehicleCategory"`
	VehiclePlate    *string    `json:"vehiclePlate,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"paymentStatus"`
	PaymentRef      *string    `json:"paymentRef,omitempty"`

	// Снимок тарифа на момент создания
	RateSnapshot float64                `json:"rateSnapshot"`
	Pricing      PriceBreakdownResponse `json:"pricing"`

	DurationMinutes int     `json:"durationMinutes"`
	TotalAmount     float64 `json:"totalAmount"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		FacilityID:      b.FacilityID,
		SlotID:          b.SlotID,
		VehicleCategory: string(b.VehicleCategory),
		VehiclePlate:    b.VehiclePlate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentRef:      b.PaymentRef,
		RateSnapshot:    b.RateSnapshot,
		Pricing: PriceBreakdownResponse{
			BaseRate:            b.Pricing.BaseRate,
			OccupancyMultiplier: b.Pricing.OccupancyMultiplier,
			OccupancyLabel:      b.Pricing.OccupancyLabel,
			PeakMultiplier:      b.Pricing.PeakMultiplier,
			PeakLabel:           b.Pricing.PeakLabel,
			FinalRate:           b.Pricing.FinalRate,
		},
		DurationMinutes:    b.DurationMinutes,
		TotalAmount:        b.TotalAmount,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
