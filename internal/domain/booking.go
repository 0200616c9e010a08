package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Booking represents a parking booking.
// The rate and its breakdown are snapshotted at creation time: the amount
// settled at completion is computed from RateSnapshot, never re-quoted.
type Booking struct {
	ID              int64
	CustomerID      int64
	FacilityID      int64
	SlotID          string
	VehicleCategory VehicleCategory
	VehiclePlate    *string // денормализованный номер из UserService, может отсутствовать

	StartTime time.Time
	EndTime   *time.Time // nil, пока бронирование активно

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentRef    *string // назначается при завершении

	RateSnapshot float64 // итоговая ставка за час на момент создания
	Pricing      PriceBreakdown

	DurationMinutes int     // 0 until the booking is completed
	TotalAmount     float64 // 0 until the booking is completed

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is still active
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCompleted returns true if the booking can be completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// FacilityBookingsFilter фильтр для получения бронирований парковки
type FacilityBookingsFilter struct {
	FacilityID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
