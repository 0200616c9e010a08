package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP модель запроса на отмену бронирования
// Тело запроса опционально: отмена возможна и без указания причины
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, userID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID:          bookingID,
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
