package complete_booking

import (
	"fmt"
	"math"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	return nil
}

// billableMinutes возвращает оплачиваемую длительность парковки в минутах.
// Начатая минута округляется вверх, минимум одна минута
func billableMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 1
	}

	minutes := int(math.Ceil(elapsed.Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
