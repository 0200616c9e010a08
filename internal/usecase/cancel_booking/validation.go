package cancel_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CancellationReason != nil {
		reason := strings.TrimSpace(*req.CancellationReason)
		if reason == "" {
			return fmt.Errorf("%w: cancellationReason must not be empty", ErrInvalidInput)
		}
		if len(reason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: cancellationReason must not exceed %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	return nil
}
