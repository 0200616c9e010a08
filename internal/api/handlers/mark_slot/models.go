package mark_slot

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/facilities/models"
)

// MarkSlotRequest HTTP модель запроса на ручное изменение статуса слота
type MarkSlotRequest struct {
	Status string `json:"status"` // available или occupied
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *MarkSlotRequest) ToServiceRequest(userID int64) *models.MarkSlotRequest {
	return &models.MarkSlotRequest{
		UserID: userID,
		Status: r.Status,
	}
}
