package update_facility_config

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/facilities/models"
)

// UpdateFacilityConfigRequest HTTP модель запроса на обновление параметров парковки
// Меняются только переданные поля; геометрия сетки не изменяется
type UpdateFacilityConfigRequest struct {
	Name           *string  `json:"name,omitempty"`
	BaseRate       *float64 `json:"baseRate,omitempty"`
	DynamicPricing *bool    `json:"dynamicPricing,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateFacilityConfigRequest) ToServiceRequest(userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:         userID,
		Name:           r.Name,
		BaseRate:       r.BaseRate,
		DynamicPricing: r.DynamicPricing,
	}
}
