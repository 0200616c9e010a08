package create_facility

import (
	"time"

	createFacility "github.com/m04kA/SMC-ParkingService/internal/usecase/create_facility"
)

// CreateFacilityRequest HTTP модель запроса на создание парковки
// ID владельца приходит не в теле, а через заголовок X-User-ID
type CreateFacilityRequest struct {
	Name           string   `json:"name"`
	Floors         int      `json:"floors"`
	Rows           int      `json:"rows"`
	Columns        int      `json:"columns"`
	Categories     []string `json:"categories,omitempty"`
	BaseRate       float64  `json:"baseRate"`
	DynamicPricing *bool    `json:"dynamicPricing,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateFacilityRequest) ToUseCaseRequest(ownerID int64) *createFacility.Request {
	return &createFacility.Request{
		OwnerID:        ownerID,
		Name:           r.Name,
		Floors:         r.Floors,
		Rows:           r.Rows,
		Columns:        r.Columns,
		Categories:     r.Categories,
		BaseRate:       r.BaseRate,
		DynamicPricing: r.DynamicPricing,
	}
}

// CreateFacilityResponse HTTP модель ответа с созданной парковкой
type CreateFacilityResponse struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"ownerId"`
	Name           string    `json:"name"`
	Floors         int       `json:"floors"`
	Rows           int       `json:"rows"`
	Columns        int       `json:"columns"`
	Categories     []string  `json:"categories"`
	BaseRate       float64   `json:"baseRate"`
	DynamicPricing bool      `json:"dynamicPricing"`
	TotalSlots     int       `json:"totalSlots"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createFacility.Response) *CreateFacilityResponse {
	return &CreateFacilityResponse{
		ID:             resp.ID,
		OwnerID:        resp.OwnerID,
		Name:           resp.Name,
		Floors:         resp.Floors,
		Rows:           resp.Rows,
		Columns:        resp.Columns,
		Categories:     resp.Categories,
		BaseRate:       resp.BaseRate,
		DynamicPricing: resp.DynamicPricing,
		TotalSlots:     resp.TotalSlots,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
