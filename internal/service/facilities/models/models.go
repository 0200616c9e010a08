package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")

	// ErrInvalidCategory возвращается при некорректной категории транспорта
	ErrInvalidCategory = errors.New("invalid vehicle category")
)

// Request модели

// UpdateConfigRequest запрос на обновление параметров парковки
// Меняются только переданные поля; геометрия сетки не изменяется
type UpdateConfigRequest struct {
	UserID         int64    `json:"userId"`
	Name           *string  `json:"name,omitempty"`
	BaseRate       *float64 `json:"baseRate,omitempty"`
	DynamicPricing *bool    `json:"dynamicPricing,omitempty"`
}

// MarkSlotRequest запрос на ручное изменение статуса слота владельцем
type MarkSlotRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"` // available или occupied
}

// Response модели

// SlotResponse данные слота
type SlotResponse struct {
	ID       string `json:"id"`
	Floor    int    `json:"floor"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// SlotCountsResponse агрегаты по статусам слотов парковки
type SlotCountsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Occupied  int `json:"occupied"`
}

// FacilityResponse ответ с данными парковки и полной сеткой слотов
type FacilityResponse struct {
	ID             int64          `json:"id"`
	OwnerID        int64          `json:"ownerId"`
	Name           string         `json:"name"`
	Floors         int            `json:"floors"`
	Rows           int            `json:"rows"`
	Columns        int            `json:"columns"`
	Categories     []string       `json:"categories"`
	BaseRate       float64        `json:"baseRate"`
	DynamicPricing bool           `json:"dynamicPricing"`
	Occupancy      float64        `json:"occupancy"`
	Slots          []SlotResponse `json:"slots"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// FacilityListItem элемент списка парковок: сетка слотов заменена счётчиками
type FacilityListItem struct {
	ID             int64              `json:"id"`
	OwnerID        int64              `json:"ownerId"`
	Name           string             `json:"name"`
	Floors         int                `json:"floors"`
	Rows           int                `json:"rows"`
	Columns        int                `json:"columns"`
	Categories     []string           `json:"categories"`
	BaseRate       float64            `json:"baseRate"`
	DynamicPricing bool               `json:"dynamicPricing"`
	SlotCounts     SlotCountsResponse `json:"slotCounts"`
}

// FacilityListResponse ответ со списком парковок
type FacilityListResponse struct {
	Facilities []FacilityListItem `json:"facilities"`
}

// PriceBreakdownResponse разбивка действующего тарифа
type PriceBreakdownResponse struct {
	BaseRate            float64 `json:"baseRate"`
	OccupancyMultiplier float64 `json:"occupancyMultiplier"`
	OccupancyLabel      string  `json:"occupancyLabel,omitempty"`
	PeakMultiplier      float64 `json:"peakMultiplier"`
	PeakLabel           string  `json:"peakLabel,omitempty"`
	FinalRate           float64 `json:"finalRate"`
}

// QuoteResponse ответ с действующим тарифом парковки
type QuoteResponse struct {
	FacilityID     int64                  `json:"facilityId"`
	DynamicPricing bool                   `json:"dynamicPricing"`
	Occupancy      float64                `json:"occupancy"`
	Breakdown      PriceBreakdownResponse `json:"breakdown"`
	QuotedAt       time.Time              `json:"quotedAt"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain слот в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:       s.ID,
		Floor:    s.Floor,
		Row:      s.Row,
		Column:   s.Column,
		Category: string(s.Category),
		Status:   string(s.Status),
	}
}

// FromDomainFacility конвертирует domain модель парковки в DTO со слотами
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	slots := make([]SlotResponse, len(f.Slots))
	for i := range f.Slots {
		slots[i] = *FromDomainSlot(&f.Slots[i])
	}

	return &FacilityResponse{
		ID:             f.ID,
		OwnerID:        f.OwnerID,
		Name:           f.Name,
		Floors:         f.Floors,
		Rows:           f.Rows,
		Columns:        f.Columns,
		Categories:     categoriesToStrings(f.Categories),
		BaseRate:       f.BaseRate,
		DynamicPricing: f.DynamicPricing,
		Occupancy:      f.Occupancy(),
		Slots:          slots,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

// FromDomainFacilityList конвертирует список парковок в DTO со счётчиками слотов
func FromDomainFacilityList(facilities []*domain.Facility, counts map[int64]domain.SlotCounts) *FacilityListResponse {
	resp := &FacilityListResponse{
		Facilities: make([]FacilityListItem, 0, len(facilities)),
	}

	for _, f := range facilities {
		c := counts[f.ID]
		resp.Facilities = append(resp.Facilities, FacilityListItem{
			ID:             f.ID,
			OwnerID:        f.OwnerID,
			Name:           f.Name,
			Floors:         f.Floors,
			Rows:           f.Rows,
			Columns:        f.Columns,
			Categories:     categoriesToStrings(f.Categories),
			BaseRate:       f.BaseRate,
			DynamicPricing: f.DynamicPricing,
			SlotCounts: SlotCountsResponse{
				Total:     c.Total,
				Available: c.Available,
				Reserved:  c.Reserved,
				Occupied:  c.Occupied,
			},
		})
	}

	return resp
}

// FromDomainBreakdown конвертирует разбивку тарифа в DTO
func FromDomainBreakdown(b domain.PriceBreakdown) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BaseRate:            b.BaseRate,
		OccupancyMultiplier: b.OccupancyMultiplier,
		OccupancyLabel:      b.OccupancyLabel,
		PeakMultiplier:      b.PeakMultiplier,
		PeakLabel:           b.PeakLabel,
		FinalRate:           b.FinalRate,
	}
}

// NewQuoteResponse собирает ответ котировки тарифа
func NewQuoteResponse(f *domain.Facility, breakdown domain.PriceBreakdown, quotedAt time.Time) *QuoteResponse {
	return &QuoteResponse{
		FacilityID:     f.ID,
		DynamicPricing: f.DynamicPricing,
		Occupancy:      f.Occupancy(),
		Breakdown:      FromDomainBreakdown(breakdown),
		QuotedAt:       quotedAt,
	}
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)
	if !domain.ValidSlotStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainCategory конвертирует строку в domain.VehicleCategory с валидацией
func ToDomainCategory(category string) (domain.VehicleCategory, error) {
	c := domain.VehicleCategory(category)
	if !domain.ValidVehicleCategory(c) {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func categoriesToStrings(categories []domain.VehicleCategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}
