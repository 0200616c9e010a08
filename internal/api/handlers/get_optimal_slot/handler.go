package get_optimal_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/facilities"
)

const (
	msgInvalidFacilityID    = "некорректный ID парковки"
	msgMissingCategory      = "не указана категория транспорта"
	msgInvalidCategory      = "некорректная категория транспорта"
	msgFacilityNotFound     = "парковка не найдена"
	msgCategoryNotSupported = "парковка не обслуживает эту категорию транспорта"
	msgNoSlotAvailable      = "нет свободных слотов для этой категории"
)

type Handler struct {
	service FacilityService
	logger  Logger
}

func NewHandler(service FacilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/optimal-slot
// Query params: category (обязательно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId из URL
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/optimal-slot - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// Категория обязательна: без неё подбор не имеет смысла
	category := r.URL.Query().Get("category")
	if category == "" {
		h.logger.Warn("GET /facilities/{id}/optimal-slot - Missing category: facility_id=%d", facilityID)
		handlers.RespondBadRequest(w, msgMissingCategory)
		return
	}

	// Подбираем оптимальный слот
	result, err := h.service.OptimalSlot(r.Context(), facilityID, category)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/{id}/optimal-slot - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrCategoryNotSupported):
			h.logger.Warn("GET /facilities/{id}/optimal-slot - Category not supported: facility_id=%d, category=%s",
				facilityID, category)
			handlers.RespondBadRequest(w, msgCategoryNotSupported)

		case errors.Is(err, facilities.ErrNoSlotAvailable):
			h.logger.Warn("GET /facilities/{id}/optimal-slot - No slot available: facility_id=%d, category=%s",
				facilityID, category)
			handlers.RespondNotFound(w, msgNoSlotAvailable)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("GET /facilities/{id}/optimal-slot - Invalid category: facility_id=%d, category=%s",
				facilityID, category)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		default:
			h.logger.Error("GET /facilities/{id}/optimal-slot - Failed to pick slot: facility_id=%d, error=%v",
				facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/optimal-slot - Slot picked successfully: facility_id=%d, slot_id=%s",
		facilityID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
