package mark_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/facilities"
)

const (
	msgInvalidFacilityID  = "некорректный ID парковки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgFacilityNotFound   = "парковка не найдена"
	msgSlotNotFound       = "слот не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotHasBooking     = "слот занят активным бронированием"
	msgSlotStateConflict  = "статус слота изменился, повторите запрос"
	msgInvalidInput       = "некорректный статус слота"
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

// Handle PATCH /api/v1/facilities/{facilityId}/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем facilityId и slotId из URL
	vars := mux.Vars(r)
	facilityID, err := strconv.ParseInt(vars["facilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}
	slotID := vars["slotId"]

	var req MarkSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Меняем статус слота (сервис сам проверит права владельца)
	result, err := h.service.MarkSlot(r.Context(), facilityID, slotID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrFacilityNotFound):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Facility not found: facility_id=%d", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, facilities.ErrSlotNotFound):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Slot not found: facility_id=%d, slot_id=%s",
				facilityID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, facilities.ErrAccessDenied):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Access denied: facility_id=%d, user_id=%d",
				facilityID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, facilities.ErrSlotHasActiveBooking):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Slot has active booking: facility_id=%d, slot_id=%s",
				facilityID, slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotHasBooking)

		case errors.Is(err, facilities.ErrSlotStateConflict):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Slot state conflict: facility_id=%d, slot_id=%s",
				facilityID, slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotStateConflict)

		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("PATCH /facilities/{id}/slots/{slotId} - Invalid input: facility_id=%d, slot_id=%s, error=%v",
				facilityID, slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /facilities/{id}/slots/{slotId} - Failed to mark slot: facility_id=%d, slot_id=%s, error=%v",
				facilityID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /facilities/{id}/slots/{slotId} - Slot marked successfully: facility_id=%d, slot_id=%s, status=%s",
		facilityID, slotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
