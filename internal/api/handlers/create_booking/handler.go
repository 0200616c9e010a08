package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgFacilityNotFound     = "парковка не найдена"
	msgCategoryNotSupported = "парковка не обслуживает эту категорию транспорта"
	msgCategoryRequired     = "не указана категория транспорта"
	msgSlotNotAvailable     = "выбранный слот недоступен"
	msgNoSlotAvailable      = "нет свободных слотов для этой категории"
	msgDuplicateBooking     = "у пользователя уже есть активное бронирование"
	msgInvalidInput         = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createBooking.ErrCategoryNotSupported):
			h.logger.Warn("POST /bookings - Category not supported: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgCategoryNotSupported)

		case errors.Is(err, createBooking.ErrCategoryRequired):
			h.logger.Warn("POST /bookings - Vehicle category required: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgCategoryRequired)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrNoSlotAvailable):
			h.logger.Warn("POST /bookings - No slot available: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondError(w, http.StatusConflict, msgNoSlotAvailable)

		case errors.Is(err, createBooking.ErrDuplicateActiveBooking):
			h.logger.Warn("POST /bookings - Duplicate active booking: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, facility_id=%d, slot_id=%s",
		result.ID, userID, req.FacilityID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
