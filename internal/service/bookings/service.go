package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
// Создание, завершение и отмена живут в отдельных use case:
// им нужны транзакции и работа со слотами
type Service struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видит его автор или владелец парковки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только собственную историю
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.ActorID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.ActorID, req.UserID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetFacilityBookings получает бронирования парковки с гибкой фильтрацией
// Доступно только владельцу парковки
//
// Примеры использования:
// - Вся активная история: GetFacilityBookings(ctx, &GetFacilityBookingsRequest{FacilityID: 123, UserID: 456})
// - Бронирования за период: указать StartDate и EndDate
// - Только завершённые: указать Status = "completed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetFacilityBookings(ctx context.Context, req *models.GetFacilityBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetFacilityBookings: fetching bookings for facility=%d, user=%d", req.FacilityID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.FacilityID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetFacilityBookings: invalid filter for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByFacilityWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetFacilityBookings: repository error for facility=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: GetFacilityBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFacilityBookings: successfully fetched %d bookings for facility=%d", len(bookings), req.FacilityID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkBookingAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у автора бронирования и у владельца парковки
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь автор бронирования - доступ разрешён
	if booking.CustomerID == userID {
		return nil
	}

	// Проверяем, является ли пользователь владельцем парковки
	if err := s.checkOwnerAccess(ctx, booking.FacilityID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем парковки
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID int64, userID int64) error {
	ownerID, err := s.facilityRepo.GetOwnerID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("checkOwnerAccess: facility id=%d not found", facilityID)
			return ErrFacilityNotFound
		}
		s.logger.Error("checkOwnerAccess: repository error for facility id=%d: %v", facilityID, err)
		return fmt.Errorf("%w: checkOwnerAccess - repository error: %v", ErrInternal, err)
	}

	if ownerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of facility=%d", userID, facilityID)
		return ErrAccessDenied
	}

	return nil
}
