package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		facilityRepo: facilityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования.
// Деньги не списываются: длительность и сумма остаются нулевыми.
// Перевод в терминальный статус и освобождение слота выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права доступа
		if err := uc.checkAccess(txCtx, booking, req.UserID); err != nil {
			return err
		}

		// 3.3. Отменить можно только активное бронирование
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s",
				booking.ID, booking.Status)
			return ErrInvalidStateTransition
		}

		// 3.4. Переводим бронирование в терминальный статус через CAS
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrStateConflict) {
				uc.logger.Warn("CancelBooking: booking id=%d is no longer active", booking.ID)
				return ErrInvalidStateTransition
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 3.5. Освобождаем слот
		if err := uc.facilityRepo.ReleaseSlot(txCtx, booking.FacilityID, booking.SlotID); err != nil {
			uc.logger.Error("CancelBooking: failed to release slot %s at facility id=%d: %v",
				booking.SlotID, booking.FacilityID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", req.BookingID)
	return nil
}

// Вспомогательные методы

// checkAccess проверяет, что пользователь может отменить бронирование.
// Отмена доступна клиенту бронирования и владельцу парковки
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}

	ownerID, err := uc.facilityRepo.GetOwnerID(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CancelBooking: facility id=%d not found during access check", booking.FacilityID)
			return ErrAccessDenied
		}
		uc.logger.Error("CancelBooking: failed to check facility owner: %v", err)
		return fmt.Errorf("%w: failed to check facility owner: %v", ErrInternal, err)
	}

	if ownerID != userID {
		uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", userID, booking.ID)
		return ErrAccessDenied
	}

	return nil
}
