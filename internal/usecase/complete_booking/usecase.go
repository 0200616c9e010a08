package complete_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
)

// UseCase use case для завершения бронирования
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

// Execute выполняет use case завершения бронирования.
// Сумма считается по ставке, зафиксированной при создании; перевод в терминальный
// статус и освобождение слота выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CompleteBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CompleteBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права доступа
		if err := uc.checkAccess(txCtx, booking, req.UserID); err != nil {
			return err
		}

		// 3.3. Завершить можно только активное бронирование
		if !booking.CanBeCompleted() {
			uc.logger.Warn("CompleteBooking: booking id=%d cannot be completed, status=%s",
				booking.ID, booking.Status)
			return ErrInvalidStateTransition
		}

		// 3.4. Длительность и сумма по зафиксированной ставке
		durationMinutes := billableMinutes(booking.StartTime, now)
		totalAmount := domain.RoundMoney(booking.RateSnapshot * float64(durationMinutes) / 60.0)
		paymentRef := uuid.NewString()

		uc.logger.Info("CompleteBooking: booking id=%d, duration=%d min, total=%.2f (rate=%.2f)",
			booking.ID, durationMinutes, totalAmount, booking.RateSnapshot)

		// 3.5. Переводим бронирование в терминальный статус через CAS
		if err := uc.bookingRepo.Complete(txCtx, booking.ID, now, durationMinutes, totalAmount, paymentRef); err != nil {
			if errors.Is(err, bookingRepo.ErrStateConflict) {
				uc.logger.Warn("CompleteBooking: booking id=%d is no longer active", booking.ID)
				return ErrInvalidStateTransition
			}
			uc.logger.Error("CompleteBooking: failed to complete booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to complete booking: %v", ErrInternal, err)
		}

		// 3.6. Освобождаем слот
		if err := uc.facilityRepo.ReleaseSlot(txCtx, booking.FacilityID, booking.SlotID); err != nil {
			uc.logger.Error("CompleteBooking: failed to release slot %s at facility id=%d: %v",
				booking.SlotID, booking.FacilityID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		// Заполняем терминальные поля для ответа
		booking.Status = domain.StatusCompleted
		booking.PaymentStatus = domain.PaymentPaid
		booking.PaymentRef = &paymentRef
		booking.EndTime = &now
		booking.DurationMinutes = durationMinutes
		booking.TotalAmount = totalAmount
		booking.UpdatedAt = now

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompleteBooking: successfully completed booking id=%d, total=%.2f",
		result.ID, result.TotalAmount)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		FacilityID:      result.FacilityID,
		SlotID:          result.SlotID,
		VehicleCategory: string(result.VehicleCategory),
		VehiclePlate:    result.VehiclePlate,
		StartTime:       result.StartTime,
		EndTime:         *result.EndTime,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		PaymentRef:      *result.PaymentRef,
		RateSnapshot:    result.RateSnapshot,
		Pricing: Breakdown{
			BaseRate:            result.Pricing.BaseRate,
			OccupancyMultiplier: result.Pricing.OccupancyMultiplier,
			OccupancyLabel:      result.Pricing.OccupancyLabel,
			PeakMultiplier:      result.Pricing.PeakMultiplier,
			PeakLabel:           result.Pricing.PeakLabel,
			FinalRate:           result.Pricing.FinalRate,
		},
		DurationMinutes: result.DurationMinutes,
		TotalAmount:     result.TotalAmount,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// Вспомогательные методы

// checkAccess проверяет, что пользователь может завершить бронирование.
// Завершение доступно клиенту бронирования и владельцу парковки
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}

	ownerID, err := uc.facilityRepo.GetOwnerID(ctx, booking.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("CompleteBooking: facility id=%d not found during access check", booking.FacilityID)
			return ErrAccessDenied
		}
		uc.logger.Error("CompleteBooking: failed to check facility owner: %v", err)
		return fmt.Errorf("%w: failed to check facility owner: %v", ErrInternal, err)
	}

	if ownerID != userID {
		uc.logger.Warn("CompleteBooking: access denied for user=%d to booking id=%d", userID, booking.ID)
		return ErrAccessDenied
	}

	return nil
}
