package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocation"
)

// UseCase use case для создания бронирования
type UseCase struct {
	facilityRepo FacilityRepository
	bookingRepo  BookingRepository
	userClient   UserServiceClient
	allocator    AllocationEngine
	pricing      PricingEngine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	facilityRepo FacilityRepository,
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	allocator AllocationEngine,
	pricing PricingEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
		userClient:   userClient,
		allocator:    allocator,
		pricing:      pricing,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, facility=%d, explicit_slot=%t",
		req.CustomerID, req.FacilityID, req.SlotID != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем выбранный транспорт пользователя.
	// UserService не является критичной зависимостью: при его недоступности
	// или отсутствии выбранного транспорта данные берутся из запроса
	vehicle, err := uc.userClient.GetSelectedVehicleWithGracefulDegradation(ctx, req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrVehicleNotFound):
			uc.logger.Info("CreateBooking: customer id=%d has no selected vehicle", req.CustomerID)
		case errors.Is(err, userservice.ErrServiceDegraded):
			uc.logger.Warn("CreateBooking: user service degraded, using request data: %v", err)
		default:
			uc.logger.Error("CreateBooking: failed to get selected vehicle for customer id=%d: %v", req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get selected vehicle: %v", ErrInternal, err)
		}
		vehicle = nil
	}

	// 4. Определяем категорию и госномер транспорта
	category, plate, err := resolveVehicle(req, vehicle)
	if err != nil {
		uc.logger.Warn("CreateBooking: vehicle resolution failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: resolved vehicle category=%s, plate_set=%t", category, plate != nil)

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем парковку со слотами с блокировкой (FOR UPDATE)
		facility, err := uc.facilityRepo.GetByID(txCtx, req.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				uc.logger.Warn("CreateBooking: facility id=%d not found", req.FacilityID)
				return ErrFacilityNotFound
			}
			uc.logger.Error("CreateBooking: failed to get facility id=%d: %v", req.FacilityID, err)
			return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
		}

		// 5.2. Проверяем, что парковка принимает категорию транспорта
		if !facility.SupportsCategory(category) {
			uc.logger.Warn("CreateBooking: category %s is not supported by facility id=%d", category, facility.ID)
			return ErrCategoryNotSupported
		}

		// 5.3. Одно активное бронирование на пользователя и парковку
		hasActive, err := uc.bookingRepo.HasActiveBooking(txCtx, req.CustomerID, req.FacilityID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check active bookings: %v", err)
			return fmt.Errorf("%w: failed to check active bookings: %v", ErrInternal, err)
		}
		if hasActive {
			uc.logger.Warn("CreateBooking: customer id=%d already has an active booking at facility id=%d",
				req.CustomerID, req.FacilityID)
			return ErrDuplicateActiveBooking
		}

		// 5.4. Выбираем слот: явно запрошенный или оптимальный по score
		var slot domain.Slot
		if req.SlotID != nil {
			found := facility.FindSlot(*req.SlotID)
			if found == nil {
				uc.logger.Warn("CreateBooking: slot %s not found in facility id=%d", *req.SlotID, facility.ID)
				return ErrSlotNotAvailable
			}
			if !found.IsAvailable() || !found.Accepts(category) {
				uc.logger.Warn("CreateBooking: slot %s is not available for category %s", *req.SlotID, category)
				return ErrSlotNotAvailable
			}
			slot = *found
		} else {
			optimal, err := uc.allocator.FindOptimal(facility, category)
			if err != nil {
				if errors.Is(err, allocation.ErrNoSlotAvailable) {
					uc.logger.Warn("CreateBooking: no available slot for category %s in facility id=%d",
						category, facility.ID)
					return ErrNoSlotAvailable
				}
				uc.logger.Error("CreateBooking: slot allocation failed: %v", err)
				return fmt.Errorf("%w: slot allocation failed: %v", ErrInternal, err)
			}
			slot = optimal
		}

		// 5.5. Резервируем слот через CAS-обновление статуса
		if err := uc.facilityRepo.ReserveSlot(txCtx, facility.ID, slot.ID); err != nil {
			if errors.Is(err, facilityRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently", slot.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slot %s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 5.6. Считаем ставку. Резервация отражается в снимке парковки,
		// чтобы котировка учитывала собственное бронирование
		facility.SetSlotStatus(slot.ID, domain.SlotStatusReserved)
		breakdown := uc.pricing.Quote(facility, now)

		uc.logger.Info("CreateBooking: slot=%s, rate=%.2f (base=%.2f, occupancy=%.2f, peak=%.2f)",
			slot.ID, breakdown.FinalRate, breakdown.BaseRate, breakdown.OccupancyMultiplier, breakdown.PeakMultiplier)

		// 5.7. Создаем бронирование со снимком ставки
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			FacilityID:      facility.ID,
			SlotID:          slot.ID,
			VehicleCategory: category,
			VehiclePlate:    plate,
			StartTime:       now,
			Status:          domain.StatusActive,
			PaymentStatus:   domain.PaymentPending,
			RateSnapshot:    breakdown.FinalRate,
			Pricing:         breakdown,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateActiveBooking) {
				uc.logger.Warn("CreateBooking: duplicate active booking detected on insert for customer id=%d",
					req.CustomerID)
				return ErrDuplicateActiveBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, slot=%s, rate=%.2f",
		result.ID, result.SlotID, result.RateSnapshot)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		FacilityID:      result.FacilityID,
		SlotID:          result.SlotID,
		VehicleCategory: string(result.VehicleCategory),
		VehiclePlate:    result.VehiclePlate,
		StartTime:       result.StartTime,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		RateSnapshot:    result.RateSnapshot,
		Pricing: Breakdown{
			BaseRate:            result.Pricing.BaseRate,
			OccupancyMultiplier: result.Pricing.OccupancyMultiplier,
			OccupancyLabel:      result.Pricing.OccupancyLabel,
			PeakMultiplier:      result.Pricing.PeakMultiplier,
			PeakLabel:           result.Pricing.PeakLabel,
			FinalRate:           result.Pricing.FinalRate,
		},
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}
