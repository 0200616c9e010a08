package facilities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/internal/service/allocation"
	"github.com/m04kA/SMC-ParkingService/internal/service/facilities/models"
)

// Service сервис для работы с парковками
type Service struct {
	facilityRepo     FacilityRepository
	allocationEngine AllocationEngine
	pricingEngine    PricingEngine
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(
	facilityRepo FacilityRepository,
	allocationEngine AllocationEngine,
	pricingEngine PricingEngine,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		facilityRepo:     facilityRepo,
		allocationEngine: allocationEngine,
		pricingEngine:    pricingEngine,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// GetByID получает парковку по ID вместе с сеткой слотов
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	s.logger.Info("GetByID: fetching facility id=%d", id)

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched facility id=%d with %d slots", id, len(facility.Slots))
	return models.FromDomainFacility(facility), nil
}

// List получает список всех парковок со счётчиками слотов вместо полной сетки
func (s *Service) List(ctx context.Context) (*models.FacilityListResponse, error) {
	s.logger.Info("List: fetching facilities")

	facilities, err := s.facilityRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	facilityIDs := make([]int64, len(facilities))
	for i, f := range facilities {
		facilityIDs[i] = f.ID
	}

	counts, err := s.facilityRepo.GetSlotCounts(ctx, facilityIDs)
	if err != nil {
		s.logger.Error("List: failed to get slot counts: %v", err)
		return nil, fmt.Errorf("%w: List - failed to get slot counts: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d facilities", len(facilities))
	return models.FromDomainFacilityList(facilities, counts), nil
}

// Quote вычисляет действующий часовой тариф парковки на текущий момент
// Разбивка пересчитывается на каждый запрос и нигде не сохраняется
func (s *Service) Quote(ctx context.Context, facilityID int64) (*models.QuoteResponse, error) {
	s.logger.Info("Quote: pricing facility id=%d", facilityID)

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Quote: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Quote: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: Quote - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	breakdown := s.pricingEngine.Quote(facility, now)

	s.logger.Info("Quote: facility id=%d rate %.2f -> %.2f (occupancy=%.2f)",
		facilityID, breakdown.BaseRate, breakdown.FinalRate, facility.Occupancy())
	return models.NewQuoteResponse(facility, breakdown, now), nil
}

// OptimalSlot подбирает лучший свободный слот для категории транспорта
// Слот не резервируется: это витринная операция, резервирует только создание бронирования
func (s *Service) OptimalSlot(ctx context.Context, facilityID int64, category string) (*models.SlotResponse, error) {
	s.logger.Info("OptimalSlot: searching facility id=%d for category=%s", facilityID, category)

	domainCategory, err := models.ToDomainCategory(category)
	if err != nil {
		s.logger.Warn("OptimalSlot: invalid category=%s", category)
		return nil, fmt.Errorf("%w: invalid category", ErrInvalidInput)
	}

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("OptimalSlot: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("OptimalSlot: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: OptimalSlot - repository error: %v", ErrInternal, err)
	}

	if !facility.SupportsCategory(domainCategory) {
		s.logger.Warn("OptimalSlot: facility id=%d does not support category=%s", facilityID, category)
		return nil, ErrCategoryNotSupported
	}

	slot, err := s.allocationEngine.FindOptimal(facility, domainCategory)
	if err != nil {
		if errors.Is(err, allocation.ErrNoSlotAvailable) {
			s.logger.Warn("OptimalSlot: no available slot for category=%s at facility id=%d", category, facilityID)
			return nil, ErrNoSlotAvailable
		}
		s.logger.Error("OptimalSlot: allocation error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: OptimalSlot - allocation error: %v", ErrInternal, err)
	}

	s.logger.Info("OptimalSlot: selected slot %s at facility id=%d", slot.ID, facilityID)
	return models.FromDomainSlot(&slot), nil
}

// UpdateConfig обновляет изменяемые параметры парковки
// Доступно только владельцу; геометрия сетки после создания не меняется
func (s *Service) UpdateConfig(ctx context.Context, facilityID int64, req *models.UpdateConfigRequest) (*models.FacilityResponse, error) {
	s.logger.Info("UpdateConfig: updating facility id=%d by user=%d", facilityID, req.UserID)

	// 1. Валидация входных данных
	if err := validateUpdateConfig(req); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for facility id=%d: %v", facilityID, err)
		return nil, err
	}

	// 2. Проверяем права доступа (только владелец)
	if err := s.checkOwnerAccess(ctx, facilityID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Загружаем текущее состояние и применяем изменения
	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("UpdateConfig: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("UpdateConfig: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		facility.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseRate != nil {
		facility.BaseRate = *req.BaseRate
	}
	if req.DynamicPricing != nil {
		facility.DynamicPricing = *req.DynamicPricing
	}

	// 4. Сохраняем
	updated, err := s.facilityRepo.UpdateConfig(ctx, facilityID, facility)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("UpdateConfig: facility id=%d not found during update", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("UpdateConfig: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated facility id=%d", facilityID)
	return models.FromDomainFacility(updated), nil
}

// MarkSlot вручную переводит слот между available и occupied
// Доступно только владельцу парковки. Слоты, зарезервированные бронированиями,
// через эту операцию не меняются: их освобождает завершение или отмена бронирования
func (s *Service) MarkSlot(ctx context.Context, facilityID int64, slotID string, req *models.MarkSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("MarkSlot: facility id=%d slot=%s -> %s by user=%d", facilityID, slotID, req.Status, req.UserID)

	// 1. Валидация целевого статуса
	target, err := models.ToDomainSlotStatus(req.Status)
	if err != nil {
		s.logger.Warn("MarkSlot: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if target == domain.SlotStatusReserved {
		s.logger.Warn("MarkSlot: reserved status is managed by bookings only")
		return nil, fmt.Errorf("%w: reserved status is managed by bookings", ErrInvalidInput)
	}

	// 2. Проверяем права доступа (только владелец)
	if err := s.checkOwnerAccess(ctx, facilityID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Загружаем парковку и находим слот
	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("MarkSlot: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("MarkSlot: repository error for facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: MarkSlot - repository error: %v", ErrInternal, err)
	}

	slot := facility.FindSlot(slotID)
	if slot == nil {
		s.logger.Warn("MarkSlot: slot %s not found at facility id=%d", slotID, facilityID)
		return nil, ErrSlotNotFound
	}

	if slot.Status == target {
		s.logger.Info("MarkSlot: slot %s already has status %s", slotID, target)
		return models.FromDomainSlot(slot), nil
	}

	if slot.Status == domain.SlotStatusReserved {
		s.logger.Warn("MarkSlot: slot %s is reserved by an active booking", slotID)
		return nil, ErrSlotHasActiveBooking
	}

	// 4. Переводим слот атомарно относительно текущего статуса
	if err := s.facilityRepo.ChangeSlotStatus(ctx, facilityID, slotID, slot.Status, target); err != nil {
		if errors.Is(err, facilityRepo.ErrSlotStateConflict) {
			s.logger.Warn("MarkSlot: slot %s status changed concurrently", slotID)
			return nil, ErrSlotStateConflict
		}
		s.logger.Error("MarkSlot: repository error for slot %s: %v", slotID, err)
		return nil, fmt.Errorf("%w: MarkSlot - repository error: %v", ErrInternal, err)
	}

	slot.Status = target

	s.logger.Info("MarkSlot: slot %s at facility id=%d marked %s", slotID, facilityID, target)
	return models.FromDomainSlot(slot), nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь является владельцем парковки
func (s *Service) checkOwnerAccess(ctx context.Context, facilityID, userID int64) error {
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
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of facility id=%d", userID, facilityID)
		return ErrAccessDenied
	}

	return nil
}

// validateUpdateConfig валидирует частичное обновление параметров парковки
func validateUpdateConfig(req *models.UpdateConfigRequest) error {
	if req.Name == nil && req.BaseRate == nil && req.DynamicPricing == nil {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		if len(name) > domain.MaxFacilityNameLength {
			return fmt.Errorf("%w: name is too long", ErrInvalidInput)
		}
	}

	if req.BaseRate != nil {
		if *req.BaseRate < domain.MinBaseRate || *req.BaseRate > domain.MaxBaseRate {
			return fmt.Errorf("%w: baseRate must be between %v and %v", ErrInvalidInput, domain.MinBaseRate, domain.MaxBaseRate)
		}
	}

	return nil
}
