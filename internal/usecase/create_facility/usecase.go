package create_facility

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase use case для создания парковки
type UseCase struct {
	facilityRepo FacilityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(facilityRepo FacilityRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		facilityRepo: facilityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case создания парковки.
// Парковка и сгенерированная сетка слотов сохраняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateFacility: owner=%d, name=%q, grid=%dx%dx%d",
		req.OwnerID, req.Name, req.Floors, req.Rows, req.Columns)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateFacility: validation failed: %v", err)
		return nil, err
	}

	categories, err := parseCategories(req.Categories)
	if err != nil {
		uc.logger.Warn("CreateFacility: validation failed: %v", err)
		return nil, err
	}

	// 2. Применяем значения по умолчанию
	if len(categories) == 0 {
		categories = domain.DefaultCategories
		uc.logger.Info("CreateFacility: using default categories")
	}

	dynamicPricing := true
	if req.DynamicPricing != nil {
		dynamicPricing = *req.DynamicPricing
	}

	// 3. Генерируем сетку слотов
	facility := &domain.Facility{
		OwnerID:        req.OwnerID,
		Name:           strings.TrimSpace(req.Name),
		Floors:         req.Floors,
		Rows:           req.Rows,
		Columns:        req.Columns,
		Categories:     categories,
		BaseRate:       req.BaseRate,
		DynamicPricing: dynamicPricing,
		Slots:          domain.GenerateSlots(req.Floors, req.Rows, req.Columns, categories),
	}

	// Переменная для хранения результата
	var result *domain.Facility

	// 4. Сохраняем парковку вместе со слотами в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.facilityRepo.Create(txCtx, facility)
		if err != nil {
			uc.logger.Error("CreateFacility: failed to create facility: %v", err)
			return fmt.Errorf("%w: failed to create facility: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateFacility: successfully created facility id=%d with %d slots",
		result.ID, len(result.Slots))

	// Конвертируем в response
	categoryValues := make([]string, 0, len(result.Categories))
	for _, category := range result.Categories {
		categoryValues = append(categoryValues, string(category))
	}

	return &Response{
		ID:             result.ID,
		OwnerID:        result.OwnerID,
		Name:           result.Name,
		Floors:         result.Floors,
		Rows:           result.Rows,
		Columns:        result.Columns,
		Categories:     categoryValues,
		BaseRate:       result.BaseRate,
		DynamicPricing: result.DynamicPricing,
		TotalSlots:     len(result.Slots),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
