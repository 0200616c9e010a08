package create_facility

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxFacilityNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxFacilityNameLength)
	}

	if req.Floors < domain.MinFloors || req.Floors > domain.MaxFloors {
		return fmt.Errorf("%w: floors must be between %d and %d", ErrInvalidInput, domain.MinFloors, domain.MaxFloors)
	}

	if req.Rows < domain.MinRows || req.Rows > domain.MaxRows {
		return fmt.Errorf("%w: rows must be between %d and %d", ErrInvalidInput, domain.MinRows, domain.MaxRows)
	}

	if req.Columns < domain.MinColumns || req.Columns > domain.MaxColumns {
		return fmt.Errorf("%w: columns must be between %d and %d", ErrInvalidInput, domain.MinColumns, domain.MaxColumns)
	}

	if req.BaseRate < domain.MinBaseRate || req.BaseRate > domain.MaxBaseRate {
		return fmt.Errorf("%w: baseRate must be between %v and %v", ErrInvalidInput, domain.MinBaseRate, domain.MaxBaseRate)
	}

	return nil
}

// parseCategories преобразует категории из запроса в доменные значения.
// Пустой список допустим: в этом случае применяется стандартный набор категорий.
func parseCategories(raw []string) ([]domain.VehicleCategory, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	seen := make(map[domain.VehicleCategory]struct{}, len(raw))
	categories := make([]domain.VehicleCategory, 0, len(raw))

	for _, value := range raw {
		category := domain.VehicleCategory(value)
		if !domain.ValidVehicleCategory(category) {
			return nil, fmt.Errorf("%w: unknown vehicle category %q", ErrInvalidInput, value)
		}
		if _, ok := seen[category]; ok {
			return nil, fmt.Errorf("%w: duplicate vehicle category %q", ErrInvalidInput, value)
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}

	return categories, nil
}
