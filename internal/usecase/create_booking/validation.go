package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.SlotID != nil && strings.TrimSpace(*req.SlotID) == "" {
		return fmt.Errorf("%w: slotID must not be empty", ErrInvalidInput)
	}

	if req.VehicleCategory != nil && !domain.ValidVehicleCategory(domain.VehicleCategory(*req.VehicleCategory)) {
		return fmt.Errorf("%w: unknown vehicle category %q", ErrInvalidInput, *req.VehicleCategory)
	}

	if req.VehiclePlate != nil && strings.TrimSpace(*req.VehiclePlate) == "" {
		return fmt.Errorf("%w: vehiclePlate must not be empty", ErrInvalidInput)
	}

	return nil
}

// resolveVehicle определяет категорию и госномер транспорта для бронирования.
// Данные из запроса имеют приоритет над выбранным транспортом из UserService:
// пользователь может бронировать место не для своего основного транспорта.
func resolveVehicle(req *Request, vehicle *userservice.Vehicle) (domain.VehicleCategory, *string, error) {
	var category domain.VehicleCategory

	switch {
	case req.VehicleCategory != nil:
		category = domain.VehicleCategory(*req.VehicleCategory)
	case vehicle != nil:
		category = domain.VehicleCategory(vehicle.Category)
	default:
		return "", nil, ErrCategoryRequired
	}

	if !domain.ValidVehicleCategory(category) {
		return "", nil, fmt.Errorf("%w: unknown vehicle category %q", ErrInvalidInput, category)
	}

	var plate *string
	switch {
	case req.VehiclePlate != nil:
		plate = req.VehiclePlate
	case vehicle != nil && vehicle.LicensePlate != "":
		plate = &vehicle.LicensePlate
	}

	return category, plate, nil
}
