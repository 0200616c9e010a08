package create_facility

import (
	"context"

	createFacility "github.com/m04kA/SMC-ParkingService/internal/usecase/create_facility"
)

type CreateFacilityUseCase interface {
	Execute(ctx context.Context, req *createFacility.Request) (*createFacility.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
