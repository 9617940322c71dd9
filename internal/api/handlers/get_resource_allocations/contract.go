package get_resource_allocations

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

type AllocationService interface {
	ListForResource(ctx context.Context, req *models.ListRequest) (*models.AllocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
