package change_allocation_status

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

type AllocationService interface {
	Confirm(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AllocationResponse, error)
	Complete(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AllocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
