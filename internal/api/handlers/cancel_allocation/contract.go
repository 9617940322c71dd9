package cancel_allocation

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

type AllocationService interface {
	Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AllocationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
