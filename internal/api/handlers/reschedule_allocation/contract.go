package reschedule_allocation

import (
	"context"

	rescheduleAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/reschedule_allocation"
)

type RescheduleAllocationUseCase interface {
	Execute(ctx context.Context, req *rescheduleAllocation.Request) (*rescheduleAllocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
