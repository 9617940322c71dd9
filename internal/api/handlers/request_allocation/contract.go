package request_allocation

import (
	"context"

	requestAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/request_allocation"
)

type RequestAllocationUseCase interface {
	Execute(ctx context.Context, req *requestAllocation.Request) (*requestAllocation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
