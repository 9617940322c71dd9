package get_allocation_summary

import (
	"context"

	getAllocationSummary "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_allocation_summary"
)

type GetAllocationSummaryUseCase interface {
	Execute(ctx context.Context, req *getAllocationSummary.Request) (*getAllocationSummary.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
