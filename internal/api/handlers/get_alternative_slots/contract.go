package get_alternative_slots

import (
	"context"

	getAlternativeSlots "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_alternative_slots"
)

type GetAlternativeSlotsUseCase interface {
	Execute(ctx context.Context, req *getAlternativeSlots.Request) (*getAlternativeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
