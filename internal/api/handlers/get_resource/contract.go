package get_resource

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
