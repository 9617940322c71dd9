package list_resources

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

type ResourceRegistry interface {
	ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
