package conflicts

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// AllocationRepository интерфейс чтения аллокаций
type AllocationRepository interface {
	FindByFilter(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error)
}

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
