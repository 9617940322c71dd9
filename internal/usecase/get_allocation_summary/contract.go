package get_allocation_summary

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error)
}

// AllocationRepository интерфейс чтения аллокаций
type AllocationRepository interface {
	FindActiveForResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Allocation, error)
}

// GridProvider источник сеток времени по типам ресурсов
type GridProvider interface {
	Grid(kind domain.ResourceKind) domain.SlotGrid
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
