package allocations

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// AllocationRepository интерфейс репозитория аллокаций
type AllocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Allocation, error)
	FindByFilter(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error)
	UpdateStatus(ctx context.Context, id int64, expectedVersion int, status domain.AllocationStatus, reason *string) (*domain.Allocation, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, event domain.AllocationEvent) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordNotificationFailure(event string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
