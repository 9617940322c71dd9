package request_allocation

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
)

// AllocationRepository интерфейс репозитория аллокаций
type AllocationRepository interface {
	LockResource(ctx context.Context, resourceID int64) error
	Create(ctx context.Context, allocation *domain.Allocation) (*domain.Allocation, error)
}

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
	ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	Evaluate(ctx context.Context, res *domain.Resource, candidate *domain.Allocation) (*domain.ConflictResult, *conflicts.Snapshot, error)
}

// SlotFinder интерфейс поиска альтернативных окон
type SlotFinder interface {
	SuggestFromSnapshot(snap *conflicts.Snapshot, candidate *domain.Allocation, searchRadiusMinutes int) []domain.TimeWindow
	MergeSuggestions(origin domain.TimeWindow, lists ...[]domain.TimeWindow) []domain.TimeWindow
}

// Locker интерфейс блокировки ресурса по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, event domain.AllocationEvent) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordAllocation(kind, outcome string)
	ObserveSuggestions(kind string, count int)
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
