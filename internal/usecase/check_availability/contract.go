package check_availability

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
)

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	Evaluate(ctx context.Context, res *domain.Resource, candidate *domain.Allocation) (*domain.ConflictResult, *conflicts.Snapshot, error)
}

// SlotFinder интерфейс поиска альтернативных окон
type SlotFinder interface {
	SuggestFromSnapshot(snap *conflicts.Snapshot, candidate *domain.Allocation, searchRadiusMinutes int) []domain.TimeWindow
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
