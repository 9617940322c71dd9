package get_alternative_slots

import (
	"context"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	Get(ctx context.Context, id int64) (*domain.Resource, error)
}

// SlotFinder интерфейс поиска альтернативных окон
type SlotFinder interface {
	Suggest(ctx context.Context, res *domain.Resource, candidate *domain.Allocation, searchRadiusMinutes int) ([]domain.TimeWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
