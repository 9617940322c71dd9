package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// ResourceRegistry интерфейс реестра ресурсов
type ResourceRegistry interface {
	ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error)
}

// SlotFinder интерфейс поиска свободных окон
type SlotFinder interface {
	Grid(kind domain.ResourceKind) domain.SlotGrid
	DaySlots(ctx context.Context, res *domain.Resource, date time.Time, durationMinutes, quantity int) ([]domain.TimeWindow, error)
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
