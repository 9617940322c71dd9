package slots

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
)

// SnapshotLoader источник снимков аллокаций (детектор конфликтов)
type SnapshotLoader interface {
	Snapshot(ctx context.Context, res *domain.Resource, date time.Time) (*conflicts.Snapshot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
