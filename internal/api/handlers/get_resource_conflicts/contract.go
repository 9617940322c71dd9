package get_resource_conflicts

import (
	"context"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

type ConflictAuditor interface {
	FindOverlaps(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.Overlap, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
