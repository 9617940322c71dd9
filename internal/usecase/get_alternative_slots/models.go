package get_alternative_slots

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Request модель запроса альтернативных окон
// Если задан DurationMinutes, окно строится от StartTime с этой длительностью, EndTime не нужен
type Request struct {
	ResourceID      int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Quantity        int

	SearchRadiusMinutes int // 0 - радиус по умолчанию для типа ресурса
}

// Response исходное окно и альтернативы, ближайшие первыми
type Response struct {
	Resource     *domain.Resource
	Window       domain.TimeWindow
	Alternatives []domain.TimeWindow
}
