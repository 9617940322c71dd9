package check_availability

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Request модель запроса проверки доступности
type Request struct {
	ResourceID   int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Quantity     int
	AllocationID int64 // ID переносимой аллокации, исключается из проверки; 0 - новая аллокация

	SearchRadiusMinutes int // 0 - радиус по умолчанию для типа ресурса
}

// Response результат проверки и альтернативы при конфликте
type Response struct {
	Resource     *domain.Resource
	Window       domain.TimeWindow
	Result       *domain.ConflictResult
	Alternatives []domain.TimeWindow
}

// Available true, если конфликтов нет
func (r *Response) Available() bool {
	return !r.Result.Conflict
}
