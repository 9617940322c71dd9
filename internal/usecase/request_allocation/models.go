package request_allocation

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Request модель запроса на аллокацию ресурса
type Request struct {
	ResourceID int64               // ID ресурса; 0 - подобрать ресурс из пула Kind
	Kind       domain.ResourceKind // Тип ресурса для подбора из пула
	Date       time.Time           // Дата (без времени)
	StartTime  types.TimeString    // Время начала, например "18:00"
	EndTime    types.TimeString    // Время окончания, "24:00" допустимо
	Quantity   int                 // Размер компании / количество единиц; для смен всегда 1
	Notes      *string             // Заметки (опционально)

	SearchRadiusMinutes int // Радиус поиска альтернатив; 0 - значение по умолчанию для типа ресурса
}

// Response либо созданная аллокация, либо конфликт с альтернативами.
// При подборе из пула Resource - выделенный ресурс, а при отказе - первый (наименьший) подходящий.
type Response struct {
	Allocation   *domain.Allocation
	Resource     *domain.Resource
	Conflict     *domain.ConflictResult
	Alternatives []domain.TimeWindow
}

// Granted true, если аллокация создана
func (r *Response) Granted() bool {
	return r.Allocation != nil
}
