package get_allocation_summary

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// Request модель запроса сводки загрузки
type Request struct {
	Date time.Time           // Дата (без времени)
	Kind domain.ResourceKind // Тип ресурса; пусто - все типы
}

// Response сводки по каждому запрошенному типу ресурса
type Response struct {
	Date      time.Time
	Summaries []domain.AllocationSummary
}
