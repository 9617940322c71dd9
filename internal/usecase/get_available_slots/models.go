package get_available_slots

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Kind            domain.ResourceKind // Тип ресурса
	Date            time.Time           // Дата (без времени)
	PartySize       int                 // Размер компании / количество единиц; для смен не учитывается
	DurationMinutes int                 // Длительность окна; 0 - значение по умолчанию для типа ресурса
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	Kind            domain.ResourceKind
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime            types.TimeString // Время начала слота (например, "18:00")
	EndTime              types.TimeString // Время окончания слота
	AvailableResourceIDs []int64          // Ресурсы, свободные на всё окно
	AvailableSpots       int              // Количество свободных ресурсов
	TotalSpots           int              // Количество подходящих ресурсов
	OccupancyRate        float64          // Процент занятых подходящих ресурсов
}
