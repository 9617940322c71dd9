package reschedule_allocation

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Request модель запроса на перенос аллокации
type Request struct {
	AllocationID int64            // ID аллокации
	Date         time.Time        // Новая дата
	StartTime    types.TimeString // Новое время начала
	EndTime      types.TimeString // Новое время окончания
	Quantity     int              // Новое количество; 0 - оставить прежнее
	Version      int              // Ожидаемая версия; 0 - текущая версия из хранилища

	SearchRadiusMinutes int // Радиус поиска альтернатив; 0 - значение по умолчанию для типа ресурса
}

// Response либо перенесённая аллокация, либо конфликт с альтернативами
type Response struct {
	Allocation   *domain.Allocation
	Resource     *domain.Resource
	Conflict     *domain.ConflictResult
	Alternatives []domain.TimeWindow
}

// Rescheduled true, если аллокация перенесена
func (r *Response) Rescheduled() bool {
	return r.Allocation != nil && r.Conflict == nil
}
