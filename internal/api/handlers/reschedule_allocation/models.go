package reschedule_allocation

import (
	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	rescheduleAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/reschedule_allocation"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date                string `json:"date" validate:"required"`
	StartTime           string `json:"startTime" validate:"required"`
	EndTime             string `json:"endTime" validate:"required"`
	Quantity            int    `json:"quantity,omitempty" validate:"gte=0"` // 0 - оставить прежнее
	Version             int    `json:"version,omitempty" validate:"gte=0"`  // Ожидаемая версия (опционально)
	SearchRadiusMinutes int    `json:"searchRadiusMinutes,omitempty" validate:"gte=0"`
}

// ConflictBody тело ответа 409 при конфликте нового окна
type ConflictBody struct {
	Message      string                   `json:"message"`
	Conflict     *models.ConflictResponse `json:"conflict"`
	Alternatives []models.WindowResponse  `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(allocationID int64) (*rescheduleAllocation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAllocation.Request{
		AllocationID:        allocationID,
		Date:                date,
		StartTime:           startTime,
		EndTime:             endTime,
		Quantity:            r.Quantity,
		Version:             r.Version,
		SearchRadiusMinutes: r.SearchRadiusMinutes,
	}, nil
}

// FromConflict формирует тело ответа при конфликте
func FromConflict(resp *rescheduleAllocation.Response) *ConflictBody {
	return &ConflictBody{
		Message:      resp.Conflict.Message,
		Conflict:     models.FromDomainConflict(resp.Conflict),
		Alternatives: models.FromDomainWindows(resp.Alternatives),
	}
}
