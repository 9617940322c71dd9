package request_allocation

import (
	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	requestAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/request_allocation"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// RequestAllocationRequest HTTP request model
type RequestAllocationRequest struct {
	ResourceID          int64   `json:"resourceId,omitempty" validate:"gte=0"` // 0 - подобрать ресурс по kind
	Kind                string  `json:"kind,omitempty" validate:"omitempty,oneof=table staff hall equipment"`
	Date                string  `json:"date" validate:"required"`      // "2024-06-01"
	StartTime           string  `json:"startTime" validate:"required"` // "18:00"
	EndTime             string  `json:"endTime" validate:"required"`   // "20:00", "24:00"
	Quantity            int     `json:"quantity" validate:"gte=0"`     // 0 означает 1
	Notes               *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	SearchRadiusMinutes int     `json:"searchRadiusMinutes,omitempty" validate:"gte=0"`
}

// ConflictBody тело ответа 409: причина отказа и альтернативные окна
type ConflictBody struct {
	Message      string                   `json:"message"`
	Conflict     *models.ConflictResponse `json:"conflict"`
	Alternatives []models.WindowResponse  `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestAllocationRequest) ToUseCaseRequest() (*requestAllocation.Request, error) {
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

	quantity := r.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return &requestAllocation.Request{
		ResourceID:          r.ResourceID,
		Kind:                domain.ResourceKind(r.Kind),
		Date:                date,
		StartTime:           startTime,
		EndTime:             endTime,
		Quantity:            quantity,
		Notes:               r.Notes,
		SearchRadiusMinutes: r.SearchRadiusMinutes,
	}, nil
}

// FromConflict формирует тело ответа при конфликте
func FromConflict(resp *requestAllocation.Response) *ConflictBody {
	return &ConflictBody{
		Message:      resp.Conflict.Message,
		Conflict:     models.FromDomainConflict(resp.Conflict),
		Alternatives: models.FromDomainWindows(resp.Alternatives),
	}
}
