package check_availability

import (
	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	checkAvailability "github.com/m04kA/RMS-AvailabilityService/internal/usecase/check_availability"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ResourceID          int64  `json:"resourceId" validate:"required,gt=0"`
	Date                string `json:"date" validate:"required"`
	StartTime           string `json:"startTime" validate:"required"`
	EndTime             string `json:"endTime" validate:"required"`
	Quantity            int    `json:"quantity" validate:"gte=0"`               // 0 означает 1
	AllocationID        int64  `json:"allocationId,omitempty" validate:"gte=0"` // Исключить из проверки (перенос)
	SearchRadiusMinutes int    `json:"searchRadiusMinutes,omitempty" validate:"gte=0"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	ResourceID   int64                    `json:"resourceId"`
	Available    bool                     `json:"available"`
	Window       models.WindowResponse    `json:"window"`
	Result       *models.ConflictResponse `json:"result"`
	Alternatives []models.WindowResponse  `json:"alternatives"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
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

	return &checkAvailability.Request{
		ResourceID:          r.ResourceID,
		Date:                date,
		StartTime:           startTime,
		EndTime:             endTime,
		Quantity:            quantity,
		AllocationID:        r.AllocationID,
		SearchRadiusMinutes: r.SearchRadiusMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		ResourceID:   resp.Resource.ID,
		Available:    resp.Available(),
		Window:       models.FromDomainWindow(resp.Window),
		Result:       models.FromDomainConflict(resp.Result),
		Alternatives: models.FromDomainWindows(resp.Alternatives),
	}
}
