package get_alternative_slots

import (
	"net/url"
	"strconv"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	getAlternativeSlots "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_alternative_slots"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// AlternativesResponse HTTP response model
type AlternativesResponse struct {
	ResourceID   int64                   `json:"resourceId"`
	Requested    models.WindowResponse   `json:"requested"`
	Alternatives []models.WindowResponse `json:"alternatives"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// Окно задаётся startTime + endTime или startTime + durationMinutes
func ToUseCaseRequest(resourceID int64, query url.Values) (*getAlternativeSlots.Request, error) {
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, err
	}

	req := &getAlternativeSlots.Request{
		ResourceID: resourceID,
		Date:       date,
		StartTime:  startTime,
		Quantity:   1,
	}

	if s := query.Get("endTime"); s != "" {
		if req.EndTime, err = types.NewTimeStringFromString(s); err != nil {
			return nil, err
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"durationMinutes", &req.DurationMinutes},
		{"quantity", &req.Quantity},
		{"radiusMinutes", &req.SearchRadiusMinutes},
	}
	for _, p := range ints {
		if s := query.Get(p.name); s != "" {
			if *p.dst, err = strconv.Atoi(s); err != nil {
				return nil, err
			}
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAlternativeSlots.Response) *AlternativesResponse {
	return &AlternativesResponse{
		ResourceID:   resp.Resource.ID,
		Requested:    models.FromDomainWindow(resp.Window),
		Alternatives: models.FromDomainWindows(resp.Alternatives),
	}
}
