package get_resource_conflicts

import (
	"net/url"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

// OverlapResponse пара пересекающихся аллокаций
type OverlapResponse struct {
	First  *models.AllocationResponse `json:"first"`
	Second *models.AllocationResponse `json:"second"`
}

// ConflictsResponse HTTP response model
type ConflictsResponse struct {
	ResourceID int64             `json:"resourceId"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Overlaps   []OverlapResponse `json:"overlaps"`
}

// ParseRange разбирает from/to (YYYY-MM-DD, обе даты включительно) в полуинтервал [from, to+1d)
func ParseRange(query url.Values) (time.Time, time.Time, error) {
	from, err := handlers.ParseDate(query.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := handlers.ParseDate(query.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to.AddDate(0, 0, 1), nil
}

func FromDomainOverlaps(resourceID int64, from, to time.Time, overlaps []domain.Overlap) *ConflictsResponse {
	resp := &ConflictsResponse{
		ResourceID: resourceID,
		From:       from.Format(domain.DateFormat),
		To:         to.AddDate(0, 0, -1).Format(domain.DateFormat),
		Overlaps:   make([]OverlapResponse, 0, len(overlaps)),
	}
	for _, o := range overlaps {
		resp.Overlaps = append(resp.Overlaps, OverlapResponse{
			First:  models.FromDomainAllocation(o.First),
			Second: models.FromDomainAllocation(o.Second),
		})
	}
	return resp
}
