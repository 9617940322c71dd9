package get_allocation_summary

import (
	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	getAllocationSummary "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_allocation_summary"
)

// SummaryResponse HTTP response model
type SummaryResponse struct {
	Date      string        `json:"date"`
	Summaries []KindSummary `json:"summaries"`
}

// KindSummary загрузка ресурсов одного типа
type KindSummary struct {
	Kind           string          `json:"kind"`
	Resources      []ResourceUsage `json:"resources"`
	QuantityByType map[string]int  `json:"quantityByType,omitempty"` // Только для оборудования
}

// ResourceUsage загрузка одного ресурса
type ResourceUsage struct {
	Resource           handlers.ResourceResponse `json:"resource"`
	ActiveAllocations  int                       `json:"activeAllocations"`
	AllocatedQuantity  int                       `json:"allocatedQuantity"`
	BookedMinutes      int                       `json:"bookedMinutes"`
	PeakQuantity       int                       `json:"peakQuantity"`
	UtilizationPercent float64                   `json:"utilizationPercent"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAllocationSummary.Response) *SummaryResponse {
	out := &SummaryResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Summaries: make([]KindSummary, 0, len(resp.Summaries)),
	}

	for _, s := range resp.Summaries {
		ks := KindSummary{
			Kind:           string(s.Kind),
			Resources:      make([]ResourceUsage, 0, len(s.Resources)),
			QuantityByType: s.QuantityByType,
		}
		for _, u := range s.Resources {
			ks.Resources = append(ks.Resources, ResourceUsage{
				Resource:           *handlers.FromDomainResource(u.Resource),
				ActiveAllocations:  u.ActiveAllocations,
				AllocatedQuantity:  u.AllocatedQuantity,
				BookedMinutes:      u.BookedMinutes,
				PeakQuantity:       u.PeakQuantity,
				UtilizationPercent: u.UtilizationPercent,
			})
		}
		out.Summaries = append(out.Summaries, ks)
	}

	return out
}
