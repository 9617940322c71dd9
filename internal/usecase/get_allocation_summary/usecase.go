package get_allocation_summary

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// UseCase use case сводки загрузки ресурсов на дату
type UseCase struct {
	registry       ResourceRegistry
	allocationRepo AllocationRepository
	grids          GridProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry ResourceRegistry, allocationRepo AllocationRepository, grids GridProvider, logger Logger) *UseCase {
	return &UseCase{
		registry:       registry,
		allocationRepo: allocationRepo,
		grids:          grids,
		logger:         logger,
	}
}

// Execute считает загрузку каждого ресурса по активным аллокациям даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAllocationSummary: date=%s, kind=%q", req.Date.Format(domain.DateFormat), req.Kind)

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	kinds := domain.ResourceKinds
	if req.Kind != "" {
		if !req.Kind.IsValid() {
			uc.logger.Warn("GetAllocationSummary: unknown kind %q", req.Kind)
			return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.Kind)
		}
		kinds = []domain.ResourceKind{req.Kind}
	}

	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())

	// 2. Сводка по каждому типу
	summaries := make([]domain.AllocationSummary, 0, len(kinds))
	for _, kind := range kinds {
		summary, err := uc.summarize(ctx, kind, dayStart)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	return &Response{
		Date:      dayStart,
		Summaries: summaries,
	}, nil
}

func (uc *UseCase) summarize(ctx context.Context, kind domain.ResourceKind, dayStart time.Time) (*domain.AllocationSummary, error) {
	resources, err := uc.registry.ListByKind(ctx, kind, false)
	if err != nil {
		uc.logger.Error("GetAllocationSummary: failed to list resources of kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrStoreUnavailable, err)
	}

	operating := uc.grids.Grid(kind).OperatingMinutes()
	summary := &domain.AllocationSummary{
		Date:           dayStart,
		Kind:           kind,
		Resources:      make([]domain.ResourceUsage, 0, len(resources)),
		QuantityByType: make(map[string]int),
	}

	for _, res := range resources {
		allocations, err := uc.allocationRepo.FindActiveForResource(ctx, res.ID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			uc.logger.Error("GetAllocationSummary: failed to load allocations for resource id=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: failed to load allocations: %v", ErrStoreUnavailable, err)
		}

		usage := usageOf(res, allocations, operating)
		summary.Resources = append(summary.Resources, usage)

		if kind == domain.KindEquipment && res.Type != "" {
			summary.QuantityByType[res.Type] += usage.AllocatedQuantity
		}
	}

	uc.logger.Info("GetAllocationSummary: kind=%s, %d resources", kind, len(summary.Resources))
	return summary, nil
}

// usageOf загрузка ресурса: для оборудования по пиковому количеству, для остальных по занятому времени
func usageOf(res *domain.Resource, allocations []*domain.Allocation, operatingMinutes int) domain.ResourceUsage {
	usage := domain.ResourceUsage{
		Resource:          res,
		ActiveAllocations: len(allocations),
		PeakQuantity:      domain.PeakQuantity(allocations),
	}
	for _, a := range allocations {
		usage.AllocatedQuantity += a.Quantity
		usage.BookedMinutes += a.Window.DurationMinutes()
	}

	switch {
	case res.Kind == domain.KindEquipment && res.Capacity > 0:
		usage.UtilizationPercent = float64(usage.PeakQuantity) / float64(res.Capacity) * 100
	case res.Kind != domain.KindEquipment && operatingMinutes > 0:
		usage.UtilizationPercent = float64(usage.BookedMinutes) / float64(operatingMinutes) * 100
	}
	return usage
}
