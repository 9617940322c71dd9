package conflicts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// Detector проверяет кандидата на конфликты с существующими аллокациями ресурса
type Detector struct {
	registry    ResourceRegistry
	allocations AllocationRepository
	logger      Logger
}

// NewDetector создает новый экземпляр детектора конфликтов
func NewDetector(registry ResourceRegistry, allocations AllocationRepository, logger Logger) *Detector {
	return &Detector{
		registry:    registry,
		allocations: allocations,
		logger:      logger,
	}
}

// Check resolves the candidate's resource and evaluates it against current allocations
func (d *Detector) Check(ctx context.Context, candidate *domain.Allocation) (*domain.ConflictResult, error) {
	res, err := d.registry.Get(ctx, candidate.ResourceID)
	if err != nil {
		return nil, err
	}
	result, _, err := d.Evaluate(ctx, res, candidate)
	return result, err
}

// Evaluate loads a snapshot for the candidate's date and evaluates the candidate against it.
// The snapshot is returned so that alternatives can be searched without re-reading the store.
func (d *Detector) Evaluate(ctx context.Context, res *domain.Resource, candidate *domain.Allocation) (*domain.ConflictResult, *Snapshot, error) {
	if candidate.Window.IsZero() || candidate.Quantity < domain.MinQuantity {
		return nil, nil, fmt.Errorf("%w: window=%s quantity=%d", ErrInvalidCandidate, candidate.Window, candidate.Quantity)
	}

	snap, err := d.Snapshot(ctx, res, candidate.Window.Date())
	if err != nil {
		return nil, nil, err
	}

	result := snap.Evaluate(candidate)
	if result.Conflict {
		d.logger.Info("Evaluate: resource id=%d window=%s conflict reason=%s",
			res.ID, candidate.Window, result.Reason)
	}
	return result, snap, nil
}

// Snapshot loads the allocations relevant for decisions on date.
// Staff snapshots span the whole ISO week; everything else spans the date.
func (d *Detector) Snapshot(ctx context.Context, res *domain.Resource, date time.Time) (*Snapshot, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	snap := &Snapshot{Resource: res, Date: dayStart}

	if res.Kind != domain.KindStaff {
		day, err := d.find(ctx, res.ID, dayStart, dayEnd, domain.ActiveStatuses)
		if err != nil {
			return nil, err
		}
		snap.Day = day
		return snap, nil
	}

	weekStart, weekEnd := domain.ISOWeekBounds(dayStart)
	week, err := d.find(ctx, res.ID, weekStart, weekEnd, domain.LedgerStatuses)
	if err != nil {
		return nil, err
	}

	snap.Week = week
	snap.Day = make([]*domain.Allocation, 0)
	for _, a := range week {
		if a.IsActive() && a.Window.Start.Before(dayEnd) && a.Window.End.After(dayStart) {
			snap.Day = append(snap.Day, a)
		}
	}
	return snap, nil
}

// MaxOverlapRangeDays максимальная длина диапазона FindOverlaps
const MaxOverlapRangeDays = 92

// FindOverlaps audits already stored allocations of a resource within [from, to).
// Tables, halls and staff are exclusive: every overlapping pair is reported.
// Equipment pairs are reported only when their combined quantity exceeds capacity.
// Read-only: nothing is locked or modified.
func (d *Detector) FindOverlaps(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.Overlap, error) {
	if !from.Before(to) || to.After(from.AddDate(0, 0, MaxOverlapRangeDays)) {
		return nil, fmt.Errorf("%w: %s - %s", ErrInvalidRange, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	res, err := d.registry.Get(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	allocations, err := d.find(ctx, res.ID, from, to, domain.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		if allocations[i].Window.Start.Equal(allocations[j].Window.Start) {
			return allocations[i].ID < allocations[j].ID
		}
		return allocations[i].Window.Start.Before(allocations[j].Window.Start)
	})

	overlaps := make([]domain.Overlap, 0)
	for i, a := range allocations {
		for _, b := range allocations[i+1:] {
			// Отсортировано по началу: дальше пересечений с a нет
			if !b.Window.Start.Before(a.Window.End) {
				break
			}
			if res.Kind == domain.KindEquipment && a.Quantity+b.Quantity <= res.Capacity {
				continue
			}
			overlaps = append(overlaps, domain.Overlap{First: a, Second: b})
		}
	}

	if len(overlaps) > 0 {
		d.logger.Warn("FindOverlaps: resource id=%d has %d overlapping pairs in %s - %s",
			res.ID, len(overlaps), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}
	return overlaps, nil
}

func (d *Detector) find(ctx context.Context, resourceID int64, from, to time.Time, statuses []domain.AllocationStatus) ([]*domain.Allocation, error) {
	allocations, err := d.allocations.FindByFilter(ctx, domain.AllocationFilter{
		ResourceID: &resourceID,
		From:       &from,
		To:         &to,
		Statuses:   statuses,
	})
	if err != nil {
		d.logger.Error("Snapshot: failed to load allocations for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: resource id=%d: %v", ErrStoreUnavailable, resourceID, err)
	}
	return allocations, nil
}
