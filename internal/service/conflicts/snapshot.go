package conflicts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// Snapshot read-only view of one resource's allocations on one date.
// For staff it also holds the ISO week needed by the weekly-hour ledger.
// Evaluate is pure and only valid for candidates on Date.
type Snapshot struct {
	Resource *domain.Resource
	Date     time.Time
	Day      []*domain.Allocation // активные аллокации, пересекающие дату
	Week     []*domain.Allocation // только для сотрудников: pending, confirmed, completed за неделю
}

// Evaluate applies the kind-specific rules to candidate.
// A candidate with a non-zero ID is an update of an existing allocation and is excluded from the scan.
func (s *Snapshot) Evaluate(candidate *domain.Allocation) *domain.ConflictResult {
	if !s.Resource.Available {
		return &domain.ConflictResult{
			Conflict:               true,
			ConflictingAllocations: []*domain.Allocation{},
			Reason:                 domain.ReasonResourceUnavailable,
			Message:                fmt.Sprintf("Resource %q is not available for allocation.", s.Resource.Name),
		}
	}

	day := exclude(s.Day, candidate.ID)

	switch s.Resource.Kind {
	case domain.KindTable, domain.KindHall:
		return s.evaluateExclusive(candidate, day)
	case domain.KindEquipment:
		return s.evaluateEquipment(candidate, day)
	case domain.KindStaff:
		return s.evaluateStaff(candidate, day)
	}
	return domain.NoConflict()
}

// evaluateExclusive: первая пересекающаяся аллокация - конфликт
func (s *Snapshot) evaluateExclusive(candidate *domain.Allocation, day []*domain.Allocation) *domain.ConflictResult {
	for _, a := range day {
		if a.Window.Overlaps(candidate.Window) {
			return &domain.ConflictResult{
				Conflict:               true,
				ConflictingAllocations: []*domain.Allocation{a},
				Reason:                 domain.ReasonTimeOverlap,
				Message: fmt.Sprintf("%s is already booked %s-%s.",
					s.Resource.Name, a.Window.StartTime(), a.Window.EndTime()),
			}
		}
	}

	if candidate.Quantity > s.Resource.Capacity {
		return &domain.ConflictResult{
			Conflict:               true,
			ConflictingAllocations: []*domain.Allocation{},
			Reason:                 domain.ReasonCapacityExceeded,
			Message: fmt.Sprintf("Party size %d exceeds capacity of %s (%d).",
				candidate.Quantity, s.Resource.Name, s.Resource.Capacity),
		}
	}

	return domain.NoConflict()
}

// evaluateEquipment: сумма количества по пересекающимся аллокациям плюс кандидат не больше вместимости
func (s *Snapshot) evaluateEquipment(candidate *domain.Allocation, day []*domain.Allocation) *domain.ConflictResult {
	overlapping := make([]*domain.Allocation, 0)
	allocated := 0
	for _, a := range day {
		if a.Window.Overlaps(candidate.Window) {
			overlapping = append(overlapping, a)
			allocated += a.Quantity
		}
	}

	if allocated+candidate.Quantity > s.Resource.Capacity {
		return &domain.ConflictResult{
			Conflict:               true,
			ConflictingAllocations: overlapping,
			Reason:                 domain.ReasonCapacityExceeded,
			Message: fmt.Sprintf("Not enough %s available: requested %d, %d of %d already allocated.",
				s.Resource.Name, candidate.Quantity, allocated, s.Resource.Capacity),
		}
	}

	return domain.NoConflict()
}

// evaluateStaff: сначала пересечение смен, затем недельный лимит часов
func (s *Snapshot) evaluateStaff(candidate *domain.Allocation, day []*domain.Allocation) *domain.ConflictResult {
	for _, a := range day {
		if a.Window.Overlaps(candidate.Window) {
			return &domain.ConflictResult{
				Conflict:               true,
				ConflictingAllocations: []*domain.Allocation{a},
				Reason:                 domain.ReasonShiftOverlap,
				Message: fmt.Sprintf("%s already has a shift %s-%s.",
					s.Resource.Name, a.Window.StartTime(), a.Window.EndTime()),
			}
		}
	}

	week := exclude(s.Week, candidate.ID)
	scheduled := 0
	for _, a := range week {
		scheduled += a.Window.DurationMinutes()
	}

	total := scheduled + candidate.Window.DurationMinutes()
	if total > s.Resource.MaxWeeklyMinutes() {
		return &domain.ConflictResult{
			Conflict:               true,
			ConflictingAllocations: week,
			Reason:                 domain.ReasonWeeklyHourCapExceeded,
			Message: fmt.Sprintf("Staff member would exceed maximum hours per week (%s/%d hours).",
				hours(total), s.Resource.Capacity),
		}
	}

	return domain.NoConflict()
}

func exclude(allocations []*domain.Allocation, id int64) []*domain.Allocation {
	if id == 0 {
		return allocations
	}
	out := make([]*domain.Allocation, 0, len(allocations))
	for _, a := range allocations {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

func hours(minutes int) string {
	return strconv.FormatFloat(float64(minutes)/60, 'f', -1, 64)
}
