package domain

import (
	"sort"
	"time"
)

// ResourceUsage загрузка одного ресурса за день
type ResourceUsage struct {
	Resource           *Resource
	ActiveAllocations  int
	AllocatedQuantity  int
	BookedMinutes      int
	PeakQuantity       int
	UtilizationPercent float64
}

// AllocationSummary загрузка ресурсов одного типа на дату
type AllocationSummary struct {
	Date           time.Time
	Kind           ResourceKind
	Resources      []ResourceUsage
	QuantityByType map[string]int
}

// PeakQuantity maximum total quantity held at any single instant by the given allocations
func PeakQuantity(allocations []*Allocation) int {
	type point struct {
		at    time.Time
		delta int
	}
	points := make([]point, 0, len(allocations)*2)
	for _, a := range allocations {
		points = append(points, point{at: a.Window.Start, delta: a.Quantity})
		points = append(points, point{at: a.Window.End, delta: -a.Quantity})
	}
	// Освобождение раньше занятия в одну и ту же минуту: окна полуинтервальные
	sort.Slice(points, func(i, j int) bool {
		if points[i].at.Equal(points[j].at) {
			return points[i].delta < points[j].delta
		}
		return points[i].at.Before(points[j].at)
	})

	peak, current := 0, 0
	for _, p := range points {
		current += p.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}
