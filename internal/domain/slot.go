package domain

import (
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// SlotGrid fixed-step grid of start times for one resource kind
type SlotGrid struct {
	StepMinutes int
	FirstStart  types.TimeString
	LastStart   types.TimeString
	// MustEndBy closing time; empty means the window may run until 24:00
	MustEndBy types.TimeString

	DefaultDurationMinutes     int
	DefaultSearchRadiusMinutes int
}

// Validate проверяет корректность сетки
func (g SlotGrid) Validate() error {
	if g.StepMinutes <= 0 {
		return fmt.Errorf("slot grid: step must be positive, got %d", g.StepMinutes)
	}
	first, err := g.FirstStart.Minutes()
	if err != nil {
		return fmt.Errorf("slot grid: first start: %w", err)
	}
	last, err := g.LastStart.Minutes()
	if err != nil {
		return fmt.Errorf("slot grid: last start: %w", err)
	}
	if last < first {
		return fmt.Errorf("slot grid: last start %s before first start %s", g.LastStart, g.FirstStart)
	}
	if !g.MustEndBy.IsZero() {
		if err := g.MustEndBy.Validate(); err != nil {
			return fmt.Errorf("slot grid: must end by: %w", err)
		}
	}
	if g.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("slot grid: default duration must be positive, got %d", g.DefaultDurationMinutes)
	}
	return nil
}

// Starts grid start minutes (from midnight) at which a window of durationMinutes fits
func (g SlotGrid) Starts(durationMinutes int) []int {
	first, err := g.FirstStart.Minutes()
	if err != nil {
		return nil
	}
	last, err := g.LastStart.Minutes()
	if err != nil {
		return nil
	}
	endBy := g.endByMinutes()

	starts := make([]int, 0, (last-first)/max(g.StepMinutes, 1)+1)
	for m := first; m <= last && g.StepMinutes > 0; m += g.StepMinutes {
		if m+durationMinutes > endBy {
			break
		}
		starts = append(starts, m)
	}
	return starts
}

// OperatingMinutes length of the working day covered by the grid
func (g SlotGrid) OperatingMinutes() int {
	first, err := g.FirstStart.Minutes()
	if err != nil {
		return 0
	}
	if !g.MustEndBy.IsZero() {
		return g.endByMinutes() - first
	}
	last, err := g.LastStart.Minutes()
	if err != nil {
		return 0
	}
	return min(last+g.DefaultDurationMinutes, 24*60) - first
}

func (g SlotGrid) endByMinutes() int {
	if g.MustEndBy.IsZero() {
		return 24 * 60
	}
	m, err := g.MustEndBy.Minutes()
	if err != nil {
		return 24 * 60
	}
	return m
}

// AvailableSlot represents a time window with the resources free during it
type AvailableSlot struct {
	Window               TimeWindow
	AvailableResourceIDs []int64
	TotalResources       int
}

// AvailableSpots number of free resources
func (s *AvailableSlot) AvailableSpots() int {
	return len(s.AvailableResourceIDs)
}

// IsFull returns true if no resource is free
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots() == 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalResources == 0 {
		return 0
	}
	occupied := s.TotalResources - s.AvailableSpots()
	return float64(occupied) / float64(s.TotalResources) * 100
}
