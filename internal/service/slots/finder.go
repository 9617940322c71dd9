package slots

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// Finder ищет свободные окна на сетке времени начала, специфичной для типа ресурса
type Finder struct {
	loader         SnapshotLoader
	grids          map[domain.ResourceKind]domain.SlotGrid
	maxSuggestions int
	logger         Logger
}

// NewFinder создает поисковик; отсутствующие в grids типы берутся из domain.DefaultSlotGrids
func NewFinder(loader SnapshotLoader, grids map[domain.ResourceKind]domain.SlotGrid, maxSuggestions int, logger Logger) *Finder {
	merged := make(map[domain.ResourceKind]domain.SlotGrid, len(domain.DefaultSlotGrids))
	for kind, grid := range domain.DefaultSlotGrids {
		merged[kind] = grid
	}
	for kind, grid := range grids {
		merged[kind] = grid
	}
	if maxSuggestions <= 0 {
		maxSuggestions = domain.DefaultMaxSuggestions
	}
	return &Finder{
		loader:         loader,
		grids:          merged,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
}

// Grid сетка для типа ресурса
func (f *Finder) Grid(kind domain.ResourceKind) domain.SlotGrid {
	return f.grids[kind]
}

// Suggest loads a snapshot for the candidate's date and searches it for alternatives
func (f *Finder) Suggest(ctx context.Context, res *domain.Resource, candidate *domain.Allocation, searchRadiusMinutes int) ([]domain.TimeWindow, error) {
	snap, err := f.loader.Snapshot(ctx, res, candidate.Window.Date())
	if err != nil {
		return nil, err
	}

	suggestions := f.SuggestFromSnapshot(snap, candidate, searchRadiusMinutes)
	f.logger.Info("Suggest: resource id=%d window=%s found %d alternatives",
		res.ID, candidate.Window, len(suggestions))
	return suggestions, nil
}

// SuggestFromSnapshot returns non-conflicting windows of the candidate's duration whose start
// lies on the grid within searchRadiusMinutes of the original start, the original start itself excluded.
// Ordered by distance from the original start, ties broken by the earlier time.
// A non-positive radius means the kind's default radius.
func (f *Finder) SuggestFromSnapshot(snap *conflicts.Snapshot, candidate *domain.Allocation, searchRadiusMinutes int) []domain.TimeWindow {
	grid := f.grids[snap.Resource.Kind]
	if searchRadiusMinutes <= 0 {
		searchRadiusMinutes = grid.DefaultSearchRadiusMinutes
	}

	duration := candidate.Window.DurationMinutes()
	origin := candidate.Window.StartMinute()

	type point struct {
		minute   int
		distance int
	}
	points := make([]point, 0)
	for _, m := range grid.Starts(duration) {
		d := abs(m - origin)
		if d == 0 || d > searchRadiusMinutes {
			continue
		}
		points = append(points, point{minute: m, distance: d})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].distance == points[j].distance {
			return points[i].minute < points[j].minute
		}
		return points[i].distance < points[j].distance
	})

	result := make([]domain.TimeWindow, 0, f.maxSuggestions)
	for _, p := range points {
		w, ok := f.free(snap, candidate, p.minute, duration)
		if !ok {
			continue
		}
		result = append(result, w)
		if len(result) >= f.maxSuggestions {
			break
		}
	}
	return result
}

// MergeSuggestions объединяет альтернативы по нескольким ресурсам пула.
// Совпадающие окна схлопываются; порядок и лимит те же, что у SuggestFromSnapshot.
func (f *Finder) MergeSuggestions(origin domain.TimeWindow, lists ...[]domain.TimeWindow) []domain.TimeWindow {
	type key struct{ start, end int64 }
	seen := make(map[key]struct{})
	merged := make([]domain.TimeWindow, 0)
	for _, list := range lists {
		for _, w := range list {
			k := key{start: w.Start.Unix(), end: w.End.Unix()}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, w)
		}
	}

	from := origin.StartMinute()
	sort.SliceStable(merged, func(i, j int) bool {
		di, dj := abs(merged[i].StartMinute()-from), abs(merged[j].StartMinute()-from)
		if di == dj {
			return merged[i].Start.Before(merged[j].Start)
		}
		return di < dj
	})

	if len(merged) > f.maxSuggestions {
		merged = merged[:f.maxSuggestions]
	}
	return merged
}

// DaySlots whole-day scan: every free grid window of durationMinutes, chronologically
func (f *Finder) DaySlots(ctx context.Context, res *domain.Resource, date time.Time, durationMinutes, quantity int) ([]domain.TimeWindow, error) {
	snap, err := f.loader.Snapshot(ctx, res, date)
	if err != nil {
		return nil, err
	}
	return f.DaySlotsFromSnapshot(snap, durationMinutes, quantity), nil
}

func (f *Finder) DaySlotsFromSnapshot(snap *conflicts.Snapshot, durationMinutes, quantity int) []domain.TimeWindow {
	grid := f.grids[snap.Resource.Kind]
	if durationMinutes <= 0 {
		durationMinutes = grid.DefaultDurationMinutes
	}
	template := &domain.Allocation{ResourceID: snap.Resource.ID, Quantity: quantity}

	result := make([]domain.TimeWindow, 0)
	for _, m := range grid.Starts(durationMinutes) {
		if w, ok := f.free(snap, template, m, durationMinutes); ok {
			result = append(result, w)
		}
	}
	return result
}

// free builds a trial window at minute on the snapshot date and evaluates it
func (f *Finder) free(snap *conflicts.Snapshot, candidate *domain.Allocation, minute, duration int) (domain.TimeWindow, bool) {
	start := types.AtMinute(snap.Date, minute)
	w, err := domain.NewWindowFromTimes(start, start.Add(time.Duration(duration)*time.Minute))
	if err != nil {
		return domain.TimeWindow{}, false
	}

	trial := *candidate
	trial.Window = w
	if snap.Evaluate(&trial).Conflict {
		return domain.TimeWindow{}, false
	}
	return w, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
