package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	allocationRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/allocation"
)

// Allocations хранилище аллокаций в памяти
// Атомарность check-then-insert обеспечивается блокировкой ресурса в координаторе
type Allocations struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Allocation
	now    func() time.Time
}

func NewAllocations() *Allocations {
	return &Allocations{
		items: make(map[int64]*domain.Allocation),
		now:   time.Now,
	}
}

// LockResource no-op: in-memory хранилище не поддерживает транзакций
func (s *Allocations) LockResource(context.Context, int64) error {
	return nil
}

func (s *Allocations) Create(_ context.Context, a *domain.Allocation) (*domain.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.now()

	a.ID = s.nextID
	a.Version = 1
	a.CreatedAt = now
	a.UpdatedAt = now

	cp := *a
	s.items[a.ID] = &cp
	return a, nil
}

func (s *Allocations) GetByID(_ context.Context, id int64) (*domain.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[id]
	if !ok {
		return nil, allocationRepo.ErrAllocationNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Allocations) FindByFilter(_ context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Allocation, 0)
	for _, a := range s.items {
		if !filter.Matches(a) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Window.Start.Equal(out[j].Window.Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Window.Start.Before(out[j].Window.Start)
	})
	return out, nil
}

func (s *Allocations) FindActiveForResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Allocation, error) {
	return s.FindByFilter(ctx, domain.AllocationFilter{
		ResourceID: &resourceID,
		From:       &from,
		To:         &to,
		Statuses:   domain.ActiveStatuses,
	})
}

func (s *Allocations) FindActiveOverlapping(ctx context.Context, resourceID int64, window domain.TimeWindow) ([]*domain.Allocation, error) {
	return s.FindActiveForResource(ctx, resourceID, window.Start, window.End)
}

func (s *Allocations) UpdateStatus(_ context.Context, id int64, expectedVersion int, status domain.AllocationStatus, reason *string) (*domain.Allocation, error) {
	return s.update(id, expectedVersion, "UpdateStatus", func(a *domain.Allocation) {
		a.Status = status
		if reason != nil {
			r := *reason
			a.CancellationReason = &r
		}
	})
}

func (s *Allocations) UpdateWindow(_ context.Context, id int64, expectedVersion int, window domain.TimeWindow, quantity int) (*domain.Allocation, error) {
	return s.update(id, expectedVersion, "UpdateWindow", func(a *domain.Allocation) {
		a.Window = window
		a.Quantity = quantity
	})
}

func (s *Allocations) update(id int64, expectedVersion int, op string, apply func(a *domain.Allocation)) (*domain.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.items[id]
	if !ok {
		return nil, allocationRepo.ErrAllocationNotFound
	}
	if a.Version != expectedVersion {
		return nil, fmt.Errorf("%w: %s - allocation id=%d", allocationRepo.ErrVersionConflict, op, id)
	}

	apply(a)
	a.Version++
	a.UpdatedAt = s.now()

	cp := *a
	return &cp, nil
}

func (s *Allocations) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return allocationRepo.ErrAllocationNotFound
	}
	delete(s.items, id)
	return nil
}
