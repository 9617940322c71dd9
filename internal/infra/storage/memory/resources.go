package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	resourceRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/resource"
)

// Resources хранилище ресурсов в памяти, наполняется из конфигурации
type Resources struct {
	mu    sync.RWMutex
	items map[int64]*domain.Resource
}

func NewResources(seed []*domain.Resource) *Resources {
	r := &Resources{items: make(map[int64]*domain.Resource, len(seed))}
	for _, res := range seed {
		cp := *res
		r.items[res.ID] = &cp
	}
	return r
}

func (r *Resources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, resourceRepo.ErrResourceNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *Resources) ListByKind(_ context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Resource, 0)
	for _, res := range r.items {
		if res.Kind != kind || (onlyAvailable && !res.Available) {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
