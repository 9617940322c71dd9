package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	resourceRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/resource"
)

// Service реестр ресурсов
// Вместимость оборудования берётся из конфигурации по типу, если она там задана
type Service struct {
	repo                ResourceRepository
	equipmentCapacities map[string]int
	logger              Logger
}

// NewService создает реестр; capacities - вместимость оборудования по типу
func NewService(repo ResourceRepository, capacities map[string]int, logger Logger) *Service {
	caps := make(map[string]int, len(capacities))
	for k, v := range capacities {
		caps[k] = v
	}
	return &Service{
		repo:                repo,
		equipmentCapacities: caps,
		logger:              logger,
	}
}

// Get получает ресурс по ID
func (s *Service) Get(ctx context.Context, id int64) (*domain.Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("Get: resource id=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrResourceNotFound, id)
		}
		s.logger.Error("Get: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrStoreUnavailable, err)
	}

	s.applyCapacity(res)
	return res, nil
}

// ListByKind получает ресурсы заданного типа
func (s *Service) ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	resources, err := s.repo.ListByKind(ctx, kind, onlyAvailable)
	if err != nil {
		s.logger.Error("ListByKind: repository error for kind=%s: %v", kind, err)
		return nil, fmt.Errorf("%w: ListByKind - repository error: %v", ErrStoreUnavailable, err)
	}

	for _, res := range resources {
		s.applyCapacity(res)
	}
	return resources, nil
}

// CapacityOf вместимость ресурса с учётом конфигурации
func (s *Service) CapacityOf(ctx context.Context, id int64) (int, error) {
	res, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return res.Capacity, nil
}

func (s *Service) applyCapacity(res *domain.Resource) {
	if res.Kind != domain.KindEquipment {
		return
	}
	if capacity, ok := s.equipmentCapacities[res.Type]; ok {
		res.Capacity = capacity
		return
	}
	if res.Capacity <= 0 {
		res.Capacity = domain.DefaultEquipmentCapacity
	}
}
