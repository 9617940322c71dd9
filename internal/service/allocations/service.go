package allocations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	allocationRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/allocation"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

// Service сервис для работы с жизненным циклом аллокаций
type Service struct {
	allocationRepo AllocationRepository
	registry       ResourceRegistry
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса аллокаций
func NewService(
	allocationRepo AllocationRepository,
	registry ResourceRegistry,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		allocationRepo: allocationRepo,
		registry:       registry,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// GetByID получает аллокацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AllocationResponse, error) {
	s.logger.Info("GetByID: fetching allocation id=%d", id)

	a, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAllocation(a), nil
}

// ListForResource получает аллокации ресурса за период
// По умолчанию возвращает только активные; IncludeInactive или Status расширяют выборку
func (s *Service) ListForResource(ctx context.Context, req *models.ListRequest) (*models.AllocationListResponse, error) {
	s.logger.Info("ListForResource: fetching allocations for resource=%d", req.ResourceID)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("ListForResource: invalid period for resource=%d", req.ResourceID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	// Проверяем существование ресурса
	if _, err := s.registry.Get(ctx, req.ResourceID); err != nil {
		if errors.Is(err, registry.ErrResourceNotFound) {
			s.logger.Warn("ListForResource: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("ListForResource: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListForResource - registry error: %v", ErrStoreUnavailable, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForResource: invalid filter for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.allocationRepo.FindByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForResource: repository error for resource=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: ListForResource - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListForResource: successfully fetched %d allocations for resource=%d", len(list), req.ResourceID)
	return models.FromDomainAllocationList(list), nil
}

// Confirm переводит аллокацию pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AllocationResponse, error) {
	return s.transition(ctx, "Confirm", id, req.Version, domain.StatusConfirmed, nil, domain.EventAllocationConfirmed)
}

// Complete переводит аллокацию confirmed -> completed
func (s *Service) Complete(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AllocationResponse, error) {
	return s.transition(ctx, "Complete", id, req.Version, domain.StatusCompleted, nil, domain.EventAllocationCompleted)
}

// Cancel отменяет активную аллокацию; освободившееся окно сразу доступно для новых запросов
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) (*models.AllocationResponse, error) {
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	return s.transition(ctx, "Cancel", id, req.Version, domain.StatusCancelled, reason, domain.EventAllocationCancelled)
}

// Delete удаляет аллокацию
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting allocation id=%d", id)

	a, err := s.get(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.allocationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, allocationRepo.ErrAllocationNotFound) {
			s.logger.Warn("Delete: allocation id=%d not found during deletion", id)
			return ErrAllocationNotFound
		}
		s.logger.Error("Delete: repository error for allocation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Delete: successfully deleted allocation id=%d", id)
	s.notify(ctx, domain.EventAllocationDeleted, a)
	return nil
}

// transition проверяет допустимость перехода и обновляет статус с проверкой версии
// expectedVersion = 0 означает текущую версию
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	expectedVersion int,
	next domain.AllocationStatus,
	reason *string,
	event domain.EventType,
) (*models.AllocationResponse, error) {
	s.logger.Info("%s: allocation id=%d -> %s", op, id, next)

	if expectedVersion < 0 {
		return nil, fmt.Errorf("%w: version must not be negative", ErrInvalidInput)
	}

	a, err := s.get(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if expectedVersion != 0 && a.Version != expectedVersion {
		s.logger.Warn("%s: allocation id=%d has version %d, expected %d", op, id, a.Version, expectedVersion)
		return nil, fmt.Errorf("%w: expected version %d, got %d", ErrConcurrentUpdate, expectedVersion, a.Version)
	}

	if !a.Status.CanTransitionTo(next) {
		s.logger.Warn("%s: allocation id=%d cannot move from %s to %s", op, id, a.Status, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
	}

	updated, err := s.allocationRepo.UpdateStatus(ctx, id, a.Version, next, reason)
	if err != nil {
		switch {
		case errors.Is(err, allocationRepo.ErrVersionConflict):
			s.logger.Warn("%s: allocation id=%d was modified concurrently", op, id)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case errors.Is(err, allocationRepo.ErrAllocationNotFound):
			return nil, ErrAllocationNotFound
		}
		s.logger.Error("%s: repository error for allocation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}

	s.logger.Info("%s: successfully moved allocation id=%d to status=%s", op, id, next)
	s.notify(ctx, event, updated)
	return models.FromDomainAllocation(updated), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Allocation, error) {
	a, err := s.allocationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, allocationRepo.ErrAllocationNotFound) {
			s.logger.Warn("%s: allocation id=%d not found", op, id)
			return nil, ErrAllocationNotFound
		}
		s.logger.Error("%s: repository error for allocation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
	}
	return a, nil
}

// notify ошибки доставки только логируются, изменение уже сохранено
func (s *Service) notify(ctx context.Context, eventType domain.EventType, a *domain.Allocation) {
	event := domain.AllocationEvent{
		Type:       eventType,
		Allocation: a,
		OccurredAt: s.timeProvider.Now(),
	}
	if res, err := s.registry.Get(ctx, a.ResourceID); err == nil {
		event.ResourceKind = res.Kind
	}

	if err := s.notifier.Notify(ctx, event); err != nil {
		s.metrics.RecordNotificationFailure(string(eventType))
		s.logger.Warn("Notify: failed to send %s for allocation id=%d: %v", eventType, a.ID, err)
	}
}
