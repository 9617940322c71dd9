package reschedule_allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	allocationRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/allocation"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

const (
	outcomeRescheduled = "rescheduled"
	outcomeConflict    = "conflict"
)

// UseCase use case для переноса аллокации на другое окно
type UseCase struct {
	allocationRepo AllocationRepository
	registry       ResourceRegistry
	detector       ConflictDetector
	finder         SlotFinder
	locker         Locker
	txManager      TransactionManager
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	allocationRepo AllocationRepository,
	registry ResourceRegistry,
	detector ConflictDetector,
	finder SlotFinder,
	locker Locker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		allocationRepo: allocationRepo,
		registry:       registry,
		detector:       detector,
		finder:         finder,
		locker:         locker,
		txManager:      txManager,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute переносит активную аллокацию на новое окно и/или количество
// Сама аллокация исключается из проверки конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAllocation: allocation=%d, date=%s, window=%s-%s, quantity=%d",
		req.AllocationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAllocation: validation failed: %v", err)
		return nil, err
	}

	window, err := buildWindow(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("RescheduleAllocation: %v", err)
		return nil, err
	}

	// 2. Получаем аллокацию и её ресурс
	current, err := uc.getActive(ctx, req.AllocationID)
	if err != nil {
		return nil, err
	}

	res, err := uc.registry.Get(ctx, current.ResourceID)
	if err != nil {
		if errors.Is(err, registry.ErrResourceNotFound) {
			uc.logger.Warn("RescheduleAllocation: resource id=%d not found", current.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("RescheduleAllocation: failed to get resource id=%d: %v", current.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
	}

	// 3. Атомарная проверка и обновление
	updated, conflict, candidate, snap, err := uc.reschedule(ctx, res, req, window)
	if err != nil {
		return nil, err
	}

	if conflict != nil {
		alternatives := uc.finder.SuggestFromSnapshot(snap, candidate, req.SearchRadiusMinutes)
		uc.metrics.RecordAllocation(string(res.Kind), outcomeConflict)

		uc.logger.Info("RescheduleAllocation: allocation id=%d to %s rejected: %s, %d alternatives",
			req.AllocationID, window, conflict.Reason, len(alternatives))
		return &Response{
			Resource:     res,
			Conflict:     conflict,
			Alternatives: alternatives,
		}, nil
	}

	uc.metrics.RecordAllocation(string(res.Kind), outcomeRescheduled)
	uc.logger.Info("RescheduleAllocation: successfully moved allocation id=%d to %s", updated.ID, updated.Window)

	// 4. Уведомление
	event := domain.AllocationEvent{
		Type:         domain.EventAllocationRescheduled,
		ResourceKind: res.Kind,
		Allocation:   updated,
		OccurredAt:   uc.timeProvider.Now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.metrics.RecordNotificationFailure(string(event.Type))
		uc.logger.Warn("RescheduleAllocation: failed to send %s for allocation id=%d: %v", event.Type, updated.ID, err)
	}

	return &Response{
		Allocation: updated,
		Resource:   res,
	}, nil
}

func (uc *UseCase) reschedule(ctx context.Context, res *domain.Resource, req *Request, window domain.TimeWindow) (*domain.Allocation, *domain.ConflictResult, *domain.Allocation, *conflicts.Snapshot, error) {
	unlock, err := uc.locker.Lock(ctx, res.LockKey())
	if err != nil {
		uc.logger.Error("RescheduleAllocation: failed to lock resource id=%d: %v", res.ID, err)
		return nil, nil, nil, nil, fmt.Errorf("%w: failed to lock resource: %v", ErrStoreUnavailable, err)
	}
	defer unlock()

	var (
		updated   *domain.Allocation
		conflict  *domain.ConflictResult
		candidate *domain.Allocation
		snap      *conflicts.Snapshot
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.allocationRepo.LockResource(txCtx, res.ID); err != nil {
			return fmt.Errorf("%w: failed to lock resource: %v", ErrStoreUnavailable, err)
		}

		// 3.1. Перечитываем аллокацию под блокировкой
		fresh, err := uc.getActive(txCtx, req.AllocationID)
		if err != nil {
			return err
		}
		if req.Version != 0 && fresh.Version != req.Version {
			return fmt.Errorf("%w: expected version %d, got %d", ErrConcurrentUpdate, req.Version, fresh.Version)
		}

		// 3.2. Кандидат сохраняет ID, поэтому детектор не видит старое окно
		c := *fresh
		c.Window = window
		if req.Quantity > 0 && res.Kind != domain.KindStaff {
			c.Quantity = req.Quantity
		}
		candidate = &c

		result, s, err := uc.detector.Evaluate(txCtx, res, candidate)
		if err != nil {
			if errors.Is(err, conflicts.ErrInvalidCandidate) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: failed to evaluate conflicts: %v", ErrStoreUnavailable, err)
		}
		if result.Conflict {
			conflict, snap = result, s
			return nil
		}

		// 3.3. Обновляем окно с проверкой версии
		a, err := uc.allocationRepo.UpdateWindow(txCtx, fresh.ID, fresh.Version, candidate.Window, candidate.Quantity)
		if err != nil {
			if errors.Is(err, allocationRepo.ErrVersionConflict) {
				return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
			}
			if errors.Is(err, allocationRepo.ErrAllocationNotFound) {
				return ErrAllocationNotFound
			}
			return fmt.Errorf("%w: failed to update allocation: %v", ErrStoreUnavailable, err)
		}
		updated = a
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAllocationNotFound),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrConcurrentUpdate),
			errors.Is(err, ErrInvalidInput),
			errors.Is(err, ErrStoreUnavailable):
		default:
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Warn("RescheduleAllocation: allocation id=%d not moved: %v", req.AllocationID, err)
		return nil, nil, nil, nil, err
	}

	return updated, conflict, candidate, snap, nil
}

// getActive получает аллокацию и проверяет, что её ещё можно переносить
func (uc *UseCase) getActive(ctx context.Context, id int64) (*domain.Allocation, error) {
	a, err := uc.allocationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, allocationRepo.ErrAllocationNotFound) {
			uc.logger.Warn("RescheduleAllocation: allocation id=%d not found", id)
			return nil, ErrAllocationNotFound
		}
		uc.logger.Error("RescheduleAllocation: repository error for allocation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get allocation: %v", ErrStoreUnavailable, err)
	}

	if !a.IsActive() {
		uc.logger.Warn("RescheduleAllocation: allocation id=%d has status=%s", id, a.Status)
		return nil, fmt.Errorf("%w: status %s", ErrInvalidTransition, a.Status)
	}
	return a, nil
}
