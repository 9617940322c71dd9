package request_allocation

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

const (
	outcomeAllocated = "allocated"
	outcomeConflict  = "conflict"
	outcomeError     = "error"
)

// UseCase use case для запроса аллокации ресурса
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

// Execute выполняет use case запроса аллокации
// Проверка конфликтов и вставка выполняются атомарно для ресурса:
// блокировка по ключу ресурса, внутри неё транзакция с advisory-блокировкой ресурса.
// Без ResourceID ресурс подбирается из пула Kind: подходящие по вместимости ресурсы
// пробуются по возрастанию вместимости до первого успешного.
// Конфликт не является ошибкой: возвращается результат проверки и альтернативные окна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestAllocation: resource=%d, kind=%q, date=%s, window=%s-%s, quantity=%d",
		req.ResourceID, req.Kind, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Quantity)

	// 1. Валидация входных данных (до любых обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestAllocation: validation failed: %v", err)
		return nil, err
	}

	// 2. Строим окно и отклоняем прошедшее время
	window, err := buildWindow(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("RequestAllocation: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс или пул ресурсов
	pool, err := uc.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Атомарная проверка и вставка по каждому ресурсу пула
	var (
		rejected     *domain.Resource
		conflict     *domain.ConflictResult
		alternatives [][]domain.TimeWindow
	)
	for _, res := range pool {
		candidate := newCandidate(res, window, req)

		created, c, snap, err := uc.allocate(ctx, res, candidate)
		if err != nil {
			uc.metrics.RecordAllocation(string(res.Kind), outcomeError)
			return nil, err
		}

		if c == nil {
			uc.metrics.RecordAllocation(string(res.Kind), outcomeAllocated)
			uc.logger.Info("RequestAllocation: successfully created allocation id=%d on resource id=%d", created.ID, res.ID)

			// 5. Уведомление отправляется после фиксации и не влияет на результат
			uc.notify(ctx, domain.EventAllocationRequested, res, created)

			return &Response{
				Allocation: created,
				Resource:   res,
			}, nil
		}

		// Альтернативы подбираются по тому же снимку
		alternatives = append(alternatives, uc.finder.SuggestFromSnapshot(snap, candidate, req.SearchRadiusMinutes))
		if conflict == nil {
			rejected, conflict = res, c
		}
		uc.logger.Info("RequestAllocation: resource id=%d window=%s rejected: %s", res.ID, window, c.Reason)
	}

	// 6. Конфликт на всех ресурсах: объединяем альтернативы
	merged := uc.finder.MergeSuggestions(window, alternatives...)
	uc.metrics.RecordAllocation(string(rejected.Kind), outcomeConflict)
	uc.metrics.ObserveSuggestions(string(rejected.Kind), len(merged))

	uc.logger.Info("RequestAllocation: window=%s rejected on %d resource(s): %s, %d alternatives",
		window, len(pool), conflict.Reason, len(merged))
	return &Response{
		Resource:     rejected,
		Conflict:     conflict,
		Alternatives: merged,
	}, nil
}

// resolve возвращает запрошенный ресурс либо непустой пул ресурсов типа req.Kind
func (uc *UseCase) resolve(ctx context.Context, req *Request) ([]*domain.Resource, error) {
	if req.ResourceID > 0 {
		res, err := uc.registry.Get(ctx, req.ResourceID)
		if err != nil {
			if errors.Is(err, registry.ErrResourceNotFound) {
				uc.logger.Warn("RequestAllocation: resource id=%d not found", req.ResourceID)
				return nil, ErrResourceNotFound
			}
			uc.logger.Error("RequestAllocation: failed to get resource id=%d: %v", req.ResourceID, err)
			return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
		}
		return []*domain.Resource{res}, nil
	}

	resources, err := uc.registry.ListByKind(ctx, req.Kind, true)
	if err != nil {
		uc.logger.Error("RequestAllocation: failed to list resources of kind=%s: %v", req.Kind, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrStoreUnavailable, err)
	}

	pool := make([]*domain.Resource, 0, len(resources))
	for _, res := range resources {
		// Вместимость смены - недельные часы, а не размер компании
		if res.Kind != domain.KindStaff && res.Capacity < req.Quantity {
			continue
		}
		pool = append(pool, res)
	}
	if len(pool) == 0 {
		uc.logger.Warn("RequestAllocation: no available %s fits quantity=%d", req.Kind, req.Quantity)
		return nil, fmt.Errorf("%w: no available %s fits quantity %d", ErrResourceNotFound, req.Kind, req.Quantity)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Capacity == pool[j].Capacity {
			return pool[i].ID < pool[j].ID
		}
		return pool[i].Capacity < pool[j].Capacity
	})
	return pool, nil
}

func newCandidate(res *domain.Resource, window domain.TimeWindow, req *Request) *domain.Allocation {
	candidate := &domain.Allocation{
		ResourceID: res.ID,
		Window:     window,
		Quantity:   req.Quantity,
		Status:     domain.StatusPending,
		Notes:      req.Notes,
	}
	// Смена сотрудника всегда занимает одного человека
	if res.Kind == domain.KindStaff {
		candidate.Quantity = 1
	}
	return candidate
}

// allocate держит блокировку ресурса на время транзакции check-then-insert
func (uc *UseCase) allocate(ctx context.Context, res *domain.Resource, candidate *domain.Allocation) (*domain.Allocation, *domain.ConflictResult, *conflicts.Snapshot, error) {
	unlock, err := uc.locker.Lock(ctx, res.LockKey())
	if err != nil {
		uc.logger.Error("RequestAllocation: failed to lock resource id=%d: %v", res.ID, err)
		return nil, nil, nil, fmt.Errorf("%w: failed to lock resource: %v", ErrStoreUnavailable, err)
	}
	defer unlock()

	var (
		created  *domain.Allocation
		conflict *domain.ConflictResult
		snap     *conflicts.Snapshot
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем ресурс в БД до конца транзакции
		if err := uc.allocationRepo.LockResource(txCtx, res.ID); err != nil {
			return fmt.Errorf("%w: failed to lock resource: %v", ErrStoreUnavailable, err)
		}

		// 4.2. Проверяем конфликты
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

		// 4.3. Сохраняем аллокацию
		a, err := uc.allocationRepo.Create(txCtx, candidate)
		if err != nil {
			return fmt.Errorf("%w: failed to create allocation: %v", ErrStoreUnavailable, err)
		}
		created = a
		return nil
	})

	if err != nil {
		uc.logger.Error("RequestAllocation: transaction failed for resource id=%d: %v", res.ID, err)
		// Ошибки begin/commit транзакции
		if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, nil, nil, err
	}

	return created, conflict, snap, nil
}

func (uc *UseCase) notify(ctx context.Context, eventType domain.EventType, res *domain.Resource, allocation *domain.Allocation) {
	event := domain.AllocationEvent{
		Type:         eventType,
		ResourceKind: res.Kind,
		Allocation:   allocation,
		OccurredAt:   uc.timeProvider.Now(),
	}
	if err := uc.notifier.Notify(ctx, event); err != nil {
		uc.metrics.RecordNotificationFailure(string(eventType))
		uc.logger.Warn("RequestAllocation: failed to send %s for allocation id=%d: %v", eventType, allocation.ID, err)
	}
}
