package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

// UseCase use case проверки доступности без изменения состояния
type UseCase struct {
	registry ResourceRegistry
	detector ConflictDetector
	finder   SlotFinder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry ResourceRegistry, detector ConflictDetector, finder SlotFinder, logger Logger) *UseCase {
	return &UseCase{
		registry: registry,
		detector: detector,
		finder:   finder,
		logger:   logger,
	}
}

// Execute проверяет кандидата на конфликты; повторный вызов без изменений в хранилище даёт тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: resource=%d, date=%s, window=%s-%s, quantity=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	window, err := domain.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid window: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	// 2. Получаем ресурс
	res, err := uc.registry.Get(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, registry.ErrResourceNotFound) {
			uc.logger.Warn("CheckAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
	}

	candidate := &domain.Allocation{
		ID:         req.AllocationID,
		ResourceID: res.ID,
		Window:     window,
		Quantity:   req.Quantity,
		Status:     domain.StatusPending,
	}
	if res.Kind == domain.KindStaff {
		candidate.Quantity = 1
	}

	// 3. Проверяем конфликты
	result, snap, err := uc.detector.Evaluate(ctx, res, candidate)
	if err != nil {
		if errors.Is(err, conflicts.ErrInvalidCandidate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("CheckAvailability: failed to evaluate resource id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	resp := &Response{
		Resource:     res,
		Window:       window,
		Result:       result,
		Alternatives: []domain.TimeWindow{},
	}

	// 4. При конфликте подбираем альтернативы
	if result.Conflict {
		resp.Alternatives = uc.finder.SuggestFromSnapshot(snap, candidate, req.SearchRadiusMinutes)
	}

	uc.logger.Info("CheckAvailability: resource id=%d window=%s conflict=%t, %d alternatives",
		res.ID, window, result.Conflict, len(resp.Alternatives))
	return resp, nil
}
