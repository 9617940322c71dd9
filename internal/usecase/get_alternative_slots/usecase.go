package get_alternative_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

// UseCase use case поиска ближайших свободных окон для ресурса
type UseCase struct {
	registry ResourceRegistry
	finder   SlotFinder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(registry ResourceRegistry, finder SlotFinder, logger Logger) *UseCase {
	return &UseCase{
		registry: registry,
		finder:   finder,
		logger:   logger,
	}
}

// Execute возвращает свободные окна той же длительности рядом с запрошенным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAlternativeSlots: resource=%d, date=%s, start=%s, end=%s, duration=%d, radius=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.DurationMinutes, req.SearchRadiusMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAlternativeSlots: validation failed: %v", err)
		return nil, err
	}

	window, err := buildWindow(req)
	if err != nil {
		uc.logger.Warn("GetAlternativeSlots: %v", err)
		return nil, err
	}

	// 2. Получаем ресурс
	res, err := uc.registry.Get(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, registry.ErrResourceNotFound) {
			uc.logger.Warn("GetAlternativeSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAlternativeSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrStoreUnavailable, err)
	}

	candidate := &domain.Allocation{
		ResourceID: res.ID,
		Window:     window,
		Quantity:   req.Quantity,
		Status:     domain.StatusPending,
	}
	if res.Kind == domain.KindStaff {
		candidate.Quantity = 1
	}

	// 3. Ищем альтернативы
	alternatives, err := uc.finder.Suggest(ctx, res, candidate, req.SearchRadiusMinutes)
	if err != nil {
		uc.logger.Error("GetAlternativeSlots: failed to search resource id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Response{
		Resource:     res,
		Window:       window,
		Alternatives: alternatives,
	}, nil
}
