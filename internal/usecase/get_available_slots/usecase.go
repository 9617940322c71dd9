package get_available_slots

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// UseCase use case для получения доступных слотов по типу ресурса
type UseCase struct {
	registry     ResourceRegistry
	finder       SlotFinder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	registry ResourceRegistry,
	finder SlotFinder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		registry:     registry,
		finder:       finder,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Слот - старт сетки типа ресурса; в нём перечислены ресурсы, свободные на всё окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: kind=%s, date=%s, partySize=%d, duration=%d",
		req.Kind, req.Date.Format(domain.DateFormat), req.PartySize, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	grid := uc.finder.Grid(req.Kind)
	duration := req.DurationMinutes
	if duration == 0 {
		duration = grid.DefaultDurationMinutes
	}
	quantity := req.PartySize
	if req.Kind == domain.KindStaff {
		quantity = 1
	}

	// 3. Получаем доступные ресурсы подходящей вместимости
	resources, err := uc.registry.ListByKind(ctx, req.Kind, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list resources of kind=%s: %v", req.Kind, err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrStoreUnavailable, err)
	}
	suitable := suitableResources(resources, req.Kind, quantity)

	// 4. Для каждого ресурса находим свободные окна
	free := make(map[int][]int64)
	for _, res := range suitable {
		windows, err := uc.finder.DaySlots(ctx, res, req.Date, duration, quantity)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to scan resource id=%d: %v", res.ID, err)
			return nil, fmt.Errorf("%w: failed to scan resource id=%d: %v", ErrStoreUnavailable, res.ID, err)
		}
		for _, w := range windows {
			free[w.StartMinute()] = append(free[w.StartMinute()], res.ID)
		}
	}
	for m := range free {
		sort.Slice(free[m], func(i, j int) bool { return free[m][i] < free[m][j] })
	}

	// 5. Собираем слоты по сетке
	slots := buildSlots(req.Date, grid.Starts(duration), duration, free, len(suitable), now)

	uc.logger.Info("GetAvailableSlots: generated %d slots for kind=%s, date=%s from %d resources",
		len(slots), req.Kind, req.Date.Format(domain.DateFormat), len(suitable))

	return &Response{
		Date:            req.Date,
		Kind:            req.Kind,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
