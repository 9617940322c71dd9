package get_available_slots

import (
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

// suitableResources ресурсы, способные принять компанию целиком
func suitableResources(resources []*domain.Resource, kind domain.ResourceKind, quantity int) []*domain.Resource {
	result := make([]*domain.Resource, 0, len(resources))
	for _, res := range resources {
		// Вместимость сотрудника - недельный лимит часов, а не размер компании
		if kind != domain.KindStaff && res.Capacity < quantity {
			continue
		}
		result = append(result, res)
	}
	return result
}

// buildSlots собирает слоты по всем стартам сетки; free - свободные ресурсы по минуте начала
func buildSlots(date time.Time, starts []int, durationMinutes int, free map[int][]int64, total int, now time.Time) []Slot {
	result := make([]Slot, 0, len(starts))

	for _, m := range starts {
		start := types.AtMinute(date, m)
		window, err := domain.NewWindowFromTimes(start, start.Add(time.Duration(durationMinutes)*time.Minute))
		if err != nil {
			continue
		}

		// Слоты, которые уже начались, не предлагаем
		if window.Start.Before(now) {
			continue
		}

		ids := free[m]
		if ids == nil {
			ids = []int64{}
		}
		available := domain.AvailableSlot{
			Window:               window,
			AvailableResourceIDs: ids,
			TotalResources:       total,
		}

		result = append(result, Slot{
			StartTime:            window.StartTime(),
			EndTime:              window.EndTime(),
			AvailableResourceIDs: available.AvailableResourceIDs,
			AvailableSpots:       available.AvailableSpots(),
			TotalSpots:           available.TotalResources,
			OccupancyRate:        available.OccupancyRate(),
		})
	}

	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
