package get_alternative_slots

import (
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() || req.StartTime.IsZero() {
		return fmt.Errorf("%w: date and startTime are required", ErrInvalidWindow)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidWindow)
	}

	if req.DurationMinutes == 0 && req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime or durationMinutes is required", ErrInvalidWindow)
	}

	if req.Quantity < domain.MinQuantity || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	if req.SearchRadiusMinutes < 0 || req.SearchRadiusMinutes > domain.MaxSearchRadiusMinutes {
		return fmt.Errorf("%w: searchRadiusMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxSearchRadiusMinutes)
	}

	return nil
}

// buildWindow окно из времени окончания или из длительности
func buildWindow(req *Request) (domain.TimeWindow, error) {
	var (
		window domain.TimeWindow
		err    error
	)
	if req.DurationMinutes > 0 {
		window, err = domain.NewWindowWithDuration(req.Date, req.StartTime, req.DurationMinutes)
	} else {
		window, err = domain.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	}
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	return window, nil
}
