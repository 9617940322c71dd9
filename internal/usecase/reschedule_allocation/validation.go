package reschedule_allocation

import (
	"fmt"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AllocationID <= 0 {
		return fmt.Errorf("%w: allocationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidWindow)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidWindow)
	}

	if req.Quantity < 0 || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 0 and %d", ErrInvalidInput, domain.MaxQuantity)
	}

	if req.Version < 0 {
		return fmt.Errorf("%w: version must not be negative", ErrInvalidInput)
	}

	if req.SearchRadiusMinutes < 0 || req.SearchRadiusMinutes > domain.MaxSearchRadiusMinutes {
		return fmt.Errorf("%w: searchRadiusMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxSearchRadiusMinutes)
	}

	return nil
}

// buildWindow строит новое окно и отклоняет окна, начавшиеся до now
func buildWindow(req *Request, now time.Time) (domain.TimeWindow, error) {
	window, err := domain.NewTimeWindow(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	if window.Start.Before(now) {
		return domain.TimeWindow{}, fmt.Errorf("%w: window %s starts in the past", ErrInvalidWindow, window)
	}

	return window, nil
}
