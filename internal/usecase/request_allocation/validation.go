package request_allocation

import (
	"fmt"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	switch {
	case req.ResourceID < 0:
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	case req.ResourceID > 0 && req.Kind != "":
		return fmt.Errorf("%w: either resourceID or kind must be set, not both", ErrInvalidInput)
	case req.ResourceID == 0 && !req.Kind.IsValid():
		return fmt.Errorf("%w: resourceID or a valid kind is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidWindow)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidWindow)
	}

	if req.Quantity < domain.MinQuantity || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.SearchRadiusMinutes < 0 || req.SearchRadiusMinutes > domain.MaxSearchRadiusMinutes {
		return fmt.Errorf("%w: searchRadiusMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxSearchRadiusMinutes)
	}

	return nil
}

// buildWindow строит окно и отклоняет окна, начавшиеся до now
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
