package check_availability

import (
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
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

	if req.AllocationID < 0 {
		return fmt.Errorf("%w: allocationID must not be negative", ErrInvalidInput)
	}

	if req.SearchRadiusMinutes < 0 || req.SearchRadiusMinutes > domain.MaxSearchRadiusMinutes {
		return fmt.Errorf("%w: searchRadiusMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxSearchRadiusMinutes)
	}

	return nil
}
