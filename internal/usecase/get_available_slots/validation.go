package get_available_slots

import (
	"fmt"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Kind.IsValid() {
		return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.Kind)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Kind != domain.KindStaff && (req.PartySize < domain.MinQuantity || req.PartySize > domain.MaxQuantity) {
		return fmt.Errorf("%w: partySize must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > 24*60 {
		return fmt.Errorf("%w: durationMinutes must be between 0 and %d", ErrInvalidInput, 24*60)
	}

	return nil
}
