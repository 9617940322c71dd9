package get_alternative_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	getAlternativeSlots "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_alternative_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidParams     = "некорректные параметры: date YYYY-MM-DD, startTime HH:MM, endTime или durationMinutes"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	useCase GetAlternativeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAlternativeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/alternatives
// Query params: date, startTime (required), endTime | durationMinutes, quantity, radiusMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/alternatives - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(resourceID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/alternatives - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAlternativeSlots.ErrInvalidWindow),
			errors.Is(err, getAlternativeSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/alternatives - Invalid request: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAlternativeSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/alternatives - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAlternativeSlots.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id}/alternatives - Store unavailable: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/alternatives - Failed to find alternatives: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/alternatives - Alternatives found: resource_id=%d, count=%d",
		resourceID, len(result.Alternatives))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
