package get_resource_allocations

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidParams     = "некорректные параметры запроса"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	service AllocationService
	logger  Logger
}

func NewHandler(service AllocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/allocations
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/allocations - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	serviceReq, err := ToServiceRequest(resourceID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/allocations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListForResource(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, allocations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/allocations - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, allocations.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/allocations - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, allocations.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id}/allocations - Store unavailable: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/allocations - Failed to list allocations: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/allocations - Allocations retrieved successfully: resource_id=%d, count=%d",
		resourceID, len(result.Allocations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
