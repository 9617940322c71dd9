package get_allocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations"
)

const (
	msgInvalidAllocationID = "некорректный ID аллокации"
	msgNotFound            = "аллокация не найдена"
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

// Handle GET /api/v1/allocations/{allocationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := handlers.PathInt64(r, "allocationId")
	if err != nil {
		h.logger.Warn("GET /allocations/{id} - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	result, err := h.service.GetByID(r.Context(), allocationID)
	if err != nil {
		switch {
		case errors.Is(err, allocations.ErrAllocationNotFound):
			h.logger.Warn("GET /allocations/{id} - Allocation not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, allocations.ErrStoreUnavailable):
			h.logger.Error("GET /allocations/{id} - Store unavailable: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /allocations/{id} - Failed to get allocation: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /allocations/{id} - Allocation retrieved successfully: allocation_id=%d", allocationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
