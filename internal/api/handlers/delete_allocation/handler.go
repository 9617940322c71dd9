package delete_allocation

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

// Handle DELETE /api/v1/allocations/{allocationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := handlers.PathInt64(r, "allocationId")
	if err != nil {
		h.logger.Warn("DELETE /allocations/{id} - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	if err := h.service.Delete(r.Context(), allocationID); err != nil {
		switch {
		case errors.Is(err, allocations.ErrAllocationNotFound):
			h.logger.Warn("DELETE /allocations/{id} - Allocation not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, allocations.ErrStoreUnavailable):
			h.logger.Error("DELETE /allocations/{id} - Store unavailable: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /allocations/{id} - Failed to delete allocation: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /allocations/{id} - Allocation deleted successfully: allocation_id=%d", allocationID)
	w.WriteHeader(http.StatusNoContent)
}
