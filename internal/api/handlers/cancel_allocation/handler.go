package cancel_allocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

const (
	msgInvalidAllocationID = "некорректный ID аллокации"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "аллокация не найдена"
	msgCannotCancel        = "аллокация уже отменена или завершена"
	msgConcurrentUpdate    = "аллокация изменена другим запросом, обновите данные и повторите"
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

// Handle PATCH /api/v1/allocations/{allocationId}/cancel
// Body (опционально): {"reason": "...", "version": 2}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := handlers.PathInt64(r, "allocationId")
	if err != nil {
		h.logger.Warn("PATCH /allocations/{id}/cancel - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	var req models.CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /allocations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), allocationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, allocations.ErrInvalidInput):
			h.logger.Warn("PATCH /allocations/{id}/cancel - Invalid input: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, allocations.ErrAllocationNotFound):
			h.logger.Warn("PATCH /allocations/{id}/cancel - Allocation not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, allocations.ErrInvalidTransition):
			h.logger.Warn("PATCH /allocations/{id}/cancel - Cannot cancel: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, allocations.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /allocations/{id}/cancel - Concurrent update: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, allocations.ErrStoreUnavailable):
			h.logger.Error("PATCH /allocations/{id}/cancel - Store unavailable: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /allocations/{id}/cancel - Failed to cancel allocation: allocation_id=%d, error=%v",
				allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /allocations/{id}/cancel - Allocation cancelled successfully: allocation_id=%d", allocationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
