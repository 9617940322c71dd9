package change_allocation_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
)

const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
)

const (
	msgInvalidAllocationID = "некорректный ID аллокации"
	msgInvalidAction       = "неизвестное действие, ожидается confirm или complete"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "аллокация не найдена"
	msgInvalidTransition   = "недопустимый переход статуса аллокации"
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

// Handle PATCH /api/v1/allocations/{allocationId}/{action}
// action: confirm (pending -> confirmed), complete (confirmed -> completed)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := handlers.PathInt64(r, "allocationId")
	if err != nil {
		h.logger.Warn("PATCH /allocations/{id}/{action} - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	var transition func(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AllocationResponse, error)
	action := mux.Vars(r)["action"]
	switch action {
	case ActionConfirm:
		transition = h.service.Confirm
	case ActionComplete:
		transition = h.service.Complete
	default:
		h.logger.Warn("PATCH /allocations/{id}/{action} - Unknown action: %q", action)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	var req models.TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /allocations/{id}/%s - Invalid request body: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := transition(r.Context(), allocationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, allocations.ErrInvalidInput):
			h.logger.Warn("PATCH /allocations/{id}/%s - Invalid input: allocation_id=%d, error=%v", action, allocationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, allocations.ErrAllocationNotFound):
			h.logger.Warn("PATCH /allocations/{id}/%s - Allocation not found: allocation_id=%d", action, allocationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, allocations.ErrInvalidTransition):
			h.logger.Warn("PATCH /allocations/{id}/%s - Invalid transition: allocation_id=%d", action, allocationID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, allocations.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /allocations/{id}/%s - Concurrent update: allocation_id=%d", action, allocationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, allocations.ErrStoreUnavailable):
			h.logger.Error("PATCH /allocations/{id}/%s - Store unavailable: allocation_id=%d, error=%v", action, allocationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /allocations/{id}/%s - Failed to change status: allocation_id=%d, error=%v",
				action, allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /allocations/{id}/%s - Status changed successfully: allocation_id=%d, status=%s",
		action, allocationID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
