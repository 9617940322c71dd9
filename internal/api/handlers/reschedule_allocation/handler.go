package reschedule_allocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	rescheduleAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/reschedule_allocation"
)

const (
	msgInvalidAllocationID = "некорректный ID аллокации"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidWindow       = "некорректное окно: ожидается дата YYYY-MM-DD и время HH:MM, начало раньше конца и не в прошлом"
	msgInvalidInput        = "некорректные параметры переноса"
	msgNotFound            = "аллокация не найдена"
	msgResourceNotFound    = "ресурс аллокации не найден"
	msgNotActive           = "отменённую или завершённую аллокацию нельзя перенести"
	msgConcurrentUpdate    = "аллокация изменена другим запросом, обновите данные и повторите"
)

type Handler struct {
	useCase RescheduleAllocationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/allocations/{allocationId}/window
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	allocationID, err := handlers.PathInt64(r, "allocationId")
	if err != nil {
		h.logger.Warn("PUT /allocations/{id}/window - Invalid allocation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAllocationID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /allocations/{id}/window - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(allocationID)
	if err != nil {
		h.logger.Warn("PUT /allocations/{id}/window - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAllocation.ErrInvalidWindow):
			h.logger.Warn("PUT /allocations/{id}/window - Invalid window: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, rescheduleAllocation.ErrInvalidInput):
			h.logger.Warn("PUT /allocations/{id}/window - Invalid input: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleAllocation.ErrAllocationNotFound):
			h.logger.Warn("PUT /allocations/{id}/window - Allocation not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAllocation.ErrResourceNotFound):
			h.logger.Warn("PUT /allocations/{id}/window - Resource not found: allocation_id=%d", allocationID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, rescheduleAllocation.ErrInvalidTransition):
			h.logger.Warn("PUT /allocations/{id}/window - Allocation not active: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, rescheduleAllocation.ErrConcurrentUpdate):
			h.logger.Warn("PUT /allocations/{id}/window - Concurrent update: allocation_id=%d", allocationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, rescheduleAllocation.ErrStoreUnavailable):
			h.logger.Error("PUT /allocations/{id}/window - Store unavailable: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /allocations/{id}/window - Failed to reschedule: allocation_id=%d, error=%v", allocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Rescheduled() {
		h.logger.Info("PUT /allocations/{id}/window - Conflict: allocation_id=%d, reason=%s, alternatives=%d",
			allocationID, result.Conflict.Reason, len(result.Alternatives))
		handlers.RespondJSON(w, http.StatusConflict, FromConflict(result))
		return
	}

	h.logger.Info("PUT /allocations/{id}/window - Allocation rescheduled successfully: allocation_id=%d, version=%d",
		allocationID, result.Allocation.Version)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAllocation(result.Allocation))
}
