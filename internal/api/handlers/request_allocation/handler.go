package request_allocation

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	requestAllocation "github.com/m04kA/RMS-AvailabilityService/internal/usecase/request_allocation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное окно: ожидается дата YYYY-MM-DD и время HH:MM, начало раньше конца и не в прошлом"
	msgInvalidInput       = "некорректные параметры аллокации"
	msgResourceNotFound   = "ресурс не найден"
)

type Handler struct {
	useCase RequestAllocationUseCase
	logger  Logger
}

func NewHandler(useCase RequestAllocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/allocations
// 201 - аллокация создана, 409 - конфликт с причиной и альтернативами
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestAllocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /allocations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /allocations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestAllocation.ErrInvalidWindow):
			h.logger.Warn("POST /allocations - Invalid window: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, requestAllocation.ErrInvalidInput):
			h.logger.Warn("POST /allocations - Invalid input: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, requestAllocation.ErrResourceNotFound):
			h.logger.Warn("POST /allocations - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, requestAllocation.ErrStoreUnavailable):
			h.logger.Error("POST /allocations - Store unavailable: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /allocations - Failed to request allocation: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Granted() {
		h.logger.Info("POST /allocations - Conflict: resource_id=%d, reason=%s, alternatives=%d",
			req.ResourceID, result.Conflict.Reason, len(result.Alternatives))
		handlers.RespondJSON(w, http.StatusConflict, FromConflict(result))
		return
	}

	h.logger.Info("POST /allocations - Allocation created successfully: allocation_id=%d, resource_id=%d",
		result.Allocation.ID, result.Allocation.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAllocation(result.Allocation))
}
