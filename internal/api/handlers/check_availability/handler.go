package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	checkAvailability "github.com/m04kA/RMS-AvailabilityService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное окно: ожидается дата YYYY-MM-DD и время HH:MM, начало раньше конца"
	msgInvalidInput       = "некорректные параметры проверки"
	msgResourceNotFound   = "ресурс не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
// Только чтение: конфликт возвращается в теле ответа со статусом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidWindow):
			h.logger.Warn("POST /availability/check - Invalid window: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid input: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrResourceNotFound):
			h.logger.Warn("POST /availability/check - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, checkAvailability.ErrStoreUnavailable):
			h.logger.Error("POST /availability/check - Store unavailable: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /availability/check - Failed to check availability: resource_id=%d, error=%v", req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - Checked: resource_id=%d, available=%t, alternatives=%d",
		req.ResourceID, result.Available(), len(result.Alternatives))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
