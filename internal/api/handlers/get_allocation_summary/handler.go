package get_allocation_summary

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	getAllocationSummary "github.com/m04kA/RMS-AvailabilityService/internal/usecase/get_allocation_summary"
)

const (
	msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidKind = "некорректный тип ресурса"
)

type Handler struct {
	useCase GetAllocationSummaryUseCase
	logger  Logger
}

func NewHandler(useCase GetAllocationSummaryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/summary
// Query params: date (required), kind (опционально, по умолчанию все типы)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /summary - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	kind := domain.ResourceKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.IsValid() {
		h.logger.Warn("GET /summary - Invalid kind: %s", kind)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAllocationSummary.Request{Date: date, Kind: kind})
	if err != nil {
		switch {
		case errors.Is(err, getAllocationSummary.ErrInvalidInput):
			h.logger.Warn("GET /summary - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKind)

		case errors.Is(err, getAllocationSummary.ErrStoreUnavailable):
			h.logger.Error("GET /summary - Store unavailable: error=%v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /summary - Failed to build summary: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /summary - Summary built successfully: date=%s, kinds=%d",
		date.Format(domain.DateFormat), len(result.Summaries))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
