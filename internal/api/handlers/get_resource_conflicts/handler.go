package get_resource_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidRange      = "некорректный диапазон: ожидаются from и to в формате YYYY-MM-DD, не длиннее 92 дней"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	auditor ConflictAuditor
	logger  Logger
}

func NewHandler(auditor ConflictAuditor, logger Logger) *Handler {
	return &Handler{
		auditor: auditor,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/conflicts?from=YYYY-MM-DD&to=YYYY-MM-DD
// Аудит уже сохранённых активных аллокаций ресурса, пересекающихся друг с другом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, err := handlers.PathInt64(r, "resourceId")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/conflicts - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	from, to, err := ParseRange(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /resources/{id}/conflicts - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	overlaps, err := h.auditor.FindOverlaps(r.Context(), resourceID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, conflicts.ErrInvalidRange):
			h.logger.Warn("GET /resources/{id}/conflicts - Invalid range: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, registry.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/conflicts - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, conflicts.ErrStoreUnavailable), errors.Is(err, registry.ErrStoreUnavailable):
			h.logger.Error("GET /resources/{id}/conflicts - Store unavailable: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /resources/{id}/conflicts - Failed to audit conflicts: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/conflicts - Audit completed: resource_id=%d, overlaps=%d", resourceID, len(overlaps))
	handlers.RespondJSON(w, http.StatusOK, FromDomainOverlaps(resourceID, from, to, overlaps))
}
