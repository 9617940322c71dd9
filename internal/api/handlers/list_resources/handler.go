package list_resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/RMS-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
)

const (
	msgInvalidKind          = "некорректный тип ресурса"
	msgInvalidOnlyAvailable = "onlyAvailable должен быть true или false"
)

// ResourceListResponse список ресурсов
type ResourceListResponse struct {
	Resources []handlers.ResourceResponse `json:"resources"`
}

type Handler struct {
	registry ResourceRegistry
	logger   Logger
}

func NewHandler(registry ResourceRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/resources
// Query params: kind (опционально), onlyAvailable (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kinds := domain.ResourceKinds
	if s := r.URL.Query().Get("kind"); s != "" {
		kinds = []domain.ResourceKind{domain.ResourceKind(s)}
	}

	onlyAvailable := false
	if s := r.URL.Query().Get("onlyAvailable"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /resources - Invalid onlyAvailable: %s", s)
			handlers.RespondBadRequest(w, msgInvalidOnlyAvailable)
			return
		}
		onlyAvailable = v
	}

	resp := ResourceListResponse{Resources: []handlers.ResourceResponse{}}
	for _, kind := range kinds {
		list, err := h.registry.ListByKind(r.Context(), kind, onlyAvailable)
		if err != nil {
			if errors.Is(err, registry.ErrInvalidKind) {
				h.logger.Warn("GET /resources - Invalid kind: %s", kind)
				handlers.RespondBadRequest(w, msgInvalidKind)
				return
			}
			h.logger.Error("GET /resources - Failed to list resources: kind=%s, error=%v", kind, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		for _, res := range list {
			resp.Resources = append(resp.Resources, *handlers.FromDomainResource(res))
		}
	}

	h.logger.Info("GET /resources - Resources retrieved successfully: count=%d", len(resp.Resources))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
