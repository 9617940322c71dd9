package list_resources

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
)

func newHandler() *Handler {
	log := logger.NewNop()
	reg := registry.NewService(memory.NewResources([]*domain.Resource{
		{ID: 1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
		{ID: 2, Name: "T2", Kind: domain.KindTable, Capacity: 2, Available: false},
		{ID: 3, Name: "Projector", Kind: domain.KindEquipment, Type: "Visual", Capacity: 1, Available: true},
	}), map[string]int{"Visual": 3}, log)
	return NewHandler(reg, log)
}

func get(h *Handler, url string) (*httptest.ResponseRecorder, ResourceListResponse) {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))

	var resp ResourceListResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestHandle_AllKinds(t *testing.T) {
	rec, resp := get(newHandler(), "/api/v1/resources")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Resources, 3)

	for _, r := range resp.Resources {
		if r.ID == 3 {
			assert.Equal(t, 3, r.Capacity)
		}
	}
}

func TestHandle_FilterByKindAndAvailability(t *testing.T) {
	rec, resp := get(newHandler(), "/api/v1/resources?kind=table&onlyAvailable=true")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "T1", resp.Resources[0].Name)
}

func TestHandle_BadParams(t *testing.T) {
	rec, _ := get(newHandler(), "/api/v1/resources?kind=boat")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(newHandler(), "/api/v1/resources?onlyAvailable=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
