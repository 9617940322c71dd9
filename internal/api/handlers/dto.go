package handlers

import (
	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// ResourceResponse модель ресурса
type ResourceResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Type      string `json:"type,omitempty"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}

// FromDomainResource конвертирует ресурс в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}
	return &ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		Kind:      string(r.Kind),
		Type:      r.Type,
		Capacity:  r.Capacity,
		Available: r.Available,
	}
}
