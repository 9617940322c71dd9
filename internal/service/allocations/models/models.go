package models

import (
	"errors"
	"time"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid allocation status")
)

// Request модели

// CancelRequest запрос на отмену аллокации
type CancelRequest struct {
	Reason  string `json:"reason" validate:"max=500"`
	Version int    `json:"version,omitempty" validate:"min=0"` // Ожидаемая версия (опционально)
}

// TransitionRequest запрос на подтверждение или завершение аллокации
type TransitionRequest struct {
	Version int `json:"version,omitempty" validate:"min=0"` // Ожидаемая версия (опционально)
}

// ListRequest запрос на получение аллокаций ресурса
type ListRequest struct {
	ResourceID      int64      `json:"resourceId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, не включая (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AllocationFilter, error) {
	resourceID := r.ResourceID
	filter := domain.AllocationFilter{
		ResourceID: &resourceID,
		From:       r.From,
		To:         r.To,
	}

	switch {
	case r.Status != nil:
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.AllocationStatus{status}
	case !r.IncludeInactive:
		filter.Statuses = domain.ActiveStatuses
	}

	return filter, nil
}

// Response модели

// AllocationResponse ответ с данными аллокации
type AllocationResponse struct {
	ID              int64   `json:"id"`
	ResourceID      int64   `json:"resourceId"`
	Date            string  `json:"date"`      // "2024-06-01"
	StartTime       string  `json:"startTime"` // "18:00"
	EndTime         string  `json:"endTime"`   // "20:00", "24:00" для окна до полуночи
	DurationMinutes int     `json:"durationMinutes"`
	Quantity        int     `json:"quantity"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	Version         int     `json:"version"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AllocationListResponse ответ со списком аллокаций
type AllocationListResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
}

// WindowResponse временное окно
type WindowResponse struct {
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ConflictResponse результат проверки конфликтов
type ConflictResponse struct {
	Conflict               bool                 `json:"conflict"`
	Reason                 string               `json:"reason"`
	Message                string               `json:"message,omitempty"`
	ConflictingAllocations []AllocationResponse `json:"conflictingAllocations"`
}

// Методы конвертации

// FromDomainAllocation конвертирует domain модель в DTO
func FromDomainAllocation(a *domain.Allocation) *AllocationResponse {
	if a == nil {
		return nil
	}

	return &AllocationResponse{
		ID:                 a.ID,
		ResourceID:         a.ResourceID,
		Date:               a.Window.Date().Format(domain.DateFormat),
		StartTime:          a.Window.StartTime().String(),
		EndTime:            a.Window.EndTime().String(),
		DurationMinutes:    a.Window.DurationMinutes(),
		Quantity:           a.Quantity,
		Status:             string(a.Status),
		Notes:              a.Notes,
		Version:            a.Version,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAllocationList конвертирует список domain моделей в DTO
func FromDomainAllocationList(allocations []*domain.Allocation) *AllocationListResponse {
	resp := &AllocationListResponse{
		Allocations: make([]AllocationResponse, 0, len(allocations)),
	}

	for _, a := range allocations {
		if r := FromDomainAllocation(a); r != nil {
			resp.Allocations = append(resp.Allocations, *r)
		}
	}

	return resp
}

// FromDomainWindow конвертирует окно в DTO
func FromDomainWindow(w domain.TimeWindow) WindowResponse {
	return WindowResponse{
		Date:            w.Date().Format(domain.DateFormat),
		StartTime:       w.StartTime().String(),
		EndTime:         w.EndTime().String(),
		DurationMinutes: w.DurationMinutes(),
	}
}

// FromDomainWindows конвертирует список окон в DTO
func FromDomainWindows(windows []domain.TimeWindow) []WindowResponse {
	resp := make([]WindowResponse, len(windows))
	for i, w := range windows {
		resp[i] = FromDomainWindow(w)
	}
	return resp
}

// FromDomainConflict конвертирует результат проверки в DTO
func FromDomainConflict(c *domain.ConflictResult) *ConflictResponse {
	if c == nil {
		return nil
	}

	return &ConflictResponse{
		Conflict:               c.Conflict,
		Reason:                 string(c.Reason),
		Message:                c.Message,
		ConflictingAllocations: FromDomainAllocationList(c.ConflictingAllocations).Allocations,
	}
}

// ToDomainStatus конвертирует строку в domain.AllocationStatus с валидацией
func ToDomainStatus(status string) (domain.AllocationStatus, error) {
	s := domain.AllocationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
