package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
)

// Message сообщение об изменении аллокации, отправляемое во внешние системы
type Message struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	OccurredAt   time.Time `json:"occurred_at"`
	ResourceID   int64     `json:"resource_id"`
	ResourceKind string    `json:"resource_kind,omitempty"`
	Allocation   Payload   `json:"allocation"`
}

// Payload данные аллокации в сообщении
type Payload struct {
	ID                 int64   `json:"id"`
	Date               string  `json:"date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Quantity           int     `json:"quantity"`
	Status             string  `json:"status"`
	Version            int     `json:"version"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

// NewMessage собирает сообщение из события, каждому сообщению выдаётся новый event_id
func NewMessage(event domain.AllocationEvent) Message {
	msg := Message{
		EventID:      uuid.NewString(),
		Type:         string(event.Type),
		OccurredAt:   event.OccurredAt.UTC(),
		ResourceKind: string(event.ResourceKind),
	}

	if a := event.Allocation; a != nil {
		msg.ResourceID = a.ResourceID
		msg.Allocation = Payload{
			ID:                 a.ID,
			Date:               a.Window.Date().Format(domain.DateFormat),
			StartTime:          a.Window.StartTime().String(),
			EndTime:            a.Window.EndTime().String(),
			Quantity:           a.Quantity,
			Status:             string(a.Status),
			Version:            a.Version,
			Notes:              a.Notes,
			CancellationReason: a.CancellationReason,
		}
	}

	return msg
}
