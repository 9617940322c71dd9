package domain

import "time"

// EventType тип уведомления об изменении аллокации
type EventType string

const (
	EventAllocationRequested   EventType = "allocation.requested"
	EventAllocationConfirmed   EventType = "allocation.confirmed"
	EventAllocationCancelled   EventType = "allocation.cancelled"
	EventAllocationCompleted   EventType = "allocation.completed"
	EventAllocationRescheduled EventType = "allocation.rescheduled"
	EventAllocationDeleted     EventType = "allocation.deleted"
)

// AllocationEvent payload handed to the notification dispatcher
type AllocationEvent struct {
	Type         EventType
	ResourceKind ResourceKind
	Allocation   *Allocation
	OccurredAt   time.Time
}
