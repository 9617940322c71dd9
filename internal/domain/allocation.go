package domain

import "time"

// AllocationStatus represents the lifecycle state of an allocation
type AllocationStatus string

const (
	StatusPending   AllocationStatus = "pending"
	StatusConfirmed AllocationStatus = "confirmed"
	StatusCancelled AllocationStatus = "cancelled"
	StatusCompleted AllocationStatus = "completed"
)

// ActiveStatuses статусы, участвующие в проверке пересечений и вместимости
var ActiveStatuses = []AllocationStatus{
	StatusPending,
	StatusConfirmed,
}

// LedgerStatuses статусы, учитываемые в недельном лимите часов сотрудника
var LedgerStatuses = []AllocationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

var transitions = map[AllocationStatus][]AllocationStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s AllocationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s AllocationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s AllocationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo pending -> confirmed -> completed, any non-terminal -> cancelled
func (s AllocationStatus) CanTransitionTo(next AllocationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Allocation time-bounded claim on a resource
type Allocation struct {
	ID         int64
	ResourceID int64
	Window     TimeWindow
	Quantity   int // размер компании для столов и залов, количество единиц оборудования, 1 для смен
	Status     AllocationStatus
	Notes      *string

	CancellationReason *string
	Version            int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Allocation) IsActive() bool {
	return a.Status.IsActive()
}

// AllocationFilter фильтр выборки аллокаций
// From/To задают полуинтервал: попадают аллокации, пересекающие [From, To)
type AllocationFilter struct {
	ResourceID *int64
	From       *time.Time
	To         *time.Time
	Statuses   []AllocationStatus // пусто - любые статусы
	ExcludeID  *int64
}

// Matches проверка фильтра в памяти (используется in-memory хранилищем)
func (f AllocationFilter) Matches(a *Allocation) bool {
	if f.ResourceID != nil && a.ResourceID != *f.ResourceID {
		return false
	}
	if f.ExcludeID != nil && a.ID == *f.ExcludeID {
		return false
	}
	if f.From != nil && !a.Window.End.After(*f.From) {
		return false
	}
	if f.To != nil && !a.Window.Start.Before(*f.To) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if a.Status == s {
			return true
		}
	}
	return false
}
