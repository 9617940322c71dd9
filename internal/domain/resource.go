package domain

import (
	"strconv"
	"time"
)

// ResourceKind тип ресурса, определяющий правила проверки конфликтов
type ResourceKind string

const (
	KindTable     ResourceKind = "table"
	KindStaff     ResourceKind = "staff"
	KindHall      ResourceKind = "hall"
	KindEquipment ResourceKind = "equipment"
)

// ResourceKinds все поддерживаемые типы
var ResourceKinds = []ResourceKind{KindTable, KindStaff, KindHall, KindEquipment}

func (k ResourceKind) IsValid() bool {
	switch k {
	case KindTable, KindStaff, KindHall, KindEquipment:
		return true
	}
	return false
}

// IsExclusive true for resources that admit a single active allocation at a time
func (k ResourceKind) IsExclusive() bool {
	return k == KindTable || k == KindHall
}

// Resource allocatable entity.
// Capacity means seats for tables and halls, units on hand for equipment
// and the weekly hour cap for staff.
type Resource struct {
	ID        int64
	Name      string
	Kind      ResourceKind
	Type      string // зона зала, должность, тип оборудования (Audio, Visual, ...)
	Capacity  int
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxWeeklyMinutes weekly budget of a staff member
func (r *Resource) MaxWeeklyMinutes() int {
	return r.Capacity * 60
}

// LockKey ключ блокировки ресурса на время check-then-insert
func (r *Resource) LockKey() string {
	return "resource:" + strconv.FormatInt(r.ID, 10)
}
