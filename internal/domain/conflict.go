package domain

// ConflictReason причина отказа в аллокации
type ConflictReason string

const (
	ReasonNone                  ConflictReason = "none"
	ReasonTimeOverlap           ConflictReason = "time_overlap"
	ReasonCapacityExceeded      ConflictReason = "capacity_exceeded"
	ReasonShiftOverlap          ConflictReason = "shift_overlap"
	ReasonWeeklyHourCapExceeded ConflictReason = "weekly_hour_cap_exceeded"
	ReasonResourceUnavailable   ConflictReason = "resource_unavailable"
)

// ConflictResult outcome of a conflict check. Conflicts are expected results, not errors.
type ConflictResult struct {
	Conflict               bool
	ConflictingAllocations []*Allocation
	Reason                 ConflictReason
	Message                string
}

// NoConflict результат успешной проверки
func NoConflict() *ConflictResult {
	return &ConflictResult{
		Conflict:               false,
		ConflictingAllocations: []*Allocation{},
		Reason:                 ReasonNone,
	}
}

// Overlap пара активных аллокаций одного ресурса, нарушающая правила типа ресурса.
// Second никогда не начинается раньше First.
type Overlap struct {
	First  *Allocation
	Second *Allocation
}
