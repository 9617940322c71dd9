package domain

// Default engine settings
const (
	DefaultMaxSuggestions    = 5
	DefaultEquipmentCapacity = 10
)

// Business validation constants
const (
	MinQuantity                 = 1
	MaxQuantity                 = 1000
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSearchRadiusMinutes      = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultEquipmentCapacities units on hand per equipment type, overridable from config
var DefaultEquipmentCapacities = map[string]int{
	"Audio":     10,
	"Visual":    15,
	"Furniture": 50,
	"Catering":  20,
}

// DefaultSlotGrids сетки времени начала по типам ресурсов
var DefaultSlotGrids = map[ResourceKind]SlotGrid{
	KindTable: {
		StepMinutes:                30,
		FirstStart:                 "17:00",
		LastStart:                  "21:30",
		DefaultDurationMinutes:     120,
		DefaultSearchRadiusMinutes: 60,
	},
	KindHall: {
		StepMinutes:                60,
		FirstStart:                 "09:00",
		LastStart:                  "21:00",
		MustEndBy:                  "21:00",
		DefaultDurationMinutes:     120,
		DefaultSearchRadiusMinutes: 240,
	},
	KindStaff: {
		StepMinutes:                60,
		FirstStart:                 "06:00",
		LastStart:                  "22:00",
		DefaultDurationMinutes:     480,
		DefaultSearchRadiusMinutes: 240,
	},
	KindEquipment: {
		StepMinutes:                60,
		FirstStart:                 "08:00",
		LastStart:                  "22:00",
		DefaultDurationMinutes:     240,
		DefaultSearchRadiusMinutes: 120,
	},
}
