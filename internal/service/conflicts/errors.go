package conflicts

import "errors"

var (
	// ErrStoreUnavailable возвращается, если не удалось прочитать аллокации
	ErrStoreUnavailable = errors.New("conflicts: store unavailable")

	// ErrInvalidCandidate возвращается для кандидата без окна или с неположительным количеством
	ErrInvalidCandidate = errors.New("conflicts: invalid candidate")

	// ErrInvalidRange возвращается для пустого, перевёрнутого или слишком длинного диапазона аудита
	ErrInvalidRange = errors.New("conflicts: invalid range")
)
