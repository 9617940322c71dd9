package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInvalidWindow возвращается, если окно пустое или перевёрнутое
	ErrInvalidWindow = errors.New("check_availability: invalid time window")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("check_availability: resource not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("check_availability: store unavailable")
)
