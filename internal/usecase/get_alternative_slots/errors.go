package get_alternative_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_alternative_slots: invalid input data")

	// ErrInvalidWindow возвращается, если исходное окно пустое или перевёрнутое
	ErrInvalidWindow = errors.New("get_alternative_slots: invalid time window")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("get_alternative_slots: resource not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("get_alternative_slots: store unavailable")
)
