package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrStoreUnavailable возвращается при ошибках хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("get_available_slots: store unavailable")
)
