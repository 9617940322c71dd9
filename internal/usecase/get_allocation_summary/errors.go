package get_allocation_summary

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_allocation_summary: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища; запрос можно повторить
	ErrStoreUnavailable = errors.New("get_allocation_summary: store unavailable")
)
