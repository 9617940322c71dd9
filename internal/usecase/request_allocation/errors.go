package request_allocation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_allocation: invalid input data")

	// ErrInvalidWindow возвращается, если окно пустое, перевёрнутое или уже в прошлом
	ErrInvalidWindow = errors.New("request_allocation: invalid time window")

	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("request_allocation: resource not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища или блокировки; запрос можно повторить
	ErrStoreUnavailable = errors.New("request_allocation: store unavailable")
)
