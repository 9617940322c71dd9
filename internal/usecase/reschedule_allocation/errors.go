package reschedule_allocation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_allocation: invalid input data")

	// ErrInvalidWindow возвращается, если новое окно пустое, перевёрнутое или уже в прошлом
	ErrInvalidWindow = errors.New("reschedule_allocation: invalid time window")

	// ErrAllocationNotFound возвращается, когда аллокация не найдена
	ErrAllocationNotFound = errors.New("reschedule_allocation: allocation not found")

	// ErrResourceNotFound возвращается, когда ресурс аллокации не найден
	ErrResourceNotFound = errors.New("reschedule_allocation: resource not found")

	// ErrInvalidTransition возвращается при попытке перенести отменённую или завершённую аллокацию
	ErrInvalidTransition = errors.New("reschedule_allocation: allocation is not active")

	// ErrConcurrentUpdate возвращается, если аллокация изменена параллельным запросом
	ErrConcurrentUpdate = errors.New("reschedule_allocation: allocation was modified concurrently")

	// ErrStoreUnavailable возвращается при ошибках хранилища или блокировки; запрос можно повторить
	ErrStoreUnavailable = errors.New("reschedule_allocation: store unavailable")
)
