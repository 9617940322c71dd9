package registry

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("registry: resource not found")

	// ErrInvalidKind возвращается при неизвестном типе ресурса
	ErrInvalidKind = errors.New("registry: invalid resource kind")

	// ErrStoreUnavailable возвращается при ошибке хранилища
	ErrStoreUnavailable = errors.New("registry: store unavailable")
)
