package allocation

import "errors"

var (
	// ErrAllocationNotFound возвращается, когда аллокация не найдена
	ErrAllocationNotFound = errors.New("allocation.repository: allocation not found")

	// ErrVersionConflict возвращается, когда запись изменена параллельным запросом
	ErrVersionConflict = errors.New("allocation.repository: version conflict")

	// ErrLockResource возвращается при ошибке взятия advisory-блокировки ресурса
	ErrLockResource = errors.New("allocation.repository: failed to lock resource")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("allocation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("allocation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("allocation.repository: failed to scan row")
)
