package allocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/RMS-AvailabilityService/pkg/psqlbuilder"
)

const table = "allocations"

var columns = []string{
	"id",
	"resource_id",
	"start_at",
	"end_at",
	"quantity",
	"status",
	"notes",
	"cancellation_reason",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий аллокаций в PostgreSQL
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает репозиторий; loc - часовой пояс ресторана,
// в котором интерпретируются даты окон
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

// LockResource берёт транзакционную advisory-блокировку на ресурс
// Вне транзакции блокировка бессмысленна, поэтому вызов без неё - no-op
func (r *Repository) LockResource(ctx context.Context, resourceID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", resourceID); err != nil {
		return fmt.Errorf("%w: LockResource - resource_id=%d: %v", ErrLockResource, resourceID, err)
	}
	return nil
}

// Create сохраняет новую аллокацию
// Вызывается внутри транзакции вместе с проверкой конфликтов
func (r *Repository) Create(ctx context.Context, a *domain.Allocation) (*domain.Allocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"resource_id",
			"start_at",
			"end_at",
			"quantity",
			"status",
			"notes",
		).
		Values(
			a.ResourceID,
			a.Window.Start,
			a.Window.End,
			a.Quantity,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает аллокацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Allocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := r.scanAllocation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAllocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan allocation: %v", ErrScanRow, err)
	}

	return a, nil
}

// FindByFilter выбирает аллокации по фильтру, упорядоченные по времени начала
// В транзакции строки блокируются (FOR UPDATE) до её завершения
func (r *Repository) FindByFilter(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at ASC", "id ASC")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}
	// Полуинтервальное пересечение с [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if dbmetrics.IsInTransaction(ctx) && filter.ResourceID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAllocations(rows)
}

// FindActiveForResource активные аллокации ресурса, пересекающие [from, to)
func (r *Repository) FindActiveForResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Allocation, error) {
	return r.FindByFilter(ctx, domain.AllocationFilter{
		ResourceID: &resourceID,
		From:       &from,
		To:         &to,
		Statuses:   domain.ActiveStatuses,
	})
}

// FindActiveOverlapping активные аллокации ресурса, пересекающие окно
func (r *Repository) FindActiveOverlapping(ctx context.Context, resourceID int64, window domain.TimeWindow) ([]*domain.Allocation, error) {
	return r.FindActiveForResource(ctx, resourceID, window.Start, window.End)
}

// UpdateStatus меняет статус с проверкой версии (optimistic locking)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, expectedVersion int, status domain.AllocationStatus, reason *string) (*domain.Allocation, error) {
	builder := psqlbuilder.Update(table).
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion})

	if reason != nil {
		builder = builder.Set("cancellation_reason", *reason)
	}

	return r.updateReturning(ctx, "UpdateStatus", id, builder)
}

// UpdateWindow переносит аллокацию на другое окно с проверкой версии
func (r *Repository) UpdateWindow(ctx context.Context, id int64, expectedVersion int, window domain.TimeWindow, quantity int) (*domain.Allocation, error) {
	builder := psqlbuilder.Update(table).
		Set("start_at", window.Start).
		Set("end_at", window.End).
		Set("quantity", quantity).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion})

	return r.updateReturning(ctx, "UpdateWindow", id, builder)
}

func (r *Repository) updateReturning(ctx context.Context, op string, id int64, builder squirrel.UpdateBuilder) (*domain.Allocation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	a, err := r.scanAllocation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Либо записи нет, либо версия устарела
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: %s - allocation id=%d", ErrVersionConflict, op, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return a, nil
}

// Delete физически удаляет аллокацию
// Для сохранения истории используйте отмену
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAllocationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAllocation(row rowScanner) (*domain.Allocation, error) {
	var (
		a                    domain.Allocation
		startAt, endAt       time.Time
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ResourceID,
		&startAt,
		&endAt,
		&a.Quantity,
		&a.Status,
		&a.Notes,
		&a.CancellationReason,
		&a.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Window = domain.TimeWindow{Start: startAt.In(r.loc), End: endAt.In(r.loc)}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAllocations сканирует результаты запроса в слайс аллокаций
func (r *Repository) scanAllocations(rows *sql.Rows) ([]*domain.Allocation, error) {
	allocations := make([]*domain.Allocation, 0)

	for rows.Next() {
		a, err := r.scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAllocations - scan row: %v", ErrScanRow, err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAllocations - rows error: %v", ErrScanRow, err)
	}

	return allocations, nil
}
