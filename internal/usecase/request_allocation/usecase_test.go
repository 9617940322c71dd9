package request_allocation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/slots"
	"github.com/m04kA/RMS-AvailabilityService/pkg/clock"
	"github.com/m04kA/RMS-AvailabilityService/pkg/locker"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/metrics"
	"github.com/m04kA/RMS-AvailabilityService/pkg/ptr"
	"github.com/m04kA/RMS-AvailabilityService/pkg/txmanager"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

const (
	tableT1 int64 = 1
	staffS1 int64 = 2
	tableT2 int64 = 3
	tableT3 int64 = 4
	tableT4 int64 = 5
)

var (
	june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now   = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.AllocationEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event domain.AllocationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type fixture struct {
	allocations *memory.Allocations
	notifier    *recordingNotifier
	metrics     *metrics.Metrics
	detector    *conflicts.Detector
	uc          *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	resources := memory.NewResources([]*domain.Resource{
		{ID: tableT1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
		{ID: staffS1, Name: "S1", Kind: domain.KindStaff, Type: "waiter", Capacity: 40, Available: true},
		{ID: tableT2, Name: "T2", Kind: domain.KindTable, Capacity: 2, Available: true},
		{ID: tableT3, Name: "T3", Kind: domain.KindTable, Capacity: 6, Available: true},
		{ID: tableT4, Name: "T4", Kind: domain.KindTable, Capacity: 8, Available: false},
	})
	reg := registry.NewService(resources, nil, log)
	allocations := memory.NewAllocations()
	detector := conflicts.NewDetector(reg, allocations, log)
	finder := slots.NewFinder(detector, nil, 5, log)

	f := &fixture{
		allocations: allocations,
		notifier:    &recordingNotifier{},
		metrics:     metrics.New("test"),
		detector:    detector,
	}
	f.uc = NewUseCase(allocations, reg, detector, finder, locker.NewLocal(), txmanager.Noop{},
		f.notifier, f.metrics, clock.Fixed{At: now}, log)
	return f
}

func (f *fixture) seed(t *testing.T, resourceID int64, date time.Time, start, end types.TimeString) *domain.Allocation {
	t.Helper()
	w, err := domain.NewTimeWindow(date, start, end)
	require.NoError(t, err)
	a, err := f.allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: resourceID, Window: w, Quantity: 1, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) active(t *testing.T, resourceID int64) []*domain.Allocation {
	t.Helper()
	list, err := f.allocations.FindByFilter(context.Background(), domain.AllocationFilter{
		ResourceID: &resourceID,
		Statuses:   domain.ActiveStatuses,
	})
	require.NoError(t, err)
	return list
}

func request(resourceID int64, start, end types.TimeString, quantity int) *Request {
	return &Request{
		ResourceID: resourceID,
		Date:       june1,
		StartTime:  start,
		EndTime:    end,
		Quantity:   quantity,
	}
}

func poolRequest(kind domain.ResourceKind, start, end types.TimeString, quantity int) *Request {
	return &Request{
		Kind:      kind,
		Date:      june1,
		StartTime: start,
		EndTime:   end,
		Quantity:  quantity,
	}
}

func TestExecute_Granted(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ResourceID: tableT1,
		Date:       june1,
		StartTime:  "18:00",
		EndTime:    "20:00",
		Quantity:   2,
		Notes:      ptr.Ptr("window seat"),
	})
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Nil(t, resp.Conflict)

	a := resp.Allocation
	assert.NotZero(t, a.ID)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Equal(t, 1, a.Version)
	assert.Equal(t, "2024-06-01 18:00-20:00", a.Window.String())
	assert.Equal(t, "window seat", *a.Notes)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventAllocationRequested, f.notifier.events[0].Type)
	assert.Equal(t, domain.KindTable, f.notifier.events[0].ResourceKind)
	assert.Equal(t, now, f.notifier.events[0].OccurredAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AllocationDecisions.WithLabelValues("test", "table", "allocated")))
}

func TestExecute_ConflictReturnsAlternatives(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, tableT1, june1, "18:00", "20:00")

	resp, err := f.uc.Execute(context.Background(), request(tableT1, "19:00", "20:30", 2))
	require.NoError(t, err)
	require.False(t, resp.Granted())
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, domain.ReasonTimeOverlap, resp.Conflict.Reason)
	assert.Equal(t, existing.ID, resp.Conflict.ConflictingAllocations[0].ID)

	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, "2024-06-01 20:00-21:30", resp.Alternatives[0].String())

	assert.Len(t, f.active(t, tableT1), 1, "nothing is inserted on conflict")
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AllocationDecisions.WithLabelValues("test", "table", "conflict")))
}

func TestExecute_TouchingWindowIsGranted(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tableT1, june1, "18:00", "20:00")

	resp, err := f.uc.Execute(context.Background(), request(tableT1, "20:00", "21:00", 2))
	require.NoError(t, err)
	assert.True(t, resp.Granted())
}

func TestExecute_StaffWeeklyCap(t *testing.T) {
	f := newFixture(t)
	monday := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		f.seed(t, staffS1, monday.AddDate(0, 0, i), "09:00", "17:00")
	}
	f.seed(t, staffS1, monday.AddDate(0, 0, 4), "10:00", "16:00")

	resp, err := f.uc.Execute(context.Background(), request(staffS1, "10:00", "14:00", 3))
	require.NoError(t, err)
	require.False(t, resp.Granted())
	assert.Equal(t, domain.ReasonWeeklyHourCapExceeded, resp.Conflict.Reason)
	assert.Contains(t, resp.Conflict.Message, "42/40 hours")
	assert.Empty(t, resp.Alternatives, "any 4-hour shift this week breaks the cap")

	resp, err = f.uc.Execute(context.Background(), request(staffS1, "10:00", "12:00", 3))
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Equal(t, 1, resp.Allocation.Quantity)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "end before start", req: request(tableT1, "20:00", "18:00", 2), wantErr: ErrInvalidWindow},
		{name: "empty window", req: request(tableT1, "18:00", "18:00", 2), wantErr: ErrInvalidWindow},
		{name: "bad time", req: request(tableT1, "18:00", "25:00", 2), wantErr: ErrInvalidWindow},
		{name: "missing end", req: request(tableT1, "18:00", "", 2), wantErr: ErrInvalidWindow},
		{name: "zero quantity", req: request(tableT1, "18:00", "20:00", 0), wantErr: ErrInvalidInput},
		{name: "no resource", req: request(0, "18:00", "20:00", 2), wantErr: ErrInvalidInput},
		{name: "unknown kind", req: poolRequest("sofa", "18:00", "20:00", 2), wantErr: ErrInvalidInput},
		{
			name: "resource and kind",
			req: &Request{
				ResourceID: tableT1, Kind: domain.KindTable, Date: june1,
				StartTime: "18:00", EndTime: "20:00", Quantity: 2,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "in the past",
			req: &Request{
				ResourceID: tableT1, Date: now.AddDate(0, 0, -1).Truncate(24 * time.Hour),
				StartTime: "18:00", EndTime: "20:00", Quantity: 2,
			},
			wantErr: ErrInvalidWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			resp, err := f.uc.Execute(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.active(t, tableT1))
		})
	}
}

func TestExecute_UnknownResource(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request(404, "18:00", "20:00", 2))
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_ConcurrentIdenticalRequests(t *testing.T) {
	f := newFixture(t)
	const workers = 20

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		granted  int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.uc.Execute(context.Background(), request(tableT1, "18:00", "20:00", 2))
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if resp.Granted() {
				granted++
			} else {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted)
	assert.Equal(t, workers-1, rejected)
	assert.Len(t, f.active(t, tableT1), 1)
}

func TestExecute_NotifierFailureKeepsAllocation(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("broker is down")

	resp, err := f.uc.Execute(context.Background(), request(tableT1, "18:00", "20:00", 2))
	require.NoError(t, err)
	require.True(t, resp.Granted())

	stored, err := f.allocations.GetByID(context.Background(), resp.Allocation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.NotificationFailures.WithLabelValues("test", "allocation.requested")))
}

type brokenDetector struct{}

func (brokenDetector) Evaluate(context.Context, *domain.Resource, *domain.Allocation) (*domain.ConflictResult, *conflicts.Snapshot, error) {
	return nil, nil, conflicts.ErrStoreUnavailable
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.uc.detector = brokenDetector{}

	_, err := f.uc.Execute(context.Background(), request(tableT1, "18:00", "20:00", 2))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AllocationDecisions.WithLabelValues("test", "table", "error")))
}

func TestExecute_LockHonoursContext(t *testing.T) {
	f := newFixture(t)
	lk := locker.NewLocal()
	f.uc.locker = lk

	unlock, err := lk.Lock(context.Background(), "resource:1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = f.uc.Execute(ctx, request(tableT1, "18:00", "20:00", 2))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, f.active(t, tableT1))
}

func TestExecute_PoolPicksSmallestFittingResource(t *testing.T) {
	f := newFixture(t)

	// T2 мал для компании из 3, T4 недоступен
	resp, err := f.uc.Execute(context.Background(), poolRequest(domain.KindTable, "18:00", "20:00", 3))
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Equal(t, tableT1, resp.Allocation.ResourceID)
	assert.Equal(t, tableT1, resp.Resource.ID)

	resp, err = f.uc.Execute(context.Background(), poolRequest(domain.KindTable, "18:00", "20:00", 3))
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Equal(t, tableT3, resp.Allocation.ResourceID)

	assert.Len(t, f.active(t, tableT1), 1)
	assert.Len(t, f.active(t, tableT3), 1)
	assert.Empty(t, f.active(t, tableT2))
	require.Len(t, f.notifier.events, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.AllocationDecisions.WithLabelValues("test", "table", "allocated")))
}

func TestExecute_PoolSkipsBusyResource(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tableT1, june1, "19:00", "21:00")

	resp, err := f.uc.Execute(context.Background(), poolRequest(domain.KindTable, "18:00", "20:00", 3))
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Equal(t, tableT3, resp.Allocation.ResourceID)
	assert.Len(t, f.active(t, tableT1), 1)
}

func TestExecute_PoolExhaustedMergesAlternatives(t *testing.T) {
	f := newFixture(t)
	first := f.seed(t, tableT1, june1, "18:00", "20:00")
	f.seed(t, tableT3, june1, "18:00", "20:00")

	req := poolRequest(domain.KindTable, "18:00", "20:00", 3)
	req.SearchRadiusMinutes = 120

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Granted())

	assert.Equal(t, tableT1, resp.Resource.ID)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, domain.ReasonTimeOverlap, resp.Conflict.Reason)
	assert.Equal(t, first.ID, resp.Conflict.ConflictingAllocations[0].ID)

	// 20:00-22:00 свободно на обоих столах и возвращается один раз
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, "2024-06-01 20:00-22:00", resp.Alternatives[0].String())

	assert.Len(t, f.active(t, tableT1), 1)
	assert.Len(t, f.active(t, tableT3), 1)
	assert.Empty(t, f.notifier.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AllocationDecisions.WithLabelValues("test", "table", "conflict")))
}

func TestExecute_PoolWithoutFittingResource(t *testing.T) {
	f := newFixture(t)

	// Вместить 7 человек может только недоступный T4
	resp, err := f.uc.Execute(context.Background(), poolRequest(domain.KindTable, "18:00", "20:00", 7))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

type recordingTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *recordingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

func TestExecute_CheckAndInsertShareOneTransaction(t *testing.T) {
	f := newFixture(t)
	tx := &recordingTxManager{}
	f.uc.txManager = tx

	resp, err := f.uc.Execute(context.Background(), request(tableT1, "18:00", "20:00", 2))
	require.NoError(t, err)
	require.True(t, resp.Granted())
	assert.Equal(t, 1, tx.calls)

	resp, err = f.uc.Execute(context.Background(), request(tableT1, "18:00", "20:00", 2))
	require.NoError(t, err)
	require.False(t, resp.Granted())
	assert.Equal(t, 2, tx.calls)
}
