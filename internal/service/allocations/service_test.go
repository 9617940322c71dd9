package allocations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/allocations/models"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/pkg/clock"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/metrics"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

const tableT1 int64 = 1

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	events []domain.AllocationEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event domain.AllocationEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type fixture struct {
	allocations *memory.Allocations
	notifier    *recordingNotifier
	svc         *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	resources := memory.NewResources([]*domain.Resource{
		{ID: tableT1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
	})
	f := &fixture{allocations: memory.NewAllocations(), notifier: &recordingNotifier{}}
	f.svc = NewService(f.allocations, registry.NewService(resources, nil, log), f.notifier,
		metrics.New("test"), clock.Fixed{At: june1.Add(-time.Hour)}, log)
	return f
}

func (f *fixture) seed(t *testing.T, start, end types.TimeString, status domain.AllocationStatus) *domain.Allocation {
	t.Helper()
	w, err := domain.NewTimeWindow(june1, start, end)
	require.NoError(t, err)
	a, err := f.allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: tableT1, Window: w, Quantity: 2, Status: status,
	})
	require.NoError(t, err)
	return a
}

func TestConfirm_PendingBecomesConfirmed(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusPending)

	resp, err := f.svc.Confirm(context.Background(), a.ID, &models.TransitionRequest{Version: 1})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 2, resp.Version)
	assert.Equal(t, "18:00", resp.StartTime)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventAllocationConfirmed, f.notifier.events[0].Type)
	assert.Equal(t, domain.KindTable, f.notifier.events[0].ResourceKind)
}

func TestComplete_FromPendingIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusPending)

	_, err := f.svc.Complete(context.Background(), a.ID, &models.TransitionRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.notifier.events)

	_, err = f.svc.Confirm(context.Background(), a.ID, &models.TransitionRequest{})
	require.NoError(t, err)
	resp, err := f.svc.Complete(context.Background(), a.ID, &models.TransitionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 3, resp.Version)
}

func TestCancel_StoresReasonAndFreesWindow(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), a.ID, &models.CancelRequest{Reason: "guest called"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "guest called", *resp.CancellationReason)

	active, err := f.allocations.FindActiveOverlapping(context.Background(), tableT1, a.Window)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = f.svc.Cancel(context.Background(), a.ID, &models.CancelRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusConfirmed)

	_, err := f.svc.Cancel(context.Background(), a.ID, &models.CancelRequest{Reason: strings.Repeat("x", 501)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTransition_StaleVersion(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusPending)

	_, err := f.svc.Confirm(context.Background(), a.ID, &models.TransitionRequest{Version: 3})
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	stored, err := f.allocations.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), 42, &models.TransitionRequest{})
	assert.ErrorIs(t, err, ErrAllocationNotFound)

	_, err = f.svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestTransition_NotifierFailureKeepsChange(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("broker down")
	a := f.seed(t, "18:00", "20:00", domain.StatusPending)

	resp, err := f.svc.Confirm(context.Background(), a.ID, &models.TransitionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestListForResource(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "12:00", "13:00", domain.StatusConfirmed)
	f.seed(t, "14:00", "15:00", domain.StatusCancelled)
	f.seed(t, "18:00", "20:00", domain.StatusPending)

	resp, err := f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1})
	require.NoError(t, err)
	assert.Len(t, resp.Allocations, 2)

	resp, err = f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Allocations, 3)

	status := "cancelled"
	resp, err = f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1, Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Allocations, 1)
	assert.Equal(t, "14:00", resp.Allocations[0].StartTime)

	from, to := june1.Add(17*time.Hour), june1.Add(24*time.Hour)
	resp, err = f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, resp.Allocations, 1)
	assert.Equal(t, "18:00", resp.Allocations[0].StartTime)
}

func TestListForResource_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: 99})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	bogus := "archived"
	_, err = f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1, Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from, to := june1, june1.Add(-time.Hour)
	_, err = f.svc.ListForResource(context.Background(), &models.ListRequest{ResourceID: tableT1, From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "18:00", "20:00", domain.StatusConfirmed)

	require.NoError(t, f.svc.Delete(context.Background(), a.ID))
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventAllocationDeleted, f.notifier.events[0].Type)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), a.ID), ErrAllocationNotFound)
}
