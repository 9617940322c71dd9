package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

const (
	tableT1 int64 = 1
	hallH1  int64 = 2
	staffS1 int64 = 3
	audio   int64 = 4
	closed  int64 = 5
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	allocations *memory.Allocations
	detector    *Detector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	resources := memory.NewResources([]*domain.Resource{
		{ID: tableT1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
		{ID: hallH1, Name: "H1", Kind: domain.KindHall, Capacity: 120, Available: true},
		{ID: staffS1, Name: "S1", Kind: domain.KindStaff, Type: "waiter", Capacity: 40, Available: true},
		{ID: audio, Name: "Speakers", Kind: domain.KindEquipment, Type: "Audio", Capacity: 1, Available: true},
		{ID: closed, Name: "T9", Kind: domain.KindTable, Capacity: 2, Available: false},
	})
	log := logger.NewNop()
	reg := registry.NewService(resources, domain.DefaultEquipmentCapacities, log)
	allocations := memory.NewAllocations()

	return &fixture{
		allocations: allocations,
		detector:    NewDetector(reg, allocations, log),
	}
}

func (f *fixture) seed(t *testing.T, resourceID int64, date time.Time, start, end types.TimeString, quantity int, status domain.AllocationStatus) *domain.Allocation {
	t.Helper()
	w, err := domain.NewTimeWindow(date, start, end)
	require.NoError(t, err)
	a, err := f.allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: resourceID,
		Window:     w,
		Quantity:   quantity,
		Status:     status,
	})
	require.NoError(t, err)
	return a
}

func candidate(t *testing.T, resourceID int64, date time.Time, start, end types.TimeString, quantity int) *domain.Allocation {
	t.Helper()
	w, err := domain.NewTimeWindow(date, start, end)
	require.NoError(t, err)
	return &domain.Allocation{ResourceID: resourceID, Window: w, Quantity: quantity, Status: domain.StatusPending}
}

func TestCheck_TableOverlapAndBoundaryTouch(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, tableT1, june1, "18:00", "20:00", 2, domain.StatusConfirmed)

	result, err := f.detector.Check(context.Background(), candidate(t, tableT1, june1, "19:00", "20:30", 2))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonTimeOverlap, result.Reason)
	require.Len(t, result.ConflictingAllocations, 1)
	assert.Equal(t, existing.ID, result.ConflictingAllocations[0].ID)
	assert.NotEmpty(t, result.Message)

	result, err = f.detector.Check(context.Background(), candidate(t, tableT1, june1, "20:00", "21:00", 2))
	require.NoError(t, err)
	assert.False(t, result.Conflict)
	assert.Equal(t, domain.ReasonNone, result.Reason)
	assert.Empty(t, result.ConflictingAllocations)
}

func TestCheck_InactiveAllocationsAreIgnored(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tableT1, june1, "18:00", "20:00", 2, domain.StatusCancelled)
	f.seed(t, tableT1, june1, "18:00", "20:00", 2, domain.StatusCompleted)

	result, err := f.detector.Check(context.Background(), candidate(t, tableT1, june1, "18:00", "20:00", 2))
	require.NoError(t, err)
	assert.False(t, result.Conflict)
}

func TestCheck_OtherDatesAreIgnored(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tableT1, june1.AddDate(0, 0, 1), "18:00", "20:00", 2, domain.StatusConfirmed)

	result, err := f.detector.Check(context.Background(), candidate(t, tableT1, june1, "18:00", "20:00", 2))
	require.NoError(t, err)
	assert.False(t, result.Conflict)
}

func TestCheck_PartyExceedsTableCapacity(t *testing.T) {
	f := newFixture(t)

	result, err := f.detector.Check(context.Background(), candidate(t, tableT1, june1, "18:00", "20:00", 6))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonCapacityExceeded, result.Reason)
}

func TestCheck_HallOverlap(t *testing.T) {
	f := newFixture(t)
	f.seed(t, hallH1, june1, "14:00", "18:00", 80, domain.StatusPending)

	result, err := f.detector.Check(context.Background(), candidate(t, hallH1, june1, "15:00", "16:00", 50))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonTimeOverlap, result.Reason)
}

func TestCheck_EquipmentCapacity(t *testing.T) {
	f := newFixture(t)
	// Audio capacity comes from configuration (10), not from the stored value
	a := f.seed(t, audio, june1, "10:00", "14:00", 6, domain.StatusConfirmed)
	b := f.seed(t, audio, june1, "12:00", "16:00", 3, domain.StatusPending)

	result, err := f.detector.Check(context.Background(), candidate(t, audio, june1, "13:00", "15:00", 1))
	require.NoError(t, err)
	assert.False(t, result.Conflict, "6 + 3 + 1 fits into 10")

	result, err = f.detector.Check(context.Background(), candidate(t, audio, june1, "13:00", "15:00", 2))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonCapacityExceeded, result.Reason)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, []int64{result.ConflictingAllocations[0].ID, result.ConflictingAllocations[1].ID})

	result, err = f.detector.Check(context.Background(), candidate(t, audio, june1, "14:00", "16:00", 7))
	require.NoError(t, err)
	assert.False(t, result.Conflict, "the 10:00-14:00 allocation ends when the candidate starts")
}

func TestCheck_StaffShiftOverlap(t *testing.T) {
	f := newFixture(t)
	f.seed(t, staffS1, june1, "08:00", "16:00", 1, domain.StatusConfirmed)

	result, err := f.detector.Check(context.Background(), candidate(t, staffS1, june1, "15:00", "20:00", 1))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonShiftOverlap, result.Reason)
}

func TestCheck_StaffWeeklyHourCap(t *testing.T) {
	f := newFixture(t)
	// Week of 2024-05-27 .. 2024-06-02: 4 x 8h + 6h = 38h
	monday := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		f.seed(t, staffS1, monday.AddDate(0, 0, i), "09:00", "17:00", 1, domain.StatusConfirmed)
	}
	f.seed(t, staffS1, monday.AddDate(0, 0, 4), "10:00", "16:00", 1, domain.StatusCompleted)
	// Cancelled shifts and shifts from other weeks do not count
	f.seed(t, staffS1, monday.AddDate(0, 0, 5), "09:00", "17:00", 1, domain.StatusCancelled)
	f.seed(t, staffS1, monday.AddDate(0, 0, -1), "09:00", "17:00", 1, domain.StatusConfirmed)

	result, err := f.detector.Check(context.Background(), candidate(t, staffS1, june1, "10:00", "14:00", 1))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonWeeklyHourCapExceeded, result.Reason)
	assert.Contains(t, result.Message, "42/40 hours")
	assert.Len(t, result.ConflictingAllocations, 5)

	result, err = f.detector.Check(context.Background(), candidate(t, staffS1, june1, "10:00", "12:00", 1))
	require.NoError(t, err)
	assert.False(t, result.Conflict, "38h + 2h reaches the cap exactly")
}

func TestCheck_UnavailableResource(t *testing.T) {
	f := newFixture(t)

	result, err := f.detector.Check(context.Background(), candidate(t, closed, june1, "18:00", "20:00", 2))
	require.NoError(t, err)
	assert.True(t, result.Conflict)
	assert.Equal(t, domain.ReasonResourceUnavailable, result.Reason)
}

func TestCheck_UnknownResource(t *testing.T) {
	f := newFixture(t)

	_, err := f.detector.Check(context.Background(), candidate(t, 404, june1, "18:00", "20:00", 2))
	assert.ErrorIs(t, err, registry.ErrResourceNotFound)
}

func TestEvaluate_UpdateExcludesOwnAllocation(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, tableT1, june1, "18:00", "20:00", 2, domain.StatusConfirmed)

	moved := candidate(t, tableT1, june1, "18:30", "20:30", 2)
	moved.ID = existing.ID

	result, err := f.detector.Check(context.Background(), moved)
	require.NoError(t, err)
	assert.False(t, result.Conflict)
}

func TestEvaluate_InvalidCandidate(t *testing.T) {
	f := newFixture(t)
	res := &domain.Resource{ID: tableT1, Kind: domain.KindTable, Capacity: 4, Available: true}

	_, _, err := f.detector.Evaluate(context.Background(), res, &domain.Allocation{ResourceID: tableT1, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidCandidate)
}

type failingStore struct{}

func (failingStore) FindByFilter(context.Context, domain.AllocationFilter) ([]*domain.Allocation, error) {
	return nil, errors.New("connection refused")
}

func TestEvaluate_StoreFailure(t *testing.T) {
	log := logger.NewNop()
	reg := registry.NewService(memory.NewResources(nil), nil, log)
	d := NewDetector(reg, failingStore{}, log)
	res := &domain.Resource{ID: tableT1, Kind: domain.KindTable, Capacity: 4, Available: true}

	_, _, err := d.Evaluate(context.Background(), res, candidate(t, tableT1, june1, "18:00", "20:00", 2))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestSnapshot_EvaluateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seed(t, tableT1, june1, "18:00", "20:00", 2, domain.StatusConfirmed)
	c := candidate(t, tableT1, june1, "19:00", "20:30", 2)

	first, err := f.detector.Check(context.Background(), c)
	require.NoError(t, err)
	second, err := f.detector.Check(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindOverlaps_ExclusiveResource(t *testing.T) {
	f := newFixture(t)
	june2 := june1.AddDate(0, 0, 1)

	a := f.seed(t, hallH1, june1, "10:00", "14:00", 50, domain.StatusConfirmed)
	b := f.seed(t, hallH1, june1, "13:00", "16:00", 50, domain.StatusPending)
	c := f.seed(t, hallH1, june1, "15:00", "18:00", 50, domain.StatusConfirmed)
	f.seed(t, hallH1, june1, "18:00", "20:00", 50, domain.StatusConfirmed) // касается c
	f.seed(t, hallH1, june1, "11:00", "12:00", 50, domain.StatusCancelled) // неактивна
	f.seed(t, hallH1, june2, "10:00", "12:00", 50, domain.StatusConfirmed) // вне диапазона

	overlaps, err := f.detector.FindOverlaps(context.Background(), hallH1, june1, june2)
	require.NoError(t, err)
	require.Len(t, overlaps, 2)

	assert.Equal(t, a.ID, overlaps[0].First.ID)
	assert.Equal(t, b.ID, overlaps[0].Second.ID)
	assert.Equal(t, b.ID, overlaps[1].First.ID)
	assert.Equal(t, c.ID, overlaps[1].Second.ID)
}

func TestFindOverlaps_EquipmentWithinCapacity(t *testing.T) {
	f := newFixture(t)
	// Audio: 10 единиц по умолчанию
	f.seed(t, audio, june1, "10:00", "14:00", 4, domain.StatusConfirmed)
	f.seed(t, audio, june1, "12:00", "16:00", 5, domain.StatusConfirmed)

	overlaps, err := f.detector.FindOverlaps(context.Background(), audio, june1, june1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, overlaps)

	f.seed(t, audio, june1, "13:00", "15:00", 7, domain.StatusPending)

	overlaps, err = f.detector.FindOverlaps(context.Background(), audio, june1, june1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, overlaps, 2)
}

func TestFindOverlaps_InvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.detector.FindOverlaps(context.Background(), hallH1, june1, june1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.detector.FindOverlaps(context.Background(), hallH1, june1.AddDate(0, 0, 1), june1)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = f.detector.FindOverlaps(context.Background(), hallH1, june1, june1.AddDate(0, 0, MaxOverlapRangeDays+1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestFindOverlaps_UnknownResource(t *testing.T) {
	f := newFixture(t)

	_, err := f.detector.FindOverlaps(context.Background(), 404, june1, june1.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, registry.ErrResourceNotFound)
}
