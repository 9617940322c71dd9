package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/slots"
	"github.com/m04kA/RMS-AvailabilityService/pkg/clock"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T, now time.Time) *UseCase {
	t.Helper()
	log := logger.NewNop()
	resources := memory.NewResources([]*domain.Resource{
		{ID: 1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
		{ID: 2, Name: "T2", Kind: domain.KindTable, Capacity: 2, Available: true},
		{ID: 3, Name: "T3", Kind: domain.KindTable, Capacity: 6, Available: false},
		{ID: 4, Name: "H1", Kind: domain.KindHall, Capacity: 120, Available: true},
	})
	reg := registry.NewService(resources, nil, log)
	allocations := memory.NewAllocations()

	w, err := domain.NewTimeWindow(june1, "18:00", "20:00")
	require.NoError(t, err)
	_, err = allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: 1, Window: w, Quantity: 4, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	detector := conflicts.NewDetector(reg, allocations, log)
	return NewUseCase(reg, slots.NewFinder(detector, nil, 5, log), clock.Fixed{At: now}, log)
}

func slotAt(t *testing.T, resp *Response, start types.TimeString) Slot {
	t.Helper()
	for _, s := range resp.Slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestExecute_AggregatesFreeResources(t *testing.T) {
	uc := setup(t, june1.AddDate(0, 0, -2))

	resp, err := uc.Execute(context.Background(), &Request{Kind: domain.KindTable, Date: june1, PartySize: 2})
	require.NoError(t, err)
	assert.Equal(t, 120, resp.DurationMinutes)
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("23:30"), resp.Slots[9].EndTime)

	busy := slotAt(t, resp, "18:00")
	assert.Equal(t, []int64{2}, busy.AvailableResourceIDs)
	assert.Equal(t, 1, busy.AvailableSpots)
	assert.Equal(t, 2, busy.TotalSpots)
	assert.InDelta(t, 50.0, busy.OccupancyRate, 0.001)

	free := slotAt(t, resp, "20:00")
	assert.Equal(t, []int64{1, 2}, free.AvailableResourceIDs)
	assert.Zero(t, free.OccupancyRate)
}

func TestExecute_PartySizeFiltersResources(t *testing.T) {
	uc := setup(t, june1.AddDate(0, 0, -2))

	resp, err := uc.Execute(context.Background(), &Request{Kind: domain.KindTable, Date: june1, PartySize: 3})
	require.NoError(t, err)

	busy := slotAt(t, resp, "18:00")
	assert.Empty(t, busy.AvailableResourceIDs)
	assert.Equal(t, 1, busy.TotalSpots)
	assert.Equal(t, 100.0, busy.OccupancyRate)
}

func TestExecute_TodaySkipsStartedSlots(t *testing.T) {
	uc := setup(t, june1.Add(19*time.Hour+10*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{Kind: domain.KindTable, Date: june1, PartySize: 2, DurationMinutes: 90})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("19:30"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[0].EndTime)
}

func TestExecute_HallHonoursClosingTime(t *testing.T) {
	uc := setup(t, june1.AddDate(0, 0, -2))

	resp, err := uc.Execute(context.Background(), &Request{Kind: domain.KindHall, Date: june1, PartySize: 80})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 11)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("21:00"), resp.Slots[10].EndTime)
}

func TestExecute_Errors(t *testing.T) {
	uc := setup(t, june1.AddDate(0, 0, 1))

	_, err := uc.Execute(context.Background(), &Request{Kind: domain.KindTable, Date: june1, PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Kind: "boat", Date: june1, PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Kind: domain.KindTable, Date: june1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
