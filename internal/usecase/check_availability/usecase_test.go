package check_availability

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
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
	"github.com/m04kA/RMS-AvailabilityService/pkg/types"
)

const tableT1 int64 = 1

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*UseCase, *memory.Allocations) {
	t.Helper()
	log := logger.NewNop()
	resources := memory.NewResources([]*domain.Resource{
		{ID: tableT1, Name: "T1", Kind: domain.KindTable, Capacity: 4, Available: true},
	})
	reg := registry.NewService(resources, nil, log)
	allocations := memory.NewAllocations()
	detector := conflicts.NewDetector(reg, allocations, log)

	w, err := domain.NewTimeWindow(june1, "18:00", "20:00")
	require.NoError(t, err)
	_, err = allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: tableT1, Window: w, Quantity: 2, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	return NewUseCase(reg, detector, slots.NewFinder(detector, nil, 5, log), log), allocations
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name      string
		start     types.TimeString
		end       types.TimeString
		quantity  int
		available bool
		reason    domain.ConflictReason
	}{
		{name: "overlap", start: "19:00", end: "20:30", quantity: 2, reason: domain.ReasonTimeOverlap},
		{name: "touching", start: "20:00", end: "21:00", quantity: 2, available: true, reason: domain.ReasonNone},
		{name: "before", start: "16:00", end: "18:00", quantity: 4, available: true, reason: domain.ReasonNone},
		{name: "party too large", start: "20:00", end: "22:00", quantity: 5, reason: domain.ReasonCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := setup(t)
			resp, err := uc.Execute(context.Background(), &Request{
				ResourceID: tableT1,
				Date:       june1,
				StartTime:  tt.start,
				EndTime:    tt.end,
				Quantity:   tt.quantity,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available())
			assert.Equal(t, tt.reason, resp.Result.Reason)
			if tt.available {
				assert.Empty(t, resp.Alternatives)
			}
		})
	}
}

func TestExecute_OverlapSuggestsAlternatives(t *testing.T) {
	uc, _ := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: tableT1, Date: june1, StartTime: "19:00", EndTime: "20:30", Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, "2024-06-01 20:00-21:30", resp.Alternatives[0].String())
}

func TestExecute_IsIdempotent(t *testing.T) {
	uc, allocations := setup(t)
	req := &Request{ResourceID: tableT1, Date: june1, StartTime: "19:00", EndTime: "20:30", Quantity: 2}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	list, err := allocations.FindByFilter(context.Background(), domain.AllocationFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "checking never writes")
}

func TestExecute_ExcludesAllocationBeingMoved(t *testing.T) {
	uc, _ := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: tableT1, Date: june1, StartTime: "19:00", EndTime: "21:00", Quantity: 2, AllocationID: 1,
	})
	require.NoError(t, err)
	assert.True(t, resp.Available())
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 99, Date: june1, StartTime: "18:00", EndTime: "19:00", Quantity: 1})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: tableT1, Date: june1, StartTime: "19:00", EndTime: "18:00", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: tableT1, Date: june1, StartTime: "18:00", EndTime: "19:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
