package get_alternative_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	"github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/memory"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/conflicts"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/registry"
	"github.com/m04kA/RMS-AvailabilityService/internal/service/slots"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
)

const hallH1 int64 = 1

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *UseCase {
	t.Helper()
	log := logger.NewNop()
	resources := memory.NewResources([]*domain.Resource{
		{ID: hallH1, Name: "H1", Kind: domain.KindHall, Capacity: 120, Available: true},
	})
	reg := registry.NewService(resources, nil, log)
	allocations := memory.NewAllocations()

	w, err := domain.NewTimeWindow(june1, "14:00", "18:00")
	require.NoError(t, err)
	_, err = allocations.Create(context.Background(), &domain.Allocation{
		ResourceID: hallH1, Window: w, Quantity: 80, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	detector := conflicts.NewDetector(reg, allocations, log)
	return NewUseCase(reg, slots.NewFinder(detector, nil, 5, log), log)
}

func TestExecute_HallTwoHourAlternatives(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:          hallH1,
		Date:                june1,
		StartTime:           "15:00",
		DurationMinutes:     120,
		Quantity:            50,
		SearchRadiusMinutes: 180,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01 15:00-17:00", resp.Window.String())
	require.Len(t, resp.Alternatives, 2)
	assert.Equal(t, "2024-06-01 12:00-14:00", resp.Alternatives[0].String())
	assert.Equal(t, "2024-06-01 18:00-20:00", resp.Alternatives[1].String())
}

func TestExecute_EndTimeDefinesDuration(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID: hallH1, Date: june1, StartTime: "16:00", EndTime: "19:00", Quantity: 50,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Alternatives)
	for _, w := range resp.Alternatives {
		assert.Equal(t, 180, w.DurationMinutes())
	}
	assert.Equal(t, "2024-06-01 18:00-21:00", resp.Alternatives[0].String())
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Execute(context.Background(), &Request{ResourceID: 7, Date: june1, StartTime: "15:00", DurationMinutes: 60, Quantity: 1})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: hallH1, Date: june1, StartTime: "15:00", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: hallH1, Date: june1, StartTime: "23:00", DurationMinutes: 120, Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

type finderMock struct {
	mock.Mock
}

func (m *finderMock) Suggest(ctx context.Context, res *domain.Resource, candidate *domain.Allocation, radius int) ([]domain.TimeWindow, error) {
	args := m.Called(ctx, res, candidate, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeWindow), args.Error(1)
}

func TestExecute_FinderFailure(t *testing.T) {
	log := logger.NewNop()
	reg := registry.NewService(memory.NewResources([]*domain.Resource{
		{ID: hallH1, Name: "H1", Kind: domain.KindHall, Capacity: 120, Available: true},
	}), nil, log)
	finder := &finderMock{}
	finder.On("Suggest", mock.Anything, mock.Anything, mock.Anything, 0).
		Return(nil, errors.New("connection reset"))

	uc := NewUseCase(reg, finder, log)
	_, err := uc.Execute(context.Background(), &Request{ResourceID: hallH1, Date: june1, StartTime: "15:00", DurationMinutes: 60, Quantity: 1})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	finder.AssertExpectations(t)
}
