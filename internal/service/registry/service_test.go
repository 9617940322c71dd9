package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RMS-AvailabilityService/internal/domain"
	resourceRepo "github.com/m04kA/RMS-AvailabilityService/internal/infra/storage/resource"
	"github.com/m04kA/RMS-AvailabilityService/pkg/logger"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Resource)
	return res, args.Error(1)
}

func (m *repoMock) ListByKind(ctx context.Context, kind domain.ResourceKind, onlyAvailable bool) ([]*domain.Resource, error) {
	args := m.Called(ctx, kind, onlyAvailable)
	res, _ := args.Get(0).([]*domain.Resource)
	return res, args.Error(1)
}

func TestGet_AppliesEquipmentCapacity(t *testing.T) {
	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Resource{ID: 5, Kind: domain.KindEquipment, Type: "Audio", Capacity: 3}, nil)
	repo.On("GetByID", mock.Anything, int64(6)).
		Return(&domain.Resource{ID: 6, Kind: domain.KindEquipment, Type: "Lighting", Capacity: 0}, nil)
	repo.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Resource{ID: 7, Kind: domain.KindTable, Type: "Audio", Capacity: 4}, nil)

	svc := NewService(repo, map[string]int{"Audio": 10}, logger.NewNop())

	capacity, err := svc.CapacityOf(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 10, capacity)

	capacity, err = svc.CapacityOf(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEquipmentCapacity, capacity)

	capacity, err = svc.CapacityOf(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, capacity, "overrides apply to equipment only")
}

func TestGet_Errors(t *testing.T) {
	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(nil, resourceRepo.ErrResourceNotFound)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, errors.New("connection reset"))

	svc := NewService(repo, nil, logger.NewNop())

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestListByKind(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListByKind", mock.Anything, domain.KindEquipment, true).Return([]*domain.Resource{
		{ID: 1, Kind: domain.KindEquipment, Type: "Visual", Capacity: 1},
	}, nil)

	svc := NewService(repo, domain.DefaultEquipmentCapacities, logger.NewNop())

	list, err := svc.ListByKind(context.Background(), domain.KindEquipment, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 15, list[0].Capacity)

	_, err = svc.ListByKind(context.Background(), "boat", true)
	assert.ErrorIs(t, err, ErrInvalidKind)
	repo.AssertExpectations(t)
}
