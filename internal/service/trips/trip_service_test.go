package trips

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTripPlanRepository struct {
	mock.Mock
}

func (m *MockTripPlanRepository) GetByID(ctx context.Context, id string) (*domain.TripPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

func (m *MockTripPlanRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.TripPlan, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.TripPlan), args.Error(1)
}

func (m *MockTripPlanRepository) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]string), args.Error(1)
}

type MockTripCache struct {
	mock.Mock
}

func (m *MockTripCache) GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

func (m *MockTripCache) SetTripPlan(ctx context.Context, plan domain.TripPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockTripCache) InvalidateTripPlan(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTripService_GetTripPlan_CacheMiss(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	plan := &domain.TripPlan{ID: "A", OwnerID: "u1", Destination: "Lisbon"}

	mockCache.On("GetTripPlan", ctx, "A").Return(nil, nil).Once()
	mockRepo.On("GetByID", mock.Anything, "A").Return(plan, nil).Once()
	mockCache.On("SetTripPlan", mock.Anything, *plan).Return(nil).Once()

	result, err := service.GetTripPlan(ctx, "A")

	assert.NoError(t, err)
	assert.Equal(t, plan, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestTripService_GetTripPlan_CacheHit(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	plan := &domain.TripPlan{ID: "A", OwnerID: "u1"}
	mockCache.On("GetTripPlan", ctx, "A").Return(plan, nil).Once()

	result, err := service.GetTripPlan(ctx, "A")

	assert.NoError(t, err)
	assert.Equal(t, plan, result)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTripService_GetTripPlan_CacheErrorFallsBackToRepository(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	plan := &domain.TripPlan{ID: "A", OwnerID: "u1"}
	mockCache.On("GetTripPlan", ctx, "A").Return(nil, errors.New("redis down")).Once()
	mockRepo.On("GetByID", mock.Anything, "A").Return(plan, nil).Once()
	mockCache.On("SetTripPlan", mock.Anything, *plan).Return(errors.New("redis down")).Once()

	result, err := service.GetTripPlan(ctx, "A")

	assert.NoError(t, err)
	assert.Equal(t, "u1", result.OwnerID)
}

func TestTripService_GetTripPlan_NotFound(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	service := NewTripService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetByID", mock.Anything, "X").Return(nil, fmt.Errorf("%w: trip plan X", domain.ErrNotFound)).Once()

	result, err := service.GetTripPlan(ctx, "X")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_GetTripPlan_LoadSurvivesCallerCancel(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	service := NewTripService(mockRepo, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := &domain.TripPlan{ID: "A", OwnerID: "u1"}
	mockRepo.On("GetByID", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), "A").Return(plan, nil).Once()

	result, err := service.GetTripPlan(ctx, "A")

	assert.NoError(t, err)
	assert.Equal(t, "u1", result.OwnerID)
	mockRepo.AssertExpectations(t)
}

func TestTripService_GetTripPlanFresh_SkipsCacheAndRefreshes(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	plan := &domain.TripPlan{ID: "A", OwnerID: "u1"}
	mockRepo.On("GetByID", ctx, "A").Return(plan, nil).Once()
	mockCache.On("SetTripPlan", ctx, *plan).Return(nil).Once()

	result, err := service.GetTripPlanFresh(ctx, "A")

	assert.NoError(t, err)
	assert.Equal(t, plan, result)
	mockCache.AssertNotCalled(t, "GetTripPlan", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestTripService_GetTripPlanFresh_DeletedTripInvalidatesCache(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "A").Return(nil, fmt.Errorf("%w: trip plan A", domain.ErrNotFound)).Once()
	mockCache.On("InvalidateTripPlan", ctx, "A").Return(nil).Once()

	result, err := service.GetTripPlanFresh(ctx, "A")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "GetTripPlan", mock.Anything, mock.Anything)
}

func TestTripService_GetTripPlanFresh_OtherErrorsKeepCache(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, "A").Return(nil, errors.New("db down")).Once()

	_, err := service.GetTripPlanFresh(ctx, "A")

	assert.Error(t, err)
	mockCache.AssertNotCalled(t, "InvalidateTripPlan", mock.Anything, mock.Anything)
}

func TestTripService_GetTripPlans_MixesCacheAndRepository(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	mockCache := &MockTripCache{}
	service := NewTripService(mockRepo, mockCache)
	ctx := context.Background()

	a := domain.TripPlan{ID: "A", OwnerID: "u1"}
	b := domain.TripPlan{ID: "B", OwnerID: "u2"}

	mockCache.On("GetTripPlan", ctx, "A").Return(&a, nil).Once()
	mockCache.On("GetTripPlan", ctx, "B").Return(nil, nil).Once()
	mockCache.On("GetTripPlan", ctx, "gone").Return(nil, nil).Once()
	mockRepo.On("GetByIDs", ctx, []string{"B", "gone"}).Return([]domain.TripPlan{b}, nil).Once()
	mockCache.On("SetTripPlan", ctx, b).Return(nil).Once()

	result, err := service.GetTripPlans(ctx, []string{"A", "B", "gone"})

	assert.NoError(t, err)
	assert.Equal(t, map[string]domain.TripPlan{"A": a, "B": b}, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestTripService_GetTripPlans_RepositoryError(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	service := NewTripService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("GetByIDs", ctx, []string{"A"}).Return([]domain.TripPlan(nil), errors.New("db error")).Once()

	result, err := service.GetTripPlans(ctx, []string{"A"})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestTripService_ListOwnedTripIDs(t *testing.T) {
	mockRepo := &MockTripPlanRepository{}
	service := NewTripService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("ListIDsByOwner", ctx, "u1").Return([]string{"A", "D"}, nil).Once()

	ids, err := service.ListOwnedTripIDs(ctx, "u1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "D"}, ids)
}
