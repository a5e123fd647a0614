package matching

import (
	"context"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMatchRequestRepository struct {
	mock.Mock
}

func (m *MockMatchRequestRepository) CreatePending(ctx context.Context, req *domain.MatchRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockMatchRequestRepository) FindActiveByPair(ctx context.Context, tripA, tripB string) (*domain.MatchRequest, error) {
	args := m.Called(ctx, tripA, tripB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchRequest), args.Error(1)
}

func (m *MockMatchRequestRepository) GetByID(ctx context.Context, id string) (*domain.MatchRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchRequest), args.Error(1)
}

func (m *MockMatchRequestRepository) CompareAndSwapStatus(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) (*domain.MatchRequest, error) {
	args := m.Called(ctx, id, from, to, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchRequest), args.Error(1)
}

func (m *MockMatchRequestRepository) ListByTripIDs(ctx context.Context, tripIDs []string) ([]domain.MatchRequest, error) {
	args := m.Called(ctx, tripIDs)
	return args.Get(0).([]domain.MatchRequest), args.Error(1)
}

type MockTripUseCase struct {
	mock.Mock
}

func (m *MockTripUseCase) GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

func (m *MockTripUseCase) GetTripPlanFresh(ctx context.Context, id string) (*domain.TripPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

func (m *MockTripUseCase) GetTripPlans(ctx context.Context, ids []string) (map[string]domain.TripPlan, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TripPlan), args.Error(1)
}

func (m *MockTripUseCase) ListOwnedTripIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
