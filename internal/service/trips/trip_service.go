package trips

import (
	"context"
	"errors"
	"log"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/repository"
	"golang.org/x/sync/singleflight"
)

// TripUseCase is the read-only view of the trip plan registry used by the
// matching core.
type TripUseCase interface {
	GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error)
	// GetTripPlanFresh skips the cache. Ledger writes and authorization use
	// it so a deleted trip is never matched or acted on.
	GetTripPlanFresh(ctx context.Context, id string) (*domain.TripPlan, error)
	// GetTripPlans resolves the ids it can; unresolvable ids are absent from
	// the result.
	GetTripPlans(ctx context.Context, ids []string) (map[string]domain.TripPlan, error)
	ListOwnedTripIDs(ctx context.Context, userID string) ([]string, error)
}

type TripCache interface {
	GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error)
	SetTripPlan(ctx context.Context, plan domain.TripPlan) error
	InvalidateTripPlan(ctx context.Context, id string) error
}

type TripService struct {
	repo  repository.TripPlanRepository
	cache TripCache
	group singleflight.Group
}

// NewTripService wraps repo with an optional cache; pass nil to disable it.
func NewTripService(repo repository.TripPlanRepository, cache TripCache) *TripService {
	return &TripService{repo: repo, cache: cache}
}

func (s *TripService) GetTripPlan(ctx context.Context, id string) (*domain.TripPlan, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTripPlan(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	// the shared load outlives any one caller's cancellation
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(id, func() (interface{}, error) {
		plan, err := s.repo.GetByID(loadCtx, id)
		if err != nil {
			return nil, err
		}
		s.store(loadCtx, *plan)
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	plan := *v.(*domain.TripPlan)
	return &plan, nil
}

func (s *TripService) GetTripPlanFresh(ctx context.Context, id string) (*domain.TripPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && s.cache != nil {
			if err := s.cache.InvalidateTripPlan(ctx, id); err != nil {
				log.Printf("invalidate trip plan %s: %v", id, err)
			}
		}
		return nil, err
	}
	s.store(ctx, *plan)
	return plan, nil
}

func (s *TripService) store(ctx context.Context, plan domain.TripPlan) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTripPlan(ctx, plan); err != nil {
		log.Printf("cache trip plan %s: %v", plan.ID, err)
	}
}

func (s *TripService) GetTripPlans(ctx context.Context, ids []string) (map[string]domain.TripPlan, error) {
	result := make(map[string]domain.TripPlan, len(ids))
	missing := make([]string, 0, len(ids))

	for _, id := range ids {
		if s.cache != nil {
			if cached, err := s.cache.GetTripPlan(ctx, id); err == nil && cached != nil {
				result[id] = *cached
				continue
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	plans, err := s.repo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		result[p.ID] = p
		s.store(ctx, p)
	}
	return result, nil
}

func (s *TripService) ListOwnedTripIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repo.ListIDsByOwner(ctx, userID)
}

var _ TripUseCase = (*TripService)(nil)
