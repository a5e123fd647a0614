package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
)

// MemoryTripPlanRepository is a process-local registry used when no database
// is configured and in tests.
type MemoryTripPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.TripPlan
}

func NewMemoryTripPlanRepository(plans ...domain.TripPlan) *MemoryTripPlanRepository {
	r := &MemoryTripPlanRepository{plans: make(map[string]domain.TripPlan, len(plans))}
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return r
}

func (r *MemoryTripPlanRepository) Put(plan domain.TripPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan
}

// LoadJSON adds the trip plans in data, a JSON array, replacing plans with
// the same id.
func (r *MemoryTripPlanRepository) LoadJSON(data []byte) (int, error) {
	var plans []domain.TripPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return 0, fmt.Errorf("failed to decode trip plans: %w", err)
	}
	for i, p := range plans {
		if p.ID == "" || p.OwnerID == "" {
			return 0, fmt.Errorf("%w: trip plan %d needs id and owner_id", domain.ErrValidation, i)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range plans {
		r.plans[p.ID] = p
	}
	return len(plans), nil
}

func (r *MemoryTripPlanRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, id)
}

func (r *MemoryTripPlanRepository) GetByID(_ context.Context, id string) (*domain.TripPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, fmt.Errorf("%w: trip plan %s", domain.ErrNotFound, id)
	}
	return &p, nil
}

func (r *MemoryTripPlanRepository) GetByIDs(_ context.Context, ids []string) ([]domain.TripPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := make([]domain.TripPlan, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.plans[id]; ok {
			plans = append(plans, p)
		}
	}
	return plans, nil
}

func (r *MemoryTripPlanRepository) ListIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0)
	for id, p := range r.plans {
		if p.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type pairKey struct{ a, b string }

// MemoryMatchRequestRepository keeps the ledger in a map. All mutations hold
// the same mutex, which serialises creation per pair and status swaps per id.
type MemoryMatchRequestRepository struct {
	mu       sync.Mutex
	requests map[string]domain.MatchRequest
	active   map[pairKey]string
}

func NewMemoryMatchRequestRepository() *MemoryMatchRequestRepository {
	return &MemoryMatchRequestRepository{
		requests: make(map[string]domain.MatchRequest),
		active:   make(map[pairKey]string),
	}
}

func newPairKey(a, b string) pairKey {
	a, b = domain.CanonicalPair(a, b)
	return pairKey{a: a, b: b}
}

func (r *MemoryMatchRequestRepository) CreatePending(_ context.Context, req *domain.MatchRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := newPairKey(req.RequesterTripID, req.TargetTripID)
	if id, ok := r.active[key]; ok {
		*req = r.requests[id]
		return false, nil
	}
	if _, ok := r.requests[req.ID]; ok {
		return false, fmt.Errorf("%w: match request %s already exists", domain.ErrConflict, req.ID)
	}

	req.Status = domain.MatchStatusPending
	req.UpdatedAt = req.CreatedAt
	r.requests[req.ID] = *req
	r.active[key] = req.ID
	return true, nil
}

func (r *MemoryMatchRequestRepository) FindActiveByPair(_ context.Context, tripA, tripB string) (*domain.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.active[newPairKey(tripA, tripB)]
	if !ok {
		return nil, fmt.Errorf("%w: no active request between %s and %s", domain.ErrNotFound, tripA, tripB)
	}
	m := r.requests[id]
	return &m, nil
}

func (r *MemoryMatchRequestRepository) GetByID(_ context.Context, id string) (*domain.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: match request %s", domain.ErrNotFound, id)
	}
	return &m, nil
}

func (r *MemoryMatchRequestRepository) CompareAndSwapStatus(_ context.Context, id string, from, to domain.MatchStatus, at time.Time) (*domain.MatchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: match request %s", domain.ErrNotFound, id)
	}
	if m.Status != from {
		return nil, fmt.Errorf("%w: match request %s is %s", domain.ErrConflict, id, m.Status)
	}

	m.Status = to
	m.UpdatedAt = at
	r.requests[id] = m

	key := newPairKey(m.RequesterTripID, m.TargetTripID)
	if !to.IsActive() && r.active[key] == id {
		delete(r.active, key)
	}
	return &m, nil
}

func (r *MemoryMatchRequestRepository) ListByTripIDs(_ context.Context, tripIDs []string) ([]domain.MatchRequest, error) {
	want := make(map[string]struct{}, len(tripIDs))
	for _, id := range tripIDs {
		want[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	requests := make([]domain.MatchRequest, 0)
	for _, m := range r.requests {
		_, requester := want[m.RequesterTripID]
		_, target := want[m.TargetTripID]
		if requester || target {
			requests = append(requests, m)
		}
	}
	return requests, nil
}

var (
	_ TripPlanRepository     = (*MemoryTripPlanRepository)(nil)
	_ MatchRequestRepository = (*MemoryMatchRequestRepository)(nil)
)
