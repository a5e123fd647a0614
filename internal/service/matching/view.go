package matching

import (
	"context"
	"fmt"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/reconcile"
)

// GetReconciledView resolves every counterpart trip in one registry call and
// hands the result to reconcile.Build. The returned lists are unordered.
func (s *MatchService) GetReconciledView(ctx context.Context, requests []domain.MatchRequest, ownedTripIDs []string) (*reconcile.View, error) {
	owned := reconcile.NewTripIDSet(ownedTripIDs...)

	plans, err := s.trips.GetTripPlans(ctx, reconcile.CounterpartIDs(requests, owned))
	if err != nil {
		return nil, err
	}

	view := reconcile.Build(requests, owned, reconcile.TripIndex(plans))
	return &view, nil
}

// GetUserView builds the view for every trip userID owns, newest first.
func (s *MatchService) GetUserView(ctx context.Context, userID string) (*reconcile.View, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	owned, err := s.trips.ListOwnedTripIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return &reconcile.View{Incoming: []reconcile.Entry{}, Outgoing: []reconcile.Entry{}}, nil
	}

	requests, err := s.requests.ListByTripIDs(ctx, owned)
	if err != nil {
		return nil, err
	}

	view, err := s.GetReconciledView(ctx, requests, owned)
	if err != nil {
		return nil, err
	}
	reconcile.SortByCreatedAtDesc(view.Incoming)
	reconcile.SortByCreatedAtDesc(view.Outgoing)
	return view, nil
}
