package matching

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/tripmates/internal/domain"
)

type transitionInput struct {
	RequestID    string `validate:"required"`
	ActingUserID string `validate:"required"`
}

func (s *MatchService) AcceptMatchRequest(ctx context.Context, id, actingUserID string) (*domain.MatchRequest, error) {
	return s.transition(ctx, id, actingUserID, domain.MatchStatusAccepted)
}

func (s *MatchService) RejectMatchRequest(ctx context.Context, id, actingUserID string) (*domain.MatchRequest, error) {
	return s.transition(ctx, id, actingUserID, domain.MatchStatusRejected)
}

// transition moves a pending request to a terminal status on behalf of the
// target trip's owner. Authorization is checked before the status, so a
// non-owner always gets ErrUnauthorized.
func (s *MatchService) transition(ctx context.Context, id, actingUserID string, to domain.MatchStatus) (*domain.MatchRequest, error) {
	if err := s.validate.Struct(transitionInput{RequestID: id, ActingUserID: actingUserID}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := s.trips.GetTripPlanFresh(ctx, current.TargetTripID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID != actingUserID {
		return nil, fmt.Errorf("%w: user %s does not own trip %s", domain.ErrUnauthorized, actingUserID, target.ID)
	}

	updated, err := s.requests.CompareAndSwapStatus(ctx, id, domain.MatchStatusPending, to, s.now().UTC())
	if err != nil {
		return nil, err
	}

	eventType := EventMatchAccepted
	if to == domain.MatchStatusRejected {
		eventType = EventMatchRejected
	}
	if err := s.publish(ctx, eventType, updated, s.requesterOwner(ctx, updated)); err != nil {
		log.Printf("WARNING: failed to publish %s for match request %s: %v", eventType, updated.ID, err)
	}
	return updated, nil
}

// requesterOwner resolves the user to notify about a decision. An empty
// result means the requester trip is gone.
func (s *MatchService) requesterOwner(ctx context.Context, req *domain.MatchRequest) string {
	if s.producer == nil {
		return ""
	}
	requester, err := s.trips.GetTripPlan(ctx, req.RequesterTripID)
	if err != nil {
		return ""
	}
	return requester.OwnerID
}
