package matching

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/reconcile"
	"github.com/Domenick1991/tripmates/internal/repository"
	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type MatchUseCase interface {
	// CreateMatchRequest returns the existing active request for the pair,
	// with created set to false, instead of inserting a second one.
	CreateMatchRequest(ctx context.Context, input CreateMatchInput) (req *domain.MatchRequest, created bool, err error)
	GetMatchRequest(ctx context.Context, id string) (*domain.MatchRequest, error)
	AcceptMatchRequest(ctx context.Context, id, actingUserID string) (*domain.MatchRequest, error)
	RejectMatchRequest(ctx context.Context, id, actingUserID string) (*domain.MatchRequest, error)
	GetReconciledView(ctx context.Context, requests []domain.MatchRequest, ownedTripIDs []string) (*reconcile.View, error)
	GetUserView(ctx context.Context, userID string) (*reconcile.View, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateMatchInput struct {
	RequesterTripID string `json:"requester_trip_id" validate:"required,max=128"`
	TargetTripID    string `json:"target_trip_id" validate:"required,max=128"`
	ConsentGiven    bool   `json:"consent_given"`
}

type MatchService struct {
	requests           repository.MatchRequestRepository
	trips              trips.TripUseCase
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	validate           *validator.Validate
	now                func() time.Time
	newID              func() string
}

type MatchServiceOption func(*MatchService)

// WithEvents publishes ledger changes to topic through producer.
func WithEvents(producer Producer, topic string) MatchServiceOption {
	return func(s *MatchService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithNotificationsTopic(topic string) MatchServiceOption {
	return func(s *MatchService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) MatchServiceOption {
	return func(s *MatchService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) MatchServiceOption {
	return func(s *MatchService) {
		s.newID = newID
	}
}

func NewMatchService(requests repository.MatchRequestRepository, trips trips.TripUseCase, opts ...MatchServiceOption) *MatchService {
	service := &MatchService{
		requests: requests,
		trips:    trips,
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *MatchService) CreateMatchRequest(ctx context.Context, input CreateMatchInput) (*domain.MatchRequest, bool, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if input.RequesterTripID == input.TargetTripID {
		return nil, false, fmt.Errorf("%w: trip %s cannot match itself", domain.ErrSelfMatch, input.RequesterTripID)
	}

	requester, err := s.trips.GetTripPlanFresh(ctx, input.RequesterTripID)
	if err != nil {
		return nil, false, err
	}
	target, err := s.trips.GetTripPlanFresh(ctx, input.TargetTripID)
	if err != nil {
		return nil, false, err
	}
	if requester.OwnerID == target.OwnerID {
		return nil, false, fmt.Errorf("%w: trips %s and %s belong to the same user", domain.ErrSelfMatch, requester.ID, target.ID)
	}

	existing, err := s.requests.FindActiveByPair(ctx, input.RequesterTripID, input.TargetTripID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	req := &domain.MatchRequest{
		ID:              s.newID(),
		RequesterTripID: input.RequesterTripID,
		TargetTripID:    input.TargetTripID,
		Status:          domain.MatchStatusPending,
		ConsentGiven:    input.ConsentGiven,
		CreatedAt:       s.now().UTC(),
	}
	req.UpdatedAt = req.CreatedAt

	created, err := s.requests.CreatePending(ctx, req)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return req, false, nil
	}

	if err := s.publish(ctx, EventMatchRequested, req, target.OwnerID); err != nil {
		log.Printf("WARNING: failed to publish %s for match request %s: %v", EventMatchRequested, req.ID, err)
	}
	return req, true, nil
}

func (s *MatchService) GetMatchRequest(ctx context.Context, id string) (*domain.MatchRequest, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: match request id is required", domain.ErrValidation)
	}
	return s.requests.GetByID(ctx, id)
}

var _ MatchUseCase = (*MatchService)(nil)
