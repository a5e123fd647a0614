package matching

import (
	"context"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/kafka"
)

const (
	EventMatchRequested = kafka.EventMatchRequested
	EventMatchAccepted  = kafka.EventMatchAccepted
	EventMatchRejected  = kafka.EventMatchRejected
)

func (s *MatchService) publish(ctx context.Context, eventType string, req *domain.MatchRequest, recipientUserID string) error {
	if s.producer == nil || s.eventsTopic == "" {
		return nil
	}
	event := kafka.MatchEvent{
		Type:            eventType,
		RequestID:       req.ID,
		RequesterTripID: req.RequesterTripID,
		TargetTripID:    req.TargetTripID,
		Status:          string(req.Status),
		ConsentGiven:    req.ConsentGiven,
		RecipientUserID: recipientUserID,
		OccurredAt:      s.now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, req.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, req.ID, event)
	}
	return nil
}
