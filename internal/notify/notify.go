package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/tripmates/internal/kafka"
)

type Notification struct {
	UserID    string
	RequestID string
	Title     string
	Message   string
}

// Deliverer hands a notification to the push/socket layer.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

type logDeliverer struct{}

func (logDeliverer) Deliver(_ context.Context, n Notification) error {
	log.Printf("notify user %s: %s (%s)", n.UserID, n.Title, n.Message)
	return nil
}

type Sender struct {
	deliverer Deliverer
}

func NewSender() *Sender {
	return &Sender{deliverer: logDeliverer{}}
}

func NewSenderWithDeliverer(d Deliverer) *Sender {
	return &Sender{deliverer: d}
}

// Send turns a match event into a notification for its recipient. Events
// without a recipient or of an unknown type are dropped.
func (s *Sender) Send(ctx context.Context, event kafka.MatchEvent) error {
	if event.RecipientUserID == "" {
		log.Printf("skip %s for request %s: no recipient", event.Type, event.RequestID)
		return nil
	}
	n, ok := compose(event)
	if !ok {
		log.Printf("skip unknown event type %q for request %s", event.Type, event.RequestID)
		return nil
	}
	return s.deliverer.Deliver(ctx, n)
}

func compose(event kafka.MatchEvent) (Notification, bool) {
	n := Notification{UserID: event.RecipientUserID, RequestID: event.RequestID}
	switch event.Type {
	case kafka.EventMatchRequested:
		n.Title = "New travel companion request"
		n.Message = fmt.Sprintf("Trip %s wants to travel with your trip %s", event.RequesterTripID, event.TargetTripID)
	case kafka.EventMatchAccepted:
		n.Title = "Match request accepted"
		n.Message = fmt.Sprintf("Trip %s accepted your request", event.TargetTripID)
		if event.ConsentGiven {
			n.Message += "; contact details are now shared"
		}
	case kafka.EventMatchRejected:
		n.Title = "Match request declined"
		n.Message = fmt.Sprintf("Trip %s declined your request", event.TargetTripID)
	default:
		return Notification{}, false
	}
	return n, true
}
