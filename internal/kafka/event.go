package kafka

import "time"

const (
	EventMatchRequested = "match_requested"
	EventMatchAccepted  = "match_accepted"
	EventMatchRejected  = "match_rejected"
)

// MatchEvent is published for every ledger change. RecipientUserID is the
// user the notification is addressed to and may be empty when it could not
// be resolved.
type MatchEvent struct {
	Type            string    `json:"type"`
	RequestID       string    `json:"request_id"`
	RequesterTripID string    `json:"requester_trip_id"`
	TargetTripID    string    `json:"target_trip_id"`
	Status          string    `json:"status"`
	ConsentGiven    bool      `json:"consent_given"`
	RecipientUserID string    `json:"recipient_user_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
