package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// IsActive reports whether a request in this status blocks a new request
// between the same pair of trips.
func (s MatchStatus) IsActive() bool {
	return s == MatchStatusPending || s == MatchStatusAccepted
}

func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusAccepted || s == MatchStatusRejected
}

func (s MatchStatus) Valid() bool {
	return s == MatchStatusPending || s.IsTerminal()
}

type MatchRequest struct {
	ID              string      `json:"id"`
	RequesterTripID string      `json:"requester_trip_id"`
	TargetTripID    string      `json:"target_trip_id"`
	Status          MatchStatus `json:"status"`
	ConsentGiven    bool        `json:"consent_given"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (m MatchRequest) Involves(tripID string) bool {
	return m.RequesterTripID == tripID || m.TargetTripID == tripID
}

// PairKey returns the two trip ids in canonical order, so (A, B) and (B, A)
// share a key.
func (m MatchRequest) PairKey() (string, string) {
	return CanonicalPair(m.RequesterTripID, m.TargetTripID)
}

func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
