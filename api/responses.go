package api

import (
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/reconcile"
)

type matchResponse struct {
	ID              string `json:"id"`
	RequesterTripID string `json:"requester_trip_id"`
	TargetTripID    string `json:"target_trip_id"`
	Status          string `json:"status"`
	ConsentGiven    bool   `json:"consent_given"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type entryResponse struct {
	matchResponse
	CounterpartTrip domain.TripPlan `json:"counterpart_trip"`
	CanRespond      bool            `json:"can_respond"`
}

type viewResponse struct {
	Incoming []entryResponse `json:"incoming"`
	Outgoing []entryResponse `json:"outgoing"`
}

func toMatchResponse(m *domain.MatchRequest) matchResponse {
	return matchResponse{
		ID:              m.ID,
		RequesterTripID: m.RequesterTripID,
		TargetTripID:    m.TargetTripID,
		Status:          string(m.Status),
		ConsentGiven:    m.ConsentGiven,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// contactsVisible decides whether the counterpart's phone, WhatsApp and email
// are shown: only once the request is accepted with consent.
func contactsVisible(m domain.MatchRequest) bool {
	return m.Status == domain.MatchStatusAccepted && m.ConsentGiven
}

// toEntryResponses shapes view entries. trusted must only be set when the
// requests were loaded from the ledger; caller-supplied status and consent
// never unlock contact fields.
func toEntryResponses(entries []reconcile.Entry, trusted bool) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		trip := e.CounterpartTrip
		if !trusted || !contactsVisible(e.MatchRequest) {
			trip = trip.WithoutContacts()
		}
		out = append(out, entryResponse{
			matchResponse:   toMatchResponse(&e.MatchRequest),
			CounterpartTrip: trip,
			CanRespond:      e.CanRespond,
		})
	}
	return out
}

func toViewResponse(v *reconcile.View, trusted bool) viewResponse {
	return viewResponse{
		Incoming: toEntryResponses(v.Incoming, trusted),
		Outgoing: toEntryResponses(v.Outgoing, trusted),
	}
}
