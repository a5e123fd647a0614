// Package reconcile splits a flat list of match requests into the requests a
// viewer received and the requests they sent, relative to the set of trips the
// viewer owns.
//
// Build is pure: it performs no I/O and resolves counterpart trips only
// through the TripIndex it is given. Entries come back in no particular
// order; callers that need one sort the result, e.g. with SortByCreatedAtDesc.
package reconcile

import (
	"sort"

	"github.com/Domenick1991/tripmates/internal/domain"
)

// TripIDSet is the set of trip ids owned by the viewer.
type TripIDSet map[string]struct{}

func NewTripIDSet(ids ...string) TripIDSet {
	s := make(TripIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s TripIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// TripIndex maps trip id to trip plan, built once per reconciliation pass.
type TripIndex map[string]domain.TripPlan

func NewTripIndex(plans []domain.TripPlan) TripIndex {
	idx := make(TripIndex, len(plans))
	for _, p := range plans {
		idx[p.ID] = p
	}
	return idx
}

type Entry struct {
	domain.MatchRequest
	CounterpartTrip domain.TripPlan `json:"counterpart_trip"`
	CanRespond      bool            `json:"can_respond"`
}

type View struct {
	Incoming []Entry `json:"incoming"`
	Outgoing []Entry `json:"outgoing"`
}

type side int

const (
	sideNone side = iota
	sideReceiver
	sideSender
)

// classify returns which side of r the viewer is on. Requests between two of
// the viewer's own trips, and requests that do not touch the viewer, are
// sideNone.
func classify(r domain.MatchRequest, owned TripIDSet) side {
	ownsTarget := owned.Has(r.TargetTripID)
	ownsRequester := owned.Has(r.RequesterTripID)
	switch {
	case ownsTarget && ownsRequester:
		return sideNone
	case ownsTarget:
		return sideReceiver
	case ownsRequester:
		return sideSender
	default:
		return sideNone
	}
}

// Build partitions requests into incoming and outgoing entries. A request
// whose counterpart trip is missing from index is left out of both lists.
func Build(requests []domain.MatchRequest, owned TripIDSet, index TripIndex) View {
	view := View{
		Incoming: make([]Entry, 0),
		Outgoing: make([]Entry, 0),
	}

	for _, r := range requests {
		switch classify(r, owned) {
		case sideReceiver:
			counterpart, ok := index[r.RequesterTripID]
			if !ok {
				continue
			}
			view.Incoming = append(view.Incoming, Entry{
				MatchRequest:    r,
				CounterpartTrip: counterpart,
				CanRespond:      r.Status == domain.MatchStatusPending,
			})
		case sideSender:
			counterpart, ok := index[r.TargetTripID]
			if !ok {
				continue
			}
			// the viewer never owns the target here, so it cannot respond
			view.Outgoing = append(view.Outgoing, Entry{
				MatchRequest:    r,
				CounterpartTrip: counterpart,
			})
		}
	}

	return view
}

// CounterpartIDs lists, without duplicates, the trip ids Build will look up
// in the index for this viewer.
func CounterpartIDs(requests []domain.MatchRequest, owned TripIDSet) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, r := range requests {
		switch classify(r, owned) {
		case sideReceiver:
			add(r.RequesterTripID)
		case sideSender:
			add(r.TargetTripID)
		}
	}
	return ids
}

// SortByCreatedAtDesc orders entries newest first, breaking ties by id.
func SortByCreatedAtDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
