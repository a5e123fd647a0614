package reconcile

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func request(id, requester, target string, status domain.MatchStatus, minutes int) domain.MatchRequest {
	return domain.MatchRequest{
		ID:              id,
		RequesterTripID: requester,
		TargetTripID:    target,
		Status:          status,
		CreatedAt:       base.Add(time.Duration(minutes) * time.Minute),
		UpdatedAt:       base.Add(time.Duration(minutes) * time.Minute),
	}
}

func plans() TripIndex {
	return NewTripIndex([]domain.TripPlan{
		{ID: "A", OwnerID: "u1", Destination: "Lisbon"},
		{ID: "B", OwnerID: "u2", Destination: "Lisbon"},
		{ID: "C", OwnerID: "u3", Destination: "Porto"},
		{ID: "D", OwnerID: "u1", Destination: "Porto"},
	})
}

func TestBuild_SenderAndReceiverViews(t *testing.T) {
	r1 := request("r1", "A", "B", domain.MatchStatusPending, 0)

	sender := Build([]domain.MatchRequest{r1}, NewTripIDSet("A"), plans())
	require.Len(t, sender.Outgoing, 1)
	assert.Empty(t, sender.Incoming)
	assert.Equal(t, "r1", sender.Outgoing[0].ID)
	assert.Equal(t, "B", sender.Outgoing[0].CounterpartTrip.ID)
	assert.False(t, sender.Outgoing[0].CanRespond)

	receiver := Build([]domain.MatchRequest{r1}, NewTripIDSet("B"), plans())
	require.Len(t, receiver.Incoming, 1)
	assert.Empty(t, receiver.Outgoing)
	assert.Equal(t, "A", receiver.Incoming[0].CounterpartTrip.ID)
	assert.True(t, receiver.Incoming[0].CanRespond)
}

func TestBuild_CanRespondOnlyWhilePending(t *testing.T) {
	requests := []domain.MatchRequest{
		request("r1", "A", "B", domain.MatchStatusAccepted, 0),
		request("r2", "C", "B", domain.MatchStatusRejected, 1),
		request("r3", "D", "B", domain.MatchStatusPending, 2),
	}

	view := Build(requests, NewTripIDSet("B"), plans())
	require.Len(t, view.Incoming, 3)
	for _, e := range view.Incoming {
		assert.Equal(t, e.Status == domain.MatchStatusPending, e.CanRespond, e.ID)
	}
}

func TestBuild_ExcludesRequestsBetweenViewersOwnTrips(t *testing.T) {
	requests := []domain.MatchRequest{
		request("r1", "A", "D", domain.MatchStatusPending, 0),
		request("r2", "A", "B", domain.MatchStatusPending, 1),
	}

	view := Build(requests, NewTripIDSet("A", "D"), plans())
	assert.Empty(t, view.Incoming)
	require.Len(t, view.Outgoing, 1)
	assert.Equal(t, "r2", view.Outgoing[0].ID)
}

func TestBuild_ExcludesDanglingCounterpart(t *testing.T) {
	r1 := request("r1", "A", "B", domain.MatchStatusPending, 0)
	index := plans()
	delete(index, "B")

	view := Build([]domain.MatchRequest{r1}, NewTripIDSet("A"), index)
	assert.Empty(t, view.Outgoing)
	assert.Empty(t, view.Incoming)
}

func TestBuild_IgnoresUnrelatedRequests(t *testing.T) {
	view := Build([]domain.MatchRequest{request("r1", "B", "C", domain.MatchStatusPending, 0)}, NewTripIDSet("A"), plans())
	assert.Empty(t, view.Incoming)
	assert.Empty(t, view.Outgoing)
	assert.NotNil(t, view.Incoming)
	assert.NotNil(t, view.Outgoing)
}

func TestBuild_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	trips := []string{"A", "B", "C", "D", "E", "F"}
	statuses := []domain.MatchStatus{domain.MatchStatusPending, domain.MatchStatusAccepted, domain.MatchStatusRejected}

	index := TripIndex{}
	for _, id := range trips[:5] {
		index[id] = domain.TripPlan{ID: id}
	}

	for round := 0; round < 200; round++ {
		requests := make([]domain.MatchRequest, 0)
		for i := 0; i < 10; i++ {
			a, b := trips[rng.Intn(len(trips))], trips[rng.Intn(len(trips))]
			if a == b {
				continue
			}
			requests = append(requests, request(fmt.Sprintf("r%d", i), a, b, statuses[rng.Intn(len(statuses))], i))
		}
		owned := TripIDSet{}
		for _, id := range trips {
			if rng.Intn(2) == 0 {
				owned[id] = struct{}{}
			}
		}

		view := Build(requests, owned, index)

		seen := map[string]int{}
		for _, e := range view.Incoming {
			seen[e.ID]++
			assert.True(t, owned.Has(e.TargetTripID))
			assert.False(t, owned.Has(e.RequesterTripID))
		}
		for _, e := range view.Outgoing {
			seen[e.ID]++
			assert.True(t, owned.Has(e.RequesterTripID))
			assert.False(t, owned.Has(e.TargetTripID))
			assert.False(t, e.CanRespond)
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "request %s surfaced %d times", id, n)
		}
	}
}

func TestCounterpartIDs(t *testing.T) {
	requests := []domain.MatchRequest{
		request("r1", "A", "B", domain.MatchStatusPending, 0),
		request("r2", "C", "A", domain.MatchStatusPending, 1),
		request("r3", "A", "D", domain.MatchStatusPending, 2),
		request("r4", "B", "C", domain.MatchStatusPending, 3),
		request("r5", "D", "B", domain.MatchStatusRejected, 4),
	}

	ids := CounterpartIDs(requests, NewTripIDSet("A", "D"))
	assert.ElementsMatch(t, []string{"B", "C"}, ids)
}

func TestSortByCreatedAtDesc(t *testing.T) {
	entries := []Entry{
		{MatchRequest: request("r1", "A", "B", domain.MatchStatusPending, 0)},
		{MatchRequest: request("r3", "A", "C", domain.MatchStatusPending, 5)},
		{MatchRequest: request("r2", "A", "D", domain.MatchStatusPending, 5)},
	}

	SortByCreatedAtDesc(entries)

	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids)
}
