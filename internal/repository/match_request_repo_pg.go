package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/jackc/pgx/v5"
)

// MatchRequestRepository stores the match request ledger.
type MatchRequestRepository interface {
	// CreatePending inserts req as pending. If an active request already
	// exists for the unordered pair, req is overwritten with it and created
	// is false.
	CreatePending(ctx context.Context, req *domain.MatchRequest) (created bool, err error)
	FindActiveByPair(ctx context.Context, tripA, tripB string) (*domain.MatchRequest, error)
	GetByID(ctx context.Context, id string) (*domain.MatchRequest, error)
	// CompareAndSwapStatus moves the request from one status to another in a
	// single step. It returns domain.ErrConflict when the stored status is
	// not from.
	CompareAndSwapStatus(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) (*domain.MatchRequest, error)
	ListByTripIDs(ctx context.Context, tripIDs []string) ([]domain.MatchRequest, error)
}

type PGMatchRequestRepository struct {
	db DB
}

func NewMatchRequestRepository(db DB) MatchRequestRepository {
	return &PGMatchRequestRepository{db: db}
}

const matchRequestColumns = `id, requester_trip_id, target_trip_id, status, consent_given, created_at, updated_at`

func (r *PGMatchRequestRepository) CreatePending(ctx context.Context, req *domain.MatchRequest) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	req.Status = domain.MatchStatusPending
	row := tx.QueryRow(ctx, `INSERT INTO match_requests (id, requester_trip_id, target_trip_id, status, consent_given, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (LEAST(requester_trip_id, target_trip_id), GREATEST(requester_trip_id, target_trip_id))
			WHERE status IN ('pending', 'accepted') DO NOTHING
		RETURNING `+matchRequestColumns,
		req.ID, req.RequesterTripID, req.TargetTripID, req.Status, req.ConsentGiven, req.CreatedAt)

	inserted, err := scanMatchRequest(row)
	switch {
	case err == nil:
		*req = *inserted
		return true, tx.Commit(ctx)
	case !errors.Is(err, pgx.ErrNoRows):
		return false, err
	}

	existing, err := scanMatchRequest(tx.QueryRow(ctx, activePairQuery, req.RequesterTripID, req.TargetTripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// the conflicting row was resolved between the insert and the read
			return false, fmt.Errorf("%w: active request for pair changed concurrently", domain.ErrConflict)
		}
		return false, err
	}
	*req = *existing
	return false, tx.Commit(ctx)
}

const activePairQuery = `SELECT ` + matchRequestColumns + ` FROM match_requests
	WHERE ((requester_trip_id=$1 AND target_trip_id=$2) OR (requester_trip_id=$2 AND target_trip_id=$1))
	AND status IN ('pending', 'accepted')`

func (r *PGMatchRequestRepository) FindActiveByPair(ctx context.Context, tripA, tripB string) (*domain.MatchRequest, error) {
	m, err := scanMatchRequest(r.db.QueryRow(ctx, activePairQuery, tripA, tripB))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active request between %s and %s", domain.ErrNotFound, tripA, tripB)
		}
		return nil, err
	}
	return m, nil
}

func (r *PGMatchRequestRepository) GetByID(ctx context.Context, id string) (*domain.MatchRequest, error) {
	m, err := scanMatchRequest(r.db.QueryRow(ctx, `SELECT `+matchRequestColumns+` FROM match_requests WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: match request %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return m, nil
}

func (r *PGMatchRequestRepository) CompareAndSwapStatus(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) (*domain.MatchRequest, error) {
	row := r.db.QueryRow(ctx, `UPDATE match_requests SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4 RETURNING `+matchRequestColumns, to, at, id, from)
	m, err := scanMatchRequest(row)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: match request %s is %s", domain.ErrConflict, id, current.Status)
}

func (r *PGMatchRequestRepository) ListByTripIDs(ctx context.Context, tripIDs []string) ([]domain.MatchRequest, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+matchRequestColumns+` FROM match_requests
		WHERE requester_trip_id = ANY($1) OR target_trip_id = ANY($1)`, tripIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.MatchRequest, 0)
	for rows.Next() {
		m, err := scanMatchRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *m)
	}
	return requests, rows.Err()
}

func scanMatchRequest(row pgx.Row) (*domain.MatchRequest, error) {
	var m domain.MatchRequest
	if err := row.Scan(&m.ID, &m.RequesterTripID, &m.TargetTripID, &m.Status, &m.ConsentGiven, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ MatchRequestRepository = (*PGMatchRequestRepository)(nil)
