package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/jackc/pgx/v5"
)

// TripPlanRepository is the read side of the trip plan registry.
type TripPlanRepository interface {
	GetByID(ctx context.Context, id string) (*domain.TripPlan, error)
	// GetByIDs omits ids that do not resolve.
	GetByIDs(ctx context.Context, ids []string) ([]domain.TripPlan, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type PGTripPlanRepository struct {
	db DB
}

func NewTripPlanRepository(db DB) TripPlanRepository {
	return &PGTripPlanRepository{db: db}
}

const tripPlanColumns = `tp.id, tp.owner_id, tp.destination, tp.trip_date, tp.trip_time,
	tp.flight_from, tp.flight_to, tp.airline, tp.flight_number, tp.stops,
	u.full_name, u.image, u.phone, u.whatsapp, u.email`

func (r *PGTripPlanRepository) GetByID(ctx context.Context, id string) (*domain.TripPlan, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tripPlanColumns+` FROM trip_plans tp JOIN users u ON u.id = tp.owner_id WHERE tp.id=$1`, id)
	t, err := scanTripPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: trip plan %s", domain.ErrNotFound, id)
		}
		return nil, err
	}
	return t, nil
}

func (r *PGTripPlanRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.TripPlan, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+tripPlanColumns+` FROM trip_plans tp JOIN users u ON u.id = tp.owner_id WHERE tp.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]domain.TripPlan, 0, len(ids))
	for rows.Next() {
		t, err := scanTripPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *t)
	}
	return plans, rows.Err()
}

func (r *PGTripPlanRepository) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM trip_plans WHERE owner_id=$1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTripPlan(row pgx.Row) (*domain.TripPlan, error) {
	var t domain.TripPlan
	if err := row.Scan(
		&t.ID, &t.OwnerID, &t.Destination, &t.Date, &t.Time,
		&t.Flight.From, &t.Flight.To, &t.Flight.Airline, &t.Flight.FlightNumber, &t.Flight.Stops,
		&t.User.FullName, &t.User.Image, &t.User.Phone, &t.User.WhatsApp, &t.User.Email,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ TripPlanRepository = (*PGTripPlanRepository)(nil)
