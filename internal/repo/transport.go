package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// TransportRepo defines the persistence operations for transport legs.
type TransportRepo interface {
	// Create inserts a new transport leg and returns the persisted record.
	Create(ctx context.Context, tr domain.Transport) (domain.Transport, error)

	// ListByTripID returns the trip's transport legs ordered by departure.
	// An empty slice is a normal result, not an error.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error)

	// Delete removes a transport leg. Returns domain.ErrNotFound if it
	// does not exist for that trip.
	Delete(ctx context.Context, tripID, transportID uuid.UUID) error
}

type pgTransportRepo struct {
	db db
}

// NewTransportRepo constructs a TransportRepo backed by the provided db connection.
func NewTransportRepo(db db) TransportRepo {
	return &pgTransportRepo{db: db}
}

const transportColumns = `id, trip_id, kind, origin, destination, departs_at, created_at, updated_at`

func (r *pgTransportRepo) Create(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	const q = `
		INSERT INTO transports (trip_id, kind, origin, destination, departs_at)
		VALUES (@trip_id, @kind, @origin, @destination, @departs_at)
		RETURNING ` + transportColumns

	var out domain.Transport
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":     tr.TripID,
		"kind":        tr.Kind,
		"origin":      tr.Origin,
		"destination": tr.Destination,
		"departs_at":  tr.DepartsAt,
	}).Scan(&out.ID, &out.TripID, &out.Kind, &out.Origin, &out.Destination,
		&out.DepartsAt, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.Create: %w", err)
	}
	return out, nil
}

func (r *pgTransportRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error) {
	const q = `SELECT ` + transportColumns + ` FROM transports WHERE trip_id = @trip_id ORDER BY departs_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Transport
	for rows.Next() {
		var tr domain.Transport
		if err := rows.Scan(&tr.ID, &tr.TripID, &tr.Kind, &tr.Origin, &tr.Destination,
			&tr.DepartsAt, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repo.TransportRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *pgTransportRepo) Delete(ctx context.Context, tripID, transportID uuid.UUID) error {
	const q = `DELETE FROM transports WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": transportID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
