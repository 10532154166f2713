package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips. A trip is loaded
// as a full aggregate: destinations and travelers come back with it, since
// the verification engine always needs all three.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip with its destinations and travelers and
	// returns the persisted aggregate (DB-generated ids and timestamps
	// populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip aggregate by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips (without child rows) ordered by start_date.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListUpcoming returns full aggregates for trips starting after the
	// given moment, excluding cancelled trips, ordered by start_date.
	ListUpcoming(ctx context.Context, after time.Time) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip (not its
	// children). Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, via FK cascade, its children.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, home_country, start_date, end_date, status, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, home_country, start_date, end_date, status)
		VALUES (@name, @home_country, @start_date, @end_date, @status)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"name":         trip.Name,
		"home_country": trip.HomeCountry,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"status":       trip.Status,
	})
	created, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	for _, d := range trip.Destinations {
		d.TripID = created.ID
		dest, err := r.insertDestination(ctx, d)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: destination: %w", err)
		}
		created.Destinations = append(created.Destinations, dest)
	}
	for _, t := range trip.Travelers {
		t.TripID = created.ID
		trav, err := r.insertTraveler(ctx, t)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: traveler: %w", err)
		}
		created.Travelers = append(created.Travelers, trav)
	}
	return created, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	if err := r.loadChildren(ctx, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *pgTripRepo) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE start_date > @after AND status <> 'cancelled'
		ORDER BY start_date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"after": after})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: %w", err)
	}

	for i := range trips {
		if err := r.loadChildren(ctx, &trips[i]); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListUpcoming: %w", err)
		}
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name = @name, home_country = @home_country, start_date = @start_date,
		    end_date = @end_date, status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":           trip.ID,
		"name":         trip.Name,
		"home_country": trip.HomeCountry,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"status":       trip.Status,
	})
	updated, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// loadChildren fills the trip's destinations and travelers.
func (r *pgTripRepo) loadChildren(ctx context.Context, trip *domain.Trip) error {
	const qd = `
		SELECT id, trip_id, name, country_name, country_code, start_date, end_date, created_at, updated_at
		FROM destinations
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, qd, pgx.NamedArgs{"trip_id": trip.ID})
	if err != nil {
		return fmt.Errorf("destinations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.TripID, &d.Name, &d.CountryName, &d.CountryCode,
			&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return fmt.Errorf("destinations: scan: %w", err)
		}
		trip.Destinations = append(trip.Destinations, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("destinations: %w", err)
	}

	const qt = `
		SELECT id, trip_id, name, nationality, passport_expiry, vaccinations, created_at, updated_at
		FROM travelers
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	trows, err := r.db.Query(ctx, qt, pgx.NamedArgs{"trip_id": trip.ID})
	if err != nil {
		return fmt.Errorf("travelers: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var t domain.Traveler
		if err := trows.Scan(&t.ID, &t.TripID, &t.Name, &t.Nationality,
			&t.PassportExpiry, &t.Vaccinations, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("travelers: scan: %w", err)
		}
		trip.Travelers = append(trip.Travelers, t)
	}
	return trows.Err()
}

func (r *pgTripRepo) insertDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (trip_id, name, country_name, country_code, start_date, end_date)
		VALUES (@trip_id, @name, @country_name, @country_code, @start_date, @end_date)
		RETURNING id, trip_id, name, country_name, country_code, start_date, end_date, created_at, updated_at`

	var out domain.Destination
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":      d.TripID,
		"name":         d.Name,
		"country_name": d.CountryName,
		"country_code": d.CountryCode,
		"start_date":   d.StartDate, // nil becomes NULL
		"end_date":     d.EndDate,
	}).Scan(&out.ID, &out.TripID, &out.Name, &out.CountryName, &out.CountryCode,
		&out.StartDate, &out.EndDate, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (r *pgTripRepo) insertTraveler(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	const q = `
		INSERT INTO travelers (trip_id, name, nationality, passport_expiry, vaccinations)
		VALUES (@trip_id, @name, @nationality, @passport_expiry, @vaccinations)
		RETURNING id, trip_id, name, nationality, passport_expiry, vaccinations, created_at, updated_at`

	// A nil slice encodes as SQL NULL; the column is NOT NULL.
	if t.Vaccinations == nil {
		t.Vaccinations = []string{}
	}

	var out domain.Traveler
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":         t.TripID,
		"name":            t.Name,
		"nationality":     t.Nationality,
		"passport_expiry": t.PassportExpiry,
		"vaccinations":    t.Vaccinations,
	}).Scan(&out.ID, &out.TripID, &out.Name, &out.Nationality,
		&out.PassportExpiry, &out.Vaccinations, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

// scanTrip maps one trips row into a domain.Trip.
// Works for both pgx.Row and pgx.Rows since both have Scan.
func scanTrip(row pgx.Row) (domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(&t.ID, &t.Name, &t.HomeCountry, &t.StartDate, &t.EndDate,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Trip{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}
