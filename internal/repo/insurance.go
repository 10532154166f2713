package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// InsuranceRepo defines the persistence operations for travel insurance
// policies. A trip has at most one policy.
type InsuranceRepo interface {
	// Upsert inserts or replaces the trip's policy and returns the
	// persisted record.
	Upsert(ctx context.Context, ins domain.Insurance) (domain.Insurance, error)

	// GetByTripID returns the trip's policy.
	// Returns domain.ErrNotFound when the trip has none — callers that
	// treat "no insurance" as data (the verification service does) map
	// that to a nil policy, not an error.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Insurance, error)

	// Delete removes the trip's policy. Returns domain.ErrNotFound if the
	// trip has none.
	Delete(ctx context.Context, tripID uuid.UUID) error
}

type pgInsuranceRepo struct {
	db db
}

// NewInsuranceRepo constructs an InsuranceRepo backed by the provided db connection.
func NewInsuranceRepo(db db) InsuranceRepo {
	return &pgInsuranceRepo{db: db}
}

const insuranceColumns = `id, trip_id, provider, policy_number, coverage_start, coverage_end, created_at, updated_at`

func (r *pgInsuranceRepo) Upsert(ctx context.Context, ins domain.Insurance) (domain.Insurance, error) {
	const q = `
		INSERT INTO insurance_policies (trip_id, provider, policy_number, coverage_start, coverage_end)
		VALUES (@trip_id, @provider, @policy_number, @coverage_start, @coverage_end)
		ON CONFLICT (trip_id) DO UPDATE
		SET provider = EXCLUDED.provider, policy_number = EXCLUDED.policy_number,
		    coverage_start = EXCLUDED.coverage_start, coverage_end = EXCLUDED.coverage_end,
		    updated_at = now()
		RETURNING ` + insuranceColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":        ins.TripID,
		"provider":       ins.Provider,
		"policy_number":  ins.PolicyNumber,
		"coverage_start": ins.CoverageStart,
		"coverage_end":   ins.CoverageEnd,
	})
	out, err := scanInsurance(row)
	if err != nil {
		return domain.Insurance{}, fmt.Errorf("repo.InsuranceRepo.Upsert: %w", err)
	}
	return out, nil
}

func (r *pgInsuranceRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Insurance, error) {
	const q = `SELECT ` + insuranceColumns + ` FROM insurance_policies WHERE trip_id = @trip_id`

	out, err := scanInsurance(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.Insurance{}, fmt.Errorf("repo.InsuranceRepo.GetByTripID: %w", err)
	}
	return out, nil
}

func (r *pgInsuranceRepo) Delete(ctx context.Context, tripID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM insurance_policies WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.InsuranceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.InsuranceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanInsurance(row pgx.Row) (domain.Insurance, error) {
	var i domain.Insurance
	err := row.Scan(&i.ID, &i.TripID, &i.Provider, &i.PolicyNumber,
		&i.CoverageStart, &i.CoverageEnd, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Insurance{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Insurance{}, err
	}
	return i, nil
}
