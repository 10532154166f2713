package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo      repo.TripRepo
	insurance repo.InsuranceRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(r repo.TripRepo, insurance repo.InsuranceRepo) *TripService {
	return &TripService{repo: r, insurance: insurance}
}

// Create validates and persists a new trip aggregate.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if trip.Status == "" {
		trip.Status = domain.TripPlanning
	}
	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip aggregate by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips without child rows.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, nil
}

// Update validates and updates an existing trip's own fields.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip and its children by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// SetInsurance attaches or replaces the trip's insurance policy.
func (s *TripService) SetInsurance(ctx context.Context, ins domain.Insurance) (domain.Insurance, error) {
	if _, err := s.repo.GetByID(ctx, ins.TripID); err != nil {
		return domain.Insurance{}, fmt.Errorf("service.TripService.SetInsurance: %w", err)
	}
	if ins.CoverageEnd.Before(ins.CoverageStart) {
		return domain.Insurance{}, fmt.Errorf("service.TripService.SetInsurance: %w: coverage end before start", domain.ErrValidation)
	}
	out, err := s.insurance.Upsert(ctx, ins)
	if err != nil {
		return domain.Insurance{}, fmt.Errorf("service.TripService.SetInsurance: %w", err)
	}
	return out, nil
}

func validateTrip(trip domain.Trip) error {
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.HomeCountry == "" {
		return fmt.Errorf("%w: home_country is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date before start_date", domain.ErrValidation)
	}
	for _, d := range trip.Destinations {
		if d.Name == "" || d.CountryCode == "" {
			return fmt.Errorf("%w: destination name and country_code are required", domain.ErrValidation)
		}
	}
	for _, t := range trip.Travelers {
		if t.Name == "" || t.Nationality == "" {
			return fmt.Errorf("%w: traveler name and nationality are required", domain.ErrValidation)
		}
	}
	return nil
}
