package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
)

// Hand-written mocks with function fields: each test sets only the methods it
// expects to be called. A call to an unset method panics, which surfaces
// unexpected repo usage immediately.

type mockTripRepo struct {
	CreateFunc       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListFunc         func(ctx context.Context) ([]domain.Trip, error)
	ListUpcomingFunc func(ctx context.Context, after time.Time) ([]domain.Trip, error)
	UpdateFunc       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateFunc(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.ListFunc(ctx)
}
func (m *mockTripRepo) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Trip, error) {
	return m.ListUpcomingFunc(ctx, after)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateFunc(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockInsuranceRepo struct {
	UpsertFunc     func(ctx context.Context, ins domain.Insurance) (domain.Insurance, error)
	GetByTripIDFunc func(ctx context.Context, tripID uuid.UUID) (domain.Insurance, error)
	DeleteFunc     func(ctx context.Context, tripID uuid.UUID) error
}

var _ repo.InsuranceRepo = (*mockInsuranceRepo)(nil)

func (m *mockInsuranceRepo) Upsert(ctx context.Context, ins domain.Insurance) (domain.Insurance, error) {
	return m.UpsertFunc(ctx, ins)
}
func (m *mockInsuranceRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.Insurance, error) {
	return m.GetByTripIDFunc(ctx, tripID)
}
func (m *mockInsuranceRepo) Delete(ctx context.Context, tripID uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID)
}

type mockTransportRepo struct {
	CreateFunc       func(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	ListByTripIDFunc func(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error)
	DeleteFunc       func(ctx context.Context, tripID, transportID uuid.UUID) error
}

var _ repo.TransportRepo = (*mockTransportRepo)(nil)

func (m *mockTransportRepo) Create(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	return m.CreateFunc(ctx, tr)
}
func (m *mockTransportRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error) {
	return m.ListByTripIDFunc(ctx, tripID)
}
func (m *mockTransportRepo) Delete(ctx context.Context, tripID, transportID uuid.UUID) error {
	return m.DeleteFunc(ctx, tripID, transportID)
}

type mockTaskRepo struct {
	CreateBatchFunc     func(ctx context.Context, tasks []domain.Task) ([]domain.Task, error)
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (domain.Task, error)
	ListByTripIDFunc    func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error)
	ListAllByTripIDFunc func(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error)
	OpenTitlesFunc      func(ctx context.Context, tripID uuid.UUID) ([]string, error)
	CompletedTitlesFunc func(ctx context.Context, tripID uuid.UUID) ([]string, error)
	MarkCompleteFunc    func(ctx context.Context, id uuid.UUID) (domain.Task, error)
	DeleteGeneratedFunc func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

var _ repo.TaskRepo = (*mockTaskRepo)(nil)

func (m *mockTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	return m.CreateBatchFunc(ctx, tasks)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTaskRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error) {
	return m.ListByTripIDFunc(ctx, tripID, p)
}
func (m *mockTaskRepo) ListAllByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error) {
	return m.ListAllByTripIDFunc(ctx, tripID)
}
func (m *mockTaskRepo) OpenTitles(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return m.OpenTitlesFunc(ctx, tripID)
}
func (m *mockTaskRepo) CompletedTitles(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return m.CompletedTitlesFunc(ctx, tripID)
}
func (m *mockTaskRepo) MarkComplete(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	return m.MarkCompleteFunc(ctx, id)
}
func (m *mockTaskRepo) DeleteGenerated(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.DeleteGeneratedFunc(ctx, tripID)
}

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
