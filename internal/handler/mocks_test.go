package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/analysis"
	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/handler"
	"github.com/mviana/trip-prep/backend/internal/service"
	"github.com/mviana/trip-prep/backend/internal/verify"
)

type mockTripService struct {
	CreateFunc       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListFunc         func(ctx context.Context) ([]domain.Trip, error)
	UpdateFunc       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	SetInsuranceFunc func(ctx context.Context, ins domain.Insurance) (domain.Insurance, error)
}

var _ handler.TripServicer = (*mockTripService)(nil)

func (m *mockTripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateFunc(ctx, trip)
}
func (m *mockTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTripService) List(ctx context.Context) ([]domain.Trip, error) {
	return m.ListFunc(ctx)
}
func (m *mockTripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateFunc(ctx, trip)
}
func (m *mockTripService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTripService) SetInsurance(ctx context.Context, ins domain.Insurance) (domain.Insurance, error) {
	return m.SetInsuranceFunc(ctx, ins)
}

type mockVerificationService struct {
	GenerateTasksFunc        func(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error)
	RefreshTasksFunc         func(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error)
	HandleTaskCompletionFunc func(ctx context.Context, tripID, taskID uuid.UUID) (domain.Task, error)
	ListTasksFunc            func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error)
	CheckUpcomingTripsFunc   func(ctx context.Context) ([]service.TripCheckResult, error)
}

var _ handler.VerificationServicer = (*mockVerificationService)(nil)

func (m *mockVerificationService) GenerateTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error) {
	return m.GenerateTasksFunc(ctx, tripID)
}
func (m *mockVerificationService) RefreshTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error) {
	return m.RefreshTasksFunc(ctx, tripID)
}
func (m *mockVerificationService) HandleTaskCompletion(ctx context.Context, tripID, taskID uuid.UUID) (domain.Task, error) {
	return m.HandleTaskCompletionFunc(ctx, tripID, taskID)
}
func (m *mockVerificationService) ListTasks(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error) {
	return m.ListTasksFunc(ctx, tripID, p)
}
func (m *mockVerificationService) CheckUpcomingTrips(ctx context.Context) ([]service.TripCheckResult, error) {
	return m.CheckUpcomingTripsFunc(ctx)
}

type mockAnalysisService struct {
	AnalyzeFunc func(ctx context.Context, tripID uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error)
	CachedFunc  func(ctx context.Context, tripID uuid.UUID) (analysis.Analysis, error)
	ForgetFunc  func(tripID uuid.UUID)
}

var _ handler.AnalysisServicer = (*mockAnalysisService)(nil)

func (m *mockAnalysisService) Analyze(ctx context.Context, tripID uuid.UUID, trigger analysis.TriggerReason) (analysis.Analysis, error) {
	return m.AnalyzeFunc(ctx, tripID, trigger)
}
func (m *mockAnalysisService) Forget(tripID uuid.UUID) {
	m.ForgetFunc(tripID)
}
func (m *mockAnalysisService) Cached(ctx context.Context, tripID uuid.UUID) (analysis.Analysis, error) {
	return m.CachedFunc(ctx, tripID)
}

type mockExportService struct {
	ExportFunc func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

var _ handler.ExportServicer = (*mockExportService)(nil)

func (m *mockExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.ExportFunc(ctx, tripID)
}
