package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
)

// ExportService assembles a flat checklist export for one trip: one row per
// task, ready to be rendered as CSV by the handler.
type ExportService struct {
	trips repo.TripRepo
	tasks repo.TaskRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, tasks repo.TaskRepo) *ExportService {
	return &ExportService{trips: trips, tasks: tasks}
}

// Export returns one ExportRow per task of the trip, ordered by deadline.
// A trip without tasks exports zero rows (header only on the wire).
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	tasks, err := s.tasks.ListAllByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, domain.ExportRow{
			TripName:    trip.Name,
			TaskTitle:   t.Title,
			Category:    t.Category,
			Priority:    t.Priority,
			Urgency:     t.Urgency,
			Deadline:    t.Deadline,
			Completed:   t.Completed(),
			CompletedAt: t.CompletedAt,
		})
	}
	return rows, nil
}
