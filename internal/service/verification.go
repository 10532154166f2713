// Package service contains the business logic for the trip preparation API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls and the verification engine. No SQL lives here — services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
	"github.com/mviana/trip-prep/backend/internal/verify"
)

// Clock abstracts time.Now so verification runs are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// systemClock is the production Clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options tune verification behavior.
type Options struct {
	// ResurfaceCompleted controls whether a refresh may recreate a task the
	// user already marked complete when the underlying gap still exists.
	// Off by default: a dismissed task stays dismissed.
	ResurfaceCompleted bool
	// BatchConcurrency bounds how many trips CheckUpcomingTrips verifies in
	// parallel. Zero means 4.
	BatchConcurrency int
}

// VerificationService is the public API over the verification engine:
// generate tasks for a trip, refresh after edits, react to completion, and
// batch-check upcoming trips.
type VerificationService struct {
	trips      repo.TripRepo
	insurance  repo.InsuranceRepo
	transports repo.TransportRepo
	tasks      repo.TaskRepo
	engine     *verify.Engine
	clock      Clock
	log        *slog.Logger
	opts       Options
}

// NewVerificationService wires the service. Pass nil clock for the system
// clock.
func NewVerificationService(
	trips repo.TripRepo,
	insurance repo.InsuranceRepo,
	transports repo.TransportRepo,
	tasks repo.TaskRepo,
	engine *verify.Engine,
	clock Clock,
	logger *slog.Logger,
	opts Options,
) *VerificationService {
	if clock == nil {
		clock = systemClock{}
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = 4
	}
	return &VerificationService{
		trips:      trips,
		insurance:  insurance,
		transports: transports,
		tasks:      tasks,
		engine:     engine,
		clock:      clock,
		log:        logger,
		opts:       opts,
	}
}

// GenerateTasks runs a full verification for the trip: builds the context,
// evaluates all applicable rules, persists the generated tasks, and returns
// the engine result plus the persisted records. Open generated tasks from an
// earlier run are replaced, so running it twice never duplicates tasks;
// completed tasks survive and keep suppressing their rules.
func (s *VerificationService) GenerateTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error) {
	return s.run(ctx, tripID, false)
}

// RefreshTasks re-verifies the trip after an edit. Tasks the trip already
// has stay untouched; only genuinely new gaps produce new tasks
// (normalized-title dedup). Completed tasks are excluded from the dedup set
// but still suppress regeneration unless Options.ResurfaceCompleted is on.
func (s *VerificationService) RefreshTasks(ctx context.Context, tripID uuid.UUID) (verify.VerificationResult, []domain.Task, error) {
	return s.run(ctx, tripID, true)
}

func (s *VerificationService) run(ctx context.Context, tripID uuid.UUID, refresh bool) (verify.VerificationResult, []domain.Task, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
	}

	rel, err := s.loadRelated(ctx, tripID)
	if err != nil {
		return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
	}

	var existing []string
	if refresh {
		existing, err = s.dedupTitles(ctx, tripID)
		if err != nil {
			return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
		}
	} else {
		// A full run starts from a clean slate: open generated tasks are
		// replaced, completed ones keep suppressing their rules.
		removed, err := s.tasks.DeleteGenerated(ctx, tripID)
		if err != nil {
			return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
		}
		if removed > 0 {
			s.log.Info("replaced generated tasks", "trip_id", tripID, "removed", removed)
		}
		if !s.opts.ResurfaceCompleted {
			existing, err = s.tasks.CompletedTitles(ctx, tripID)
			if err != nil {
				return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
			}
		}
	}

	vctx, err := verify.BuildContext(trip, rel, s.clock.Now())
	if err != nil {
		return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: %w", err)
	}

	result := s.engine.Run(vctx, existing)
	for _, re := range result.RuleErrors {
		s.log.Error("rule evaluation failed", "trip_id", tripID, "rule_id", re.RuleID, "error", re.Message)
	}

	created, err := s.tasks.CreateBatch(ctx, tasksFromGenerated(tripID, result.Tasks))
	if err != nil {
		return verify.VerificationResult{}, nil, fmt.Errorf("service.VerificationService.run: persist tasks: %w", err)
	}

	s.log.Info("trip verified",
		"trip_id", tripID,
		"refresh", refresh,
		"new_tasks", len(created),
		"compliant_rules", len(result.CompliantRules),
		"rule_errors", len(result.RuleErrors),
		"duplicates_dropped", result.DuplicatesDropped,
	)
	return result, created, nil
}

// loadRelated fetches the optional records rules consult. A missing
// insurance policy is data, not an error.
func (s *VerificationService) loadRelated(ctx context.Context, tripID uuid.UUID) (verify.Related, error) {
	var rel verify.Related

	ins, err := s.insurance.GetByTripID(ctx, tripID)
	switch {
	case err == nil:
		rel.Insurance = &ins
	case errors.Is(err, domain.ErrNotFound):
		// no policy on file
	default:
		return verify.Related{}, err
	}

	rel.Transports, err = s.transports.ListByTripID(ctx, tripID)
	if err != nil {
		return verify.Related{}, err
	}
	return rel, nil
}

// dedupTitles assembles the title set a refresh deduplicates against: all
// open tasks, plus completed ones unless resurfacing is enabled.
func (s *VerificationService) dedupTitles(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	titles, err := s.tasks.OpenTitles(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !s.opts.ResurfaceCompleted {
		done, err := s.tasks.CompletedTitles(ctx, tripID)
		if err != nil {
			return nil, err
		}
		titles = append(titles, done...)
	}
	return titles, nil
}

// HandleTaskCompletion marks the trip's task complete. It is bookkeeping
// only and never re-runs rules. Ownership is checked before anything is
// written: a task belonging to another trip reports domain.ErrNotFound and
// stays open.
func (s *VerificationService) HandleTaskCompletion(ctx context.Context, tripID, taskID uuid.UUID) (domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.VerificationService.HandleTaskCompletion: %w", err)
	}
	if task.TripID != tripID {
		return domain.Task{}, fmt.Errorf("service.VerificationService.HandleTaskCompletion: task not in trip: %w", domain.ErrNotFound)
	}

	task, err = s.tasks.MarkComplete(ctx, taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.VerificationService.HandleTaskCompletion: %w", err)
	}
	s.log.Info("task completed", "task_id", taskID, "trip_id", task.TripID, "rule_id", task.RuleID)
	return task, nil
}

// ListTasks returns one page of the trip's tasks with each task's priority
// escalated for presentation when its deadline is inside the buffer window.
// The stored records are not modified.
func (s *VerificationService) ListTasks(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, 0, fmt.Errorf("service.VerificationService.ListTasks: %w", err)
	}
	tasks, total, err := s.tasks.ListByTripID(ctx, tripID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VerificationService.ListTasks: %w", err)
	}
	now := s.clock.Now()
	for i := range tasks {
		tasks[i].Priority = s.CalculatePriority(tasks[i], now)
	}
	return tasks, total, nil
}

// TripCheckResult is the outcome of one trip inside a batch check.
type TripCheckResult struct {
	TripID   uuid.UUID `json:"trip_id"`
	NewTasks int       `json:"new_tasks"`
	Err      string    `json:"error,omitempty"`
}

// CheckUpcomingTrips refreshes every upcoming trip. Trips are verified
// concurrently and independently: one trip's failure is recorded in its
// result and never blocks the others.
func (s *VerificationService) CheckUpcomingTrips(ctx context.Context) ([]TripCheckResult, error) {
	trips, err := s.trips.ListUpcoming(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("service.VerificationService.CheckUpcomingTrips: %w", err)
	}

	results := make([]TripCheckResult, len(trips))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchConcurrency)
	for i, trip := range trips {
		g.Go(func() error {
			res := TripCheckResult{TripID: trip.ID}
			_, created, err := s.RefreshTasks(gctx, trip.ID)
			if err != nil {
				res.Err = err.Error()
			} else {
				res.NewTasks = len(created)
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			// Errors are carried in the per-trip result; returning one here
			// would cancel the siblings.
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// CalculateDeadline computes a task deadline from its raw timing inputs.
// Exposed for reuse; see verify.Deadline for the arithmetic.
func (s *VerificationService) CalculateDeadline(tripStart time.Time, daysBeforeTrip, processingTimeDays, bufferDays int) time.Time {
	return verify.Deadline(s.clock.Now(), tripStart, daysBeforeTrip, processingTimeDays, bufferDays)
}

// CalculatePriority returns the priority the task should be presented with
// at the given moment. Tasks near or past their deadline escalate one step;
// the stored task is unchanged. The escalation window is a week per
// priority step — generated tasks do not persist their buffer inputs, so a
// uniform window stands in for them.
func (s *VerificationService) CalculatePriority(task domain.Task, now time.Time) domain.TaskPriority {
	if task.Deadline == nil || task.Completed() {
		return task.Priority
	}
	return verify.EffectivePriority(task.Priority, *task.Deadline, 7, now)
}

// tasksFromGenerated converts surviving engine output into persistable
// records.
func tasksFromGenerated(tripID uuid.UUID, generated []verify.GeneratedTask) []domain.Task {
	out := make([]domain.Task, 0, len(generated))
	for _, g := range generated {
		deadline := g.Deadline
		out = append(out, domain.Task{
			TripID:       tripID,
			RuleID:       g.RuleID,
			Source:       domain.SourceRule,
			Title:        g.Title,
			Description:  g.Description,
			Category:     g.Category,
			Priority:     g.Priority,
			Urgency:      g.Urgency,
			Deadline:     &deadline,
			HelpURL:      g.HelpURL,
			CostEstimate: g.CostEstimate,
			Destinations: g.Destinations,
		})
	}
	return out
}
