package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// TaskRepo defines the persistence operations for preparation tasks.
type TaskRepo interface {
	// CreateBatch inserts the given tasks and returns the persisted records
	// in the same order.
	CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error)

	// GetByID retrieves a single task. Returns domain.ErrNotFound when it
	// does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// ListByTripID returns one page of the trip's tasks ordered by deadline
	// (NULLs last), plus the total count.
	ListByTripID(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error)

	// ListAllByTripID returns every task of the trip ordered by deadline.
	ListAllByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error)

	// OpenTitles returns the titles of the trip's not-yet-completed tasks.
	// This is the deduplication set for a verification refresh.
	OpenTitles(ctx context.Context, tripID uuid.UUID) ([]string, error)

	// CompletedTitles returns the titles of the trip's completed tasks.
	CompletedTitles(ctx context.Context, tripID uuid.UUID) ([]string, error)

	// MarkComplete stamps the task's completed_at. Idempotent: completing
	// an already-completed task keeps the original timestamp.
	// Returns domain.ErrNotFound when the task does not exist.
	MarkComplete(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// DeleteGenerated removes the trip's open rule-generated tasks and
	// returns how many were removed. Completed and manual tasks are kept.
	DeleteGenerated(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type pgTaskRepo struct {
	db db
}

// NewTaskRepo constructs a TaskRepo backed by the provided db connection.
func NewTaskRepo(db db) TaskRepo {
	return &pgTaskRepo{db: db}
}

const taskColumns = `id, trip_id, rule_id, source, title, description, category, priority,
	urgency, deadline, help_url, cost_estimate, destinations, completed_at, created_at, updated_at`

func (r *pgTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	const q = `
		INSERT INTO tasks (trip_id, rule_id, source, title, description, category,
			priority, urgency, deadline, help_url, cost_estimate, destinations)
		VALUES (@trip_id, @rule_id, @source, @title, @description, @category,
			@priority, @urgency, @deadline, @help_url, @cost_estimate, @destinations)
		RETURNING ` + taskColumns

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		// A nil slice encodes as SQL NULL; the column is NOT NULL.
		if t.Destinations == nil {
			t.Destinations = []string{}
		}
		row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
			"trip_id":       t.TripID,
			"rule_id":       t.RuleID,
			"source":        t.Source,
			"title":         t.Title,
			"description":   t.Description,
			"category":      t.Category,
			"priority":      t.Priority,
			"urgency":       t.Urgency,
			"deadline":      t.Deadline,
			"help_url":      t.HelpURL,
			"cost_estimate": t.CostEstimate,
			"destinations":  t.Destinations,
		})
		created, err := scanTask(row)
		if err != nil {
			return nil, fmt.Errorf("repo.TaskRepo.CreateBatch: %w", err)
		}
		out = append(out, created)
	}
	return out, nil
}

func (r *pgTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = @id`

	t, err := scanTask(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *pgTaskRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.Task, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM tasks WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TaskRepo.ListByTripID: count: %w", err)
	}

	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trip_id = @trip_id
		ORDER BY deadline ASC NULLS LAST, created_at ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TaskRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TaskRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *pgTaskRepo) ListAllByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trip_id = @trip_id
		ORDER BY deadline ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.ListAllByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TaskRepo.ListAllByTripID: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *pgTaskRepo) OpenTitles(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return r.titles(ctx, tripID, `completed_at IS NULL`)
}

func (r *pgTaskRepo) CompletedTitles(ctx context.Context, tripID uuid.UUID) ([]string, error) {
	return r.titles(ctx, tripID, `completed_at IS NOT NULL`)
}

func (r *pgTaskRepo) titles(ctx context.Context, tripID uuid.UUID, cond string) ([]string, error) {
	q := `SELECT title FROM tasks WHERE trip_id = @trip_id AND ` + cond + ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.titles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("repo.TaskRepo.titles: scan: %w", err)
		}
		out = append(out, title)
	}
	return out, rows.Err()
}

func (r *pgTaskRepo) MarkComplete(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	const q = `
		UPDATE tasks
		SET completed_at = COALESCE(completed_at, now()), updated_at = now()
		WHERE id = @id
		RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.MarkComplete: %w", err)
	}
	return t, nil
}

func (r *pgTaskRepo) DeleteGenerated(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `
		DELETE FROM tasks
		WHERE trip_id = @trip_id AND source = 'rule' AND completed_at IS NULL`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.TaskRepo.DeleteGenerated: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.TripID, &t.RuleID, &t.Source, &t.Title, &t.Description,
		&t.Category, &t.Priority, &t.Urgency, &t.Deadline, &t.HelpURL,
		&t.CostEstimate, &t.Destinations, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
