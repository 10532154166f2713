package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/repo"
)

// createTrip inserts a parent trip so task rows can satisfy their foreign key.
func createTrip(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

func taskFixture(tripID uuid.UUID, title string) domain.Task {
	return domain.Task{
		TripID:   tripID,
		RuleID:   "travel-insurance",
		Source:   domain.SourceRule,
		Title:    title,
		Category: domain.CategoryFinancial,
		Priority: domain.PriorityHigh,
		Urgency:  domain.UrgencyBlocking,
	}
}

func TestTaskRepo_CreateBatch(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	deadline := time.Date(2026, 5, 18, 0, 0, 0, 0, time.UTC)
	first := taskFixture(trip.ID, "Contratar seguro viagem")
	first.Deadline = &deadline
	first.Destinations = []string{"Paris", "Lisboa"}
	second := taskFixture(trip.ID, "Avisar o banco sobre a viagem")
	second.RuleID = "notify-bank"
	second.Category = domain.CategoryFinancial
	second.Priority = domain.PriorityMedium
	second.Urgency = domain.UrgencyImportant

	created, err := r.CreateBatch(ctx, []domain.Task{first, second})

	require.NoError(t, err)
	require.Len(t, created, 2)
	// Rows come back in input order.
	assert.Equal(t, "Contratar seguro viagem", created[0].Title)
	assert.Equal(t, "Avisar o banco sobre a viagem", created[1].Title)
	assert.NotEqual(t, uuid.Nil, created[0].ID)
	assert.Equal(t, trip.ID, created[0].TripID)
	require.NotNil(t, created[0].Deadline)
	assert.True(t, created[0].Deadline.Equal(deadline))
	assert.Equal(t, []string{"Paris", "Lisboa"}, created[0].Destinations)
	assert.Nil(t, created[1].Deadline)
	assert.Nil(t, created[1].CompletedAt)
	assert.False(t, created[0].CreatedAt.IsZero())
}

func TestTaskRepo_CreateBatch_Empty(t *testing.T) {
	tx := beginTx(t)
	r := repo.NewTaskRepo(tx)

	created, err := r.CreateBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestTaskRepo_GetByID(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	created, err := r.CreateBatch(ctx, []domain.Task{taskFixture(trip.ID, "Verificar validade do passaporte de Ana")})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created[0].ID)

	require.NoError(t, err)
	assert.Equal(t, created[0].ID, got.ID)
	assert.Equal(t, "Verificar validade do passaporte de Ana", got.Title)
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTaskRepo(beginTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepo_ListByTripID_OrdersByDeadlineNullsLast(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	late := time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)
	early := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	noDeadline := taskFixture(trip.ID, "Baixar mapas offline dos destinos")
	withLate := taskFixture(trip.ID, "Contratar seguro viagem")
	withLate.Deadline = &late
	withEarly := taskFixture(trip.ID, "Vacinar Bruno contra febre amarela")
	withEarly.Deadline = &early

	_, err := r.CreateBatch(ctx, []domain.Task{noDeadline, withLate, withEarly})
	require.NoError(t, err)

	tasks, total, err := r.ListByTripID(ctx, trip.ID, domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Vacinar Bruno contra febre amarela", tasks[0].Title, "earliest deadline first")
	assert.Equal(t, "Contratar seguro viagem", tasks[1].Title)
	assert.Equal(t, "Baixar mapas offline dos destinos", tasks[2].Title, "NULL deadline sorts last")
}

func TestTaskRepo_ListByTripID_Pagination(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var batch []domain.Task
	for i := 0; i < 5; i++ {
		task := taskFixture(trip.ID, "Task "+string(rune('A'+i)))
		deadline := base.AddDate(0, 0, i)
		task.Deadline = &deadline
		batch = append(batch, task)
	}
	_, err := r.CreateBatch(ctx, batch)
	require.NoError(t, err)

	page, total, err := r.ListByTripID(ctx, trip.ID, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(5), total, "total counts all rows, not the page")
	require.Len(t, page, 2)
	assert.Equal(t, "Task C", page[0].Title)
	assert.Equal(t, "Task D", page[1].Title)
}

func TestTaskRepo_Titles(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	created, err := r.CreateBatch(ctx, []domain.Task{
		taskFixture(trip.ID, "Contratar seguro viagem"),
		taskFixture(trip.ID, "Avisar o banco sobre a viagem"),
	})
	require.NoError(t, err)

	_, err = r.MarkComplete(ctx, created[1].ID)
	require.NoError(t, err)

	open, err := r.OpenTitles(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Contratar seguro viagem"}, open)

	completed, err := r.CompletedTitles(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Avisar o banco sobre a viagem"}, completed)
}

func TestTaskRepo_MarkComplete(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	created, err := r.CreateBatch(ctx, []domain.Task{taskFixture(trip.ID, "Contratar seguro viagem")})
	require.NoError(t, err)

	done, err := r.MarkComplete(ctx, created[0].ID)

	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.Completed())

	// Completing again keeps the original timestamp.
	again, err := r.MarkComplete(ctx, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.True(t, again.CompletedAt.Equal(*done.CompletedAt))
}

func TestTaskRepo_MarkComplete_NotFound(t *testing.T) {
	r := repo.NewTaskRepo(beginTx(t))

	_, err := r.MarkComplete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskRepo_DeleteGenerated(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	open := taskFixture(trip.ID, "Contratar seguro viagem")
	completed := taskFixture(trip.ID, "Avisar o banco sobre a viagem")
	manual := taskFixture(trip.ID, "Comprar adaptador de tomada")
	manual.Source = domain.SourceManual
	manual.RuleID = ""

	created, err := r.CreateBatch(ctx, []domain.Task{open, completed, manual})
	require.NoError(t, err)
	_, err = r.MarkComplete(ctx, created[1].ID)
	require.NoError(t, err)

	removed, err := r.DeleteGenerated(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed, "only the open rule-generated task goes")

	remaining, err := r.ListAllByTripID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	titles := []string{remaining[0].Title, remaining[1].Title}
	assert.Contains(t, titles, "Avisar o banco sobre a viagem")
	assert.Contains(t, titles, "Comprar adaptador de tomada")
}

func TestTaskRepo_ListAllByTripID(t *testing.T) {
	tx := beginTx(t)
	trip := createTrip(t, tx)
	other := createTrip(t, tx)
	r := repo.NewTaskRepo(tx)
	ctx := context.Background()

	_, err := r.CreateBatch(ctx, []domain.Task{
		taskFixture(trip.ID, "Contratar seguro viagem"),
		taskFixture(other.ID, "Baixar mapas offline dos destinos"),
	})
	require.NoError(t, err)

	tasks, err := r.ListAllByTripID(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, tasks, 1, "tasks of other trips must not leak in")
	assert.Equal(t, "Contratar seguro viagem", tasks[0].Title)
}
