package domain

import "time"

// ExportRow is one line of a trip checklist export: a flat, spreadsheet
// friendly view of a task.
type ExportRow struct {
	TripName    string
	TaskTitle   string
	Category    TaskCategory
	Priority    TaskPriority
	Urgency     TaskUrgency
	Deadline    *time.Time
	Completed   bool
	CompletedAt *time.Time
}

// ExportHeader is the CSV header row matching ExportRow's field order.
func ExportHeader() []string {
	return []string{"trip", "task", "category", "priority", "urgency", "deadline", "completed", "completed_at"}
}

// Record renders the row as CSV fields in header order. Nil dates render
// as empty strings.
func (r ExportRow) Record() []string {
	deadline, completedAt := "", ""
	if r.Deadline != nil {
		deadline = r.Deadline.UTC().Format("2006-01-02")
	}
	if r.CompletedAt != nil {
		completedAt = r.CompletedAt.UTC().Format("2006-01-02")
	}
	completed := "no"
	if r.Completed {
		completed = "yes"
	}
	return []string{
		r.TripName,
		r.TaskTitle,
		string(r.Category),
		string(r.Priority),
		string(r.Urgency),
		deadline,
		completed,
		completedAt,
	}
}
