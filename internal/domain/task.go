package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskCategory groups preparation tasks by the kind of concern they address.
type TaskCategory string

const (
	CategoryDocumentation TaskCategory = "documentation"
	CategoryHealth        TaskCategory = "health"
	CategoryFinancial     TaskCategory = "financial"
	CategoryConnectivity  TaskCategory = "connectivity"
	CategoryLogistics     TaskCategory = "logistics"
)

// TaskPriority orders tasks by importance. Critical sorts first.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskUrgency expresses what happens if the task is skipped.
// A blocking task means the trip cannot reasonably proceed without it
// (e.g. a mandatory vaccination certificate).
type TaskUrgency string

const (
	UrgencyRecommended TaskUrgency = "recommended"
	UrgencyImportant   TaskUrgency = "important"
	UrgencyBlocking    TaskUrgency = "blocking"
)

// TaskSource distinguishes how a task came to exist. Rule tasks carry full
// confidence; AI suggestions are lower-trust and require explicit acceptance.
type TaskSource string

const (
	SourceRule   TaskSource = "rule"
	SourceAI     TaskSource = "ai"
	SourceManual TaskSource = "manual"
)

// Task is a persisted preparation task attached to a trip.
// Tasks are created by the verification service from engine output (or by a
// user accepting an AI suggestion) and are never mutated by the engine —
// only their completion state changes afterwards.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	TripID       uuid.UUID    `json:"trip_id"`
	RuleID       string       `json:"rule_id,omitempty"` // empty for manual tasks
	Source       TaskSource   `json:"source"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Category     TaskCategory `json:"category"`
	Priority     TaskPriority `json:"priority"`
	Urgency      TaskUrgency  `json:"urgency"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	HelpURL      string       `json:"help_url,omitempty"`
	CostEstimate string       `json:"cost_estimate,omitempty"`
	Destinations []string     `json:"destinations,omitempty"` // names of destinations the task applies to
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Completed reports whether the user has marked the task done.
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}
