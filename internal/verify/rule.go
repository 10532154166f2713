package verify

import (
	"time"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// Applicability declares the conditions under which a rule runs. All set
// conditions must hold (AND semantics); a zero Applicability always applies.
type Applicability struct {
	// InternationalOnly skips the rule for trips that never leave the home
	// country.
	InternationalOnly bool
	// SchengenOnly skips the rule unless at least one destination is in the
	// Schengen area.
	SchengenOnly bool
	// MinDaysBeforeTrip skips the rule when the trip starts sooner than this
	// many days from now — too late for the task to matter.
	MinDaysBeforeTrip int
	// Predicate is an optional free-form condition over the context.
	Predicate func(*Context) bool
}

// Applies reports whether all declared conditions hold for the context.
func (a Applicability) Applies(c *Context) bool {
	if a.InternationalOnly && !c.Flags.International {
		return false
	}
	if a.SchengenOnly && !c.Flags.VisitingSchengen {
		return false
	}
	if a.MinDaysBeforeTrip > 0 && c.DaysUntilStart() < a.MinDaysBeforeTrip {
		return false
	}
	if a.Predicate != nil && !a.Predicate(c) {
		return false
	}
	return true
}

// Result is the outcome of evaluating one rule against one context.
// Tasks is empty when the rule is compliant, except for rules that
// intentionally emit informational, non-blocking tasks while compliant.
type Result struct {
	Compliant bool
	Tasks     []GeneratedTask
	// Details carries opaque diagnostics for logging and debugging.
	Details map[string]any
}

// GeneratedTask is a preparation task produced by a rule evaluation.
// It is created fresh on every run and never mutated afterwards; downstream
// deduplication decides whether a matching task already exists, in which
// case the generated one is discarded, not merged.
type GeneratedTask struct {
	RuleID      string
	Title       string
	Description string
	Category    domain.TaskCategory
	Priority    domain.TaskPriority
	Urgency     domain.TaskUrgency

	// Raw timing inputs the deadline derives from.
	DaysBeforeTrip     int
	ProcessingTimeDays int
	BufferDays         int

	Deadline time.Time

	HelpURL      string
	CostEstimate string
	// Destinations names the destinations the task applies to.
	Destinations []string
}

// Rule is one self-contained verification check. Rules are stateless and
// side-effect-free: Evaluate may consult only the given context, so
// re-running with the same context always yields the same result.
type Rule struct {
	ID       string
	Name     string
	Category domain.TaskCategory
	When     Applicability
	// DependsOn lists rule IDs that must evaluate before this rule.
	DependsOn []string
	Evaluate  func(*Context) (Result, error)
}

// TaskParams are the rule-supplied fields of a generated task. Everything
// else (rule ID, category, deadline, default destinations) is filled by
// newTask.
type TaskParams struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Urgency     domain.TaskUrgency

	DaysBeforeTrip     int
	ProcessingTimeDays int
	BufferDays         int

	HelpURL      string
	CostEstimate string
	Destinations []string
}

// newTask builds a GeneratedTask for the rule, computing the deadline from
// the context's trip start and stamping provenance. When params name no
// destinations the task applies to all of them.
func (r *Rule) newTask(c *Context, p TaskParams) GeneratedTask {
	dests := p.Destinations
	if len(dests) == 0 {
		dests = c.DestinationNames()
	}
	return GeneratedTask{
		RuleID:             r.ID,
		Title:              p.Title,
		Description:        p.Description,
		Category:           r.Category,
		Priority:           p.Priority,
		Urgency:            p.Urgency,
		DaysBeforeTrip:     p.DaysBeforeTrip,
		ProcessingTimeDays: p.ProcessingTimeDays,
		BufferDays:         p.BufferDays,
		Deadline:           Deadline(c.Now, c.Start, p.DaysBeforeTrip, p.ProcessingTimeDays, p.BufferDays),
		HelpURL:            p.HelpURL,
		CostEstimate:       p.CostEstimate,
		Destinations:       dests,
	}
}
