package verify

import (
	"time"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// Deadline computes when a task must be done:
//
//	tripStart − max(daysBeforeTrip, processingTimeDays+bufferDays)
//
// clamped so it never precedes now. daysBeforeTrip expresses "this should
// be settled N days out"; processing+buffer expresses "getting it done
// takes this long". Whichever demands more lead time wins.
func Deadline(now, tripStart time.Time, daysBeforeTrip, processingTimeDays, bufferDays int) time.Time {
	lead := daysBeforeTrip
	if p := processingTimeDays + bufferDays; p > lead {
		lead = p
	}
	d := tripStart.AddDate(0, 0, -lead)
	if d.Before(now) {
		return now
	}
	return d
}

// EffectivePriority reports the priority a task should be presented with at
// the given moment: the stored priority, escalated one step once now is
// inside the task's buffer window before the deadline (or past it). The
// stored task is never mutated; escalation is a view for the caller.
func EffectivePriority(p domain.TaskPriority, deadline time.Time, bufferDays int, now time.Time) domain.TaskPriority {
	if deadline.IsZero() {
		return p
	}
	windowStart := deadline.AddDate(0, 0, -bufferDays)
	if now.Before(windowStart) {
		return p
	}
	return escalate(p)
}

func escalate(p domain.TaskPriority) domain.TaskPriority {
	switch p {
	case domain.PriorityLow:
		return domain.PriorityMedium
	case domain.PriorityMedium:
		return domain.PriorityHigh
	case domain.PriorityHigh, domain.PriorityCritical:
		return domain.PriorityCritical
	default:
		return p
	}
}
