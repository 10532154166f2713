package verify

import "github.com/mviana/trip-prep/backend/internal/domain"

// offlineMapsRule reminds the traveler to download offline maps for every
// destination. Applies to domestic trips too; skipped only when the trip
// starts in less than a day.
func offlineMapsRule() *Rule {
	r := &Rule{
		ID:       "offline-maps",
		Name:     "Mapas offline",
		Category: domain.CategoryConnectivity,
		When:     Applicability{MinDaysBeforeTrip: 1},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		return Result{
			Tasks: []GeneratedTask{r.newTask(c, TaskParams{
				Title:          "Baixar mapas offline dos destinos",
				Description:    "Baixe os mapas das regiões visitadas para navegar sem depender de rede móvel.",
				Priority:       domain.PriorityLow,
				Urgency:        domain.UrgencyRecommended,
				DaysBeforeTrip: 1,
			})},
		}, nil
	}
	return r
}
