package verify

import "github.com/mviana/trip-prep/backend/internal/domain"

// travelInsuranceRule checks that an international trip carries an
// insurance policy whose coverage spans the whole trip.
func travelInsuranceRule() *Rule {
	r := &Rule{
		ID:       "travel-insurance",
		Name:     "Seguro viagem",
		Category: domain.CategoryFinancial,
		When:     Applicability{InternationalOnly: true},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		if c.Insurance == nil {
			return Result{
				Tasks: []GeneratedTask{r.newTask(c, TaskParams{
					Title:              "Contratar seguro viagem",
					Description:        "Nenhum seguro viagem encontrado para esta viagem. Contrate uma apólice que cubra todo o período.",
					Priority:           domain.PriorityHigh,
					Urgency:            domain.UrgencyBlocking,
					DaysBeforeTrip:     14,
					ProcessingTimeDays: 2,
					BufferDays:         3,
					CostEstimate:       "R$ 150–600",
				})},
				Details: map[string]any{"insurance": "missing"},
			}, nil
		}
		if !c.Insurance.Covers(c.Start, c.End) {
			return Result{
				Tasks: []GeneratedTask{r.newTask(c, TaskParams{
					Title:              "Estender cobertura do seguro viagem",
					Description:        "A apólice atual não cobre todas as datas da viagem. Ajuste o período de cobertura com a seguradora.",
					Priority:           domain.PriorityHigh,
					Urgency:            domain.UrgencyBlocking,
					DaysBeforeTrip:     10,
					ProcessingTimeDays: 2,
					BufferDays:         2,
				})},
				Details: map[string]any{
					"insurance":      "partial coverage",
					"coverage_start": c.Insurance.CoverageStart,
					"coverage_end":   c.Insurance.CoverageEnd,
				},
			}, nil
		}
		return Result{Compliant: true}, nil
	}
	return r
}

// schengenInsuranceRule enforces the Schengen visa insurance requirement:
// travelers whose nationality is outside the EU/EEA must hold a policy
// covering the Schengen leg of the trip with at least €30,000 in medical
// coverage. The check is independent of the general insurance rule but runs
// after it so the general task is generated first.
func schengenInsuranceRule() *Rule {
	r := &Rule{
		ID:       "schengen-insurance",
		Name:     "Seguro viagem Schengen",
		Category: domain.CategoryFinancial,
		When: Applicability{
			SchengenOnly: true,
			Predicate: func(c *Context) bool {
				for _, t := range c.Travelers {
					if !euEEACountries[t.Nationality] {
						return true
					}
				}
				return false
			},
		},
		DependsOn: []string{"travel-insurance"},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		start, end, ok := c.SchengenRange()
		if !ok {
			// SchengenOnly gating means this cannot happen; stay compliant
			// rather than invent a task for an impossible state.
			return Result{Compliant: true}, nil
		}

		var schengenDests []string
		for _, d := range c.Destinations {
			if d.Schengen {
				schengenDests = append(schengenDests, d.Name)
			}
		}

		if c.Insurance == nil || !c.Insurance.Covers(start, end) {
			return Result{
				Tasks: []GeneratedTask{r.newTask(c, TaskParams{
					Title:              "Contratar seguro viagem Schengen",
					Description:        "Viajantes de fora da UE/EEE precisam de seguro com cobertura mínima de €30.000 válido em todo o espaço Schengen durante a estadia.",
					Priority:           domain.PriorityHigh,
					Urgency:            domain.UrgencyBlocking,
					DaysBeforeTrip:     14,
					ProcessingTimeDays: 2,
					BufferDays:         3,
					HelpURL:            "https://home-affairs.ec.europa.eu/policies/schengen-borders-and-visa_en",
					CostEstimate:       "€30–60",
					Destinations:       schengenDests,
				})},
				Details: map[string]any{
					"schengen_start": start,
					"schengen_end":   end,
				},
			}, nil
		}
		return Result{Compliant: true}, nil
	}
	return r
}

// notifyBankRule reminds the traveler to flag international card usage.
// It is a pure reminder: when applicable it always emits its task. The
// two-day gate skips it when the trip is too close for a call to matter.
func notifyBankRule() *Rule {
	r := &Rule{
		ID:       "notify-bank",
		Name:     "Avisar o banco",
		Category: domain.CategoryFinancial,
		When: Applicability{
			InternationalOnly: true,
			MinDaysBeforeTrip: 2,
		},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		return Result{
			Tasks: []GeneratedTask{r.newTask(c, TaskParams{
				Title:          "Avisar o banco sobre a viagem internacional",
				Description:    "Informe o banco e as operadoras de cartão sobre o destino e as datas para evitar bloqueios por suspeita de fraude.",
				Priority:       domain.PriorityMedium,
				Urgency:        domain.UrgencyImportant,
				DaysBeforeTrip: 3,
			})},
		}, nil
	}
	return r
}
