package verify

import (
	"fmt"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// passportValidityRule checks each traveler's passport against the
// strictest remaining-validity requirement across all destinations (0, 3,
// or 6 months beyond the trip end; Schengen forces 6). A traveler with no
// recorded expiry date gets a task too: unknown is non-compliant, the rule
// never assumes missing data means a valid passport.
func passportValidityRule() *Rule {
	r := &Rule{
		ID:       "passport-validity",
		Name:     "Validade do passaporte",
		Category: domain.CategoryDocumentation,
		When:     Applicability{InternationalOnly: true},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		requiredMonths := 0
		for _, d := range c.Destinations {
			if m := requiredPassportValidityMonths(d.CountryCode); m > requiredMonths {
				requiredMonths = m
			}
		}

		var tasks []GeneratedTask
		details := map[string]any{"required_months": requiredMonths}

		for _, t := range c.Travelers {
			if t.PassportExpiry == nil {
				tasks = append(tasks, r.newTask(c, TaskParams{
					Title:          fmt.Sprintf("Verificar validade do passaporte de %s", t.Name),
					Description:    fmt.Sprintf("Não há data de validade do passaporte cadastrada para %s. Confira o documento e registre a validade.", t.Name),
					Priority:       domain.PriorityHigh,
					Urgency:        domain.UrgencyImportant,
					DaysBeforeTrip: 30,
				}))
				continue
			}

			threshold := c.End.AddDate(0, requiredMonths, 0)
			if t.PassportExpiry.Before(threshold) {
				tasks = append(tasks, r.newTask(c, TaskParams{
					Title:              fmt.Sprintf("Renovar passaporte de %s", t.Name),
					Description:        fmt.Sprintf("O passaporte de %s vence em %s, mas os destinos exigem validade de pelo menos %d meses após o fim da viagem.", t.Name, t.PassportExpiry.Format("02/01/2006"), requiredMonths),
					Priority:           domain.PriorityHigh,
					Urgency:            domain.UrgencyBlocking,
					DaysBeforeTrip:     60,
					ProcessingTimeDays: 30,
					BufferDays:         15,
					HelpURL:            "https://www.gov.br/pf/pt-br/assuntos/passaporte",
					CostEstimate:       "R$ 257,25",
				}))
			}
		}

		return Result{Compliant: len(tasks) == 0, Tasks: tasks, Details: details}, nil
	}
	return r
}

// estaAuthorizationRule requires an approved ESTA for travelers entering
// the United States under the Visa Waiver Program. US nationals and
// nationalities outside the program are out of scope (the latter need a
// visa, which this rule set does not cover).
func estaAuthorizationRule() *Rule {
	r := &Rule{
		ID:       "esta-authorization",
		Name:     "Autorização ESTA",
		Category: domain.CategoryDocumentation,
		When: Applicability{
			Predicate: func(c *Context) bool {
				if !c.Flags.VisitingUS {
					return false
				}
				for _, t := range c.Travelers {
					if t.Nationality != "US" && visaWaiverCountries[t.Nationality] {
						return true
					}
				}
				return false
			},
		},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		var usDests []string
		for _, d := range c.Destinations {
			if d.CountryCode == "US" {
				usDests = append(usDests, d.Name)
			}
		}
		return Result{
			Tasks: []GeneratedTask{r.newTask(c, TaskParams{
				Title:              "Solicitar autorização ESTA",
				Description:        "Viajantes do Visa Waiver Program precisam de um ESTA aprovado antes do embarque para os EUA. A aprovação costuma sair em até 72 horas.",
				Priority:           domain.PriorityHigh,
				Urgency:            domain.UrgencyBlocking,
				DaysBeforeTrip:     7,
				ProcessingTimeDays: 3,
				BufferDays:         2,
				HelpURL:            "https://esta.cbp.dhs.gov/",
				CostEstimate:       "US$ 21",
				Destinations:       usDests,
			})},
		}, nil
	}
	return r
}
