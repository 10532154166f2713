package verify

import (
	"fmt"

	"github.com/mviana/trip-prep/backend/internal/domain"
)

// VaccineYellowFever is the vaccination record key the yellow fever rule
// looks for on each traveler.
const VaccineYellowFever = "yellow-fever"

// yellowFeverVaccineRule generates one task per traveler without a yellow
// fever vaccination record when any destination is in the endemic set.
// Destinations in the certificate-required subset escalate the task to
// blocking with critical priority: without the certificate the traveler is
// refused entry.
func yellowFeverVaccineRule() *Rule {
	r := &Rule{
		ID:       "yellow-fever-vaccine",
		Name:     "Vacina febre amarela",
		Category: domain.CategoryHealth,
		When: Applicability{
			Predicate: func(c *Context) bool {
				for code := range c.CountryCodes {
					if yellowFeverEndemic[code] {
						return true
					}
				}
				return false
			},
		},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		certificateRequired := false
		var endemicDests []string
		for _, d := range c.Destinations {
			if yellowFeverEndemic[d.CountryCode] {
				endemicDests = append(endemicDests, d.Name)
			}
			if yellowFeverCertificateRequired[d.CountryCode] {
				certificateRequired = true
			}
		}

		priority, urgency := domain.PriorityHigh, domain.UrgencyImportant
		if certificateRequired {
			priority, urgency = domain.PriorityCritical, domain.UrgencyBlocking
		}

		var tasks []GeneratedTask
		for _, t := range c.Travelers {
			if t.Vaccinated(VaccineYellowFever) {
				continue
			}
			tasks = append(tasks, r.newTask(c, TaskParams{
				Title:              fmt.Sprintf("Vacinar %s contra febre amarela", t.Name),
				Description:        "A vacina deve ser aplicada com pelo menos 10 dias de antecedência para o certificado internacional valer na entrada do país.",
				Priority:           priority,
				Urgency:            urgency,
				DaysBeforeTrip:     14,
				ProcessingTimeDays: 10,
				BufferDays:         7,
				HelpURL:            "https://www.gov.br/saude/pt-br/vacinacao",
				Destinations:       endemicDests,
			}))
		}

		return Result{
			Compliant: len(tasks) == 0,
			Tasks:     tasks,
			Details:   map[string]any{"certificate_required": certificateRequired},
		}, nil
	}
	return r
}

// highAltitudeMedicationRule emits an informational task when the itinerary
// reaches high altitude. The rule stays compliant — the task is advice, not
// a compliance gap — which exercises the "compliant with informational
// tasks" branch of the rule contract.
func highAltitudeMedicationRule() *Rule {
	r := &Rule{
		ID:       "high-altitude-medication",
		Name:     "Medicação para altitude",
		Category: domain.CategoryHealth,
		When: Applicability{
			Predicate: func(c *Context) bool { return c.Flags.VisitingHighAltitude },
		},
	}
	r.Evaluate = func(c *Context) (Result, error) {
		var highDests []string
		for _, d := range c.Destinations {
			if d.HighAltitude {
				highDests = append(highDests, d.Name)
			}
		}
		return Result{
			Compliant: true,
			Tasks: []GeneratedTask{r.newTask(c, TaskParams{
				Title:          "Consultar médico sobre medicação para altitude",
				Description:    "Destinos acima de 2.500 m podem causar mal de altitude. Converse com um médico sobre acetazolamida e planeje a aclimatação.",
				Priority:       domain.PriorityLow,
				Urgency:        domain.UrgencyRecommended,
				DaysBeforeTrip: 14,
				Destinations:   highDests,
			})},
		}, nil
	}
	return r
}
