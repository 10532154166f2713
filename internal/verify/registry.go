package verify

import (
	"fmt"
	"sort"
)

// Registry is the static set of known rules with their evaluation order
// resolved. The order is computed once at construction (the registry never
// changes afterwards) and respects DependsOn: a rule always runs strictly
// after all rules it depends on. Ties break on registration order so the
// full ordering is deterministic.
type Registry struct {
	byID    map[string]*Rule
	ordered []*Rule
}

// NewRegistry builds a registry from the given rules. It fails on duplicate
// IDs, on DependsOn references to unknown rules, and on dependency cycles —
// all programming errors in the static rule set, surfaced loudly at
// construction rather than silently skipping rules at run time.
func NewRegistry(rules ...*Rule) (*Registry, error) {
	byID := make(map[string]*Rule, len(rules))
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("verify.NewRegistry: rule %q has no ID", r.Name)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("verify.NewRegistry: duplicate rule ID %q", r.ID)
		}
		byID[r.ID] = r
	}
	for _, r := range rules {
		for _, dep := range r.DependsOn {
			if _, ok := byID[dep]; !ok {
				return nil, fmt.Errorf("verify.NewRegistry: rule %q depends on unknown rule %q", r.ID, dep)
			}
		}
	}

	ordered, err := topoSort(rules)
	if err != nil {
		return nil, fmt.Errorf("verify.NewRegistry: %w", err)
	}
	return &Registry{byID: byID, ordered: ordered}, nil
}

// MustNewRegistry is NewRegistry for statically known rule sets, where a
// construction error is a bug. It panics on error.
func MustNewRegistry(rules ...*Rule) *Registry {
	reg, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Ordered returns the rules in dependency order. Callers must not modify
// the returned slice.
func (r *Registry) Ordered() []*Rule {
	return r.ordered
}

// Rule returns the rule with the given ID, or nil when unknown.
func (r *Registry) Rule(id string) *Rule {
	return r.byID[id]
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// topoSort orders rules so dependencies come first (Kahn's algorithm).
// Among rules that are simultaneously ready, registration order wins, which
// makes the result stable across runs.
func topoSort(rules []*Rule) ([]*Rule, error) {
	index := make(map[string]int, len(rules)) // rule ID → registration index
	for i, r := range rules {
		index[r.ID] = i
	}

	indegree := make([]int, len(rules))
	dependents := make(map[string][]int, len(rules)) // dep ID → indexes of rules waiting on it
	for i, r := range rules {
		indegree[i] = len(r.DependsOn)
		for _, dep := range r.DependsOn {
			dependents[dep] = append(dependents[dep], i)
		}
	}

	var ready []int
	for i, deg := range indegree {
		if deg == 0 {
			ready = append(ready, i)
		}
	}

	ordered := make([]*Rule, 0, len(rules))
	for len(ready) > 0 {
		sort.Ints(ready)
		next := ready[0]
		ready = ready[1:]

		r := rules[next]
		ordered = append(ordered, r)
		for _, waiting := range dependents[r.ID] {
			indegree[waiting]--
			if indegree[waiting] == 0 {
				ready = append(ready, waiting)
			}
		}
	}

	if len(ordered) != len(rules) {
		var cyclic []string
		for i, deg := range indegree {
			if deg > 0 {
				cyclic = append(cyclic, rules[i].ID)
			}
		}
		return nil, fmt.Errorf("dependency cycle among rules %v", cyclic)
	}
	return ordered, nil
}

// DefaultRegistry returns the full static rule set of the application.
// The set is fixed at compile time; a construction failure here is a bug
// in the rule definitions and panics at first use.
func DefaultRegistry() *Registry {
	return MustNewRegistry(
		travelInsuranceRule(),
		schengenInsuranceRule(),
		passportValidityRule(),
		yellowFeverVaccineRule(),
		highAltitudeMedicationRule(),
		notifyBankRule(),
		offlineMapsRule(),
		estaAuthorizationRule(),
	)
}
