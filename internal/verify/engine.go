package verify

import (
	"fmt"
	"time"
)

// RuleError records a rule that failed during evaluation. The failure is
// isolated: the run continues and all other applicable rules still produce
// their tasks.
type RuleError struct {
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}

// VerificationResult aggregates one engine run over one trip context.
type VerificationResult struct {
	// Tasks are the generated tasks that survived deduplication.
	Tasks []GeneratedTask `json:"tasks"`
	// CompliantRules lists the IDs of applicable rules the trip satisfied.
	CompliantRules []string `json:"compliant_rules"`
	// RuleErrors lists rules that failed to evaluate.
	RuleErrors []RuleError `json:"rule_errors,omitempty"`
	// EvaluatedAt is the injected "now" of the run.
	EvaluatedAt time.Time `json:"evaluated_at"`
	// DuplicatesDropped counts generated tasks discarded because an
	// existing task already covered them.
	DuplicatesDropped int `json:"duplicates_dropped"`
}

// Engine executes the rule registry against verification contexts. It holds
// no per-run state: Run may be called concurrently for independent trips,
// the registry being read-only after construction.
type Engine struct {
	registry *Registry
}

// NewEngine returns an engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Run evaluates every applicable rule in dependency order and returns the
// aggregate result. existingTitles are titles of tasks the caller already
// has; generated tasks matching one of them (normalized-substring overlap)
// are dropped, not merged.
//
// Run is deterministic: the same context and existing titles always yield
// the same result, and feeding a run's surviving titles back as
// existingTitles yields zero new tasks.
//
// A rule that returns an error or panics is recorded in RuleErrors and the
// run continues; a single rule failure never aborts the run.
func (e *Engine) Run(c *Context, existingTitles []string) VerificationResult {
	result := VerificationResult{EvaluatedAt: c.Now}

	var generated []GeneratedTask
	for _, rule := range e.registry.Ordered() {
		if !rule.When.Applies(c) {
			continue
		}

		res, err := evaluate(rule, c)
		if err != nil {
			result.RuleErrors = append(result.RuleErrors, RuleError{
				RuleID:  rule.ID,
				Message: err.Error(),
			})
			continue
		}

		if res.Compliant {
			result.CompliantRules = append(result.CompliantRules, rule.ID)
		}
		generated = append(generated, res.Tasks...)
	}

	result.Tasks = filterDuplicates(generated, existingTitles)
	result.DuplicatesDropped = len(generated) - len(result.Tasks)
	return result
}

// evaluate runs one rule, converting a panic inside the rule into an error
// so a buggy rule cannot take down the whole run.
func evaluate(rule *Rule, c *Context) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s panicked: %v", rule.ID, r)
		}
	}()
	return rule.Evaluate(c)
}
