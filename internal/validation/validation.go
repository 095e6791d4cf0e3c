// Package validation applies the staging business rules to extracted
// records. Everything here is pure: the same record and rule set always
// produce the same result, so re-validation is a safe no-op.
package validation

import (
	"github.com/mgirard/ledgerline/internal/staging"
)

// Rule is a named predicate over a staged record. A rule reports zero or
// more violations, each carrying its own severity.
type Rule struct {
	ID    string
	Check func(rec *staging.RawRecord) []staging.Violation
}

// Result is the ordered list of violations produced by one run.
type Result struct {
	Violations []staging.Violation
}

func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == staging.SeverityBlocking {
			return true
		}
	}

	return false
}

// Engine runs an ordered rule set and derives the record status.
type Engine struct {
	rules               []Rule
	confidenceThreshold int
}

// NewEngine builds an engine over the given rules. Rule order is
// preserved in results.
func NewEngine(rules []Rule, confidenceThreshold int) *Engine {
	return &Engine{rules: rules, confidenceThreshold: confidenceThreshold}
}

// Validate runs every rule against the record, in order.
func (e *Engine) Validate(rec *staging.RawRecord) Result {
	var violations []staging.Violation

	for _, rule := range e.rules {
		violations = append(violations, rule.Check(rec)...)
	}

	return Result{Violations: violations}
}

// Outcome derives the post-validation status:
// any BLOCKING violation means the record needs completion; a clean
// record below the confidence threshold needs human review; otherwise
// the record is validated.
func (e *Engine) Outcome(rec *staging.RawRecord, res Result) staging.Status {
	if res.HasBlocking() {
		return staging.StatusNeedsCompletion
	}

	if rec.OverallConfidence() < e.confidenceThreshold {
		return staging.StatusNeedsReview
	}

	return staging.StatusValidated
}
