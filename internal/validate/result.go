// Package validate implements per-entity validation for bilingual content.
//
// Validators never fail fast and never return Go errors for bad input:
// every rule is checked and every violation collected, so the admin UI can
// highlight all invalid fields in a single pass. Each validator sanitizes
// its input first and returns the sanitized entity alongside the result.
package validate

import "fmt"

// Result is the outcome of validating one entity or collection.
// Errors is keyed by field, bilingual sub-fields as "<field>_<lang>".
type Result struct {
	Valid  bool              `json:"isValid"`
	Errors map[string]string `json:"errors"`
}

func okResult() Result {
	return Result{Valid: true, Errors: map[string]string{}}
}

func (r *Result) fail(field, format string, args ...any) {
	r.Valid = false
	r.Errors[field] = fmt.Sprintf(format, args...)
}

// merge folds a nested result into r, prefixing its error keys.
func (r *Result) merge(prefix string, other Result) {
	for field, msg := range other.Errors {
		r.Valid = false
		r.Errors[prefix+"."+field] = msg
	}
}
