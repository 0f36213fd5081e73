// Package coherence cross-checks the figures of a diagnostic snapshot against
// each other and against registry data, producing severity-ranked alerts.
//
// Validation is pure: no I/O, no shared mutable state. A Validator can be
// used from any number of goroutines.
package coherence

import (
	"slices"
	"sort"

	"github.com/valorisation/coherence/internal/domain"
)

// Validator evaluates the coherence rules. Its only setting is the locale
// used to word alerts.
type Validator struct {
	locale domain.Locale
}

// Option configures a Validator.
type Option func(*Validator)

// WithLocale selects the message catalog. Unknown locales fall back to French.
func WithLocale(l domain.Locale) Option {
	return func(v *Validator) { v.locale = l }
}

// New creates a Validator. The default locale is French.
func New(opts ...Option) *Validator {
	v := &Validator{locale: domain.LocaleFR}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate runs the rules with the default French wording.
func Validate(s domain.DiagnosticSnapshot) []domain.Alert {
	return defaultValidator.Validate(s)
}

// Validate evaluates every rule against the snapshot and returns the alerts
// that fired, errors first, then warnings, then infos. Within a severity
// alerts keep rule declaration order. The result is never nil.
func (v *Validator) Validate(s domain.DiagnosticSnapshot) []domain.Alert {
	f := newFormatter(v.locale)

	alerts := make([]domain.Alert, 0, len(rules))
	for _, r := range rules {
		msg, detail, ok := r.eval(s, f)
		if !ok {
			continue
		}
		alerts = append(alerts, domain.Alert{
			ID:       r.ID,
			Severity: r.Severity,
			Message:  msg,
			Detail:   detail,
			Step:     r.Step,
			Fields:   slices.Clone(r.Fields),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})
	return alerts
}

// Rules returns the rule catalog in evaluation order.
func Rules() []domain.Rule {
	out := make([]domain.Rule, 0, len(rules))
	for _, r := range rules {
		meta := r.Rule
		meta.Fields = slices.Clone(r.Fields)
		out = append(out, meta)
	}
	return out
}
