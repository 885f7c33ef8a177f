package scheduler

import (
	"schedgen/internal/model"
	"schedgen/internal/rules"
)

// ValidateDuration checks a single feature's actual duration (in calendar
// days) against the applicable Duration rules and returns the first
// violation, or a valid result.
func ValidateDuration(feature model.Feature, ruleSet []model.SchedulingRule) model.DurationValidation {
	reg := rules.New(ruleSet)
	return reg.ValidateDuration(feature.ID, feature.DurationDays())
}

// DurationReport is the batch result of ValidateAllDurations: the
// violations across a whole data set, keyed by feature id. Each entry is
// still a first-violation result for that feature, as ValidateDuration
// returns.
type DurationReport struct {
	Violations map[string]model.DurationValidation
}

// ValidateAllDurations builds a DurationReport over every feature, keyed
// by feature id, containing only the features that failed validation.
func ValidateAllDurations(features []model.Feature, ruleSet []model.SchedulingRule) DurationReport {
	reg := rules.New(ruleSet)
	report := DurationReport{Violations: make(map[string]model.DurationValidation)}

	for _, f := range features {
		v := reg.ValidateDuration(f.ID, f.DurationDays())
		if !v.Valid {
			report.Violations[f.ID] = v
		}
	}

	return report
}

// HasViolations reports whether the report contains any duration
// violations.
func (r DurationReport) HasViolations() bool {
	return len(r.Violations) > 0
}
