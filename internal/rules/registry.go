// Package rules implements the Rule Registry: it filters scheduling
// rules to those enabled and answers per-feature or per-pair queries
// that the Scheduler consults for every propagated edge.
package rules

import (
	"schedgen/internal/model"
)

// Registry holds the enabled subset of a rule set and answers targeted
// queries. Building one is a cheap O(n) filter; callers may build a fresh
// Registry per recalculation.
type Registry struct {
	slack      []*model.SlackPayload
	lags       []*model.LagPayload
	constraint []*model.ConstraintPayload
	duration   []*model.DurationPayload
	alignment  []*model.AlignmentPayload
	capacity   []*model.CapacityPayload
}

// New builds a Registry from the enabled subset of rules. Holiday and
// Blackout rules are ignored here — they belong to internal/calendar.
func New(rules []model.SchedulingRule) *Registry {
	r := &Registry{}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		switch rule.Kind {
		case model.RuleSlack:
			if rule.Slack != nil {
				r.slack = append(r.slack, rule.Slack)
			}
		case model.RuleLag:
			if rule.Lag != nil {
				r.lags = append(r.lags, rule.Lag)
			}
		case model.RuleConstraint:
			if rule.Constraint != nil {
				r.constraint = append(r.constraint, rule.Constraint)
			}
		case model.RuleDuration:
			if rule.Duration != nil {
				r.duration = append(r.duration, rule.Duration)
			}
		case model.RuleAlignment:
			if rule.Alignment != nil {
				r.alignment = append(r.alignment, rule.Alignment)
			}
		case model.RuleCapacity:
			if rule.Capacity != nil {
				r.capacity = append(r.capacity, rule.Capacity)
			}
		}
	}
	return r
}

// TotalSlackDays sums the Days of every enabled slack rule whose scope
// admits this edge. A slack rule with neither a DependencyTypes nor a
// BetweenFeatures scope applies to every edge.
func (r *Registry) TotalSlackDays(depType model.DependencyType, sourceID, targetID string) int {
	total := 0
	for _, s := range r.slack {
		if slackApplies(s, depType, sourceID, targetID) {
			total += s.Days
		}
	}
	return total
}

func slackApplies(s *model.SlackPayload, depType model.DependencyType, sourceID, targetID string) bool {
	if len(s.DependencyTypes) > 0 {
		matched := false
		for _, t := range s.DependencyTypes {
			if t == depType {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(s.BetweenFeatures) > 0 {
		matched := false
		for _, pair := range s.BetweenFeatures {
			if pair.SourceID == sourceID && pair.TargetID == targetID {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// LagDays returns the signed days from the first matching enabled lag rule
// for this (source, target) pair, or zero if none matches.
func (r *Registry) LagDays(sourceID, targetID string) int {
	for _, l := range r.lags {
		if l.SourceID == sourceID && l.TargetID == targetID {
			return l.Days
		}
	}
	return 0
}

// FeatureConstraint returns the first enabled constraint rule whose
// allow-list contains featureID or is empty, or nil if none applies.
func (r *Registry) FeatureConstraint(featureID string) *model.ConstraintPayload {
	for _, c := range r.constraint {
		if ruleAppliesToFeature(c.FeatureIDs, featureID) {
			return c
		}
	}
	return nil
}

// AlignmentDay returns the target weekday features under featureID's scope
// must begin on, or nil if no alignment rule applies.
func (r *Registry) AlignmentDay(featureID string) *int {
	for _, a := range r.alignment {
		if ruleAppliesToFeature(a.FeatureIDs, featureID) {
			d := int(a.Weekday)
			return &d
		}
	}
	return nil
}

// ValidateDuration checks actualDays against every duration rule
// applicable to featureID, returning the first violation encountered, or a
// valid result if none applies or all are satisfied.
func (r *Registry) ValidateDuration(featureID string, actualDays int) model.DurationValidation {
	for _, d := range r.duration {
		if !ruleAppliesToFeature(d.FeatureIDs, featureID) {
			continue
		}
		if d.Min != nil && actualDays < *d.Min {
			return model.DurationValidation{
				Valid:   false,
				Min:     d.Min,
				Max:     d.Max,
				Message: "duration below configured minimum",
			}
		}
		if d.Max != nil && actualDays > *d.Max {
			return model.DurationValidation{
				Valid:   false,
				Min:     d.Min,
				Max:     d.Max,
				Message: "duration exceeds configured maximum",
			}
		}
	}
	return model.DurationValidation{Valid: true}
}

// CapacityRules returns the enabled capacity rules, for the Scheduler's
// capacity check.
func (r *Registry) CapacityRules() []*model.CapacityPayload {
	return r.capacity
}

func ruleAppliesToFeature(allowList []string, featureID string) bool {
	if len(allowList) == 0 {
		return true
	}
	for _, id := range allowList {
		if id == featureID {
			return true
		}
	}
	return false
}
