package scheduler

import (
	"sort"

	"schedgen/internal/model"
	"schedgen/internal/rules"
)

// CheckCapacity performs an advisory capacity check: for each enabled
// capacity rule, features are grouped by owner or group, and a sweep-line
// pass finds the peak concurrency within each group. It never
// reschedules — only warnings are returned.
func CheckCapacity(features []model.Feature, ruleSet []model.SchedulingRule) []model.CapacityWarning {
	reg := rules.New(ruleSet)

	var warnings []model.CapacityWarning
	for _, rule := range reg.CapacityRules() {
		groups := groupFeatures(features, rule.GroupBy)

		resourceIDs := make([]string, 0, len(groups))
		for id := range groups {
			resourceIDs = append(resourceIDs, id)
		}
		sort.Strings(resourceIDs)

		for _, resourceID := range resourceIDs {
			group := groups[resourceID]
			peak := peakConcurrency(group)
			if peak > rule.MaxConcurrent {
				names := make([]string, len(group))
				for i, f := range group {
					names[i] = f.Name
				}
				warnings = append(warnings, model.CapacityWarning{
					ResourceID:   resourceID,
					ResourceKind: rule.GroupBy,
					Max:          rule.MaxConcurrent,
					Actual:       peak,
					FeatureNames: names,
				})
			}
		}
	}

	return warnings
}

func groupFeatures(features []model.Feature, by model.CapacityGroupBy) map[string][]model.Feature {
	groups := make(map[string][]model.Feature)
	for _, f := range features {
		var key string
		switch by {
		case model.CapacityByGroup:
			key = f.GroupID
		default:
			key = f.OwnerID
		}
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], f)
	}
	return groups
}

// peakConcurrency runs the standard +1/-1 sweep over start/end events and
// returns the running maximum.
func peakConcurrency(features []model.Feature) int {
	type event struct {
		at    int64
		delta int
	}

	events := make([]event, 0, len(features)*2)
	for _, f := range features {
		events = append(events, event{at: f.StartAt.UnixNano(), delta: 1})
		events = append(events, event{at: f.EndAt.UnixNano(), delta: -1})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		// Process arrivals before departures at the same instant so a
		// feature ending exactly when another starts still overlaps.
		return events[i].delta > events[j].delta
	})

	current, peak := 0, 0
	for _, e := range events {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}
