package scheduler

import (
	"time"

	"schedgen/internal/calendar"
	"schedgen/internal/model"
	"schedgen/internal/rules"
)

// Recalculate performs a full, topological, rule-aware recalculation:
// every feature's dates are re-derived from its predecessors, constraints
// are honored, slack/lag/alignment rules are applied, and durations are
// preserved in working days.
func Recalculate(features []model.Feature, deps []model.Dependency, ruleSet []model.SchedulingRule) []model.FeatureUpdate {
	cal := calendar.New(ruleSet, nil)
	reg := rules.New(ruleSet)

	byID := make(map[string]model.Feature, len(features))
	order := make([]string, 0, len(features))
	for _, f := range features {
		byID[f.ID] = f
		order = append(order, f.ID)
	}

	forward := make(map[string][]model.Dependency)
	reverse := make(map[string][]model.Dependency)
	for _, d := range deps {
		forward[d.SourceID] = append(forward[d.SourceID], d)
		reverse[d.TargetID] = append(reverse[d.TargetID], d)
	}

	topo := topologicalOrder(order, forward)

	updates := make([]model.FeatureUpdate, 0)

	for _, id := range topo {
		feature := byID[id]

		if constraint := reg.FeatureConstraint(id); constraint != nil {
			// fixed_start, fixed_end, and fixed_both are all treated as a
			// full skip: a deliberately conservative policy — see DESIGN.md.
			continue
		}

		incoming := reverse[id]
		if len(incoming) == 0 {
			continue
		}

		duration := cal.WorkingDaysBetween(feature.StartAt, feature.EndAt)

		var candidate time.Time
		haveCandidate := false

		for _, dep := range incoming {
			source, ok := byID[dep.SourceID]
			if !ok {
				continue
			}

			slack := reg.TotalSlackDays(dep.Type, dep.SourceID, dep.TargetID)
			c := candidateStart(cal, dep.Type, source, duration, slack)
			c = cal.AddWorkingDays(c, reg.LagDays(dep.SourceID, dep.TargetID))

			if !haveCandidate || c.After(candidate) {
				candidate = c
				haveCandidate = true
			}
		}

		if !haveCandidate {
			continue
		}

		aligned := candidate
		if alignTo := reg.AlignmentDay(id); alignTo != nil {
			aligned = snapForward(candidate, time.Weekday(*alignTo))
		}

		newEnd := cal.AddWorkingDays(aligned, duration)

		if !aligned.Equal(feature.StartAt) {
			updates = append(updates, model.FeatureUpdate{ID: id, StartAt: aligned, EndAt: newEnd})
			feature.StartAt, feature.EndAt = aligned, newEnd
			byID[id] = feature
		}
	}

	return updates
}

// candidateStart computes a single incoming edge's candidate target start
// for the edge's dependency type.
func candidateStart(cal *calendar.Calendar, depType model.DependencyType, source model.Feature, duration, slack int) time.Time {
	switch depType {
	case model.FinishToStart:
		return cal.AddWorkingDays(source.EndAt, slack)
	case model.StartToStart:
		return cal.AddWorkingDays(source.StartAt, slack)
	case model.FinishToFinish:
		end := cal.AddWorkingDays(source.EndAt, slack)
		return cal.SubtractWorkingDays(end, duration)
	case model.StartToFinish:
		end := cal.AddWorkingDays(source.StartAt, slack)
		return cal.SubtractWorkingDays(end, duration)
	default:
		return source.StartAt
	}
}

// snapForward advances start to the next occurrence of weekday, leaving it
// unchanged if already on it.
func snapForward(start time.Time, weekday time.Weekday) time.Time {
	if start.Weekday() == weekday {
		return start
	}
	for d := start.AddDate(0, 0, 1); ; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == weekday {
			return d
		}
	}
}

// topologicalOrder starts from features with no incoming edges and walks
// forward through the dependency graph, appending any remaining
// (cyclic or disconnected) feature at the end so every feature is still
// processed exactly once.
func topologicalOrder(ids []string, forward map[string][]model.Dependency) []string {
	hasIncoming := make(map[string]bool, len(ids))
	for _, edges := range forward {
		for _, d := range edges {
			hasIncoming[d.TargetID] = true
		}
	}

	visited := make(map[string]bool, len(ids))
	order := make([]string, 0, len(ids))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, dep := range forward[id] {
			visit(dep.TargetID)
		}
	}

	for _, id := range ids {
		if !hasIncoming[id] {
			visit(id)
		}
	}
	for _, id := range ids {
		visit(id)
	}

	return order
}
