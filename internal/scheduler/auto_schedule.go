// Package scheduler implements incremental auto-scheduling via BFS
// downstream propagation, and full, rule-aware recalculation via a
// topological walk. Every exported function is total — missing
// predecessors and cyclic graphs are handled without panicking.
package scheduler

import (
	"time"

	"schedgen/internal/model"
)

// Dates is a simple (start, end) pair, used by AutoSchedule's moved-feature
// input.
type Dates struct {
	StartAt time.Time
	EndAt   time.Time
}

// AutoSchedule performs incremental, calendar-day, rule-free propagation
// from a single moved feature to its downstream dependents. It is
// intended for fast, visual drag-response: durations are treated as
// invariant, and the Rule Registry is never consulted.
//
// Missing predecessors are silently ignored (their id simply never appears
// as a dependency source). Cycles terminate because each node is visited
// at most once.
func AutoSchedule(movedID string, newDates Dates, features []model.Feature, deps []model.Dependency) []model.FeatureUpdate {
	byID := make(map[string]model.Feature, len(features))
	for _, f := range features {
		byID[f.ID] = f
	}

	if _, ok := byID[movedID]; !ok {
		return nil
	}

	forward := make(map[string][]model.Dependency)
	for _, d := range deps {
		forward[d.SourceID] = append(forward[d.SourceID], d)
	}

	updates := make([]model.FeatureUpdate, 0, 1)
	visited := make(map[string]bool)

	moved := byID[movedID]
	moved.StartAt, moved.EndAt = newDates.StartAt, newDates.EndAt
	byID[movedID] = moved
	updates = append(updates, model.FeatureUpdate{ID: movedID, StartAt: newDates.StartAt, EndAt: newDates.EndAt})

	queue := []string{movedID}

	for len(queue) > 0 {
		sourceID := queue[0]
		queue = queue[1:]

		// Each node is processed at most once; mark visited on dequeue so a
		// node enqueued by several predecessors before it is reached still
		// only propagates once (spec step 4).
		if visited[sourceID] {
			continue
		}
		visited[sourceID] = true

		source := byID[sourceID]

		for _, dep := range forward[sourceID] {
			target, ok := byID[dep.TargetID]
			if !ok {
				continue
			}

			duration := target.EndAt.Sub(target.StartAt)
			start, end := proposedDates(dep.Type, source, duration)

			if !start.Equal(target.StartAt) || !end.Equal(target.EndAt) {
				target.StartAt, target.EndAt = start, end
				byID[dep.TargetID] = target
				updates = append(updates, model.FeatureUpdate{ID: dep.TargetID, StartAt: start, EndAt: end})
			}

			if !visited[dep.TargetID] {
				queue = append(queue, dep.TargetID)
			}
		}
	}

	return updates
}

// proposedDates computes a target's proposed dates from its source per
// dependency type, preserving the target's existing calendar-day
// duration.
func proposedDates(depType model.DependencyType, source model.Feature, duration time.Duration) (time.Time, time.Time) {
	switch depType {
	case model.FinishToStart:
		start := source.EndAt
		return start, start.Add(duration)
	case model.StartToStart:
		start := source.StartAt
		return start, start.Add(duration)
	case model.FinishToFinish:
		end := source.EndAt
		return end.Add(-duration), end
	case model.StartToFinish:
		end := source.StartAt
		return end.Add(-duration), end
	default:
		return source.StartAt, source.EndAt
	}
}
