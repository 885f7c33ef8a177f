// Package model holds the plain value types the scheduling engine operates
// on: Feature, Dependency, SchedulingRule, and the geometry types used by
// the Arrow Router. None of these types carry behavior beyond small,
// side-effect-free helpers — the engine packages (calendar, rules,
// scheduler, router) own all computation, keeping data and the packages
// that transform it cleanly separated.
package model

import "time"

// Feature is a single schedulable item: identity, human name, a day-
// resolution date range, and optional ownership references used by
// capacity rules. Invariant: EndAt must never be before StartAt — callers
// are responsible for this; the engine does not mutate Feature.
type Feature struct {
	ID       string
	Name     string
	StartAt  time.Time
	EndAt    time.Time
	StatusID string
	OwnerID  string // optional; empty means unassigned
	GroupID  string // optional; empty means ungrouped
}

// DurationDays returns whole calendar days between StartAt and EndAt.
func (f Feature) DurationDays() int {
	return int(f.EndAt.Sub(f.StartAt).Hours() / 24)
}

// FeatureUpdate is a single (id, new start, new end) record emitted by the
// engine for the host to apply. The engine never mutates the caller's
// Feature values directly.
type FeatureUpdate struct {
	ID      string
	StartAt time.Time
	EndAt   time.Time
}

// FeaturePosition is the pixel rectangle a renderer has placed a feature
// bar at, keyed externally by feature id. Produced by the host, consumed
// only by the Arrow Router.
type FeaturePosition struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the rectangle's right edge.
func (p FeaturePosition) Right() float64 { return p.Left + p.Width }

// Bottom returns the rectangle's bottom edge.
func (p FeaturePosition) Bottom() float64 { return p.Top + p.Height }

// CenterY returns the vertical midpoint of the rectangle, where dependency
// arrows enter and leave a feature bar.
func (p FeaturePosition) CenterY() float64 { return p.Top + p.Height/2 }

// Obstacle is a margin-inflated bounding box the Arrow Router must route
// around. Derived from FeaturePosition values at routing time, excluding
// the dependency's own source and target.
type Obstacle struct {
	ID     string
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// InflateObstacle turns a feature rectangle into a routing obstacle,
// expanding every edge by margin pixels.
func InflateObstacle(id string, pos FeaturePosition, margin float64) Obstacle {
	return Obstacle{
		ID:     id,
		Left:   pos.Left - margin,
		Top:    pos.Top - margin,
		Right:  pos.Right() + margin,
		Bottom: pos.Bottom() + margin,
	}
}
