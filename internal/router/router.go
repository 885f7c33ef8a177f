// Package router implements the Arrow Router: given a dependency and a
// map of feature positions, it produces an SVG poly-line path routing
// from the source bar to the target bar, avoiding other bars. The
// obstacle/constraint machinery is a small bundle of tunable geometry
// limits consulted throughout routing, kept separate from the
// path-shape logic itself.
package router

import (
	"fmt"
	"math"
	"strings"

	"schedgen/internal/core"
	"schedgen/internal/model"
)

// routingConstraints bundles the tunable geometry limits consulted
// throughout routing, kept separate from the routing algorithm itself so
// it can be tuned without touching path-shape logic.
type routingConstraints struct {
	padding          float64
	sameRowThreshold float64
	stepSize         float64
	maxSteps         int
	margin           float64
}

func defaultConstraints() routingConstraints {
	return routingConstraints{
		padding:          core.RouterDefaults.Padding,
		sameRowThreshold: core.RouterDefaults.SameRowThreshold,
		stepSize:         core.RouterDefaults.StepSize,
		maxSteps:         core.RouterDefaults.MaxSteps,
		margin:           core.RouterDefaults.ObstacleMargin,
	}
}

// Point is a single (x, y) coordinate in host pixel space.
type Point struct {
	X float64
	Y float64
}

// Endpoints returns the source and target points for a dependency type.
// Both endpoints sit at the vertical center of their bar; the horizontal
// edge is chosen by dependency type.
func Endpoints(depType model.DependencyType, source, target model.FeaturePosition) (Point, Point) {
	var src, dst Point
	src.Y = source.CenterY()
	dst.Y = target.CenterY()

	switch depType {
	case model.FinishToStart:
		src.X, dst.X = source.Right(), target.Left
	case model.StartToStart:
		src.X, dst.X = source.Left, target.Left
	case model.FinishToFinish:
		src.X, dst.X = source.Right(), target.Right()
	case model.StartToFinish:
		src.X, dst.X = source.Left, target.Right()
	}
	return src, dst
}

// entersFromLeft reports whether a dependency type enters its target bar
// from the left edge (FS, SS) versus the right edge (FF, SF).
func entersFromLeft(depType model.DependencyType) bool {
	return depType == model.FinishToStart || depType == model.StartToStart
}

// RoutedPath is the rendered arrow for a dependency: its SVG poly-line
// path plus the display color the host should stroke it with.
type RoutedPath struct {
	Path  string
	Color string
}

// ComputeDependencyPath builds the routed arrow for a dependency, given
// the current pixel position of every feature. It returns (RoutedPath{},
// false) if either endpoint's position is missing — the host simply
// omits the arrow for that dependency.
func ComputeDependencyPath(dep model.Dependency, positions map[string]model.FeaturePosition) (RoutedPath, bool) {
	sourcePos, ok := positions[dep.SourceID]
	if !ok {
		return RoutedPath{}, false
	}
	targetPos, ok := positions[dep.TargetID]
	if !ok {
		return RoutedPath{}, false
	}

	c := defaultConstraints()

	obstacles := make([]model.Obstacle, 0, len(positions))
	for id, pos := range positions {
		if id == dep.SourceID || id == dep.TargetID {
			continue
		}
		obstacles = append(obstacles, model.InflateObstacle(id, pos, c.margin))
	}

	source, target := Endpoints(dep.Type, sourcePos, targetPos)
	points := route(source, target, entersFromLeft(dep.Type), c, obstacles)
	return RoutedPath{Path: toSVGPath(points), Color: dep.DisplayColor()}, true
}

// route dispatches to the same-row straight line or one of the left-/right-
// entry path shapes.
func route(source, target Point, enterLeft bool, c routingConstraints, obstacles []model.Obstacle) []Point {
	dy := target.Y - source.Y
	dx := target.X - source.X

	if math.Abs(dy) < c.sameRowThreshold {
		return []Point{source, target}
	}

	if enterLeft {
		return routeEnterLeft(source, target, dx, dy, c, obstacles)
	}
	return routeEnterRight(source, target, dx, dy, c, obstacles)
}

// routeEnterLeft implements the three-segment and five-segment S-route
// shapes for dependencies that enter their target from the left.
func routeEnterLeft(source, target Point, dx, dy float64, c routingConstraints, obstacles []model.Obstacle) []Point {
	if dx > 2*c.padding {
		turnX := findSafeVerticalX(source.X+c.padding, 1, minF(source.Y, target.Y), maxF(source.Y, target.Y), obstacles, c)
		return []Point{
			source,
			{X: turnX, Y: source.Y},
			{X: turnX, Y: target.Y},
			target,
		}
	}

	direction := 1.0
	if dy < 0 {
		direction = -1
	}
	midY := findSafeHorizontalY((source.Y+target.Y)/2, direction, minF(source.X, target.X)-c.padding, maxF(source.X, target.X)+c.padding, obstacles, c)

	exitX := source.X + c.padding
	enterX := target.X - c.padding

	return []Point{
		source,
		{X: exitX, Y: source.Y},
		{X: exitX, Y: midY},
		{X: enterX, Y: midY},
		{X: enterX, Y: target.Y},
		target,
	}
}

// routeEnterRight implements the four-segment and six-segment shapes for
// dependencies that enter their target from the right.
func routeEnterRight(source, target Point, dx, dy float64, c routingConstraints, obstacles []model.Obstacle) []Point {
	if dx > 0 {
		exitX := findSafeVerticalX(target.X+c.padding, 1, minF(source.Y, target.Y), maxF(source.Y, target.Y), obstacles, c)
		return []Point{
			source,
			{X: exitX, Y: source.Y},
			{X: exitX, Y: target.Y},
			target,
		}
	}

	direction := 1.0
	if dy < 0 {
		direction = -1
	}
	outsideX := maxF(source.X, target.X) + c.padding
	midY := findSafeHorizontalY((source.Y+target.Y)/2, direction, minF(source.X, target.X), outsideX, obstacles, c)

	sourceExitX := source.X + c.padding
	targetExitX := target.X + c.padding

	return []Point{
		source,
		{X: sourceExitX, Y: source.Y},
		{X: sourceExitX, Y: midY},
		{X: targetExitX, Y: midY},
		{X: targetExitX, Y: target.Y},
		target,
	}
}

// findSafeHorizontalY starts at baseY and steps by c.stepSize in
// direction up to c.maxSteps times, returning the first Y whose
// horizontal segment [minX, maxX] crosses no obstacle. Falls back to
// baseY if none is found.
func findSafeHorizontalY(baseY, direction, minX, maxX float64, obstacles []model.Obstacle, c routingConstraints) float64 {
	y := baseY
	for i := 0; i < c.maxSteps; i++ {
		if !horizontalSegmentCrosses(y, minX, maxX, obstacles) {
			return y
		}
		y += direction * c.stepSize
	}
	return baseY
}

// findSafeVerticalX is the symmetric primitive for vertical segments.
func findSafeVerticalX(baseX, direction, minY, maxY float64, obstacles []model.Obstacle, c routingConstraints) float64 {
	x := baseX
	for i := 0; i < c.maxSteps; i++ {
		if !verticalSegmentCrosses(x, minY, maxY, obstacles) {
			return x
		}
		x += direction * c.stepSize
	}
	return baseX
}

// horizontalSegmentCrosses reports whether the horizontal segment
// y=constant, x in [minX, maxX] intersects any obstacle's interior.
// Obstacle edges are exclusive boundaries.
func horizontalSegmentCrosses(y, minX, maxX float64, obstacles []model.Obstacle) bool {
	lo, hi := minF(minX, maxX), maxF(minX, maxX)
	for _, o := range obstacles {
		if y > o.Top && y < o.Bottom && lo < o.Right && hi > o.Left {
			return true
		}
	}
	return false
}

// verticalSegmentCrosses is the symmetric test for a vertical segment.
func verticalSegmentCrosses(x, minY, maxY float64, obstacles []model.Obstacle) bool {
	lo, hi := minF(minY, maxY), maxF(minY, maxY)
	for _, o := range obstacles {
		if x > o.Left && x < o.Right && lo < o.Bottom && hi > o.Top {
			return true
		}
	}
	return false
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// toSVGPath renders a sequence of points as an SVG poly-line path string,
// "M x y L x y L x y …".
func toSVGPath(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %s", formatPoint(points[0]))
	for _, p := range points[1:] {
		fmt.Fprintf(&b, " L %s", formatPoint(p))
	}
	return b.String()
}

func formatPoint(p Point) string {
	return fmt.Sprintf("%s %s", trimFloat(p.X), trimFloat(p.Y))
}

// trimFloat formats a coordinate without a trailing ".00" for whole-pixel
// values, matching the compact path strings SVG renderers expect.
func trimFloat(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}
