// Defaults centralizes the default values used when no configuration or
// rule document is supplied — a single source of truth for the engine's
// own tunable knobs.
package core

// RouterDefaults are the Arrow Router's geometry constants.
var RouterDefaults = struct {
	Padding          float64
	SameRowThreshold float64
	ObstacleMargin   float64
	StepSize         float64
	MaxSteps         int
}{
	Padding:          12,
	SameRowThreshold: 5,
	ObstacleMargin:   4,
	StepSize:         20,
	MaxSteps:         20,
}

// DefaultTimeZoneName is the anchor used for all day-boundary arithmetic when
// the caller does not specify one.
const DefaultTimeZoneName = "UTC"

// DefaultLogPrefix is the prefix applied to the package-level default logger.
const DefaultLogPrefix = "[schedgen] "
