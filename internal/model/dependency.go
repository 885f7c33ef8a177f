package model

import "fmt"

// DependencyType is the closed set of dependency semantics between a source
// and a target feature.
type DependencyType string

const (
	// FinishToStart: target start is constrained to >= source end (+buffers).
	FinishToStart DependencyType = "FS"
	// StartToStart: target start is constrained to >= source start (+buffers).
	StartToStart DependencyType = "SS"
	// FinishToFinish: target end is constrained to >= source end (+buffers);
	// start is derived by subtracting duration.
	FinishToFinish DependencyType = "FF"
	// StartToFinish: target end is constrained to >= source start (+buffers);
	// start is derived by subtracting duration.
	StartToFinish DependencyType = "SF"
)

// Valid reports whether d is one of the four closed dependency types.
func (d DependencyType) Valid() bool {
	switch d {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	default:
		return false
	}
}

// Dependency is a typed edge from a source feature to a target feature.
// Invariant: SourceID != TargetID (self-dependencies are meaningless); the
// engine does not enforce this at the boundary — rejecting malformed
// input is the host's responsibility.
type Dependency struct {
	ID       string
	SourceID string
	TargetID string
	Type     DependencyType
	Color    string // optional display color; "" means "derive one"
}

// DisplayColor returns Color if set, otherwise a deterministic color hashed
// from the dependency's identity, using a golden-angle HSL spread to give
// every un-colored dependency a distinct, reproducible color across runs
// without a lookup table.
func (d Dependency) DisplayColor() string {
	if d.Color != "" {
		return d.Color
	}
	return hashColor(d.ID)
}

func hashColor(seed string) string {
	hash := 0
	for i, r := range seed {
		hash = hash*31 + int(r) + i*7
	}
	if hash < 0 {
		hash = -hash
	}

	hue := float64(hash%360) * 137.5
	hue -= float64(int(hue/360.0)) * 360

	r, g, b := hslToRGB(hue, 0.65, 0.55)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func hslToRGB(h, s, l float64) (int, int, int) {
	h /= 360.0

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q, p float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p = 2*l - q

		r = hueToRGB(p, q, h+1.0/3.0)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3.0)
	}

	return int(r * 255), int(g * 255), int(b * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
