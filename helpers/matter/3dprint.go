// Package matter compensates printed part dimensions for the
// behavior of common 3D printing materials.
package matter

import (
	"errors"

	"github.com/soypat/mcubes"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
)

// ViscousMaterial models a printing material that shrinks as it cools.
type ViscousMaterial struct {
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Scale returns s enlarged so the part measures as designed after cooling.
func (m ViscousMaterial) Scale(s mcubes.SDF3) mcubes.SDF3 {
	return scaled{s: s, k: 1 / (1 - m.shrink)}
}

// InternalDimScale returns the design dimension of a hole so that
// it measures real once printed.
func (m ViscousMaterial) InternalDimScale(real float64) (float64, error) {
	if real <= 0 {
		return 0, errors.New("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink, nil
}

// scaled is an SDF3 uniformly scaled about the origin.
type scaled struct {
	s mcubes.SDF3
	k float64
}

func (s scaled) Evaluate(p r3.Vec) float64 {
	return s.k * s.s.Evaluate(r3.Scale(1/s.k, p))
}

func (s scaled) Bounds() r3.Box {
	bb := s.s.Bounds()
	return r3.Box{Min: r3.Scale(s.k, bb.Min), Max: r3.Scale(s.k, bb.Max)}
}
