// Package form3 provides signed distance fields of simple solids
// for feeding marching cubes extraction.
package form3

import (
	"math"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere (exact distance field)

type sphere struct {
	radius float64
	bb     r3.Box
}

// Sphere return an SDF3 for a sphere centered at the origin.
func Sphere(radius float64) (mcubes.SDF3, error) {
	if radius <= 0 {
		return nil, ErrMsg("radius <= 0")
	}
	d := d3.Elem(radius)
	return &sphere{
		radius: radius,
		bb:     r3.Box{Min: r3.Scale(-1, d), Max: d},
	}, nil
}

// Evaluate returns the minimum distance to a sphere.
func (s *sphere) Evaluate(p r3.Vec) float64 {
	return r3.Norm(p) - s.radius
}

// Bounds returns the bounding box for a sphere.
func (s *sphere) Bounds() r3.Box {
	return s.bb
}

// Box (exact distance field)

type box struct {
	size  r3.Vec
	round float64
	bb    r3.Box
}

// Box return an SDF3 for a 3d box (rounded corners with round > 0).
func Box(size r3.Vec, round float64) (mcubes.SDF3, error) {
	if d3.LTEZero(size) {
		return nil, ErrMsg("size <= 0")
	}
	if round < 0 {
		return nil, ErrMsg("round < 0")
	}
	size = r3.Scale(0.5, size)
	if round > size.X || round > size.Y || round > size.Z {
		return nil, ErrMsg("round > half size")
	}
	return &box{
		size:  r3.Sub(size, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, size), Max: size},
	}, nil
}

// Evaluate returns the minimum distance to a 3d box.
func (s *box) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(p, s.size) - s.round
}

// Bounds returns the bounding box for a 3d box.
func (s *box) Bounds() r3.Box {
	return s.bb
}

// Torus (exact distance field)

type torus struct {
	rGreater, rRing float64
}

// Torus returns an SDF3 for a torus lying on the XY plane. greaterRadius is
// the distance from the origin to the center of the ring and ringRadius the
// radius of the ring cross section.
func Torus(greaterRadius, ringRadius float64) (mcubes.SDF3, error) {
	if greaterRadius <= 0 || ringRadius <= 0 {
		return nil, ErrMsg("invalid torus parameter")
	}
	if ringRadius >= greaterRadius {
		return nil, ErrMsg("too large torus ring radius")
	}
	return &torus{rGreater: greaterRadius, rRing: ringRadius}, nil
}

// Evaluate returns the minimum distance to a torus.
func (s *torus) Evaluate(p r3.Vec) float64 {
	q := math.Hypot(p.X, p.Y) - s.rGreater
	return math.Hypot(q, p.Z) - s.rRing
}

// Bounds returns the bounding box for a torus.
func (s *torus) Bounds() r3.Box {
	R := s.rGreater + s.rRing
	return r3.Box{
		Min: r3.Vec{X: -R, Y: -R, Z: -s.rRing},
		Max: r3.Vec{X: R, Y: R, Z: s.rRing},
	}
}

// Gyroid (approximate distance field)

type gyroid struct {
	k         float64
	thickness float64
	bounds    r3.Box
	size      r3.Vec
	center    r3.Vec
}

// Gyroid returns a gyroid sheet of the given thickness clipped to bounds.
// scale is the length of one period of the surface.
func Gyroid(scale, thickness float64, bounds r3.Box) (mcubes.SDF3, error) {
	if scale <= 0 {
		return nil, ErrMsg("scale <= 0")
	}
	if thickness <= 0 {
		return nil, ErrMsg("thickness <= 0")
	}
	b := d3.Box(bounds)
	if d3.LTEZero(b.Size()) {
		return nil, ErrMsg("empty gyroid bounds")
	}
	return &gyroid{
		k:         2 * math.Pi / scale,
		thickness: thickness,
		bounds:    bounds,
		size:      r3.Scale(0.5, b.Size()),
		center:    b.Center(),
	}, nil
}

// Evaluate returns the approximate distance to the gyroid sheet.
func (s *gyroid) Evaluate(p r3.Vec) float64 {
	x, y, z := s.k*p.X, s.k*p.Y, s.k*p.Z
	g := math.Sin(x)*math.Cos(y) + math.Sin(y)*math.Cos(z) + math.Sin(z)*math.Cos(x)
	d := math.Abs(g)/s.k - s.thickness/2
	clip := sdfBox3d(r3.Sub(p, s.center), s.size)
	return math.Max(d, clip)
}

// Bounds returns the clipping box of the gyroid.
func (s *gyroid) Bounds() r3.Box {
	return s.bounds
}

func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	if d.X > 0 && d.Y > 0 && d.Z > 0 {
		return r3.Norm(d)
	}
	if d.X > 0 && d.Y > 0 {
		return math.Hypot(d.X, d.Y)
	}
	if d.X > 0 && d.Z > 0 {
		return math.Hypot(d.X, d.Z)
	}
	if d.Y > 0 && d.Z > 0 {
		return math.Hypot(d.Y, d.Z)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	if d.Z > 0 {
		return d.Z
	}
	return d3.Max(d)
}
