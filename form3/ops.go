package form3

import (
	"math"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

type union struct {
	sdf []mcubes.SDF3
	bb  r3.Box
}

// Union returns the union of multiple SDF3 objects.
func Union(sdf ...mcubes.SDF3) (mcubes.SDF3, error) {
	if len(sdf) < 2 {
		return nil, ErrMsg("union requires at least 2 sdfs")
	}
	for _, x := range sdf {
		if x == nil {
			return nil, ErrMsg("nil sdf argument to Union")
		}
	}
	// work out the bounding box
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	return &union{sdf: sdf, bb: r3.Box(bb)}, nil
}

// Evaluate returns the minimum distance to an SDF3 union.
func (s *union) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}

// Bounds returns the bounding box of an SDF3 union.
func (s *union) Bounds() r3.Box {
	return s.bb
}

// difference is s0 - s1.
type difference struct {
	s0, s1 mcubes.SDF3
}

// Difference returns the difference of two SDF3s, s0 - s1.
func Difference(s0, s1 mcubes.SDF3) (mcubes.SDF3, error) {
	if s0 == nil || s1 == nil {
		return nil, ErrMsg("nil argument to Difference")
	}
	return &difference{s0: s0, s1: s1}, nil
}

// Evaluate returns the minimum distance to the SDF3 difference.
func (s *difference) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), -s.s1.Evaluate(p))
}

// Bounds returns the bounding box of the SDF3 difference.
func (s *difference) Bounds() r3.Box {
	return s.s0.Bounds()
}

type intersection struct {
	s0, s1 mcubes.SDF3
	bb     r3.Box
}

// Intersect returns the intersection of two SDF3s.
func Intersect(s0, s1 mcubes.SDF3) (mcubes.SDF3, error) {
	if s0 == nil || s1 == nil {
		return nil, ErrMsg("nil argument to Intersect")
	}
	bb := d3.Box(s0.Bounds()).Intersect(d3.Box(s1.Bounds()))
	if d3.LTEZero(bb.Size()) {
		return nil, ErrMsg("intersection of disjoint bounds")
	}
	return &intersection{s0: s0, s1: s1, bb: r3.Box(bb)}, nil
}

// Evaluate returns the minimum distance to the SDF3 intersection.
func (s *intersection) Evaluate(p r3.Vec) float64 {
	return math.Max(s.s0.Evaluate(p), s.s1.Evaluate(p))
}

// Bounds returns the bounding box of an SDF3 intersection.
func (s *intersection) Bounds() r3.Box {
	return s.bb
}

type translation struct {
	sdf    mcubes.SDF3
	offset r3.Vec
}

// Translate returns s moved by offset.
func Translate(s mcubes.SDF3, offset r3.Vec) (mcubes.SDF3, error) {
	if s == nil {
		return nil, ErrMsg("nil argument to Translate")
	}
	return &translation{sdf: s, offset: offset}, nil
}

// Evaluate returns the distance to the translated SDF3.
func (s *translation) Evaluate(p r3.Vec) float64 {
	return s.sdf.Evaluate(r3.Sub(p, s.offset))
}

// Bounds returns the translated bounding box.
func (s *translation) Bounds() r3.Box {
	return r3.Box(d3.Box(s.sdf.Bounds()).Translate(s.offset))
}
