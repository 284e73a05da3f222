// Package mcubes extracts triangle meshes approximating the zero level-set
// of a scalar field sampled on a regular 3D lattice using Marching Cubes.
//
// The field is given as two parallel slices: one scalar value and one
// point per lattice sample, ordered with x varying fastest, then y, then z.
// Samples with a value strictly greater than zero are considered inside
// the surface. A sample that is exactly zero is outside.
//
// Triangle winding is such that the normal (v1-v0)×(v2-v0) points
// towards positive field values.
package mcubes

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrSizeMismatch is returned when the number of field values or
	// lattice points does not match the lattice resolution.
	ErrSizeMismatch = errors.New("lattice size mismatch")
	// ErrIndexOverflow is returned when the extracted mesh has more
	// vertices than can be addressed by the chosen index type.
	ErrIndexOverflow = errors.New("vertex index overflows index type")
)

// Float is the set of floating point types a field can be sampled with.
type Float interface {
	~float32 | ~float64
}

// Index is the set of integer types usable as triangle vertex indices.
type Index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Mesh is an indexed triangle mesh. Each triangle holds three indices
// into Vertices.
type Mesh[F Float, I Index] struct {
	Vertices  [][3]F
	Triangles [][3]I
}

// Empty returns true if the mesh contains no triangles.
func (m Mesh[F, I]) Empty() bool { return len(m.Triangles) == 0 }

// SDF3 is a 3D signed distance function. The distance is negative
// inside the solid.
type SDF3 interface {
	Evaluate(p r3.Vec) float64
	// Bounds returns a box that contains the whole solid.
	Bounds() r3.Box
}
