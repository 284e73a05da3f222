// Package framefield declares the contract for computing a piecewise
// constant frame field over a triangle mesh from sparse per-face
// direction constraints. It holds no solver. Implementations plug in
// through the Solver interface and Solve checks their inputs and outputs.
package framefield

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidInput is wrapped by errors returned for malformed meshes or constraints.
var ErrInvalidInput = errors.New("invalid frame field input")

// Constraints fixes the two frame directions on a subset of faces.
// Faces[i] is constrained to First[i] and Second[i].
type Constraints struct {
	Faces  []int
	First  []r3.Vec
	Second []r3.Vec
}

// Len returns the number of constrained faces.
func (c Constraints) Len() int { return len(c.Faces) }

// Field holds one frame per face as two direction fields.
// First[i] and Second[i] belong to face i.
type Field struct {
	First  []r3.Vec
	Second []r3.Vec
}

// Solver computes a frame field over a triangle mesh.
type Solver interface {
	FrameField(vertices []r3.Vec, faces [][3]int, c Constraints) (Field, error)
}

// SolverFunc adapts an ordinary function to the Solver interface.
type SolverFunc func(vertices []r3.Vec, faces [][3]int, c Constraints) (Field, error)

// FrameField calls f(vertices, faces, c).
func (f SolverFunc) FrameField(vertices []r3.Vec, faces [][3]int, c Constraints) (Field, error) {
	return f(vertices, faces, c)
}

// Solve validates the mesh and constraints, runs s and checks the returned
// field has exactly one frame per face.
func Solve(s Solver, vertices []r3.Vec, faces [][3]int, c Constraints) (Field, error) {
	if s == nil {
		return Field{}, errors.New("nil frame field solver")
	}
	if err := validate(vertices, faces, c); err != nil {
		return Field{}, err
	}
	field, err := s.FrameField(vertices, faces, c)
	if err != nil {
		return Field{}, err
	}
	if len(field.First) != len(faces) || len(field.Second) != len(faces) {
		return Field{}, fmt.Errorf("solver returned %d and %d frames for %d faces", len(field.First), len(field.Second), len(faces))
	}
	return field, nil
}

func validate(vertices []r3.Vec, faces [][3]int, c Constraints) error {
	if len(c.First) != c.Len() || len(c.Second) != c.Len() {
		return fmt.Errorf("%w: %d constrained faces with %d and %d directions", ErrInvalidInput, c.Len(), len(c.First), len(c.Second))
	}
	for i, face := range faces {
		for _, v := range face {
			if v < 0 || v >= len(vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidInput, i, v, len(vertices))
			}
		}
	}
	for i, f := range c.Faces {
		if f < 0 || f >= len(faces) {
			return fmt.Errorf("%w: constraint %d references face %d of %d", ErrInvalidInput, i, f, len(faces))
		}
	}
	return nil
}
