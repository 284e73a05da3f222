// Package render turns signed distance fields into triangle meshes with
// marching cubes and writes them out as STL files and shaded previews.
package render

import (
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are ordered counter-clockwise
// when viewed from outside the surface.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle following
// the right hand rule over its vertex order.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if any two vertices of the triangle
// are within tol of each other in every component.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t.V[0], t.V[1], tol) ||
		d3.EqualWithin(t.V[1], t.V[2], tol) ||
		d3.EqualWithin(t.V[2], t.V[0], tol)
}

// Renderer streams triangles of a model. ReadTriangles fills dst and
// returns the number of triangles written. When the model is exhausted
// it returns io.EOF.
type Renderer interface {
	ReadTriangles(dst []Triangle3) (int, error)
}

// MeshTriangles expands an indexed mesh into a triangle list. Triangles with
// coincident vertices, which marching cubes emits around samples that are
// exactly zero, are left out.
func MeshTriangles(vertices []r3.Vec, triangles [][3]int) []Triangle3 {
	var model []Triangle3
	for _, tri := range triangles {
		t := Triangle3{V: [3]r3.Vec{vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]}}
		if !t.Degenerate(0) {
			model = append(model, t)
		}
	}
	return model
}
