package mcubes

import "fmt"

// growChunk is the number of slots the vertex and triangle buffers grow by
// once their capacity is exhausted.
const growChunk = 10000

// meshBuilder accumulates the vertices and triangles of a mesh whose final
// size is not known in advance.
type meshBuilder[F Float, I Index] struct {
	vertices  [][3]F
	triangles [][3]I
}

func newMeshBuilder[F Float, I Index]() *meshBuilder[F, I] {
	return &meshBuilder[F, I]{
		vertices:  make([][3]F, 0, growChunk),
		triangles: make([][3]I, 0, growChunk),
	}
}

// appendVertex adds a vertex and returns its index.
func (mb *meshBuilder[F, I]) appendVertex(p [3]F) (I, error) {
	n := len(mb.vertices)
	idx := I(n)
	if idx < 0 || int(idx) != n {
		return 0, fmt.Errorf("%w: %d vertices do not fit in %T", ErrIndexOverflow, n+1, idx)
	}
	mb.vertices = reserve(mb.vertices)
	mb.vertices = append(mb.vertices, p)
	return idx, nil
}

// appendTriangle adds a triangle made of three previously appended vertices.
func (mb *meshBuilder[F, I]) appendTriangle(a, b, c I) {
	mb.triangles = reserve(mb.triangles)
	mb.triangles = append(mb.triangles, [3]I{a, b, c})
}

// finalize returns the accumulated mesh trimmed to its exact size.
// The builder must not be used afterwards.
func (mb *meshBuilder[F, I]) finalize() Mesh[F, I] {
	m := Mesh[F, I]{
		Vertices:  shrink(mb.vertices),
		Triangles: shrink(mb.triangles),
	}
	mb.vertices = nil
	mb.triangles = nil
	return m
}

// reserve makes sure buf has room for one more element, growing
// its capacity by growChunk when full.
func reserve[T any](buf []T) []T {
	if len(buf) < cap(buf) {
		return buf
	}
	grown := make([]T, len(buf), cap(buf)+growChunk)
	copy(grown, buf)
	return grown
}

// shrink returns a copy of buf with capacity equal to its length.
func shrink[T any](buf []T) []T {
	if len(buf) == 0 {
		return nil
	}
	exact := make([]T, len(buf))
	copy(exact, buf)
	return exact
}
