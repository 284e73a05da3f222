package mcubes

import (
	"fmt"

	"github.com/soypat/glgl/math/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

// MarchingCubes extracts the zero level-set of the field sampled on an
// nx by ny by nz lattice. values[i] is the field value at points[i] and both
// slices are in lattice order. Vertices lying on the same lattice edge are
// shared between the triangles of adjacent cubes.
//
// If any resolution axis is smaller than 2 the result is an empty mesh and
// no error. A mismatch between the lattice size and the length of values
// or points returns an error wrapping ErrSizeMismatch.
func MarchingCubes[F Float, I Index](values []F, points [][3]F, nx, ny, nz int) (Mesh[F, I], error) {
	lat := Lattice{NX: nx, NY: ny, NZ: nz}
	if lat.Degenerate() {
		return Mesh[F, I]{}, nil
	}
	npts := lat.Len()
	if len(points) != npts {
		return Mesh[F, I]{}, fmt.Errorf("%w: got %d points for %dx%dx%d lattice", ErrSizeMismatch, len(points), nx, ny, nz)
	}
	if len(values) != npts {
		return Mesh[F, I]{}, fmt.Errorf("%w: got %d values for %dx%dx%d lattice", ErrSizeMismatch, len(values), nx, ny, nz)
	}

	mb := newMeshBuilder[F, I]()
	cache := newEdgeCache(values, points, mb, min(lat.NumCubes(), growChunk))
	var samples [12]I
	it := lat.Cubes()
	for it.Next() {
		cube := it.Cube()
		ct, trivial := Classify(cube, values)
		if trivial {
			continue
		}
		edges := ct.Edges()
		for e, corners := range edgeCorners {
			if edges&(1<<e) == 0 {
				continue
			}
			idx, err := cache.vertex(cube.Corners[corners[0]], cube.Corners[corners[1]])
			if err != nil {
				return Mesh[F, I]{}, err
			}
			samples[e] = idx
		}
		tri := &triangleTable[ct]
		for i := 0; tri[i] != triangleEnd; i += 3 {
			mb.appendTriangle(samples[tri[i]], samples[tri[i+1]], samples[tri[i+2]])
		}
	}
	return mb.finalize(), nil
}

// MarchingCubesR3 is the float64 version of MarchingCubes operating on gonum vectors.
func MarchingCubesR3(values []float64, points []r3.Vec, nx, ny, nz int) (vertices []r3.Vec, triangles [][3]int, err error) {
	pts := make([][3]float64, len(points))
	for i, p := range points {
		pts[i] = [3]float64{p.X, p.Y, p.Z}
	}
	m, err := MarchingCubes[float64, int](values, pts, nx, ny, nz)
	if err != nil {
		return nil, nil, err
	}
	if len(m.Vertices) > 0 {
		vertices = make([]r3.Vec, len(m.Vertices))
		for i, v := range m.Vertices {
			vertices[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
	}
	return vertices, m.Triangles, nil
}

// MarchingCubesMS3 is the float32 version of MarchingCubes. It produces
// uint32 indices suitable for GPU index buffers.
func MarchingCubesMS3(values []float32, points []ms3.Vec, nx, ny, nz int) (vertices []ms3.Vec, triangles [][3]uint32, err error) {
	pts := make([][3]float32, len(points))
	for i, p := range points {
		pts[i] = [3]float32{p.X, p.Y, p.Z}
	}
	m, err := MarchingCubes[float32, uint32](values, pts, nx, ny, nz)
	if err != nil {
		return nil, nil, err
	}
	if len(m.Vertices) > 0 {
		vertices = make([]ms3.Vec, len(m.Vertices))
		for i, v := range m.Vertices {
			vertices[i] = ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
	}
	return vertices, m.Triangles, nil
}

func min(a, b int) int {
	if a <= b {
		return a
	}
	return b
}
