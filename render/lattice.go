package render

import (
	"errors"
	"io"
	"math"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// LatticeRenderer renders an SDF3 by sampling it on a uniform lattice and
// running marching cubes over the samples. Extraction happens on the first
// call to ReadTriangles or Mesh.
type LatticeRenderer struct {
	s          mcubes.SDF3
	bounds     r3.Box
	nx, ny, nz int

	rendered  bool
	err       error
	vertices  []r3.Vec
	triangles [][3]int
	unwritten triangle3Buffer
}

// NewLatticeRenderer returns a renderer sampling s over its bounding box with
// meshCells cubes along the longest axis. The cube side is the same along
// every axis.
func NewLatticeRenderer(s mcubes.SDF3, meshCells int) (*LatticeRenderer, error) {
	if meshCells < 2 {
		return nil, errors.New("meshCells must be 2 or larger")
	}
	// Scale the bounding box about the center to make sure the boundaries
	// aren't on the object surface.
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(1.01)
	size := bb.Size()
	if d3.LTEZero(size) {
		return nil, errors.New("SDF3 bounding box has zero or negative size")
	}
	resolution := d3.Max(size) / float64(meshCells)
	cells := func(length float64) int {
		return max(int(math.Ceil(length/resolution-1e-9)), 1)
	}
	cx, cy, cz := cells(size.X), cells(size.Y), cells(size.Z)
	// Grow the box so the lattice spacing equals resolution on all axes.
	fitted := d3.NewBox(bb.Center(), r3.Scale(resolution, r3.Vec{X: float64(cx), Y: float64(cy), Z: float64(cz)}))
	return &LatticeRenderer{
		s:      s,
		bounds: r3.Box(fitted),
		nx:     cx + 1,
		ny:     cy + 1,
		nz:     cz + 1,
	}, nil
}

// Resolution returns the number of lattice samples along each axis.
func (lr *LatticeRenderer) Resolution() (nx, ny, nz int) {
	return lr.nx, lr.ny, lr.nz
}

// Bounds returns the sampled region. Its faces contain the outermost samples.
func (lr *LatticeRenderer) Bounds() r3.Box { return lr.bounds }

// Mesh returns the indexed mesh extracted from the SDF3. The returned slices
// are owned by the renderer and must not be modified. Unlike ReadTriangles
// the mesh may contain zero area triangles.
func (lr *LatticeRenderer) Mesh() (vertices []r3.Vec, triangles [][3]int, err error) {
	lr.render()
	return lr.vertices, lr.triangles, lr.err
}

// ReadTriangles writes triangles rendered from the model into the argument buffer.
// returns number of triangles written and an error if present.
func (lr *LatticeRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	lr.render()
	if lr.err != nil {
		return 0, lr.err
	}
	n = lr.unwritten.Read(dst)
	if lr.unwritten.Len() == 0 {
		return n, io.EOF
	}
	return n, nil
}

func (lr *LatticeRenderer) render() {
	if lr.rendered {
		return
	}
	lr.rendered = true
	points := mcubes.Meshgrid(lr.bounds, lr.nx, lr.ny, lr.nz)
	values := mcubes.Sample(lr.s, points)
	lr.vertices, lr.triangles, lr.err = mcubes.MarchingCubesR3(values, points, lr.nx, lr.ny, lr.nz)
	if lr.err != nil {
		return
	}
	lr.unwritten.Write(MeshTriangles(lr.vertices, lr.triangles))
}

func max(a, b int) int {
	if a >= b {
		return a
	}
	return b
}
