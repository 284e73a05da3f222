package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ mcubes.SDF3      = kdSDF{}
	_ kdtree.Interface = kdTriangles{}
)

// ImportMesh returns an approximate signed distance field of a closed
// indexed mesh such as the output of marching cubes. Distances are measured
// to the triangle whose centroid is nearest to the query point and are
// negative behind the triangle face. Zero area triangles are ignored.
func ImportMesh(vertices []r3.Vec, triangles [][3]int) (mcubes.SDF3, error) {
	if len(vertices) == 0 || len(triangles) == 0 {
		return nil, errors.New("empty mesh")
	}
	mykd := make(kdTriangles, 0, len(triangles))
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d", i, idx, len(vertices))
			}
		}
		t := Triangle3{V: [3]r3.Vec{vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]}}
		n := t.Normal()
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
			continue
		}
		mykd = append(mykd, newKDTriangle(t, n))
	}
	if len(mykd) == 0 {
		return nil, errors.New("mesh has no triangles with area")
	}
	bb := d3.Set(vertices).Bounds()
	// kdtree.New reorders mykd in place.
	tree := kdtree.New(mykd, false)
	return kdSDF{tree: tree, bb: r3.Box(bb)}, nil
}

type kdSDF struct {
	tree *kdtree.Tree
	bb   r3.Box
}

// Evaluate returns the distance to the triangle nearest to v.
func (s kdSDF) Evaluate(v r3.Vec) float64 {
	triangle := s.nearest(v)
	closest := closestOnTriangle(v, triangle.V[0], triangle.V[1], triangle.V[2])
	dir := r3.Sub(v, closest)
	return math.Copysign(r3.Norm(dir), r3.Dot(dir, triangle.normal))
}

// Bounds returns the bounding box of the mesh vertices.
func (s kdSDF) Bounds() r3.Box { return s.bb }

// nearest returns the triangle with centroid closest to v.
func (s kdSDF) nearest(v r3.Vec) kdTriangle {
	got, _ := s.tree.Nearest(kdTriangle{centroid: v})
	return got.(kdTriangle)
}

type kdTriangles []kdTriangle

// kdTriangle is a triangle located in the tree by its centroid.
type kdTriangle struct {
	Triangle3
	normal   r3.Vec
	centroid r3.Vec
}

func newKDTriangle(t Triangle3, normal r3.Vec) kdTriangle {
	c := r3.Scale(1./3., r3.Add(t.V[0], r3.Add(t.V[1], t.V[2])))
	return kdTriangle{Triangle3: t, normal: normal, centroid: c}
}

func (k kdTriangles) Index(i int) kdtree.Comparable {
	return k[i]
}

// Len returns the length of the list.
func (k kdTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdTriangles) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a.centroid, b.(kdTriangle).centroid, d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdTriangle) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the centroids
// of the receiver and the parameter.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.centroid, b.(kdTriangle).centroid))
}

func kdComp(a, b r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return a.X - b.X
	case 1:
		return a.Y - b.Y
	case 2:
		return a.Z - b.Z
	}
	panic("bug: invalid kdtree dimension")
}

type kdPlane struct {
	dim       kdtree.Dim
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i].centroid, p.triangles[j].centroid, p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}
func (p kdPlane) Len() int {
	return len(p.triangles)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}

// closestOnTriangle returns the point of triangle abc closest to p
// by testing the Voronoi regions of the vertices and edges.
func closestOnTriangle(p, a, b, c r3.Vec) r3.Vec {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)
	abp := r3.Dot(ab, ap)
	acp := r3.Dot(ac, ap)
	if abp <= 0 && acp <= 0 {
		return a
	}
	bp := r3.Sub(p, b)
	abb := r3.Dot(ab, bp)
	acb := r3.Dot(ac, bp)
	if abb >= 0 && acb <= abb {
		return b
	}
	vc := abp*acb - abb*acp
	if vc <= 0 && abp >= 0 && abb <= 0 {
		return r3.Add(a, r3.Scale(abp/(abp-abb), ab))
	}
	cp := r3.Sub(p, c)
	abc := r3.Dot(ab, cp)
	acc := r3.Dot(ac, cp)
	if acc >= 0 && abc <= acc {
		return c
	}
	vb := abc*acp - abp*acc
	if vb <= 0 && acp >= 0 && acc <= 0 {
		return r3.Add(a, r3.Scale(acp/(acp-acc), ac))
	}
	va := abb*acc - abc*acb
	if va <= 0 && acb-abb >= 0 && abc-acc >= 0 {
		w := (acb - abb) / ((acb - abb) + (abc - acc))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b)))
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac)))
}
