package render_test

import (
	"math"
	"testing"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/form3"
	"github.com/soypat/mcubes/internal/d3"
	"github.com/soypat/mcubes/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestImportMeshSphere(t *testing.T) {
	const radius = 2.
	s, _ := form3.Sphere(radius)
	lr, err := render.NewLatticeRenderer(s, 40)
	if err != nil {
		t.Fatal(err)
	}
	vertices, triangles, err := lr.Mesh()
	if err != nil {
		t.Fatal(err)
	}
	imported, err := render.ImportMesh(vertices, triangles)
	if err != nil {
		t.Fatal(err)
	}
	if !d3.Box(imported.Bounds()).Equals(d3.Box(s.Bounds()), 0.05) {
		t.Errorf("imported bounds %+v differ from %+v", imported.Bounds(), s.Bounds())
	}
	for _, p := range []r3.Vec{
		{},
		{X: 1},
		{X: 3},
		{Y: -3.5},
		{X: 2, Y: 2, Z: 2},
		{X: -0.5, Y: 0.7, Z: -1},
	} {
		got := imported.Evaluate(p)
		want := s.Evaluate(p)
		if math.Abs(got-want) > 0.1 {
			t.Errorf("imported distance at %v: got %g, want %g", p, got, want)
		}
	}

	// Remeshing the imported surface recovers the sphere.
	const n = 17
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(1.2)
	points := mcubes.Meshgrid(r3.Box(bb), n, n, n)
	verts, tris, err := mcubes.MarchingCubesR3(mcubes.Sample(imported, points), points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("remeshing produced no triangles")
	}
	for _, v := range verts {
		if math.Abs(r3.Norm(v)-radius) > 0.1 {
			t.Fatalf("remeshed vertex %v off sphere", v)
		}
	}
}

func TestImportMeshErrors(t *testing.T) {
	vertices := []r3.Vec{{}, {X: 1}, {Y: 1}}
	if _, err := render.ImportMesh(nil, nil); err == nil {
		t.Error("expected error for empty mesh")
	}
	if _, err := render.ImportMesh(vertices, [][3]int{{0, 1, 3}}); err == nil {
		t.Error("expected error for out of range index")
	}
	if _, err := render.ImportMesh(vertices, [][3]int{{0, 1, 1}}); err == nil {
		t.Error("expected error for mesh without area")
	}
}
