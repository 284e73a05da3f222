package mcubes_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMarchingCubesSingleCorner(t *testing.T) {
	points := unitCube()
	for corner := 0; corner < 8; corner++ {
		for _, sign := range []float64{-1, 1} {
			values := make([]float64, 8)
			for i := range values {
				values[i] = sign
			}
			values[corner] = -sign
			m, err := mcubes.MarchingCubes[float64, int](values, points, 2, 2, 2)
			if err != nil {
				t.Fatal(err)
			}
			if len(m.Vertices) != 3 || len(m.Triangles) != 1 {
				t.Errorf("corner %d sign %g: got %d vertices and %d triangles, want 3 and 1",
					corner, sign, len(m.Vertices), len(m.Triangles))
			}
			// Every vertex is the midpoint of an edge touching the odd corner.
			for _, v := range m.Vertices {
				d := dist(v, points[corner])
				if math.Abs(d-0.5) > 1e-12 {
					t.Errorf("corner %d: vertex %v at distance %g from corner", corner, v, d)
				}
			}
		}
	}
}

func TestMarchingCubesTrivial(t *testing.T) {
	const n = 4
	points := make([][3]float64, n*n*n)
	for _, fill := range []float64{-2, 3} {
		values := make([]float64, n*n*n)
		for i := range values {
			values[i] = fill
		}
		m, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
		if err != nil {
			t.Fatal(err)
		}
		if len(m.Vertices) != 0 || len(m.Triangles) != 0 {
			t.Errorf("uniform field %g produced %d vertices and %d triangles", fill, len(m.Vertices), len(m.Triangles))
		}
	}
}

func TestMarchingCubesZeroSamples(t *testing.T) {
	// The 6 face centers of a 3*3*3 lattice sample exactly zero. Zero counts
	// as outside, so every cube holds the center and its three face centers.
	const n = 3
	var (
		values []float64
		points [][3]float64
	)
	for z := -1.; z <= 1; z++ {
		for y := -1.; y <= 1; y++ {
			for x := -1.; x <= 1; x++ {
				values = append(values, math.Sqrt(x*x+y*y+z*z)-1)
				points = append(points, [3]float64{x, y, z})
			}
		}
	}
	m, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	const expectVertices, expectTriangles = 24, 32
	if len(m.Vertices) != expectVertices || len(m.Triangles) != expectTriangles {
		t.Fatalf("got %d vertices, %d triangles. want %d, %d", len(m.Vertices), len(m.Triangles), expectVertices, expectTriangles)
	}
	for _, v := range m.Vertices {
		if r3.Norm(vec(v)) != 1 || math.Abs(v[0])+math.Abs(v[1])+math.Abs(v[2]) != 1 {
			t.Errorf("vertex %v is not on a face center", v)
		}
	}
	var degenerate int
	for _, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		if a == b || b == c || c == a {
			degenerate++
		}
	}
	if degenerate != 24 {
		t.Errorf("got %d zero area triangles, want 24", degenerate)
	}
}

func TestMarchingCubesDegenerateResolution(t *testing.T) {
	for _, res := range [][3]int{{1, 4, 4}, {4, 1, 4}, {4, 4, 1}, {0, 0, 0}, {4, 4, -2}} {
		// Sizes are not checked for degenerate lattices.
		m, err := mcubes.MarchingCubes[float32, uint32]([]float32{1, -1}, nil, res[0], res[1], res[2])
		if err != nil {
			t.Errorf("resolution %v: unexpected error %s", res, err)
		}
		if !m.Empty() || len(m.Vertices) != 0 {
			t.Errorf("resolution %v: expected empty mesh", res)
		}
	}
}

func TestMarchingCubesSizeMismatch(t *testing.T) {
	values, points := sphereField(6, 2)
	_, err := mcubes.MarchingCubes[float64, int](values, points[1:], 6, 6, 6)
	if !errors.Is(err, mcubes.ErrSizeMismatch) {
		t.Errorf("short points: expected size mismatch, got %v", err)
	}
	_, err = mcubes.MarchingCubes[float64, int](values[1:], points, 6, 6, 6)
	if !errors.Is(err, mcubes.ErrSizeMismatch) {
		t.Errorf("short values: expected size mismatch, got %v", err)
	}
	_, err = mcubes.MarchingCubes[float64, int](values, points, 6, 6, 5)
	if !errors.Is(err, mcubes.ErrSizeMismatch) {
		t.Errorf("wrong resolution: expected size mismatch, got %v", err)
	}
}

func TestMarchingCubesSphere(t *testing.T) {
	const (
		n               = 12
		r               = 4.
		expectVertices  = 312
		expectTriangles = 620
	)
	values, points := sphereField(n, r)
	m, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != expectVertices || len(m.Triangles) != expectTriangles {
		t.Fatalf("got %d vertices, %d triangles. want %d, %d", len(m.Vertices), len(m.Triangles), expectVertices, expectTriangles)
	}
	checkClosedMesh(t, m)
	checkUniqueVertices(t, m.Vertices)
	center := float64(n-1) / 2
	for _, tri := range m.Triangles {
		// Normals point towards positive values, outwards for a distance field.
		a, b, c := vec(m.Vertices[tri[0]]), vec(m.Vertices[tri[1]]), vec(m.Vertices[tri[2]])
		normal := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		centroid := r3.Scale(1./3, r3.Add(a, r3.Add(b, c)))
		if r3.Dot(normal, r3.Sub(centroid, d3.Elem(center))) <= 0 {
			t.Fatalf("triangle %v faces inwards", tri)
		}
	}

	again, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m, again) {
		t.Error("extraction is not deterministic")
	}
}

func TestMarchingCubesGrowth(t *testing.T) {
	// Output spans more than one growth chunk of vertices and triangles.
	const (
		n               = 56
		r               = 24.
		expectVertices  = 10824
		expectTriangles = 21644
	)
	values, points := sphereField(n, r)
	m, err := mcubes.MarchingCubes[float64, int32](values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != expectVertices || len(m.Triangles) != expectTriangles {
		t.Fatalf("got %d vertices, %d triangles. want %d, %d", len(m.Vertices), len(m.Triangles), expectVertices, expectTriangles)
	}
	if cap(m.Vertices) != len(m.Vertices) || cap(m.Triangles) != len(m.Triangles) {
		t.Error("result exposes unused capacity")
	}
	center := d3.Elem(float64(n-1) / 2)
	for i, v := range m.Vertices {
		// Linear interpolation of the distance field stays close to the sphere.
		d := r3.Norm(r3.Sub(vec(v), center))
		if math.Abs(d-r) > 0.05 {
			t.Fatalf("vertex %d at distance %g from center, want %g", i, d, r)
		}
	}
	checkClosedMesh(t, m)
	checkUniqueVertices(t, m.Vertices)
}

func TestMarchingCubesIndexOverflow(t *testing.T) {
	values, points := sphereField(12, 4)
	_, err := mcubes.MarchingCubes[float64, uint8](values, points, 12, 12, 12)
	if !errors.Is(err, mcubes.ErrIndexOverflow) {
		t.Fatalf("expected index overflow, got %v", err)
	}
}

func TestMarchingCubesR3MS3(t *testing.T) {
	const n = 10
	values, points := sphereField(n, 3.2)
	m, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}

	pts := make([]r3.Vec, len(points))
	pts32 := make([]ms3.Vec, len(points))
	values32 := make([]float32, len(values))
	for i, p := range points {
		pts[i] = vec(p)
		pts32[i] = ms3.Vec{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}
		values32[i] = float32(values[i])
	}
	verts, tris, err := mcubes.MarchingCubesR3(values, pts, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	verts32, tris32, err := mcubes.MarchingCubesMS3(values32, pts32, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tris, m.Triangles) {
		t.Error("MarchingCubesR3 triangles differ from generic result")
	}
	if len(tris32) != len(tris) || len(verts32) != len(verts) || len(verts) != len(m.Vertices) {
		t.Fatalf("size mismatch between instantiations: %d/%d/%d vertices", len(m.Vertices), len(verts), len(verts32))
	}
	for i := range tris {
		for j := range tris[i] {
			if int(tris32[i][j]) != tris[i][j] {
				t.Fatalf("triangle %d differs: %v vs %v", i, tris[i], tris32[i])
			}
		}
	}
	for i, v := range verts {
		if v != vec(m.Vertices[i]) {
			t.Fatalf("vertex %d differs: %v vs %v", i, v, m.Vertices[i])
		}
		v32 := r3.Vec{X: float64(verts32[i].X), Y: float64(verts32[i].Y), Z: float64(verts32[i].Z)}
		if !d3.EqualWithin(v, v32, 1e-4) {
			t.Fatalf("float32 vertex %d too far: %v vs %v", i, v32, v)
		}
	}
}

func TestMeshgrid(t *testing.T) {
	bb := r3.Box{Min: r3.Vec{X: -1, Y: 0, Z: 2}, Max: r3.Vec{X: 1, Y: 3, Z: 4}}
	pts := mcubes.Meshgrid(bb, 3, 4, 2)
	if len(pts) != 24 {
		t.Fatalf("got %d points, want 24", len(pts))
	}
	if pts[0] != bb.Min || pts[len(pts)-1] != bb.Max {
		t.Errorf("meshgrid does not span bounds: first %v last %v", pts[0], pts[len(pts)-1])
	}
	if pts[1] != (r3.Vec{X: 0, Y: 0, Z: 2}) {
		t.Errorf("x should vary fastest, got %v", pts[1])
	}
	if pts[3] != (r3.Vec{X: -1, Y: 1, Z: 2}) {
		t.Errorf("y should follow x, got %v", pts[3])
	}
	if pts[12] != (r3.Vec{X: -1, Y: 0, Z: 4}) {
		t.Errorf("z should vary slowest, got %v", pts[12])
	}
	single := mcubes.Meshgrid(bb, 1, 1, 1)
	if len(single) != 1 || single[0] != bb.Min {
		t.Errorf("single sample meshgrid got %v", single)
	}
}

func TestSampleSDF(t *testing.T) {
	s := sphere{r: 1}
	bb := r3.Box{Min: d3.Elem(-2), Max: d3.Elem(2)}
	const n = 9
	points := mcubes.Meshgrid(bb, n, n, n)
	values := mcubes.Sample(s, points)
	verts, tris, err := mcubes.MarchingCubesR3(values, points, n, n, n)
	if err != nil {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("no triangles extracted from sphere")
	}
	for _, v := range verts {
		if math.Abs(r3.Norm(v)-1) > 0.1 {
			t.Errorf("vertex %v not on unit sphere", v)
		}
	}
}

func BenchmarkMarchingCubes(b *testing.B) {
	const n = 64
	values, points := sphereField(n, 28)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := mcubes.MarchingCubes[float64, int](values, points, n, n, n)
		if err != nil {
			b.Fatal(err)
		}
	}
}

type sphere struct{ r float64 }

func (s sphere) Evaluate(p r3.Vec) float64 { return r3.Norm(p) - s.r }
func (s sphere) Bounds() r3.Box {
	return r3.Box{Min: d3.Elem(-s.r), Max: d3.Elem(s.r)}
}

// sphereField samples the distance to a sphere of radius r centered in an
// n*n*n lattice with unit spacing.
func sphereField(n int, r float64) (values []float64, points [][3]float64) {
	c := float64(n-1) / 2
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				dx, dy, dz := float64(x)-c, float64(y)-c, float64(z)-c
				values = append(values, math.Sqrt(dx*dx+dy*dy+dz*dz)-r)
				points = append(points, [3]float64{float64(x), float64(y), float64(z)})
			}
		}
	}
	return values, points
}

func unitCube() [][3]float64 {
	return [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
}

// checkClosedMesh checks every directed edge is matched by exactly one
// opposite edge and that the Euler characteristic is that of a sphere.
func checkClosedMesh[I mcubes.Index](t *testing.T, m mcubes.Mesh[float64, I]) {
	t.Helper()
	directed := make(map[[2]I]int)
	for _, tri := range m.Triangles {
		for i := range tri {
			a, b := tri[i], tri[(i+1)%3]
			if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) {
				t.Fatalf("triangle %v references missing vertex", tri)
			}
			directed[[2]I{a, b}]++
		}
	}
	for e, count := range directed {
		if count != 1 {
			t.Fatalf("directed edge %v used %d times", e, count)
		}
		if directed[[2]I{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v has no opposite", e)
		}
	}
	euler := len(m.Vertices) - len(directed)/2 + len(m.Triangles)
	if euler != 2 {
		t.Errorf("euler characteristic %d, want 2", euler)
	}
}

func checkUniqueVertices(t *testing.T, vertices [][3]float64) {
	t.Helper()
	seen := make(map[[3]float64]int, len(vertices))
	for i, v := range vertices {
		if j, ok := seen[v]; ok {
			t.Fatalf("vertices %d and %d coincide at %v", j, i, v)
		}
		seen[v] = i
	}
}

func vec(v [3]float64) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func dist(a, b [3]float64) float64 { return r3.Norm(r3.Sub(vec(a), vec(b))) }
