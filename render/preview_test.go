package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/mcubes"
	"github.com/soypat/mcubes/form3"
	"github.com/soypat/mcubes/render"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta a normalized imgDelta parameter to describe how close the matching
// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
const imgDelta = 0.01

func TestSTLToPNG(t *testing.T) {
	dir := t.TempDir()
	view := render.DefaultView()
	view.Width, view.Height = 240, 160
	sphere, _ := form3.Sphere(1)
	torus, _ := form3.Torus(1, 0.3)
	for _, test := range []struct {
		name string
		s    mcubes.SDF3
	}{
		{name: "sphere", s: sphere},
		{name: "torus", s: torus},
	} {
		stlPath := filepath.Join(dir, test.name+".stl")
		shapeToSTL(t, test.s, stlPath)
		for _, png := range []string{test.name + "1.png", test.name + "2.png"} {
			err := render.STLToPNG(stlPath, filepath.Join(dir, png), view)
			if err != nil {
				t.Fatal(err)
			}
		}
		if !equalImages(t, filepath.Join(dir, test.name+"1.png"), filepath.Join(dir, test.name+"2.png"), imgDelta) {
			t.Errorf("%s: preview is not reproducible", test.name)
		}
	}
	if equalImages(t, filepath.Join(dir, "sphere1.png"), filepath.Join(dir, "torus1.png"), 0) {
		t.Error("sphere and torus previews should differ")
	}

	bad := view
	bad.Far = bad.Near
	if err := render.STLToPNG(filepath.Join(dir, "sphere.stl"), filepath.Join(dir, "bad.png"), bad); err == nil {
		t.Error("expected error for invalid clipping planes")
	}
}

func shapeToSTL(t testing.TB, s mcubes.SDF3, filename string) {
	lr, err := render.NewLatticeRenderer(s, 32)
	if err != nil {
		t.Fatal(err)
	}
	err = render.CreateSTL(filename, lr)
	if err != nil {
		t.Fatal(err)
	}
}

func equalImages(t *testing.T, png1, png2 string, delta float64) bool {
	b1, err := os.ReadFile(png1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(png2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, delta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
