package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/obj"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/soypat/mcubes/form3"
	"github.com/soypat/mcubes/internal/d3"
	"github.com/soypat/mcubes/render"
	"gonum.org/v1/gonum/spatial/r3"
)

const benchQuality = 200

func BenchmarkSDFXBolt(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	output := filepath.Join(b.TempDir(), "sdfx_bolt.stl")
	object, _ := obj.Bolt(&obj.BoltParms{
		Thread:      "npt_1/2",
		Style:       "hex",
		Tolerance:   0.1,
		TotalLength: 20,
		ShankLength: 10,
	})
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}

func BenchmarkLatticeGyroid(b *testing.B) {
	output := filepath.Join(b.TempDir(), "gyroid.stl")
	object, err := form3.Gyroid(5, 0.5, r3.Box{Min: d3.Elem(-10), Max: d3.Elem(10)})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		lr, err := render.NewLatticeRenderer(object, benchQuality)
		if err != nil {
			b.Fatal(err)
		}
		err = render.CreateSTL(output, lr)
		if err != nil {
			b.Fatal(err)
		}
	}
}
