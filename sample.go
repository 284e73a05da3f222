package mcubes

import "gonum.org/v1/gonum/spatial/r3"

// Meshgrid returns nx*ny*nz points in lattice order spanning bounds,
// first and last samples of each axis lying on the box faces. An axis
// with a single sample is placed at bounds.Min.
func Meshgrid(bounds r3.Box, nx, ny, nz int) []r3.Vec {
	l := Lattice{NX: nx, NY: ny, NZ: nz}
	if l.Len() == 0 {
		return nil
	}
	size := r3.Sub(bounds.Max, bounds.Min)
	step := r3.Vec{X: axisStep(size.X, nx), Y: axisStep(size.Y, ny), Z: axisStep(size.Z, nz)}
	positions := make([]r3.Vec, 0, l.Len())
	for k := 0; k < nz; k++ {
		z := bounds.Min.Z + step.Z*float64(k)
		for j := 0; j < ny; j++ {
			y := bounds.Min.Y + step.Y*float64(j)
			for i := 0; i < nx; i++ {
				x := bounds.Min.X + step.X*float64(i)
				positions = append(positions, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return positions
}

func axisStep(size float64, n int) float64 {
	if n < 2 {
		return 0
	}
	return size / float64(n-1)
}

// Sample evaluates s at each of points.
func Sample(s SDF3, points []r3.Vec) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = s.Evaluate(p)
	}
	return values
}
