package mcubes

// CubeType is the 8 bit configuration of a cube. Bit i is set when
// the value at corner i is strictly greater than zero.
type CubeType uint8

// Trivial returns true if all corners are on the same side of the surface.
// Such cubes contribute no geometry.
func (c CubeType) Trivial() bool { return c == 0 || c == 255 }

// Edges returns a 12 bit mask of the cube edges crossed by the surface.
func (c CubeType) Edges() uint16 { return edgeTable[c] }

// NumTriangles returns the number of triangles produced by a cube of this type.
func (c CubeType) NumTriangles() (n int) {
	tri := &triangleTable[c]
	for n < marchingCubesMaxTriangles && tri[3*n] != triangleEnd {
		n++
	}
	return n
}

// Classify computes the CubeType of a cube from the field values at its corners.
// trivial is true when the cube lies entirely on one side of the surface.
func Classify[F Float](c Cube, values []F) (ct CubeType, trivial bool) {
	for i, corner := range c.Corners {
		if values[corner] > 0 {
			ct |= 1 << i
		}
	}
	return ct, ct.Trivial()
}
