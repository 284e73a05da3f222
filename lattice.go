package mcubes

// Lattice is the resolution of a regular grid of samples. Sample (x,y,z)
// is stored at linear index x + y*NX + z*NX*NY.
type Lattice struct {
	NX, NY, NZ int
}

// Cube is a lattice cell identified by its linear index. Corners holds the
// linear sample index of each of the cell's eight corners.
type Cube struct {
	Index   int
	Corners [8]int
}

// Degenerate returns true if any axis has fewer than two samples,
// in which case the lattice contains no cubes.
func (l Lattice) Degenerate() bool {
	return l.NX < 2 || l.NY < 2 || l.NZ < 2
}

// Len returns the number of samples in the lattice.
func (l Lattice) Len() int {
	if l.NX <= 0 || l.NY <= 0 || l.NZ <= 0 {
		return 0
	}
	return l.NX * l.NY * l.NZ
}

// NumCubes returns the number of cubes in the lattice.
func (l Lattice) NumCubes() int {
	if l.Degenerate() {
		return 0
	}
	return (l.NX - 1) * (l.NY - 1) * (l.NZ - 1)
}

// Offsets returns the sample index offset of each cube corner relative
// to the cube's lowest corner.
func (l Lattice) Offsets() [8]int {
	nx, nxy := l.NX, l.NX*l.NY
	return [8]int{
		0,
		1,
		1 + nx,
		nx,
		nxy,
		1 + nxy,
		1 + nx + nxy,
		nx + nxy,
	}
}

// Cube returns the cube with linear index i. Cubes are numbered
// with x fastest, then y, then z. i must be in [0, NumCubes()).
func (l Lattice) Cube(i int) Cube {
	return l.cube(i, l.Offsets())
}

func (l Lattice) cube(i int, offsets [8]int) Cube {
	cx, cy := l.NX-1, l.NY-1
	idx := i
	x := idx % cx
	idx /= cx
	y := idx % cy
	z := idx / cy
	base := x + y*l.NX + z*l.NX*l.NY
	c := Cube{Index: i}
	for k, off := range offsets {
		c.Corners[k] = base + off
	}
	return c
}

// Cubes returns an iterator over all cubes of the lattice.
func (l Lattice) Cubes() *CubeIter {
	return &CubeIter{
		l:       l,
		offsets: l.Offsets(),
		n:       l.NumCubes(),
		next:    0,
	}
}

// CubeIter iterates over the cubes of a Lattice in index order.
//
//	it := l.Cubes()
//	for it.Next() {
//		cube := it.Cube()
//	}
type CubeIter struct {
	l       Lattice
	offsets [8]int
	n       int
	next    int
	cube    Cube
}

// Next advances the iterator and returns false once all cubes have been visited.
func (it *CubeIter) Next() bool {
	if it.next >= it.n {
		return false
	}
	it.cube = it.l.cube(it.next, it.offsets)
	it.next++
	return true
}

// Cube returns the current cube. It is only valid after a call to Next returned true.
func (it *CubeIter) Cube() Cube {
	if it.next == 0 {
		panic("Cube called before Next")
	}
	return it.cube
}

// Reset rewinds the iterator to the first cube.
func (it *CubeIter) Reset() {
	it.next = 0
	it.cube = Cube{}
}
