package mcubes

// edgeKey identifies a lattice edge by the sample indices of its endpoints,
// lowest index first, so that all cubes sharing the edge produce the same key.
type edgeKey struct {
	lo, hi int
}

func makeEdgeKey(i0, i1 int) edgeKey {
	if i0 > i1 {
		i0, i1 = i1, i0
	}
	return edgeKey{lo: i0, hi: i1}
}

// edgeCache creates at most one mesh vertex per lattice edge. It is
// scoped to a single extraction.
type edgeCache[F Float, I Index] struct {
	values []F
	points [][3]F
	verts  map[edgeKey]I
	mb     *meshBuilder[F, I]
}

func newEdgeCache[F Float, I Index](values []F, points [][3]F, mb *meshBuilder[F, I], sizeHint int) *edgeCache[F, I] {
	return &edgeCache[F, I]{
		values: values,
		points: points,
		verts:  make(map[edgeKey]I, sizeHint),
		mb:     mb,
	}
}

// vertex returns the index of the vertex on the edge joining samples i0 and i1,
// creating it on first use.
func (ec *edgeCache[F, I]) vertex(i0, i1 int) (I, error) {
	key := makeEdgeKey(i0, i1)
	if idx, ok := ec.verts[key]; ok {
		return idx, nil
	}
	p := interpolate(ec.points[i0], ec.points[i1], ec.values[i0], ec.values[i1])
	idx, err := ec.mb.appendVertex(p)
	if err != nil {
		return 0, err
	}
	ec.verts[key] = idx
	return idx, nil
}

// interpolate returns the point where the linear interpolant of the values
// v0 at p0 and v1 at p1 crosses zero, that is p0 + t*(p1-p0) with
// t = |v0|/(|v0|+|v1|). If both values are zero the midpoint is returned.
func interpolate[F Float](p0, p1 [3]F, v0, v1 F) [3]F {
	s0, s1 := abs(v0), abs(v1)
	var t F = 0.5
	if den := s0 + s1; den != 0 {
		t = s0 / den
	}
	return [3]F{
		(1-t)*p0[0] + t*p1[0],
		(1-t)*p0[1] + t*p1[1],
		(1-t)*p0[2] + t*p1[2],
	}
}

func abs[F Float](f F) F {
	if f < 0 {
		return -f
	}
	return f
}
