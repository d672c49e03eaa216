package mesh

// Element-to-element and element-to-face adjacency discovery from raw
// vertex incidence. Purely combinatorial: no coordinates are consulted.
//
// Faces are matched through a canonical sorted-vertex key. Each key is
// seen at most twice in a manifold mesh; the second occurrence links both
// faces symmetrically, a third occurrence is a non-manifold failure.

// Neighbor identifies the element and matching local face across a shared
// face.
type Neighbor struct {
	Elem, Face int
}

// Connectivity is the adjacency table produced by Connect1D/Connect2D.
// Boundary faces carry no neighbor; the self-referential EToE/EToF tables
// the node matchers consume are derived views.
type Connectivity struct {
	K, Nfaces int

	neighbors [][]Neighbor
	interior  [][]bool
}

// Neighbor returns the element/face across face f of element k. The
// second return is false for boundary (unmatched) faces.
func (c *Connectivity) Neighbor(k, f int) (Neighbor, bool) {
	if !c.interior[k][f] {
		return Neighbor{}, false
	}
	return c.neighbors[k][f], true
}

// IsBoundary reports whether face f of element k has no neighbor.
func (c *Connectivity) IsBoundary(k, f int) bool { return !c.interior[k][f] }

// NumBoundaryFaces counts the unmatched faces of the mesh.
func (c *Connectivity) NumBoundaryFaces() (n int) {
	for k := 0; k < c.K; k++ {
		for f := 0; f < c.Nfaces; f++ {
			if !c.interior[k][f] {
				n++
			}
		}
	}
	return
}

// EToE materializes the element-to-element table. Boundary faces are
// self-referential: EToE[k][f] == k.
func (c *Connectivity) EToE() [][]int {
	EToE := make([][]int, c.K)
	for k := 0; k < c.K; k++ {
		EToE[k] = make([]int, c.Nfaces)
		for f := 0; f < c.Nfaces; f++ {
			if c.interior[k][f] {
				EToE[k][f] = c.neighbors[k][f].Elem
			} else {
				EToE[k][f] = k
			}
		}
	}
	return EToE
}

// EToF materializes the element-to-face table. Boundary faces are
// self-referential: EToF[k][f] == f.
func (c *Connectivity) EToF() [][]int {
	EToF := make([][]int, c.K)
	for k := 0; k < c.K; k++ {
		EToF[k] = make([]int, c.Nfaces)
		for f := 0; f < c.Nfaces; f++ {
			if c.interior[k][f] {
				EToF[k][f] = c.neighbors[k][f].Face
			} else {
				EToF[k][f] = f
			}
		}
	}
	return EToF
}

func newConnectivity(K, Nfaces int) *Connectivity {
	c := &Connectivity{K: K, Nfaces: Nfaces}
	c.neighbors = make([][]Neighbor, K)
	c.interior = make([][]bool, K)
	for k := 0; k < K; k++ {
		c.neighbors[k] = make([]Neighbor, Nfaces)
		c.interior[k] = make([]bool, Nfaces)
	}
	return c
}

// link records a discovered face pair in both directions.
func (c *Connectivity) link(k1, f1, k2, f2 int) {
	c.neighbors[k1][f1] = Neighbor{Elem: k2, Face: f2}
	c.neighbors[k2][f2] = Neighbor{Elem: k1, Face: f1}
	c.interior[k1][f1] = true
	c.interior[k2][f2] = true
}

type faceRef struct {
	elem, face int
}

// Connect1D derives adjacency for a 1D interval mesh. A face is a single
// vertex: face 0 is the element's left vertex, face 1 its right vertex,
// and two elements are neighbors when they share that vertex.
func Connect1D(m *Mesh) (*Connectivity, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Dim != 1 {
		return nil, &UnsupportedTopologyError{Dim: m.Dim, Nfaces: m.Nfaces}
	}

	conn := newConnectivity(m.K, m.Nfaces)
	seen := make(map[int]faceRef, m.K*m.Nfaces)

	for k := 0; k < m.K; k++ {
		for f := 0; f < m.Nfaces; f++ {
			v := m.EToV[k][f]
			prev, ok := seen[v]
			if !ok {
				seen[v] = faceRef{elem: k, face: f}
				continue
			}
			if conn.interior[prev.elem][prev.face] {
				return nil, &NonManifoldAdjacencyError{Elem: k, Face: f}
			}
			conn.link(prev.elem, prev.face, k, f)
		}
	}
	return conn, nil
}

// Connect2D derives adjacency for a 2D triangle or quadrilateral mesh.
// Face f of an element spans local vertices f and (f+1) mod Nfaces, in
// the cyclic order of the element's EToV row; two elements are neighbors
// when a face shares both vertices.
func Connect2D(m *Mesh) (*Connectivity, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Dim != 2 {
		return nil, &UnsupportedTopologyError{Dim: m.Dim, Nfaces: m.Nfaces}
	}

	conn := newConnectivity(m.K, m.Nfaces)
	seen := make(map[[2]int]faceRef, m.K*m.Nfaces)

	for k := 0; k < m.K; k++ {
		for f := 0; f < m.Nfaces; f++ {
			v1 := m.EToV[k][f]
			v2 := m.EToV[k][(f+1)%m.Nfaces]

			// Canonical sorted-vertex key
			key := [2]int{v1, v2}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}

			prev, ok := seen[key]
			if !ok {
				seen[key] = faceRef{elem: k, face: f}
				continue
			}
			if conn.interior[prev.elem][prev.face] {
				return nil, &NonManifoldAdjacencyError{Elem: k, Face: f}
			}
			conn.link(prev.elem, prev.face, k, f)
		}
	}
	return conn, nil
}
