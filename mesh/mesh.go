package mesh

import "fmt"

// BCFace tags one element face with a named boundary condition group.
type BCFace struct {
	Element int // element index (0-based)
	Face    int // local face index within the element (0-based)
}

// Mesh is the raw geometry/incidence contract consumed by the element
// builders and the connectivity engine: a vertex list plus an
// element-to-vertex table with a uniform face count. Built once by a
// reader or generator, read-only afterward.
//
// INDEXING NOTE: vertex indices in EToV are 0-based. File readers convert
// from the 1-based numbering used by mesh files on the way in.
type Mesh struct {
	K      int // Number of elements
	Dim    int // Spatial dimension, 1 or 2
	Nfaces int // Faces per element, uniform across the mesh

	// Vertex coordinates. VY is nil for 1D meshes.
	VX, VY []float64

	// Element to vertex connectivity [K][Nverts per element]. For the
	// supported topologies the vertex count per element equals Nfaces
	// in 2D (cyclic polygon) and 2 in 1D.
	EToV [][]int

	// Named boundary condition groups, keyed by group name. Auxiliary
	// metadata from file readers; nil for generated meshes.
	BCFaces map[string][]BCFace
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int { return len(m.VX) }

// vertsPerElement returns the expected EToV row length for the mesh
// topology.
func (m *Mesh) vertsPerElement() int {
	if m.Dim == 1 {
		return 2
	}
	return m.Nfaces
}

// Validate checks the structural invariants of the mesh: supported
// topology, rectangular EToV with in-range vertex indices, and coordinate
// slices sized to the vertex count. A mesh that fails validation must not
// be handed to the connectivity engine.
func (m *Mesh) Validate() error {
	switch m.Dim {
	case 1:
		if m.Nfaces != 2 {
			return &UnsupportedTopologyError{Dim: m.Dim, Nfaces: m.Nfaces}
		}
	case 2:
		if m.Nfaces != 3 && m.Nfaces != 4 {
			return &UnsupportedTopologyError{Dim: m.Dim, Nfaces: m.Nfaces}
		}
		if len(m.VY) != len(m.VX) {
			return &MalformedMeshError{
				Reason: fmt.Sprintf("VX/VY length mismatch: %d vs %d", len(m.VX), len(m.VY)),
			}
		}
	default:
		return &UnsupportedTopologyError{Dim: m.Dim, Nfaces: m.Nfaces}
	}

	if m.K != len(m.EToV) {
		return &MalformedMeshError{
			Reason: fmt.Sprintf("K=%d does not match EToV length %d", m.K, len(m.EToV)),
		}
	}

	nv := m.NumVertices()
	nve := m.vertsPerElement()
	for k, verts := range m.EToV {
		if len(verts) != nve {
			return &MalformedMeshError{
				Elem:   k,
				Reason: fmt.Sprintf("element has %d vertices, topology requires %d", len(verts), nve),
			}
		}
		seen := make(map[int]bool, nve)
		for _, v := range verts {
			if v < 0 || v >= nv {
				return &MalformedMeshError{
					Elem:   k,
					Reason: fmt.Sprintf("vertex index %d out of range [0,%d)", v, nv),
				}
			}
			if seen[v] {
				return &MalformedMeshError{
					Elem:   k,
					Reason: fmt.Sprintf("vertex index %d repeated within element", v),
				}
			}
			seen[v] = true
		}
	}
	return nil
}

// String returns a short mesh summary.
func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{K: %d, Dim: %d, Nfaces: %d, Vertices: %d, BCGroups: %d}",
		m.K, m.Dim, m.Nfaces, m.NumVertices(), len(m.BCFaces))
}
