package mesh

import "fmt"

// The mesh-build error taxonomy. All four are unrecoverable for the build
// operation: no partial construction or best-effort repair is attempted,
// since a silently wrong connectivity map produces an undetectable wrong
// numerical answer rather than a crash.

// MalformedMeshError reports an element-to-vertex table that references an
// out-of-range vertex or does not match the declared uniform topology.
type MalformedMeshError struct {
	Elem   int
	Reason string
}

func (e *MalformedMeshError) Error() string {
	return fmt.Sprintf("malformed mesh at element %d: %s", e.Elem, e.Reason)
}

// NonManifoldAdjacencyError reports a face shared by more than two
// elements during adjacency discovery.
type NonManifoldAdjacencyError struct {
	Elem, Face int
}

func (e *NonManifoldAdjacencyError) Error() string {
	return fmt.Sprintf("non-manifold adjacency: face %d of element %d matches more than one other face",
		e.Face, e.Elem)
}

// NodeMatchAmbiguityError reports a face-to-face node coincidence test
// that yielded zero or more than one geometric match for some face node.
// Causes: mis-scaled tolerance, mixed polynomial order across a conforming
// face, or non-conforming geometry.
type NodeMatchAmbiguityError struct {
	Elem, Face, Node int
	Matches          int
}

func (e *NodeMatchAmbiguityError) Error() string {
	return fmt.Sprintf("node match ambiguity: node %d on face %d of element %d has %d coincident neighbor nodes, want exactly 1",
		e.Node, e.Face, e.Elem, e.Matches)
}

// UnsupportedTopologyError reports an element face count outside the
// supported set: 2 in 1D, 3 or 4 in 2D.
type UnsupportedTopologyError struct {
	Dim, Nfaces int
}

func (e *UnsupportedTopologyError) Error() string {
	return fmt.Sprintf("unsupported topology: %d faces per element in %dD", e.Nfaces, e.Dim)
}
