package element

import "gonum.org/v1/gonum/mat"

type Dimensionality uint8

const (
	D1 Dimensionality = iota
	D2
)

type ElementGeometry uint8

const (
	Line ElementGeometry = iota
	Tri
	Quad
)

func (g ElementGeometry) String() string {
	return [...]string{"Line", "Tri", "Quad"}[g]
}

// Element is the contract a reference element exposes to the face-node
// matching machinery: the nodal set, the per-face node masks, and the
// reference operators a DG solver consumes downstream.
type Element interface {
	Name() string
	GeometryType() ElementGeometry
	Order() int
	Dimensions() Dimensionality

	Np() int     // Nodes per element
	NFp() int    // Nodes per face
	Nfaces() int // Faces per element

	// Reference Geometry Definition
	R() []float64
	S() []float64 // nil for 1D elements

	// FacePoints returns, for each face, the ordered local node indices
	// lying on that face (the face mask).
	FacePoints() [][]int

	// Nodal / Modal matrices
	V() mat.Matrix
	Vinv() mat.Matrix

	// Basic operators
	Dr() mat.Matrix
	Ds() mat.Matrix // nil for 1D elements
	LIFT() mat.Matrix
}

// MeshProperties summarizes the physical mesh an element set was built on.
type MeshProperties struct {
	NumElements int
	NumVertices int
	NumFaces    int
}
