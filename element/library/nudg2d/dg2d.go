package nudg2d

import (
	"fmt"
	"math"

	"github.com/notargets/DGMesh/element"
	"github.com/notargets/DGMesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// DG2D holds the order-N Gauss-Lobatto-type element geometry and
// connectivity maps for a triangular mesh.
type DG2D struct {
	// Polynomial order
	N int

	// Number of nodes and faces
	Np     int // Nodes per element, (N+1)(N+2)/2
	Nfp    int // Nodes per face, N+1
	Nfaces int // Faces per element, 3 for triangles

	// Node coordinates in the reference element
	R, S []float64

	// Vandermonde matrices
	V    *mat.Dense
	Vinv *mat.Dense

	// Mass matrix
	MassMatrix *mat.Dense

	// Differentiation matrices
	Dr, Ds *mat.Dense

	// Lift matrix
	LIFT *mat.Dense

	// Face masks - indices of nodes on each face
	Fmask [][]int // [Nfaces][Nfp]

	// Physical coordinates, Np x K
	X, Y *mat.Dense

	// Face node coordinates, Nfp*Nfaces x K
	Fx, Fy *mat.Dense

	// Mesh information
	K      int
	VX, VY []float64
	EToV   [][]int

	// Geometric factors
	J              *mat.Dense
	Rx, Ry, Sx, Sy *mat.Dense

	// Face normals, surface Jacobian, and face scaling
	NX, NY *mat.Dense
	SJ     *mat.Dense
	Fscale *mat.Dense

	// Connectivity
	Conn       *mesh.Connectivity
	EToE       [][]int
	EToF       [][]int
	VmapM      []int
	VmapP      []int
	MapM, MapP []int
	MapB       []int
	VmapB      []int
}

// triFaceDirections are the outward normal directions of the reference
// triangle faces in metric terms: face 0 is s=-1, face 1 the hypotenuse
// r+s=0, face 2 is r=-1.
var triFaceDirections = []faceDirection{
	{cr: 0, cs: -1},
	{cr: 1, cs: 1},
	{cr: -1, cs: 0},
}

// NewDG2D creates the order-N triangle element geometry and node maps for
// a 2D triangular mesh.
func NewDG2D(N int, msh *mesh.Mesh) (*DG2D, error) {
	if N < 1 {
		return nil, fmt.Errorf("polynomial order N=%d, need at least 1", N)
	}
	if err := msh.Validate(); err != nil {
		return nil, err
	}
	if msh.Dim != 2 || msh.Nfaces != 3 {
		return nil, &mesh.UnsupportedTopologyError{Dim: msh.Dim, Nfaces: msh.Nfaces}
	}

	dg := &DG2D{
		N:      N,
		VX:     msh.VX,
		VY:     msh.VY,
		EToV:   msh.EToV,
		K:      msh.K,
		Nfaces: 3,
	}

	if err := dg.startUp2D(msh); err != nil {
		return nil, err
	}
	return dg, nil
}

// startUp2D initializes the 2D DG operators, geometry, and node maps.
func (dg *DG2D) startUp2D(msh *mesh.Mesh) error {
	dg.Np = (dg.N + 1) * (dg.N + 2) / 2
	dg.Nfp = dg.N + 1

	// Compute nodal set
	x1, y1 := Nodes2D(dg.N)
	dg.R, dg.S = XYtoRS(x1, y1)

	// Build reference element matrices
	dg.V = Vandermonde2D(dg.N, dg.R, dg.S)

	dg.Vinv = mat.NewDense(dg.Np, dg.Np, nil)
	if err := dg.Vinv.Inverse(dg.V); err != nil {
		return fmt.Errorf("failed to invert Vandermonde matrix: %v", err)
	}

	// Mass matrix: M = V^{-T} * V^{-1}
	dg.MassMatrix = mat.NewDense(dg.Np, dg.Np, nil)
	dg.MassMatrix.Mul(dg.Vinv.T(), dg.Vinv)

	var err error
	if dg.Dr, dg.Ds, err = Dmatrices2D(dg.N, dg.R, dg.S, dg.V); err != nil {
		return err
	}

	// Map from reference to physical elements:
	// x = 0.5*(-(r+s)*va + (1+r)*vb + (1+s)*vc)
	dg.X = mat.NewDense(dg.Np, dg.K, nil)
	dg.Y = mat.NewDense(dg.Np, dg.K, nil)
	for k := 0; k < dg.K; k++ {
		va := dg.EToV[k][0]
		vb := dg.EToV[k][1]
		vc := dg.EToV[k][2]

		for i := 0; i < dg.Np; i++ {
			dg.X.Set(i, k, 0.5*(-(dg.R[i]+dg.S[i])*dg.VX[va]+
				(1.0+dg.R[i])*dg.VX[vb]+
				(1.0+dg.S[i])*dg.VX[vc]))
			dg.Y.Set(i, k, 0.5*(-(dg.R[i]+dg.S[i])*dg.VY[va]+
				(1.0+dg.R[i])*dg.VY[vb]+
				(1.0+dg.S[i])*dg.VY[vc]))
		}
	}

	// Find all the nodes that lie on each face
	if err = dg.buildFmask(); err != nil {
		return err
	}

	dg.extractFaceCoordinates()

	// Create surface integral terms. Each face is parameterized by the
	// reference coordinate that varies along it.
	faceParams := [][]float64{
		gather(dg.R, dg.Fmask[0]),
		gather(dg.R, dg.Fmask[1]),
		gather(dg.S, dg.Fmask[2]),
	}
	if dg.LIFT, err = lift2D(dg.V, dg.N, dg.Np, dg.Nfp, dg.Fmask, faceParams); err != nil {
		return fmt.Errorf("Lift2D failed: %v", err)
	}

	// Calculate geometric factors and normals
	g, err := geometricFactors2D(dg.Dr, dg.Ds, dg.X, dg.Y)
	if err != nil {
		return err
	}
	dg.J, dg.Rx, dg.Ry, dg.Sx, dg.Sy = g.J, g.Rx, g.Ry, g.Sx, g.Sy

	if dg.NX, dg.NY, dg.SJ, dg.Fscale, err = normals2D(g, dg.Fmask, triFaceDirections, dg.Nfp, dg.K); err != nil {
		return fmt.Errorf("Normals2D failed: %v", err)
	}

	// Build connectivity tables
	if dg.Conn, err = mesh.Connect2D(msh); err != nil {
		return err
	}
	dg.EToE = dg.Conn.EToE()
	dg.EToF = dg.Conn.EToF()

	return dg.BuildMaps2D()
}

// buildFmask finds all nodes that lie on each face of the reference
// triangle: face 0 is s = -1, face 1 is r+s = 0, face 2 is r = -1.
func (dg *DG2D) buildFmask() error {
	dg.Fmask = make([][]int, 3)
	for i := 0; i < dg.Np; i++ {
		if math.Abs(1.0+dg.S[i]) < NODETOL {
			dg.Fmask[0] = append(dg.Fmask[0], i)
		}
		if math.Abs(dg.R[i]+dg.S[i]) < NODETOL {
			dg.Fmask[1] = append(dg.Fmask[1], i)
		}
		if math.Abs(1.0+dg.R[i]) < NODETOL {
			dg.Fmask[2] = append(dg.Fmask[2], i)
		}
	}
	for f := 0; f < 3; f++ {
		if len(dg.Fmask[f]) != dg.Nfp {
			return fmt.Errorf("face %d mask has %d nodes, want %d", f, len(dg.Fmask[f]), dg.Nfp)
		}
	}
	return nil
}

// extractFaceCoordinates extracts physical coordinates at the face nodes.
func (dg *DG2D) extractFaceCoordinates() {
	dg.Fx = mat.NewDense(dg.Nfp*dg.Nfaces, dg.K, nil)
	dg.Fy = mat.NewDense(dg.Nfp*dg.Nfaces, dg.K, nil)

	for face := 0; face < dg.Nfaces; face++ {
		for k := 0; k < dg.K; k++ {
			for i, nodeIdx := range dg.Fmask[face] {
				row := face*dg.Nfp + i
				dg.Fx.Set(row, k, dg.X.At(nodeIdx, k))
				dg.Fy.Set(row, k, dg.Y.At(nodeIdx, k))
			}
		}
	}
}

// BuildMaps2D builds the global face node connectivity and boundary
// tables: VmapM, VmapP, MapM, MapP, MapB, and VmapB.
func (dg *DG2D) BuildMaps2D() error {
	nm, err := buildMaps2D(dg.K, dg.Np, dg.Nfp, dg.Nfaces, dg.Fmask,
		dg.X, dg.Y, dg.VX, dg.VY, dg.EToV, dg.EToE, dg.EToF)
	if err != nil {
		return err
	}
	dg.VmapM, dg.VmapP = nm.VmapM, nm.VmapP
	dg.MapM, dg.MapP = nm.MapM, nm.MapP
	dg.MapB, dg.VmapB = nm.MapB, nm.VmapB
	return nil
}

// GetMeshProperties reports the dimensions of the mesh the element set
// was built on.
func (dg *DG2D) GetMeshProperties() element.MeshProperties {
	return element.MeshProperties{
		NumElements: dg.K,
		NumVertices: len(dg.VX),
		NumFaces:    dg.K * dg.Nfaces,
	}
}

// String returns a short summary of the element set.
func (dg *DG2D) String() string {
	return fmt.Sprintf("DG2D{N: %d, Np: %d, Nfp: %d, K: %d, boundary nodes: %d}",
		dg.N, dg.Np, dg.Nfp, dg.K, len(dg.MapB))
}

// gather returns v at the given indices.
func gather(v []float64, ids []int) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = v[id]
	}
	return out
}
