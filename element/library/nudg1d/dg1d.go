package nudg1d

import (
	"fmt"
	"math"

	"github.com/notargets/DGMesh/element"
	"github.com/notargets/DGMesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// NODETOL is the tolerance used to classify reference nodes onto faces.
const NODETOL = 1e-7

// NodeTol is the flat tolerance on squared coordinate distance used by the
// face node matcher. 1D meshes use it unscaled.
const NodeTol = 1e-10

// DG1D holds the order-N Gauss-Lobatto element geometry and connectivity
// maps for a 1D interval mesh.
type DG1D struct {
	// Polynomial order
	N int

	// Number of nodes and faces
	Np     int // Nodes per element, N+1
	Nfp    int // Nodes per face, always 1 in 1D
	Nfaces int // Faces per element, always 2 in 1D

	// Node coordinates in the reference element
	R []float64

	// Vandermonde matrices
	V    *mat.Dense
	Vinv *mat.Dense

	// Mass matrix
	MassMatrix *mat.Dense

	// Differentiation matrix
	Dr *mat.Dense

	// Lift matrix
	LIFT *mat.Dense

	// Face masks - indices of nodes on each face
	Fmask [][]int // [Nfaces][Nfp]

	// Physical coordinates, Np x K
	X *mat.Dense

	// Mesh information
	K    int
	VX   []float64
	EToV [][]int

	// Geometric factors
	J  *mat.Dense
	Rx *mat.Dense

	// Face normals and scaling
	NX     *mat.Dense // Nfp*Nfaces x K, -1 on the left face, +1 on the right
	Fscale *mat.Dense

	// Connectivity
	Conn       *mesh.Connectivity
	EToE       [][]int // Element to element, self-referential at boundaries
	EToF       [][]int // Element to face
	VmapM      []int   // Interior (minus) volume node map
	VmapP      []int   // Exterior (plus) volume node map
	MapM, MapP []int
	MapB       []int // Boundary face node positions
	VmapB      []int // Boundary volume nodes
}

// NewDG1D creates the order-N element geometry and node maps for a 1D mesh.
func NewDG1D(N int, msh *mesh.Mesh) (*DG1D, error) {
	if N < 1 {
		return nil, fmt.Errorf("polynomial order N=%d, need at least 1", N)
	}
	if err := msh.Validate(); err != nil {
		return nil, err
	}
	if msh.Dim != 1 {
		return nil, &mesh.UnsupportedTopologyError{Dim: msh.Dim, Nfaces: msh.Nfaces}
	}

	dg := &DG1D{
		N:      N,
		VX:     msh.VX,
		EToV:   msh.EToV,
		K:      msh.K,
		Nfaces: 2,
		Nfp:    1,
	}

	if err := dg.startUp1D(msh); err != nil {
		return nil, err
	}
	return dg, nil
}

// startUp1D initializes the 1D DG operators, geometry, and node maps.
func (dg *DG1D) startUp1D(msh *mesh.Mesh) error {
	dg.Np = dg.N + 1

	// Compute nodal set
	dg.R = JacobiGL(0, 0, dg.N)

	// Build reference element matrices
	dg.V = Vandermonde1D(dg.N, dg.R)

	dg.Vinv = mat.NewDense(dg.Np, dg.Np, nil)
	if err := dg.Vinv.Inverse(dg.V); err != nil {
		return fmt.Errorf("failed to invert Vandermonde matrix: %v", err)
	}

	// Mass matrix: M = V^{-T} * V^{-1}
	dg.MassMatrix = mat.NewDense(dg.Np, dg.Np, nil)
	dg.MassMatrix.Mul(dg.Vinv.T(), dg.Vinv)

	var err error
	if dg.Dr, err = Dmatrix1D(dg.N, dg.R, dg.V); err != nil {
		return err
	}

	// Map from reference to physical elements:
	// x = va + 0.5*(r+1)*(vb-va)
	dg.X = mat.NewDense(dg.Np, dg.K, nil)
	for k := 0; k < dg.K; k++ {
		xa := dg.VX[dg.EToV[k][0]]
		xb := dg.VX[dg.EToV[k][1]]
		for i := 0; i < dg.Np; i++ {
			dg.X.Set(i, k, xa+0.5*(dg.R[i]+1.0)*(xb-xa))
		}
	}

	dg.buildFmask()

	if err = dg.lift1D(); err != nil {
		return err
	}

	if err = dg.geometricFactors1D(); err != nil {
		return err
	}

	dg.normals1D()

	// Build connectivity tables
	if dg.Conn, err = mesh.Connect1D(msh); err != nil {
		return err
	}
	dg.EToE = dg.Conn.EToE()
	dg.EToF = dg.Conn.EToF()

	return dg.BuildMaps1D()
}

// buildFmask finds the nodes that lie on each face: face 0 is r = -1,
// face 1 is r = +1.
func (dg *DG1D) buildFmask() {
	dg.Fmask = make([][]int, 2)
	for i := 0; i < dg.Np; i++ {
		if math.Abs(1.0+dg.R[i]) < NODETOL {
			dg.Fmask[0] = append(dg.Fmask[0], i)
		}
		if math.Abs(1.0-dg.R[i]) < NODETOL {
			dg.Fmask[1] = append(dg.Fmask[1], i)
		}
	}
}

// lift1D computes the surface to volume lift operator used in the DG
// formulation. The 1D face mass matrix is the scalar 1 at each endpoint.
func (dg *DG1D) lift1D() error {
	Emat := mat.NewDense(dg.Np, dg.Nfaces*dg.Nfp, nil)
	Emat.Set(0, 0, 1.0)
	Emat.Set(dg.Np-1, 1, 1.0)

	var VtE mat.Dense
	VtE.Mul(dg.V.T(), Emat)

	dg.LIFT = mat.NewDense(dg.Np, dg.Nfaces*dg.Nfp, nil)
	dg.LIFT.Mul(dg.V, &VtE)
	return nil
}

// geometricFactors1D computes the metric terms of the affine map:
// J = xr, Rx = 1/J.
func (dg *DG1D) geometricFactors1D() error {
	var xr mat.Dense
	xr.Mul(dg.Dr, dg.X)

	dg.J = mat.NewDense(dg.Np, dg.K, nil)
	dg.Rx = mat.NewDense(dg.Np, dg.K, nil)
	for i := 0; i < dg.Np; i++ {
		for k := 0; k < dg.K; k++ {
			J := xr.At(i, k)
			if J <= 0 {
				return fmt.Errorf("negative Jacobian at node %d, element %d: %f", i, k, J)
			}
			dg.J.Set(i, k, J)
			dg.Rx.Set(i, k, 1.0/J)
		}
	}
	return nil
}

// normals1D sets the outward normals at the element endpoints and the
// face scaling Fscale = 1/J at the face nodes.
func (dg *DG1D) normals1D() {
	dg.NX = mat.NewDense(dg.Nfp*dg.Nfaces, dg.K, nil)
	dg.Fscale = mat.NewDense(dg.Nfp*dg.Nfaces, dg.K, nil)
	for k := 0; k < dg.K; k++ {
		dg.NX.Set(0, k, -1.0)
		dg.NX.Set(1, k, 1.0)
		dg.Fscale.Set(0, k, 1.0/dg.J.At(dg.Fmask[0][0], k))
		dg.Fscale.Set(1, k, 1.0/dg.J.At(dg.Fmask[1][0], k))
	}
}

// GetMeshProperties reports the dimensions of the mesh the element set
// was built on.
func (dg *DG1D) GetMeshProperties() element.MeshProperties {
	return element.MeshProperties{
		NumElements: dg.K,
		NumVertices: len(dg.VX),
		NumFaces:    dg.K * dg.Nfaces,
	}
}

// String returns a short summary of the element set.
func (dg *DG1D) String() string {
	return fmt.Sprintf("DG1D{N: %d, Np: %d, K: %d, boundary nodes: %d}",
		dg.N, dg.Np, dg.K, len(dg.MapB))
}
