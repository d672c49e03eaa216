package nudg2d

import (
	"fmt"
	"math"

	"github.com/notargets/DGMesh/element"
	"github.com/notargets/DGMesh/element/library/nudg1d"
	"github.com/notargets/DGMesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// DG2DQuad holds the order-N tensor-product Gauss-Lobatto element geometry
// and connectivity maps for a quadrilateral mesh. The reference element is
// [-1,1]^2 with nodes ordered s-major: node j*(N+1)+i sits at
// (r1d[i], r1d[j]).
type DG2DQuad struct {
	// Polynomial order
	N int

	// Number of nodes and faces
	Np     int // Nodes per element, (N+1)^2
	Nfp    int // Nodes per face, N+1
	Nfaces int // Faces per element, 4 for quadrilaterals

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

// quadFaceDirections are the outward normal directions of the reference
// square faces in metric terms, matching the counterclockwise vertex
// convention: face 0 is s=-1, face 1 is r=+1, face 2 is s=+1, face 3 is
// r=-1.
var quadFaceDirections = []faceDirection{
	{cr: 0, cs: -1},
	{cr: 1, cs: 0},
	{cr: 0, cs: 1},
	{cr: -1, cs: 0},
}

// NewDG2DQuad creates the order-N rectangle element geometry and node maps
// for a 2D quadrilateral mesh.
func NewDG2DQuad(N int, msh *mesh.Mesh) (*DG2DQuad, error) {
	if N < 1 {
		return nil, fmt.Errorf("polynomial order N=%d, need at least 1", N)
	}
	if err := msh.Validate(); err != nil {
		return nil, err
	}
	if msh.Dim != 2 || msh.Nfaces != 4 {
		return nil, &mesh.UnsupportedTopologyError{Dim: msh.Dim, Nfaces: msh.Nfaces}
	}

	dg := &DG2DQuad{
		N:      N,
		VX:     msh.VX,
		VY:     msh.VY,
		EToV:   msh.EToV,
		K:      msh.K,
		Nfaces: 4,
	}

	if err := dg.startUp2DQuad(msh); err != nil {
		return nil, err
	}
	return dg, nil
}

func (dg *DG2DQuad) startUp2DQuad(msh *mesh.Mesh) error {
	dg.Nfp = dg.N + 1
	dg.Np = dg.Nfp * dg.Nfp

	// Tensor-product nodal set
	r1d := nudg1d.JacobiGL(0, 0, dg.N)
	dg.R = make([]float64, dg.Np)
	dg.S = make([]float64, dg.Np)
	for j := 0; j <= dg.N; j++ {
		for i := 0; i <= dg.N; i++ {
			n := j*dg.Nfp + i
			dg.R[n] = r1d[i]
			dg.S[n] = r1d[j]
		}
	}

	// Tensor-product Vandermonde: V[n][i*(N+1)+j] = P_i(r_n) * P_j(s_n)
	dg.V = mat.NewDense(dg.Np, dg.Np, nil)
	for i := 0; i <= dg.N; i++ {
		Pr := nudg1d.JacobiP(dg.R, 0, 0, i)
		for j := 0; j <= dg.N; j++ {
			Ps := nudg1d.JacobiP(dg.S, 0, 0, j)
			col := i*dg.Nfp + j
			for n := 0; n < dg.Np; n++ {
				dg.V.Set(n, col, Pr[n]*Ps[n])
			}
		}
	}

	dg.Vinv = mat.NewDense(dg.Np, dg.Np, nil)
	if err := dg.Vinv.Inverse(dg.V); err != nil {
		return fmt.Errorf("failed to invert Vandermonde matrix: %v", err)
	}

	dg.MassMatrix = mat.NewDense(dg.Np, dg.Np, nil)
	dg.MassMatrix.Mul(dg.Vinv.T(), dg.Vinv)

	// Differentiation matrices as 1D operators applied along each
	// tensor direction.
	V1d := nudg1d.Vandermonde1D(dg.N, r1d)
	D1d, err := nudg1d.Dmatrix1D(dg.N, r1d, V1d)
	if err != nil {
		return err
	}
	dg.Dr = mat.NewDense(dg.Np, dg.Np, nil)
	dg.Ds = mat.NewDense(dg.Np, dg.Np, nil)
	for j := 0; j <= dg.N; j++ {
		for i := 0; i <= dg.N; i++ {
			n := j*dg.Nfp + i
			for m := 0; m <= dg.N; m++ {
				dg.Dr.Set(n, j*dg.Nfp+m, D1d.At(i, m))
				dg.Ds.Set(n, m*dg.Nfp+i, D1d.At(j, m))
			}
		}
	}

	// Map from reference to physical elements: bilinear blend of the
	// counterclockwise corner vertices.
	dg.X = mat.NewDense(dg.Np, dg.K, nil)
	dg.Y = mat.NewDense(dg.Np, dg.K, nil)
	for k := 0; k < dg.K; k++ {
		va, vb, vc, vd := dg.EToV[k][0], dg.EToV[k][1], dg.EToV[k][2], dg.EToV[k][3]
		for n := 0; n < dg.Np; n++ {
			r, s := dg.R[n], dg.S[n]
			w1 := 0.25 * (1 - r) * (1 - s)
			w2 := 0.25 * (1 + r) * (1 - s)
			w3 := 0.25 * (1 + r) * (1 + s)
			w4 := 0.25 * (1 - r) * (1 + s)
			dg.X.Set(n, k, w1*dg.VX[va]+w2*dg.VX[vb]+w3*dg.VX[vc]+w4*dg.VX[vd])
			dg.Y.Set(n, k, w1*dg.VY[va]+w2*dg.VY[vb]+w3*dg.VY[vc]+w4*dg.VY[vd])
		}
	}

	if err = dg.buildFmask(); err != nil {
		return err
	}

	// Surface integral terms: faces 0 and 2 are parameterized by r,
	// faces 1 and 3 by s.
	faceParams := [][]float64{
		gather(dg.R, dg.Fmask[0]),
		gather(dg.S, dg.Fmask[1]),
		gather(dg.R, dg.Fmask[2]),
		gather(dg.S, dg.Fmask[3]),
	}
	if dg.LIFT, err = lift2D(dg.V, dg.N, dg.Np, dg.Nfp, dg.Fmask, faceParams); err != nil {
		return fmt.Errorf("Lift2D failed: %v", err)
	}

	g, err := geometricFactors2D(dg.Dr, dg.Ds, dg.X, dg.Y)
	if err != nil {
		return err
	}
	dg.J, dg.Rx, dg.Ry, dg.Sx, dg.Sy = g.J, g.Rx, g.Ry, g.Sx, g.Sy

	if dg.NX, dg.NY, dg.SJ, dg.Fscale, err = normals2D(g, dg.Fmask, quadFaceDirections, dg.Nfp, dg.K); err != nil {
		return fmt.Errorf("Normals2D failed: %v", err)
	}

	if dg.Conn, err = mesh.Connect2D(msh); err != nil {
		return err
	}
	dg.EToE = dg.Conn.EToE()
	dg.EToF = dg.Conn.EToF()

	return dg.BuildMaps2D()
}

// buildFmask finds all nodes that lie on each face of the reference
// square: face 0 is s=-1, face 1 is r=+1, face 2 is s=+1, face 3 is r=-1.
func (dg *DG2DQuad) buildFmask() error {
	dg.Fmask = make([][]int, 4)
	for i := 0; i < dg.Np; i++ {
		if math.Abs(1.0+dg.S[i]) < NODETOL {
			dg.Fmask[0] = append(dg.Fmask[0], i)
		}
		if math.Abs(1.0-dg.R[i]) < NODETOL {
			dg.Fmask[1] = append(dg.Fmask[1], i)
		}
		if math.Abs(1.0-dg.S[i]) < NODETOL {
			dg.Fmask[2] = append(dg.Fmask[2], i)
		}
		if math.Abs(1.0+dg.R[i]) < NODETOL {
			dg.Fmask[3] = append(dg.Fmask[3], i)
		}
	}
	for f := 0; f < 4; f++ {
		if len(dg.Fmask[f]) != dg.Nfp {
			return fmt.Errorf("face %d mask has %d nodes, want %d", f, len(dg.Fmask[f]), dg.Nfp)
		}
	}
	return nil
}

// BuildMaps2D builds the global face node connectivity and boundary
// tables: VmapM, VmapP, MapM, MapP, MapB, and VmapB.
func (dg *DG2DQuad) BuildMaps2D() error {
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
func (dg *DG2DQuad) GetMeshProperties() element.MeshProperties {
	return element.MeshProperties{
		NumElements: dg.K,
		NumVertices: len(dg.VX),
		NumFaces:    dg.K * dg.Nfaces,
	}
}

// String returns a short summary of the element set.
func (dg *DG2DQuad) String() string {
	return fmt.Sprintf("DG2DQuad{N: %d, Np: %d, Nfp: %d, K: %d, boundary nodes: %d}",
		dg.N, dg.Np, dg.Nfp, dg.K, len(dg.MapB))
}
