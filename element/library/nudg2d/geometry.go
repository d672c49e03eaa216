package nudg2d

import (
	"fmt"
	"math"

	"github.com/notargets/DGMesh/element/library/nudg1d"
	"gonum.org/v1/gonum/mat"
)

// Shared physical-geometry machinery for the 2D element types. Triangles
// and quadrilaterals differ only in their reference operators, face masks,
// and per-face normal directions; everything here is driven by those.

// geomFactors holds the metric terms of the reference-to-physical map at
// every node of every element.
type geomFactors struct {
	J              *mat.Dense
	Rx, Ry, Sx, Sy *mat.Dense
}

// geometricFactors2D computes the metric elements for the local mappings
// of the elements: J = xr*ys - xs*yr and the inverse metric terms.
func geometricFactors2D(Dr, Ds, X, Y *mat.Dense) (*geomFactors, error) {
	var xr, xs, yr, ys mat.Dense
	xr.Mul(Dr, X)
	xs.Mul(Ds, X)
	yr.Mul(Dr, Y)
	ys.Mul(Ds, Y)

	Np, K := X.Dims()
	g := &geomFactors{
		J:  mat.NewDense(Np, K, nil),
		Rx: mat.NewDense(Np, K, nil),
		Ry: mat.NewDense(Np, K, nil),
		Sx: mat.NewDense(Np, K, nil),
		Sy: mat.NewDense(Np, K, nil),
	}

	for i := 0; i < Np; i++ {
		for k := 0; k < K; k++ {
			J := xr.At(i, k)*ys.At(i, k) - xs.At(i, k)*yr.At(i, k)
			if J <= 0 {
				return nil, fmt.Errorf("negative Jacobian at node %d, element %d: %f", i, k, J)
			}
			g.J.Set(i, k, J)

			g.Rx.Set(i, k, ys.At(i, k)/J)
			g.Ry.Set(i, k, -xs.At(i, k)/J)
			g.Sx.Set(i, k, -yr.At(i, k)/J)
			g.Sy.Set(i, k, xr.At(i, k)/J)
		}
	}
	return g, nil
}

// faceDirection gives the outward normal of one reference face as a fixed
// combination cr*(Rx,Ry) + cs*(Sx,Sy) of the metric terms.
type faceDirection struct {
	cr, cs float64
}

// normals2D computes outward unit normals at the face nodes, the surface
// Jacobian SJ, and Fscale = SJ / J(Fmask,:).
func normals2D(g *geomFactors, Fmask [][]int, dirs []faceDirection, Nfp, K int) (NX, NY, SJ, Fscale *mat.Dense, err error) {
	Nfaces := len(dirs)
	NX = mat.NewDense(Nfp*Nfaces, K, nil)
	NY = mat.NewDense(Nfp*Nfaces, K, nil)
	SJ = mat.NewDense(Nfp*Nfaces, K, nil)
	Fscale = mat.NewDense(Nfp*Nfaces, K, nil)

	for face := 0; face < Nfaces; face++ {
		d := dirs[face]
		for i := 0; i < Nfp; i++ {
			vid := Fmask[face][i] // volume node index
			row := face*Nfp + i   // face node index

			for k := 0; k < K; k++ {
				nx := d.cr*g.Rx.At(vid, k) + d.cs*g.Sx.At(vid, k)
				ny := d.cr*g.Ry.At(vid, k) + d.cs*g.Sy.At(vid, k)

				mag := math.Sqrt(nx*nx + ny*ny)
				if mag < 1e-14 {
					return nil, nil, nil, nil,
						fmt.Errorf("zero normal magnitude at face node %d, element %d", row, k)
				}

				J := g.J.At(vid, k)
				NX.Set(row, k, nx/mag)
				NY.Set(row, k, ny/mag)
				SJ.Set(row, k, mag*J)
				Fscale.Set(row, k, mag)
			}
		}
	}
	return NX, NY, SJ, Fscale, nil
}

// lift2D assembles the surface-to-volume lift operator
// LIFT = V * (V^T * Emat), where Emat holds the 1D face mass matrices
// evaluated on each face's parameter coordinate.
func lift2D(V *mat.Dense, N, Np, Nfp int, Fmask [][]int, faceParams [][]float64) (*mat.Dense, error) {
	Nfaces := len(Fmask)
	Emat := mat.NewDense(Np, Nfaces*Nfp, nil)

	for face := 0; face < Nfaces; face++ {
		VFace := nudg1d.Vandermonde1D(N, faceParams[face])

		var VV mat.Dense
		VV.Mul(VFace, VFace.T())

		var massFace mat.Dense
		if err := massFace.Inverse(&VV); err != nil {
			return nil, fmt.Errorf("face %d mass matrix inversion failed: %v", face, err)
		}

		for i, nodeIdx := range Fmask[face] {
			for j := 0; j < Nfp; j++ {
				Emat.Set(nodeIdx, face*Nfp+j, massFace.At(i, j))
			}
		}
	}

	var VtE mat.Dense
	VtE.Mul(V.T(), Emat)

	LIFT := mat.NewDense(Np, Nfaces*Nfp, nil)
	LIFT.Mul(V, &VtE)
	return LIFT, nil
}
