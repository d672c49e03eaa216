package nudg2d

import (
	"github.com/notargets/DGMesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// NODETOL is the tolerance used to classify reference nodes onto faces.
const NODETOL = 1e-7

// NodeTol scales the squared-distance tolerance of the face node matcher.
// The 2D test is d2 < NodeTol * refd2, where refd2 is the squared physical
// length of the owning face's edge, keeping the match scale-invariant
// across meshes of different physical size.
const NodeTol = 1e-10

// nodeMaps bundles the global face node connectivity and boundary tables.
type nodeMaps struct {
	VmapM, VmapP []int
	MapM, MapP   []int
	MapB, VmapB  []int
}

// buildMaps2D builds the interior/exterior node index maps for any 2D
// element type. Volume nodes are numbered consecutively element-major.
// Face nodes start mapped to themselves; each interior face is resolved
// by geometric coincidence of physical node coordinates against the
// neighbor face's nodes. Every face node must find exactly one coincident
// partner - zero or multiple matches mean a malformed mesh or mismatched
// polynomial order, and fail the build.
func buildMaps2D(K, Np, Nfp, Nfaces int, Fmask [][]int, X, Y *mat.Dense,
	VX, VY []float64, EToV, EToE, EToF [][]int) (*nodeMaps, error) {

	NF := Nfp * Nfaces
	nm := &nodeMaps{
		VmapM: make([]int, NF*K),
		VmapP: make([]int, NF*K),
		MapM:  make([]int, NF*K),
		MapP:  make([]int, NF*K),
	}

	for i := range nm.MapM {
		nm.MapM[i] = i
		nm.MapP[i] = i
	}

	// Find face node indices with respect to the element-major volume
	// node ordering.
	for k := 0; k < K; k++ {
		for f := 0; f < Nfaces; f++ {
			for i := 0; i < Nfp; i++ {
				nm.VmapM[k*NF+f*Nfp+i] = Fmask[f][i] + k*Np
			}
		}
	}

	// Boundary default: exterior equals interior
	copy(nm.VmapP, nm.VmapM)

	// Flatten coordinates for global node lookup
	x := make([]float64, Np*K)
	y := make([]float64, Np*K)
	for k := 0; k < K; k++ {
		for i := 0; i < Np; i++ {
			x[k*Np+i] = X.At(i, k)
			y[k*Np+i] = Y.At(i, k)
		}
	}

	idsM := make([]int, Nfp)
	idsP := make([]int, Nfp)

	for k1 := 0; k1 < K; k1++ {
		for f1 := 0; f1 < Nfaces; f1++ {
			k2 := EToE[k1][f1]
			f2 := EToF[k1][f1]

			// Boundary faces stay self-connected
			if k2 == k1 && f2 == f1 {
				continue
			}

			for i := 0; i < Nfp; i++ {
				idsM[i] = k1*NF + f1*Nfp + i
				idsP[i] = k2*NF + f2*Nfp + i
			}

			// Squared reference edge length of the owning face
			v1 := EToV[k1][f1]
			v2 := EToV[k1][(f1+1)%Nfaces]
			dx := VX[v1] - VX[v2]
			dy := VY[v1] - VY[v2]
			refd2 := dx*dx + dy*dy
			tol := NodeTol * refd2

			// Node-by-node coincidence: exactly one match per node
			for i := 0; i < Nfp; i++ {
				vidM := nm.VmapM[idsM[i]]

				matches := 0
				matchJ := -1
				for j := 0; j < Nfp; j++ {
					vidP := nm.VmapM[idsP[j]]
					ddx := x[vidM] - x[vidP]
					ddy := y[vidM] - y[vidP]
					if ddx*ddx+ddy*ddy < tol {
						matches++
						matchJ = j
					}
				}
				if matches != 1 {
					return nil, &mesh.NodeMatchAmbiguityError{
						Elem: k1, Face: f1, Node: i, Matches: matches,
					}
				}

				nm.VmapP[idsM[i]] = nm.VmapM[idsP[matchJ]]
				nm.MapP[idsM[i]] = idsP[matchJ]
			}
		}
	}

	// Collect boundary nodes: positions still mapped to themselves
	for i := 0; i < K*NF; i++ {
		if nm.MapP[i] == i {
			nm.MapB = append(nm.MapB, i)
			nm.VmapB = append(nm.VmapB, nm.VmapM[i])
		}
	}
	return nm, nil
}
