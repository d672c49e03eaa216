package nudg1d

import (
	"math"

	"github.com/notargets/DGMesh/mesh"
)

// BuildMaps1D builds the global face node connectivity and boundary
// tables: VmapM, VmapP, MapM, MapP, MapB, and VmapB.
//
// Volume nodes are numbered consecutively element-major. Each face node
// starts mapped to itself; interior faces are then resolved by geometric
// coincidence of the endpoint coordinates, so a position left
// self-mapped marks a boundary node.
func (dg *DG1D) BuildMaps1D() error {
	NF := dg.Nfp * dg.Nfaces
	dg.VmapM = make([]int, NF*dg.K)
	dg.VmapP = make([]int, NF*dg.K)
	dg.MapM = make([]int, NF*dg.K)
	dg.MapP = make([]int, NF*dg.K)

	for i := range dg.MapM {
		dg.MapM[i] = i
		dg.MapP[i] = i
	}

	// Find face node indices with respect to the element-major volume
	// node ordering.
	for k := 0; k < dg.K; k++ {
		for f := 0; f < dg.Nfaces; f++ {
			dg.VmapM[k*NF+f*dg.Nfp] = dg.Fmask[f][0] + k*dg.Np
		}
	}

	// Boundary default: exterior equals interior
	copy(dg.VmapP, dg.VmapM)

	// Flatten coordinates for global node lookup
	x := make([]float64, dg.Np*dg.K)
	for k := 0; k < dg.K; k++ {
		for i := 0; i < dg.Np; i++ {
			x[k*dg.Np+i] = dg.X.At(i, k)
		}
	}

	for k1 := 0; k1 < dg.K; k1++ {
		for f1 := 0; f1 < dg.Nfaces; f1++ {
			k2 := dg.EToE[k1][f1]
			f2 := dg.EToF[k1][f1]

			// Boundary faces stay self-connected
			if k2 == k1 && f2 == f1 {
				continue
			}

			idM := k1*NF + f1*dg.Nfp
			idP := k2*NF + f2*dg.Nfp
			vidM := dg.VmapM[idM]
			vidP := dg.VmapM[idP]

			// A 1D face is a single endpoint: the coincidence test is a
			// single squared difference against the flat tolerance.
			d := x[vidM] - x[vidP]
			if math.Abs(d*d) >= NodeTol {
				return &mesh.NodeMatchAmbiguityError{Elem: k1, Face: f1, Node: 0, Matches: 0}
			}

			dg.VmapP[idM] = vidP
			dg.MapP[idM] = idP
		}
	}

	// Collect boundary nodes: positions still mapped to themselves
	dg.MapB = dg.MapB[:0]
	dg.VmapB = dg.VmapB[:0]
	for i := 0; i < dg.K*NF; i++ {
		if dg.MapP[i] == i {
			dg.MapB = append(dg.MapB, i)
			dg.VmapB = append(dg.VmapB, dg.VmapM[i])
		}
	}
	return nil
}
