package mesh

import "fmt"

// Unimesh1D generates a uniform 1D interval mesh of K elements spanning
// [xmin, xmax]. Element k spans vertices k and k+1.
func Unimesh1D(xmin, xmax float64, K int) (*Mesh, error) {
	if K < 1 {
		return nil, fmt.Errorf("Unimesh1D: K=%d, need at least 1 element", K)
	}
	if xmax <= xmin {
		return nil, fmt.Errorf("Unimesh1D: empty interval [%g,%g]", xmin, xmax)
	}

	Nv := K + 1
	VX := make([]float64, Nv)
	h := (xmax - xmin) / float64(K)
	for i := 0; i < Nv; i++ {
		VX[i] = xmin + float64(i)*h
	}

	EToV := make([][]int, K)
	for k := 0; k < K; k++ {
		EToV[k] = []int{k, k + 1}
	}

	return &Mesh{K: K, Dim: 1, Nfaces: 2, VX: VX, EToV: EToV}, nil
}

// Rectmesh2D generates a structured quadrilateral mesh of nx by ny cells
// on the box [xmin,xmax] x [ymin,ymax]. Vertices are laid out on a
// row-major lattice (x fastest); each element lists its vertices
// counterclockwise starting from the lower-left corner, so face f spans
// local vertices f and (f+1) mod 4.
func Rectmesh2D(xmin, xmax, ymin, ymax float64, nx, ny int) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("Rectmesh2D: division counts %dx%d, need at least 1x1", nx, ny)
	}
	if xmax <= xmin || ymax <= ymin {
		return nil, fmt.Errorf("Rectmesh2D: empty box [%g,%g]x[%g,%g]", xmin, xmax, ymin, ymax)
	}

	nvx, nvy := nx+1, ny+1
	VX := make([]float64, nvx*nvy)
	VY := make([]float64, nvx*nvy)
	dx := (xmax - xmin) / float64(nx)
	dy := (ymax - ymin) / float64(ny)
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			VX[j*nvx+i] = xmin + float64(i)*dx
			VY[j*nvx+i] = ymin + float64(j)*dy
		}
	}

	K := nx * ny
	EToV := make([][]int, K)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			ll := j*nvx + i // lower-left lattice vertex
			EToV[j*nx+i] = []int{ll, ll + 1, ll + 1 + nvx, ll + nvx}
		}
	}

	return &Mesh{K: K, Dim: 2, Nfaces: 4, VX: VX, VY: VY, EToV: EToV}, nil
}

// Trimesh2D generates a structured triangular mesh by splitting each cell
// of the nx by ny rectangle lattice along its lower-left to upper-right
// diagonal. Both triangles are listed counterclockwise.
func Trimesh2D(xmin, xmax, ymin, ymax float64, nx, ny int) (*Mesh, error) {
	qm, err := Rectmesh2D(xmin, xmax, ymin, ymax, nx, ny)
	if err != nil {
		return nil, fmt.Errorf("Trimesh2D: %w", err)
	}

	EToV := make([][]int, 0, 2*qm.K)
	for _, q := range qm.EToV {
		// q = {ll, lr, ur, ul}
		EToV = append(EToV,
			[]int{q[0], q[1], q[2]},
			[]int{q[0], q[2], q[3]},
		)
	}

	return &Mesh{K: len(EToV), Dim: 2, Nfaces: 3, VX: qm.VX, VY: qm.VY, EToV: EToV}, nil
}
