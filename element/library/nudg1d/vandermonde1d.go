package nudg1d

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Vandermonde1D initializes the 1D Vandermonde matrix,
// V[i][j] = P_j(r[i]) for the orthonormal Legendre basis.
func Vandermonde1D(N int, r []float64) *mat.Dense {
	Nr := len(r)
	V := mat.NewDense(Nr, N+1, nil)

	for j := 0; j <= N; j++ {
		P := JacobiP(r, 0, 0, j)
		for i := 0; i < Nr; i++ {
			V.Set(i, j, P[i])
		}
	}
	return V
}

// GradVandermonde1D initializes the gradient of the modal basis at points r.
func GradVandermonde1D(N int, r []float64) *mat.Dense {
	Nr := len(r)
	Vr := mat.NewDense(Nr, N+1, nil)

	for j := 0; j <= N; j++ {
		dP := GradJacobiP(r, 0, 0, j)
		for i := 0; i < Nr; i++ {
			Vr.Set(i, j, dP[i])
		}
	}
	return Vr
}

// Dmatrix1D computes the differentiation matrix Dr = Vr * V^{-1} on the
// interval, evaluated at the interpolation points r.
func Dmatrix1D(N int, r []float64, V *mat.Dense) (*mat.Dense, error) {
	Vr := GradVandermonde1D(N, r)

	var Vinv mat.Dense
	if err := Vinv.Inverse(V); err != nil {
		return nil, fmt.Errorf("failed to invert Vandermonde matrix: %v", err)
	}

	Dr := mat.NewDense(len(r), len(r), nil)
	Dr.Mul(Vr, &Vinv)
	return Dr, nil
}
