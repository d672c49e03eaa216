package nudg2d

import (
	"fmt"
	"math"

	"github.com/notargets/DGMesh/element/library/nudg1d"
	"gonum.org/v1/gonum/mat"
)

// Vandermonde2D initializes the 2D Vandermonde matrix on the simplex,
// V[n][m] = phi_m(r[n], s[n]) for the orthonormal PKD basis.
func Vandermonde2D(N int, r, s []float64) *mat.Dense {
	Np := (N + 1) * (N + 2) / 2
	Nr := len(r)

	V2D := mat.NewDense(Nr, Np, nil)

	sk := 0
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			P := Simplex2DP(r, s, i, j)
			for row := 0; row < Nr; row++ {
				V2D.Set(row, sk, P[row])
			}
			sk++
		}
	}
	return V2D
}

// Simplex2DP evaluates the 2D orthonormal polynomial on the simplex at
// (r,s) of order (i,j).
func Simplex2DP(r, s []float64, i, j int) []float64 {
	a, b := RStoAB(r, s)

	Np := len(r)
	h1 := nudg1d.JacobiP(a, 0, 0, i)
	h2 := nudg1d.JacobiP(b, float64(2*i+1), 0, j)

	P := make([]float64, Np)
	sq2 := math.Sqrt2

	for n := range h1 {
		tv := sq2 * h1[n] * h2[n]
		if i > 0 {
			tv *= pow(1-b[n], i)
		}
		P[n] = tv
	}
	return P
}

// GradSimplex2DP returns the derivatives of the modal basis (i,j) on the
// simplex at (a,b) collapsed coordinates.
func GradSimplex2DP(a, b []float64, id, jd int) (dmodedr, dmodeds []float64) {
	Np := len(a)

	fa := nudg1d.JacobiP(a, 0, 0, id)
	dfa := nudg1d.GradJacobiP(a, 0, 0, id)
	gb := nudg1d.JacobiP(b, float64(2*id+1), 0, jd)
	dgb := nudg1d.GradJacobiP(b, float64(2*id+1), 0, jd)

	dmodedr = make([]float64, Np)
	dmodeds = make([]float64, Np)

	norm := math.Pow(2, float64(id)+0.5)
	for n := 0; n < Np; n++ {
		hb := 0.5 * (1 - b[n])

		// r-derivative: d/dr = da/dr * d/da = (2/(1-b)) d/da
		dr := dfa[n] * gb[n]
		if id > 0 {
			dr *= pow(hb, id-1)
		}

		// s-derivative: d/ds = ((1+a)/2)*(2/(1-b)) d/da + d/db
		ds := dfa[n] * gb[n] * 0.5 * (1 + a[n])
		if id > 0 {
			ds *= pow(hb, id-1)
		}
		tmp := dgb[n] * pow(hb, id)
		if id > 0 {
			tmp -= 0.5 * float64(id) * gb[n] * pow(hb, id-1)
		}
		ds += fa[n] * tmp

		dmodedr[n] = norm * dr
		dmodeds[n] = norm * ds
	}
	return
}

// GradVandermonde2D builds the gradient of the modal basis (i,j) at the
// points (r,s).
func GradVandermonde2D(N int, r, s []float64) (V2Dr, V2Ds *mat.Dense) {
	Np := (N + 1) * (N + 2) / 2
	Nr := len(r)

	V2Dr = mat.NewDense(Nr, Np, nil)
	V2Ds = mat.NewDense(Nr, Np, nil)

	a, b := RStoAB(r, s)

	sk := 0
	for i := 0; i <= N; i++ {
		for j := 0; j <= N-i; j++ {
			ddr, dds := GradSimplex2DP(a, b, i, j)
			for row := 0; row < Nr; row++ {
				V2Dr.Set(row, sk, ddr[row])
				V2Ds.Set(row, sk, dds[row])
			}
			sk++
		}
	}
	return
}

// Dmatrices2D computes the differentiation matrices Dr and Ds on the
// simplex, Dr = Vr * V^{-1} and Ds = Vs * V^{-1}, at the points (r,s).
func Dmatrices2D(N int, r, s []float64, V *mat.Dense) (Dr, Ds *mat.Dense, err error) {
	Vr, Vs := GradVandermonde2D(N, r, s)

	var Vinv mat.Dense
	if err = Vinv.Inverse(V); err != nil {
		return nil, nil, fmt.Errorf("failed to invert Vandermonde matrix: %v", err)
	}

	Nr := len(r)
	Dr = mat.NewDense(Nr, Nr, nil)
	Ds = mat.NewDense(Nr, Nr, nil)
	Dr.Mul(Vr, &Vinv)
	Ds.Mul(Vs, &Vinv)
	return Dr, Ds, nil
}

// pow computes x^n for non-negative integer n.
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
