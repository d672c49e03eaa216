package nudg2d

// INDEXING NOTE: the nudg family of codes uses 1-based indexing to emulate
// Matlab behavior. This package uses standard 0-based indexing throughout.

import (
	"math"

	"github.com/notargets/DGMesh/element/library/nudg1d"
	"gonum.org/v1/gonum/mat"
)

// Blend warp parameter, optimized per order for interpolation quality.
var alpopt = [15]float64{
	0.0000, 0.0000, 1.4152, 0.1001, 0.2751,
	0.9800, 1.0999, 1.2832, 1.3648, 1.4773,
	1.4959, 1.5743, 1.5770, 1.6223, 1.6258,
}

// Nodes2D computes (x,y) coordinates of the order-N warp & blend nodes on
// the equilateral reference triangle.
func Nodes2D(N int) (x, y []float64) {
	alpha := 5.0 / 3.0
	if N < 16 {
		alpha = alpopt[N-1]
	}

	Np := (N + 1) * (N + 2) / 2

	// Equidistributed barycentric coordinates
	L1 := make([]float64, Np)
	L2 := make([]float64, Np)
	L3 := make([]float64, Np)
	sk := 0
	for n := 0; n <= N; n++ {
		for m := 0; m <= N-n; m++ {
			L1[sk] = float64(n) / float64(N)
			L3[sk] = float64(m) / float64(N)
			sk++
		}
	}
	for i := 0; i < Np; i++ {
		L2[i] = 1.0 - L1[i] - L3[i]
	}

	x = make([]float64, Np)
	y = make([]float64, Np)
	for i := 0; i < Np; i++ {
		x[i] = -L2[i] + L3[i]
		y[i] = (-L2[i] - L3[i] + 2*L1[i]) / math.Sqrt(3.0)
	}

	// Warp displacement along each edge direction
	warpf1 := Warpfactor(N, vecSub(L3, L2))
	warpf2 := Warpfactor(N, vecSub(L1, L3))
	warpf3 := Warpfactor(N, vecSub(L2, L1))

	for i := 0; i < Np; i++ {
		blend1 := 4 * L2[i] * L3[i]
		blend2 := 4 * L1[i] * L3[i]
		blend3 := 4 * L1[i] * L2[i]

		warp1 := blend1 * warpf1[i] * (1 + (alpha*L1[i])*(alpha*L1[i]))
		warp2 := blend2 * warpf2[i] * (1 + (alpha*L2[i])*(alpha*L2[i]))
		warp3 := blend3 * warpf3[i] * (1 + (alpha*L3[i])*(alpha*L3[i]))

		x[i] += warp1 + math.Cos(2*math.Pi/3)*warp2 + math.Cos(4*math.Pi/3)*warp3
		y[i] += math.Sin(2*math.Pi/3)*warp2 + math.Sin(4*math.Pi/3)*warp3
	}
	return x, y
}

// Warpfactor computes the 1D edge warp displacement from the
// equidistributed points to the Gauss-Lobatto points, evaluated at rout.
func Warpfactor(N int, rout []float64) []float64 {
	LGLr := nudg1d.JacobiGL(0, 0, N)

	// Equidistant nodes on [-1,1]
	req := make([]float64, N+1)
	for i := 0; i <= N; i++ {
		req[i] = -1.0 + 2.0*float64(i)/float64(N)
	}

	Veq := nudg1d.Vandermonde1D(N, req)

	// Evaluate the Legendre basis at rout
	Nr := len(rout)
	Pmat := mat.NewDense(N+1, Nr, nil)
	for i := 0; i <= N; i++ {
		P := nudg1d.JacobiP(rout, 0, 0, i)
		for j := 0; j < Nr; j++ {
			Pmat.Set(i, j, P[j])
		}
	}

	// Lagrange interpolation weights: solve Veq^T * Lmat = Pmat
	var Lmat mat.Dense
	if err := Lmat.Solve(Veq.T(), Pmat); err != nil {
		panic("Warpfactor: singular equidistant Vandermonde matrix")
	}

	// warp = Lmat^T * (LGLr - req)
	warp := make([]float64, Nr)
	for j := 0; j < Nr; j++ {
		var w float64
		for i := 0; i <= N; i++ {
			w += Lmat.At(i, j) * (LGLr[i] - req[i])
		}
		warp[j] = w
	}

	// Scale, deactivating the factor at the edge ends
	for j := 0; j < Nr; j++ {
		zerof := 0.0
		if math.Abs(rout[j]) < 1.0-1.0e-10 {
			zerof = 1.0
		}
		sf := 1.0 - (zerof*rout[j])*(zerof*rout[j])
		warp[j] = warp[j]/sf + warp[j]*(zerof-1.0)
	}
	return warp
}

// XYtoRS transfers coordinates on the equilateral triangle to (r,s)
// coordinates on the right-angled reference triangle.
func XYtoRS(x, y []float64) (r, s []float64) {
	Np := len(x)
	r = make([]float64, Np)
	s = make([]float64, Np)

	sqrt3 := math.Sqrt(3.0)
	for i := 0; i < Np; i++ {
		L1 := (sqrt3*y[i] + 1.0) / 3.0
		L2 := (-3.0*x[i] - sqrt3*y[i] + 2.0) / 6.0
		L3 := (3.0*x[i] - sqrt3*y[i] + 2.0) / 6.0

		r[i] = -L2 + L3 - L1
		s[i] = -L2 - L3 + L1
	}
	return r, s
}

// RStoAB converts from (r,s) to (a,b) coordinates for the collapsed
// coordinate basis evaluation.
func RStoAB(r, s []float64) (a, b []float64) {
	Np := len(r)
	a = make([]float64, Np)
	b = make([]float64, Np)

	for n := 0; n < Np; n++ {
		if s[n] != 1 {
			a[n] = 2*(1+r[n])/(1-s[n]) - 1
		} else {
			a[n] = -1
		}
		b[n] = s[n]
	}
	return
}

func vecSub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
