package nudg2d

import (
	"fmt"
	"math"
	"testing"
)

func TestNodes2DVertices(t *testing.T) {
	// N=1 gives exactly the corners of the equilateral triangle.
	x, y := Nodes2D(1)
	if len(x) != 3 {
		t.Fatalf("got %d nodes, want 3", len(x))
	}
	h := 1.0 / math.Sqrt(3.0)
	want := [][2]float64{{-1, -h}, {1, -h}, {0, 2 * h}}
	for i := range want {
		if math.Abs(x[i]-want[i][0]) > 1e-12 || math.Abs(y[i]-want[i][1]) > 1e-12 {
			t.Errorf("vertex %d = (%g,%g), want (%g,%g)", i, x[i], y[i], want[i][0], want[i][1])
		}
	}
}

func TestNodes2DCountAndContainment(t *testing.T) {
	for N := 1; N <= 8; N++ {
		t.Run(fmt.Sprintf("N=%d", N), func(t *testing.T) {
			x, y := Nodes2D(N)
			Np := (N + 1) * (N + 2) / 2
			if len(x) != Np || len(y) != Np {
				t.Fatalf("got %d nodes, want %d", len(x), Np)
			}

			// All nodes stay inside the reference triangle
			r, s := XYtoRS(x, y)
			for i := range r {
				if r[i] < -1-NODETOL || s[i] < -1-NODETOL || r[i]+s[i] > NODETOL {
					t.Errorf("node %d at (r,s)=(%g,%g) outside reference triangle", i, r[i], s[i])
				}
			}
		})
	}
}

func TestXYtoRSCorners(t *testing.T) {
	x, y := Nodes2D(1)
	r, s := XYtoRS(x, y)

	want := [][2]float64{{-1, -1}, {1, -1}, {-1, 1}}
	for i := range want {
		if math.Abs(r[i]-want[i][0]) > 1e-12 || math.Abs(s[i]-want[i][1]) > 1e-12 {
			t.Errorf("corner %d = (%g,%g), want (%g,%g)", i, r[i], s[i], want[i][0], want[i][1])
		}
	}
}

func TestWarpfactorVanishesAtLobattoPoints(t *testing.T) {
	// The warp displacement is zero where the equidistributed points
	// already coincide with Gauss-Lobatto points: the interval endpoints.
	for N := 2; N <= 6; N++ {
		w := Warpfactor(N, []float64{-1, 1})
		for i, wi := range w {
			if math.Abs(wi) > 1e-10 {
				t.Errorf("N=%d: warp at endpoint %d = %g, want 0", N, i, wi)
			}
		}
	}
}
