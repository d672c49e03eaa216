package nudg1d

import (
	"math"
	"reflect"
	"testing"

	"github.com/notargets/DGMesh/mesh"
	"github.com/notargets/DGMesh/utils"
	"github.com/stretchr/testify/require"
)

func TestNewDG1DTwoElementMaps(t *testing.T) {
	m, err := mesh.Unimesh1D(0, 1, 2)
	require.NoError(t, err)

	dg, err := NewDG1D(4, m)
	require.NoError(t, err)

	require.Equal(t, 5, dg.Np)
	require.Equal(t, 1, dg.Nfp)
	require.Equal(t, 2, dg.Nfaces)

	// Element-major volume numbering: element 0 owns nodes 0..4,
	// element 1 owns nodes 5..9.
	require.Equal(t, []int{0, 4, 5, 9}, dg.VmapM)

	// The shared vertex at x=0.5 couples element 0's right endpoint to
	// element 1's left endpoint.
	require.Equal(t, 5, dg.VmapP[1])
	require.Equal(t, 4, dg.VmapP[2])
	require.Equal(t, 2, dg.MapP[1])
	require.Equal(t, 1, dg.MapP[2])

	// Domain endpoints stay self-connected
	require.Equal(t, []int{0, 3}, dg.MapB)
	require.Equal(t, []int{0, 9}, dg.VmapB)

	// Exterior coordinates coincide with interior coordinates
	x := make([]float64, dg.Np*dg.K)
	for k := 0; k < dg.K; k++ {
		for i := 0; i < dg.Np; i++ {
			x[k*dg.Np+i] = dg.X.At(i, k)
		}
	}
	for i := range dg.VmapM {
		require.InDelta(t, x[dg.VmapM[i]], x[dg.VmapP[i]], 1e-12)
	}
}

func TestNewDG1DSingleElementAllBoundary(t *testing.T) {
	m, err := mesh.Unimesh1D(-1, 1, 1)
	require.NoError(t, err)

	dg, err := NewDG1D(3, m)
	require.NoError(t, err)

	// With one element every face is boundary: all maps self-referential
	require.Equal(t, dg.VmapM, dg.VmapP)
	require.Equal(t, dg.MapM, dg.MapP)
	require.Equal(t, []int{0, 1}, dg.MapB)
	require.Equal(t, 2, dg.Conn.NumBoundaryFaces())
}

func TestNewDG1DPassesVerifier(t *testing.T) {
	m, err := mesh.Unimesh1D(0, 3, 7)
	require.NoError(t, err)

	dg, err := NewDG1D(5, m)
	require.NoError(t, err)

	v := &utils.NodeMapVerifier{
		K: dg.K, Nfaces: dg.Nfaces, Nfp: dg.Nfp, Np: dg.Np,
		VmapM: dg.VmapM, VmapP: dg.VmapP,
		MapM: dg.MapM, MapP: dg.MapP,
		MapB: dg.MapB, VmapB: dg.VmapB,
		NumBoundaryFaces: dg.Conn.NumBoundaryFaces(),
	}
	require.NoError(t, v.Verify())
}

func TestBuildMaps1DIdempotent(t *testing.T) {
	m, err := mesh.Unimesh1D(0, 1, 4)
	require.NoError(t, err)

	dg, err := NewDG1D(3, m)
	require.NoError(t, err)

	vmapP := append([]int(nil), dg.VmapP...)
	mapP := append([]int(nil), dg.MapP...)
	mapB := append([]int(nil), dg.MapB...)

	require.NoError(t, dg.BuildMaps1D())

	if !reflect.DeepEqual(vmapP, dg.VmapP) || !reflect.DeepEqual(mapP, dg.MapP) ||
		!reflect.DeepEqual(mapB, dg.MapB) {
		t.Error("rebuilding the node maps changed the result")
	}
}

func TestNewDG1DGeometry(t *testing.T) {
	m, err := mesh.Unimesh1D(0, 2, 4)
	require.NoError(t, err)

	dg, err := NewDG1D(2, m)
	require.NoError(t, err)

	// Uniform elements of width 0.5: J = h/2 = 0.25 everywhere
	for i := 0; i < dg.Np; i++ {
		for k := 0; k < dg.K; k++ {
			require.InDelta(t, 0.25, dg.J.At(i, k), 1e-12)
			require.InDelta(t, 4.0, dg.Rx.At(i, k), 1e-12)
		}
	}

	// Outward normals: -1 on the left face, +1 on the right
	for k := 0; k < dg.K; k++ {
		require.Equal(t, -1.0, dg.NX.At(0, k))
		require.Equal(t, 1.0, dg.NX.At(1, k))
	}

	// Endpoint nodes of each element land on the mesh vertices
	for k := 0; k < dg.K; k++ {
		require.InDelta(t, m.VX[m.EToV[k][0]], dg.X.At(0, k), 1e-14)
		require.InDelta(t, m.VX[m.EToV[k][1]], dg.X.At(dg.Np-1, k), 1e-14)
	}
}

func TestNewDG1DDifferentiation(t *testing.T) {
	m, err := mesh.Unimesh1D(-1, 2, 3)
	require.NoError(t, err)

	dg, err := NewDG1D(4, m)
	require.NoError(t, err)

	// d/dx of x^3 via Rx .* (Dr * u) must be exact for N >= 3
	u := make([]float64, dg.Np*dg.K)
	for k := 0; k < dg.K; k++ {
		for i := 0; i < dg.Np; i++ {
			x := dg.X.At(i, k)
			u[k*dg.Np+i] = x * x * x
		}
	}
	for k := 0; k < dg.K; k++ {
		for i := 0; i < dg.Np; i++ {
			var dur float64
			for j := 0; j < dg.Np; j++ {
				dur += dg.Dr.At(i, j) * u[k*dg.Np+j]
			}
			got := dg.Rx.At(i, k) * dur
			x := dg.X.At(i, k)
			if math.Abs(got-3*x*x) > 1e-9 {
				t.Errorf("d/dx x^3 at (%d,%d): got %g, want %g", i, k, got, 3*x*x)
			}
		}
	}
}

func TestNewDG1DRejectsBadInput(t *testing.T) {
	m, err := mesh.Unimesh1D(0, 1, 2)
	require.NoError(t, err)

	if _, err := NewDG1D(0, m); err == nil {
		t.Error("order N=0 accepted")
	}

	m2, err := mesh.Rectmesh2D(0, 1, 0, 1, 2, 2)
	require.NoError(t, err)
	if _, err := NewDG1D(2, m2); err == nil {
		t.Error("2D mesh accepted by 1D startup")
	}
}
