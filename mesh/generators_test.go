package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnimesh1D(t *testing.T) {
	m, err := Unimesh1D(0, 2, 4)
	require.NoError(t, err)

	require.Equal(t, 4, m.K)
	require.Equal(t, 1, m.Dim)
	require.Equal(t, 2, m.Nfaces)
	require.Len(t, m.VX, 5)

	for i, want := range []float64{0, 0.5, 1, 1.5, 2} {
		require.InDelta(t, want, m.VX[i], 1e-14)
	}
	for k := 0; k < m.K; k++ {
		require.Equal(t, []int{k, k + 1}, m.EToV[k])
	}
}

func TestUnimesh1DRejectsBadArguments(t *testing.T) {
	if _, err := Unimesh1D(0, 1, 0); err == nil {
		t.Error("K=0 accepted")
	}
	if _, err := Unimesh1D(1, 0, 3); err == nil {
		t.Error("inverted interval accepted")
	}
}

func TestRectmesh2DLatticeConvention(t *testing.T) {
	m, err := Rectmesh2D(0, 2, 0, 1, 2, 1)
	require.NoError(t, err)

	require.Equal(t, 2, m.K)
	require.Equal(t, 4, m.Nfaces)
	require.Len(t, m.VX, 6)

	// Row-major lattice: x varies fastest
	require.InDelta(t, 1.0, m.VX[1], 1e-14)
	require.InDelta(t, 0.0, m.VY[1], 1e-14)
	require.InDelta(t, 0.0, m.VX[3], 1e-14)
	require.InDelta(t, 1.0, m.VY[3], 1e-14)

	// Counterclockwise corner order from the lower left
	require.Equal(t, []int{0, 1, 4, 3}, m.EToV[0])
	require.Equal(t, []int{1, 2, 5, 4}, m.EToV[1])
}

func TestTrimesh2DSplitsEveryQuad(t *testing.T) {
	m, err := Trimesh2D(0, 1, 0, 1, 3, 2)
	require.NoError(t, err)

	require.Equal(t, 12, m.K)
	require.Equal(t, 3, m.Nfaces)
	require.NoError(t, m.Validate())

	// All triangles must wind counterclockwise (positive signed area)
	for k, verts := range m.EToV {
		ax, ay := m.VX[verts[0]], m.VY[verts[0]]
		bx, by := m.VX[verts[1]], m.VY[verts[1]]
		cx, cy := m.VX[verts[2]], m.VY[verts[2]]
		area2 := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
		if area2 <= 0 || math.IsNaN(area2) {
			t.Errorf("triangle %d has non-positive signed area %g", k, area2)
		}
	}
}
