package mesh

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

// adjacencySymmetric checks that every interior face link is mirrored by
// its neighbor.
func adjacencySymmetric(t *testing.T, c *Connectivity) {
	t.Helper()
	EToE := c.EToE()
	EToF := c.EToF()
	for k := 0; k < c.K; k++ {
		for f := 0; f < c.Nfaces; f++ {
			k2, f2 := EToE[k][f], EToF[k][f]
			if EToE[k2][f2] != k || EToF[k2][f2] != f {
				t.Errorf("asymmetric adjacency: (%d,%d) -> (%d,%d) -> (%d,%d)",
					k, f, k2, f2, EToE[k2][f2], EToF[k2][f2])
			}
		}
	}
}

func TestConnect1DTwoElements(t *testing.T) {
	m, err := Unimesh1D(0, 1, 2)
	require.NoError(t, err)

	conn, err := Connect1D(m)
	require.NoError(t, err)

	// Element 0's right face couples to element 1's left face
	nbr, interior := conn.Neighbor(0, 1)
	require.True(t, interior)
	require.Equal(t, Neighbor{Elem: 1, Face: 0}, nbr)

	nbr, interior = conn.Neighbor(1, 0)
	require.True(t, interior)
	require.Equal(t, Neighbor{Elem: 0, Face: 1}, nbr)

	// Outer faces are boundary
	require.True(t, conn.IsBoundary(0, 0))
	require.True(t, conn.IsBoundary(1, 1))
	require.Equal(t, 2, conn.NumBoundaryFaces())

	adjacencySymmetric(t, conn)
}

func TestConnect1DSingleElementAllBoundary(t *testing.T) {
	m, err := Unimesh1D(-1, 1, 1)
	require.NoError(t, err)

	conn, err := Connect1D(m)
	require.NoError(t, err)

	EToE := conn.EToE()
	EToF := conn.EToF()
	require.Equal(t, [][]int{{0, 0}}, EToE)
	require.Equal(t, [][]int{{0, 1}}, EToF)
	require.Equal(t, 2, conn.NumBoundaryFaces())
}

func TestConnect2DRectmesh2x2(t *testing.T) {
	m, err := Rectmesh2D(0, 1, 0, 1, 2, 2)
	require.NoError(t, err)

	conn, err := Connect2D(m)
	require.NoError(t, err)

	// Element layout (row-major): 0 1 / 2 3.
	// Faces: 0 bottom, 1 right, 2 top, 3 left.
	wantEToE := [][]int{
		{0, 1, 2, 0},
		{1, 1, 3, 0},
		{0, 3, 2, 2},
		{1, 3, 3, 2},
	}
	wantEToF := [][]int{
		{0, 3, 0, 3},
		{0, 1, 0, 1},
		{2, 3, 2, 3},
		{2, 1, 2, 1},
	}
	require.Equal(t, wantEToE, conn.EToE())
	require.Equal(t, wantEToF, conn.EToF())

	require.Equal(t, 8, conn.NumBoundaryFaces())
	adjacencySymmetric(t, conn)
}

func TestConnect2DTrimeshSplitQuad(t *testing.T) {
	m, err := Trimesh2D(0, 1, 0, 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 2, m.K)

	conn, err := Connect2D(m)
	require.NoError(t, err)

	// The two triangles share the lower-left to upper-right diagonal:
	// face 2 of triangle 0 against face 0 of triangle 1.
	nbr, interior := conn.Neighbor(0, 2)
	require.True(t, interior)
	require.Equal(t, Neighbor{Elem: 1, Face: 0}, nbr)

	require.Equal(t, 4, conn.NumBoundaryFaces())
	adjacencySymmetric(t, conn)
}

func TestConnect2DLargerMeshesSymmetric(t *testing.T) {
	quads, err := Rectmesh2D(-2, 3, 0, 1, 5, 4)
	require.NoError(t, err)
	tris, err := Trimesh2D(-2, 3, 0, 1, 5, 4)
	require.NoError(t, err)

	for _, m := range []*Mesh{quads, tris} {
		conn, err := Connect2D(m)
		require.NoError(t, err)
		adjacencySymmetric(t, conn)

		// Interior face count: every face is either boundary or half of
		// a shared pair.
		total := m.K * m.Nfaces
		interior := total - conn.NumBoundaryFaces()
		require.Equal(t, 0, interior%2)
	}
}

func TestConnect2DNonManifoldRejected(t *testing.T) {
	// Three triangles sharing the edge (0,1)
	m := &Mesh{
		K: 3, Dim: 2, Nfaces: 3,
		VX:   []float64{0, 1, 0.5, 0.5, 0.5},
		VY:   []float64{0, 0, 1, -1, 0.5},
		EToV: [][]int{{0, 1, 2}, {0, 1, 3}, {0, 1, 4}},
	}
	require.NoError(t, m.Validate())

	_, err := Connect2D(m)
	var nme *NonManifoldAdjacencyError
	if !errors.As(err, &nme) {
		t.Fatalf("want NonManifoldAdjacencyError, got %v", err)
	}
}

func TestConnect2DDimensionGuard(t *testing.T) {
	m, err := Unimesh1D(0, 1, 2)
	require.NoError(t, err)

	_, err = Connect2D(m)
	var ute *UnsupportedTopologyError
	if !errors.As(err, &ute) {
		t.Fatalf("want UnsupportedTopologyError, got %v", err)
	}
}

func TestConnectivityDeterministic(t *testing.T) {
	m, err := Trimesh2D(0, 2, 0, 1, 3, 3)
	require.NoError(t, err)

	c1, err := Connect2D(m)
	require.NoError(t, err)
	c2, err := Connect2D(m)
	require.NoError(t, err)

	if !reflect.DeepEqual(c1.EToE(), c2.EToE()) || !reflect.DeepEqual(c1.EToF(), c2.EToF()) {
		t.Error("rebuilding connectivity from the same mesh changed the tables")
	}
}
