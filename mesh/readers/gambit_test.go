package readers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/DGMesh/mesh"
)

func createTempNeuFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.neu")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp mesh file: %v", err)
	}
	return path
}

const triSquareNeu = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
Unit square, two triangles
PROGRAM:                  Test     VERSION:  1.0
Mon Jan  1 00:00:00 2025
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         1         2         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00
         3   1.00000000000e+00   1.00000000000e+00
         4   0.00000000000e+00   1.00000000000e+00
ENDOFSECTION
   ELEMENTS/CELLS 2.0.0
         1         2         3         1         2         3
         2         2         3         1         3         4
ENDOFSECTION
       BOUNDARY CONDITIONS 2.0.0
inlet           1         2         0         0         0         0         0         0
         1         2         1
         2         2         3
wall            1         1         0         0         0         0         0         0
         1         2         2
ENDOFSECTION
`

func TestReadGambitNeutralTriangles(t *testing.T) {
	path := createTempNeuFile(t, triSquareNeu)

	msh, err := ReadGambitNeutral(path)
	if err != nil {
		t.Fatalf("ReadGambitNeutral failed: %v", err)
	}

	if msh.K != 2 {
		t.Errorf("K = %d, want 2", msh.K)
	}
	if msh.Nfaces != 3 {
		t.Errorf("Nfaces = %d, want 3", msh.Nfaces)
	}
	if msh.NumVertices() != 4 {
		t.Errorf("vertices = %d, want 4", msh.NumVertices())
	}

	// 1-based file indices converted to 0-based
	want := [][]int{{0, 1, 2}, {0, 2, 3}}
	for k := range want {
		for j := range want[k] {
			if msh.EToV[k][j] != want[k][j] {
				t.Errorf("EToV[%d][%d] = %d, want %d", k, j, msh.EToV[k][j], want[k][j])
			}
		}
	}

	if msh.VX[2] != 1.0 || msh.VY[2] != 1.0 {
		t.Errorf("vertex 3 = (%g,%g), want (1,1)", msh.VX[2], msh.VY[2])
	}

	// Boundary condition groups
	inlet := msh.BCFaces["inlet"]
	if len(inlet) != 2 {
		t.Fatalf("inlet has %d faces, want 2", len(inlet))
	}
	if inlet[0] != (mesh.BCFace{Element: 0, Face: 0}) {
		t.Errorf("inlet[0] = %+v, want element 0 face 0", inlet[0])
	}
	if inlet[1] != (mesh.BCFace{Element: 1, Face: 2}) {
		t.Errorf("inlet[1] = %+v, want element 1 face 2", inlet[1])
	}
	wall := msh.BCFaces["wall"]
	if len(wall) != 1 || wall[0] != (mesh.BCFace{Element: 0, Face: 1}) {
		t.Errorf("wall = %+v, want [{0 1}]", wall)
	}

	// The reader's output must pass downstream connectivity
	if _, err := mesh.Connect2D(msh); err != nil {
		t.Errorf("Connect2D on read mesh failed: %v", err)
	}
}

func TestReadGambitNeutralMalformedBC(t *testing.T) {
	content := strings.Replace(triSquareNeu,
		"inlet           1         2",
		"inlet           1         notanumber", 1)
	path := createTempNeuFile(t, content)

	_, err := ReadGambitNeutral(path)
	if err == nil {
		t.Fatal("expected error for malformed boundary condition data, but got none")
	}
	if !strings.Contains(err.Error(), "invalid boundary condition format") {
		t.Errorf("expected error about invalid boundary condition format, got: %v", err)
	}
}

func TestReadGambitNeutralTruncatedVertices(t *testing.T) {
	// Header claims 4 vertices but the coordinate block ends early
	content := `        CONTROL INFO 2.0.0
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         1         0         0         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.0   0.0
         2   1.0   0.0
`
	path := createTempNeuFile(t, content)
	if _, err := ReadGambitNeutral(path); err == nil {
		t.Fatal("expected error for truncated vertex block, but got none")
	}
}

func TestReadGambitNeutralMixedTopologyRejected(t *testing.T) {
	content := `        CONTROL INFO 2.0.0
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         5         2         0         0         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.0   0.0
         2   1.0   0.0
         3   1.0   1.0
         4   0.0   1.0
         5   2.0   0.5
ENDOFSECTION
   ELEMENTS/CELLS 2.0.0
         1         3         4         1         2         3         4
         2         2         3         2         5         3
ENDOFSECTION
`
	path := createTempNeuFile(t, content)
	_, err := ReadGambitNeutral(path)
	if err == nil {
		t.Fatal("expected error for mixed tri/quad mesh, but got none")
	}
}

func TestReadGambitNeutralMissingFile(t *testing.T) {
	if _, err := ReadGambitNeutral("no-such-file.neu"); err == nil {
		t.Fatal("expected error for missing file, but got none")
	}
}
