package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/DGMesh/mesh"
)

// Gambit neutral (.neu) reader for 2D meshes. The format is fixed-layout
// text: a CONTROL INFO section whose counts line follows the
// NUMNP/NELEM/... label line, a NODAL COORDINATES block, an
// ELEMENTS/CELLS block, and zero or more named BOUNDARY CONDITIONS
// blocks. Every section is terminated by an ENDOFSECTION sentinel.

// Gambit element type codes for the supported 2D topologies.
const (
	gambitTri  = 2
	gambitQuad = 3
)

// ReadGambitNeutral parses a 2D Gambit neutral file into a mesh.Mesh.
// Vertex indices are converted from the file's 1-based numbering to the
// 0-based numbering used internally. Boundary condition groups are kept
// as named (element, face) sets in Mesh.BCFaces.
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var numnp, nelem int

	// Read header: the counts line immediately follows the label line
	// containing NUMNP.
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") {
			if !scanner.Scan() {
				return nil, fmt.Errorf("truncated header: no counts line after NUMNP")
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) < 2 {
				return nil, fmt.Errorf("invalid header counts line: %q", scanner.Text())
			}
			if numnp, err = strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("invalid NUMNP field: %v", err)
			}
			if nelem, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("invalid NELEM field: %v", err)
			}
			break
		}
	}
	if numnp == 0 || nelem == 0 {
		return nil, fmt.Errorf("missing or empty CONTROL INFO header")
	}

	msh := &mesh.Mesh{
		Dim:     2,
		BCFaces: make(map[string][]mesh.BCFace),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "NODAL COORDINATES"):
			if err := readCoordinates(scanner, msh, numnp); err != nil {
				return nil, err
			}

		case strings.HasPrefix(line, "ELEMENTS/CELLS"):
			if err := readElements(scanner, msh, nelem); err != nil {
				return nil, err
			}

		case strings.HasPrefix(line, "BOUNDARY CONDITIONS"):
			if err := readBoundaryConditions(scanner, msh); err != nil {
				return nil, err
			}
		}
	}

	if len(msh.VX) != numnp {
		return nil, fmt.Errorf("missing NODAL COORDINATES section")
	}
	if msh.K != nelem {
		return nil, fmt.Errorf("missing ELEMENTS/CELLS section")
	}
	if err := msh.Validate(); err != nil {
		return nil, err
	}
	return msh, nil
}

func readCoordinates(scanner *bufio.Scanner, msh *mesh.Mesh, numnp int) error {
	msh.VX = make([]float64, numnp)
	msh.VY = make([]float64, numnp)

	for i := 0; i < numnp; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("truncated NODAL COORDINATES: got %d of %d vertices", i, numnp)
		}
		fields := strings.Fields(scanner.Text())
		// id x y, with a trailing z tolerated and ignored
		if len(fields) < 3 {
			return fmt.Errorf("invalid vertex line: %q", scanner.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 1 || id > numnp {
			return fmt.Errorf("invalid vertex id in line: %q", scanner.Text())
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("invalid vertex coordinate: %v", err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("invalid vertex coordinate: %v", err)
		}
		msh.VX[id-1] = x
		msh.VY[id-1] = y
	}
	return nil
}

func readElements(scanner *bufio.Scanner, msh *mesh.Mesh, nelem int) error {
	msh.EToV = make([][]int, nelem)
	msh.K = nelem

	for i := 0; i < nelem; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("truncated ELEMENTS/CELLS: got %d of %d elements", i, nelem)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return fmt.Errorf("invalid element line: %q", scanner.Text())
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil || id < 1 || id > nelem {
			return fmt.Errorf("invalid element id in line: %q", scanner.Text())
		}
		elemType, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid element type: %v", err)
		}
		numNodes, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid element node count: %v", err)
		}

		var nfaces int
		switch elemType {
		case gambitTri:
			nfaces = 3
		case gambitQuad:
			nfaces = 4
		default:
			return &mesh.UnsupportedTopologyError{Dim: 2, Nfaces: numNodes}
		}
		if numNodes != nfaces {
			return &mesh.MalformedMeshError{
				Elem:   id - 1,
				Reason: fmt.Sprintf("element type %d declares %d nodes, want %d", elemType, numNodes, nfaces),
			}
		}
		if msh.Nfaces == 0 {
			msh.Nfaces = nfaces
		} else if msh.Nfaces != nfaces {
			return &mesh.MalformedMeshError{
				Elem:   id - 1,
				Reason: fmt.Sprintf("mixed topology: element has %d faces, mesh declared %d", nfaces, msh.Nfaces),
			}
		}
		if len(fields) < 3+numNodes {
			return fmt.Errorf("invalid element line: %q", scanner.Text())
		}

		verts := make([]int, numNodes)
		for j := 0; j < numNodes; j++ {
			v, err := strconv.Atoi(fields[3+j])
			if err != nil {
				return fmt.Errorf("invalid element vertex index: %v", err)
			}
			verts[j] = v - 1
		}
		msh.EToV[id-1] = verts
	}
	return nil
}

// readBoundaryConditions parses one BOUNDARY CONDITIONS section: named
// groups, each a header line (name, itype, nentry, ...) followed by
// nentry data lines of (element, element-type, face). The section ends at
// ENDOFSECTION.
func readBoundaryConditions(scanner *bufio.Scanner, msh *mesh.Mesh) error {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ENDOFSECTION") {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("invalid boundary condition format: %q", line)
		}
		name := fields[0]
		nentry, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid boundary condition format: %q", line)
		}

		faces := make([]mesh.BCFace, 0, nentry)
		for i := 0; i < nentry; i++ {
			if !scanner.Scan() {
				return fmt.Errorf("truncated boundary condition group %q: got %d of %d entries", name, i, nentry)
			}
			entry := strings.Fields(scanner.Text())
			if len(entry) < 3 {
				return fmt.Errorf("invalid boundary condition format: %q", scanner.Text())
			}
			elem, err1 := strconv.Atoi(entry[0])
			face, err2 := strconv.Atoi(entry[2])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("invalid boundary condition format: %q", scanner.Text())
			}
			faces = append(faces, mesh.BCFace{Element: elem - 1, Face: face - 1})
		}
		msh.BCFaces[name] = faces
	}
	return fmt.Errorf("unterminated BOUNDARY CONDITIONS section")
}
