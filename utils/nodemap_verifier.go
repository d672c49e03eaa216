package utils

import (
	"fmt"
)

// NodeMapVerifier checks the structural consistency of interior/exterior
// node maps before they are handed to a flux solver. A silently corrupt
// map produces a wrong numerical answer instead of a crash, so callers
// should verify once after every mesh build.
type NodeMapVerifier struct {
	// Mesh dimensions
	K      int // Total elements
	Nfaces int // Faces per element
	Nfp    int // Face points per face
	Np     int // Nodes per element

	// Node maps under test
	VmapM []int // Face point → own volume node
	VmapP []int // Face point → neighbor volume node
	MapM  []int // Face point → own face point position
	MapP  []int // Face point → neighbor face point position
	MapB  []int // Boundary face point positions
	VmapB []int // Boundary volume nodes

	// Independently computed boundary face count, e.g. from the
	// adjacency table
	NumBoundaryFaces int
}

// Verify checks index validity, alignment, symmetry, and conservation
// properties of the node maps.
func (v *NodeMapVerifier) Verify() error {
	if v.K <= 0 || v.Nfaces <= 0 || v.Nfp <= 0 || v.Np <= 0 {
		return fmt.Errorf("invalid dimensions: K=%d, Nfaces=%d, Nfp=%d, Np=%d",
			v.K, v.Nfaces, v.Nfp, v.Np)
	}

	// Verify 1: Lengths - all face point maps cover every face point
	totalFacePoints := v.K * v.Nfaces * v.Nfp
	for name, m := range map[string][]int{
		"VmapM": v.VmapM, "VmapP": v.VmapP, "MapM": v.MapM, "MapP": v.MapP,
	} {
		if len(m) != totalFacePoints {
			return fmt.Errorf("%s length %d does not match expected %d",
				name, len(m), totalFacePoints)
		}
	}
	if len(v.MapB) != len(v.VmapB) {
		return fmt.Errorf("length mismatch: MapB=%d, VmapB=%d", len(v.MapB), len(v.VmapB))
	}

	// Verify 2: Bounds - volume indices within the global node arena,
	// face point indices within the face point range
	maxVolumeNode := v.K * v.Np
	for i := 0; i < totalFacePoints; i++ {
		if v.VmapM[i] < 0 || v.VmapM[i] >= maxVolumeNode {
			return fmt.Errorf("invalid VmapM[%d]=%d (max %d)", i, v.VmapM[i], maxVolumeNode-1)
		}
		if v.VmapP[i] < 0 || v.VmapP[i] >= maxVolumeNode {
			return fmt.Errorf("invalid VmapP[%d]=%d (max %d)", i, v.VmapP[i], maxVolumeNode-1)
		}
		if v.MapM[i] != i {
			return fmt.Errorf("MapM[%d]=%d, must be the identity", i, v.MapM[i])
		}
		if v.MapP[i] < 0 || v.MapP[i] >= totalFacePoints {
			return fmt.Errorf("invalid MapP[%d]=%d (max %d)", i, v.MapP[i], totalFacePoints-1)
		}
	}

	// Verify 3: Boundary alignment - a position is boundary exactly when
	// its exterior node is its interior node, and the boundary subset
	// reflects that
	boundaryCount := 0
	for i := 0; i < totalFacePoints; i++ {
		selfMapped := v.MapP[i] == i
		selfNode := v.VmapP[i] == v.VmapM[i]
		if selfMapped != selfNode {
			return fmt.Errorf("position %d: MapP self-reference %v disagrees with VmapM/VmapP coincidence %v",
				i, selfMapped, selfNode)
		}
		if selfMapped {
			boundaryCount++
		} else if v.MapP[v.MapP[i]] != i {
			// Interior matches must be symmetric
			return fmt.Errorf("asymmetric match: MapP[MapP[%d]]=%d", i, v.MapP[v.MapP[i]])
		}
	}
	for n, pos := range v.MapB {
		if v.MapP[pos] != pos {
			return fmt.Errorf("MapB[%d]=%d is not a boundary position", n, pos)
		}
		if v.VmapB[n] != v.VmapM[pos] {
			return fmt.Errorf("VmapB[%d]=%d does not match VmapM[%d]=%d",
				n, v.VmapB[n], pos, v.VmapM[pos])
		}
	}

	// Verify 4: Conservation - boundary node count equals boundary faces
	// times nodes per face
	if len(v.MapB) != boundaryCount {
		return fmt.Errorf("MapB length %d does not match %d self-mapped positions",
			len(v.MapB), boundaryCount)
	}
	expectedBoundary := v.NumBoundaryFaces * v.Nfp
	if boundaryCount != expectedBoundary {
		return fmt.Errorf("conservation error: %d boundary nodes != %d boundary faces x %d face points",
			boundaryCount, v.NumBoundaryFaces, v.Nfp)
	}

	return nil
}
