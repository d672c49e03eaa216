package nudg2d

import (
	"fmt"

	"github.com/notargets/DGMesh/element"
	"gonum.org/v1/gonum/mat"
)

// TriElement adapts DG2D to the element.Element interface.
type TriElement struct {
	*DG2D
}

var _ element.Element = (*TriElement)(nil)

func (e *TriElement) Name() string {
	return fmt.Sprintf("Lagrange Triangle Order %d", e.DG2D.N)
}

func (e *TriElement) GeometryType() element.ElementGeometry { return element.Tri }
func (e *TriElement) Order() int                            { return e.DG2D.N }
func (e *TriElement) Dimensions() element.Dimensionality    { return element.D2 }

func (e *TriElement) Np() int     { return e.DG2D.Np }
func (e *TriElement) NFp() int    { return e.DG2D.Nfp }
func (e *TriElement) Nfaces() int { return e.DG2D.Nfaces }

func (e *TriElement) R() []float64 { return e.DG2D.R }
func (e *TriElement) S() []float64 { return e.DG2D.S }

func (e *TriElement) FacePoints() [][]int { return e.DG2D.Fmask }

func (e *TriElement) V() mat.Matrix    { return e.DG2D.V }
func (e *TriElement) Vinv() mat.Matrix { return e.DG2D.Vinv }
func (e *TriElement) Dr() mat.Matrix   { return e.DG2D.Dr }
func (e *TriElement) Ds() mat.Matrix   { return e.DG2D.Ds }
func (e *TriElement) LIFT() mat.Matrix { return e.DG2D.LIFT }

// QuadElement adapts DG2DQuad to the element.Element interface.
type QuadElement struct {
	*DG2DQuad
}

var _ element.Element = (*QuadElement)(nil)

func (e *QuadElement) Name() string {
	return fmt.Sprintf("Lagrange Rectangle Order %d", e.DG2DQuad.N)
}

func (e *QuadElement) GeometryType() element.ElementGeometry { return element.Quad }
func (e *QuadElement) Order() int                            { return e.DG2DQuad.N }
func (e *QuadElement) Dimensions() element.Dimensionality    { return element.D2 }

func (e *QuadElement) Np() int     { return e.DG2DQuad.Np }
func (e *QuadElement) NFp() int    { return e.DG2DQuad.Nfp }
func (e *QuadElement) Nfaces() int { return e.DG2DQuad.Nfaces }

func (e *QuadElement) R() []float64 { return e.DG2DQuad.R }
func (e *QuadElement) S() []float64 { return e.DG2DQuad.S }

func (e *QuadElement) FacePoints() [][]int { return e.DG2DQuad.Fmask }

func (e *QuadElement) V() mat.Matrix    { return e.DG2DQuad.V }
func (e *QuadElement) Vinv() mat.Matrix { return e.DG2DQuad.Vinv }
func (e *QuadElement) Dr() mat.Matrix   { return e.DG2DQuad.Dr }
func (e *QuadElement) Ds() mat.Matrix   { return e.DG2DQuad.Ds }
func (e *QuadElement) LIFT() mat.Matrix { return e.DG2DQuad.LIFT }
