package nudg1d

import (
	"fmt"

	"github.com/notargets/DGMesh/element"
	"gonum.org/v1/gonum/mat"
)

// LineElement adapts DG1D to the element.Element interface.
type LineElement struct {
	*DG1D
}

var _ element.Element = (*LineElement)(nil)

func (e *LineElement) Name() string {
	return fmt.Sprintf("Lagrange Line Order %d", e.DG1D.N)
}

func (e *LineElement) GeometryType() element.ElementGeometry { return element.Line }
func (e *LineElement) Order() int                            { return e.DG1D.N }
func (e *LineElement) Dimensions() element.Dimensionality    { return element.D1 }

func (e *LineElement) Np() int     { return e.DG1D.Np }
func (e *LineElement) NFp() int    { return e.DG1D.Nfp }
func (e *LineElement) Nfaces() int { return e.DG1D.Nfaces }

func (e *LineElement) R() []float64 { return e.DG1D.R }
func (e *LineElement) S() []float64 { return nil }

func (e *LineElement) FacePoints() [][]int { return e.DG1D.Fmask }

func (e *LineElement) V() mat.Matrix    { return e.DG1D.V }
func (e *LineElement) Vinv() mat.Matrix { return e.DG1D.Vinv }
func (e *LineElement) Dr() mat.Matrix   { return e.DG1D.Dr }
func (e *LineElement) Ds() mat.Matrix   { return nil }
func (e *LineElement) LIFT() mat.Matrix { return e.DG1D.LIFT }
