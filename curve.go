/*
 * curve.go, part of godos.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dos

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Curve is one density-of-states series: energies E and intensities DOS,
// equal in length and in the order they were parsed from the source
// document. The label is either an orbital/spin pair ("d_alpha") or, for
// spin-unresolved documents, a bare orbital ("d").
type Curve struct {
	Label string
	E     []float64
	DOS   []float64
}

// NewCurve returns a Curve over e and dos. It returns an error if the slices
// are nil or their lengths differ.
func NewCurve(label string, e, dos []float64) (*Curve, error) {
	if e == nil || dos == nil {
		return nil, CError{string(ErrNilData), []string{"NewCurve"}}
	}
	if len(e) != len(dos) {
		return nil, CError{fmt.Sprintf("godos: curve %s: %d energies but %d intensities", label, len(e), len(dos)), []string{"NewCurve"}}
	}
	return &Curve{Label: label, E: e, DOS: dos}, nil
}

// Len returns the number of points in the curve.
func (C *Curve) Len() int {
	return len(C.E)
}

// Copy returns a deep copy of the curve.
func (C *Curve) Copy() *Curve {
	N := new(Curve)
	N.Label = C.Label
	N.E = make([]float64, len(C.E))
	N.DOS = make([]float64, len(C.DOS))
	copy(N.E, C.E)
	copy(N.DOS, C.DOS)
	return N
}

// Negated returns a copy of the curve with every intensity multiplied by -1.
// Used for the plotting convention where the beta channel hangs below the
// zero axis.
func (C *Curve) Negated() *Curve {
	N := C.Copy()
	floats.ScaleTo(N.DOS, -1, C.DOS)
	return N
}

// Center returns the band center of the curve: the intensity-weighted mean
// energy Int(y*x dx)/Int(y dx), with both integrals taken by the trapezoidal
// rule over the points in parsed order. The energy axis may be non-uniformly
// spaced. It returns an error if the curve has fewer than 2 points or if the
// intensity integral is exactly zero, in which case the center is undefined.
//
// The trapezoids are accumulated directly instead of going through
// gonum's integrate.Trapezoidal, because the latter panics on a
// non-increasing abscissa and the point order of the source document is
// trusted here as-is.
func (C *Curve) Center() (float64, error) {
	if C.Len() < 2 {
		return 0, CError{fmt.Sprintf("%s (curve %s has %d points)", ErrDegenerateCurve, C.Label, C.Len()), []string{"Center"}}
	}
	var num, den float64
	for i := 1; i < len(C.E); i++ {
		dx := C.E[i] - C.E[i-1]
		den += 0.5 * (C.DOS[i] + C.DOS[i-1]) * dx
		num += 0.5 * (C.DOS[i]*C.E[i] + C.DOS[i-1]*C.E[i-1]) * dx
	}
	if den == 0 {
		return 0, CError{fmt.Sprintf("%s (curve %s)", ErrDegenerateCurve, C.Label), []string{"Center"}}
	}
	return num / den, nil
}
