/*
 * dosplot.go, part of godos.
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

//Package dosplot draws spin-resolved density-of-states plots from
//reconciled tables: the alpha channel above the zero axis and the (already
//negated) beta channel below it.
package dosplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	dos "github.com/matsci/godos"
)

func basicDOSPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "E (eV)"
	p.Y.Label.Text = "DOS (states/eV)"
	p.Add(plotter.NewGrid())
	return p
}

func curveXYs(e, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(e))
	for i := range e {
		pts[i].X = e[i]
		pts[i].Y = y[i]
	}
	return pts
}

// SpinPlot draws the alpha and beta channels of one orbital (s, p or d) of
// a reconciled table, mirrored around the zero axis, and saves the plot to
// filename (the extension picks the format; use .png for portability).
func SpinPlot(t *dos.Table, orb, title, filename string) error {
	if t == nil {
		return fmt.Errorf("dosplot: given nil table")
	}
	eA, yA := t.Col(orb+"E_alpha"), t.Col(orb+"_alpha")
	eB, yB := t.Col(orb+"E_beta"), t.Col(orb+"_beta")
	if eA == nil || yA == nil || eB == nil || yB == nil {
		return fmt.Errorf("dosplot: table has no %s orbital columns", orb)
	}
	p := basicDOSPlot(title)
	alpha, err := plotter.NewLine(curveXYs(eA.Data, yA.Data))
	if err != nil {
		return err
	}
	alpha.Color = color.RGBA{R: 255, A: 255}
	beta, err := plotter.NewLine(curveXYs(eB.Data, yB.Data))
	if err != nil {
		return err
	}
	beta.Color = color.RGBA{B: 255, A: 255}
	p.Add(alpha, beta)
	p.Legend.Add(orb+" alpha", alpha)
	p.Legend.Add(orb+" beta", beta)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
