/*
 * recon.go, part of godos.
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
	"strings"
)

// ReconcileBands turns the raw band set of one calculation into its
// canonical table.
//
// The s and p assignments are taken as the upstream tool wrote them. The
// tool does not guarantee which of the two d series is really spin-up, so
// for the d pair the assignment is inferred from the physics instead: alpha
// is expected at the higher band center, and when center(d_alpha_raw) <=
// center(d_beta_raw) the two curves are swapped. An exact tie swaps.
//
// Every beta curve is negated in the output, after the swap decision, so
// that the two spin channels mirror each other around the zero axis. The
// table carries the columns {orb}E_alpha, {orb}_alpha, {orb}E_beta,
// {orb}_beta per present orbital, with each orbital's four columns equal in
// length; no alignment across orbitals is performed.
func ReconcileBands(B *BandSet) (*Table, error) {
	if B == nil {
		return nil, CError{string(ErrNilData), []string{"ReconcileBands"}}
	}
	T := new(Table)
	labels := B.Labels()
	for i := 0; i < len(labels); i += 2 {
		alpha := B.Curve(labels[i])
		beta := B.Curve(labels[i+1])
		orb, _, _ := strings.Cut(labels[i], "_")
		if orb == "d" {
			ca, err := alpha.Center()
			if err != nil {
				return nil, errDecorate(err, "ReconcileBands")
			}
			cb, err := beta.Center()
			if err != nil {
				return nil, errDecorate(err, "ReconcileBands")
			}
			if ca <= cb {
				alpha, beta = beta, alpha
			}
		}
		a := alpha.Copy()
		b := beta.Negated()
		T.AddColumn(orb+"E_alpha", a.E)
		T.AddColumn(orb+"_alpha", a.DOS)
		T.AddColumn(orb+"E_beta", b.E)
		T.AddColumn(orb+"_beta", b.DOS)
	}
	return T, nil
}
