/*
 * nuclear.go, part of godens.
 *
 * Copyright 2023 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * godens is developed at the Universidad de Santiago de Chile
 * (USACH).
 *
 */

package dens

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//NucRep returns the per-atom share of the nuclear repulsion energy:
//e_a = 1/2 Z_a sum_{b!=a} Z_b/|R_a-R_b|, so the atoms sum to the full
//pairwise repulsion with each pair counted once. Self-interaction never
//enters the sum, there is no divide-by-zero to guard. If mm point charges
//are given, each atom additionally gets its full interaction with them.
func NucRep(sys *System, mm []PointCharge) []float64 {
	if sys == nil {
		panic(ErrNilData)
	}
	n := sys.Len()
	ret := make([]float64, n)
	for a := 0; a < n; a++ {
		za := sys.Atom(a).Z
		var e float64
		for b := 0; b < n; b++ {
			if b == a {
				continue
			}
			e += sys.Atom(b).Z / sys.Distance(a, b)
		}
		ret[a] = 0.5 * za * e
		for _, q := range mm {
			ra := sys.Atom(a).Coord
			var d2 float64
			for k := 0; k < 3; k++ {
				d := ra[k] - q.Coord[k]
				d2 += d * d
			}
			ret[a] += za * q.Q / math.Sqrt(d2)
		}
	}
	return ret
}

//NucDip returns the nuclear contribution to the molecular dipole moment,
//atom by atom: Z_a (R_a - origin), as a natoms x 3 matrix. The origin must
//be the gauge origin the electronic dipole integrals were evaluated about,
//or the electronic and nuclear parts won't sum to the total moment.
func NucDip(sys *System, origin [3]float64) *mat.Dense {
	if sys == nil {
		panic(ErrNilData)
	}
	ret := mat.NewDense(sys.Len(), 3, nil)
	for a := 0; a < sys.Len(); a++ {
		at := sys.Atom(a)
		for k := 0; k < 3; k++ {
			ret.Set(a, k, at.Z*(at.Coord[k]-origin[k]))
		}
	}
	return ret
}
