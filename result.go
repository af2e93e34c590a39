/*
 * result.go, part of godens.
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

import "gonum.org/v1/gonum/mat"

//Names for the components of a decomposition.
const (
	CompCoul    = "coul"
	CompExch    = "exch"
	CompKin     = "kin"
	CompNucAtt  = "nuc_att"
	CompSolvent = "solvent"
	CompXC      = "xc"
	CompEl      = "el"      //total electronic contribution
	CompStruct  = "struct"  //nuclear ("structural") contribution
)

//CompKeys lists all component names, in the order results are reported.
//CompEl is the sum of every key before it; CompStruct is independent.
var CompKeys = []string{CompCoul, CompExch, CompKin, CompNucAtt, CompSolvent, CompXC, CompEl, CompStruct}

//Result is the outcome of one decomposition. Which fields are filled
//depends on the property and the partitioning:
//
//	energy + atoms/eda: Energy maps every component name to a per-atom
//	slice; Charges holds the effective atomic charges.
//	dipole + atoms/eda: Dipole maps "el" and "struct" to natoms x 3
//	matrices; Charges as above.
//	energy + bonds: BondEl holds one electronic energy per (spin, orbital);
//	Energy holds only the per-atom "struct" slice; Centres carries through
//	the atom pair each orbital was assigned to.
//	dipole + bonds: BondElDip holds one 1x3 row per (spin, orbital), as a
//	norbitals x 3 matrix per spin, or nil for a spin channel with no
//	orbitals listed; Dipole holds the "struct" matrix.
type Result struct {
	Prop      Property
	Part      Partition
	Energy    map[string][]float64
	Dipole    map[string]*mat.Dense
	BondEl    [2][]float64
	BondElDip [2]*mat.Dense
	Centres   [2][][2]int
	Charges   []float64
}

//SumEnergy returns the sum over atoms of the named energy component, or 0
//if the component is not present.
func (R *Result) SumEnergy(comp string) float64 {
	var tot float64
	for _, v := range R.Energy[comp] {
		tot += v
	}
	return tot
}

//SumBondEl returns the sum of the electronic bond-orbital energies over
//both spin channels.
func (R *Result) SumBondEl() float64 {
	var tot float64
	for s := 0; s < 2; s++ {
		for _, v := range R.BondEl[s] {
			tot += v
		}
	}
	return tot
}

//SumDipole returns the column sums of the named dipole component, one value
//per Cartesian direction. The zero vector is returned for missing components.
func (R *Result) SumDipole(comp string) [3]float64 {
	var ret [3]float64
	m := R.Dipole[comp]
	if m == nil {
		return ret
	}
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		for x := 0; x < 3; x++ {
			ret[x] += m.At(i, x)
		}
	}
	return ret
}

//TotalEnergy returns the sum of the electronic and structural terms over
//all atoms (atoms/eda) or over all bond orbitals plus the structural vector
//(bonds). For an exact decomposition this is the total mean-field energy.
//Note that the bonds partitioning has no per-orbital home for the
//atom-resolved continuum-solvation energies, so when those are given its
//total excludes them.
func (R *Result) TotalEnergy() float64 {
	if R.Part == Bonds {
		return R.SumBondEl() + R.SumEnergy(CompStruct)
	}
	return R.SumEnergy(CompEl) + R.SumEnergy(CompStruct)
}
