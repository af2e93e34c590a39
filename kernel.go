/*
 * kernel.go, part of godens.
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

//kernel.go holds the partition kernel proper: the per-atom tasks of the
//"atoms" and "eda" strategies and the per-orbital task of the "bonds"
//strategy. Each task is a pure function of the read-only kernel state, so
//they can run in any order, sequentially or concurrently.

package dens

import "gonum.org/v1/gonum/mat"

//unit is the contribution of one atom (or one bond orbital) to every
//component of the decomposed property.
type unit struct {
	coul, exch, kin, nucAtt, solv, xc, el float64
	dipEl                                 [3]float64
}

//kernel is the read-only state shared by all tasks of one decomposition:
//the system, the operators, the orbitals, the total density matrices and a
//few precomputed intermediates.
type kernel struct {
	sys   *System
	ops   *OperatorSet
	orbs  [2]*Orbitals
	w     [2][][]float64 //population weights, "atoms" only
	dTot  [2]*mat.Dense  //total RDM1 per spin
	dSum  *mat.Dense     //spin-summed total RDM1
	vjSum *mat.Dense     //VJ[0]+VJ[1]
	c0XC  *mat.Dense     //ao*dSum on the XC grid, "eda" only
	c0NLC *mat.Dense     //ao*dSum on the dispersion grid, "eda" only
	aos   [][]int        //per atom, its basis-function indexes, "eda" only
	prop  Property
	dft   bool
}

//newKernel precomputes the shared state. The eda intermediates are only
//built when that strategy asked for them.
func newKernel(sys *System, orbs [2]*Orbitals, ops *OperatorSet, asg *Assignment, o *Options) *kernel {
	k := new(kernel)
	k.sys = sys
	k.ops = ops
	k.orbs = orbs
	k.prop = o.Prop()
	k.dft = ops.XC != nil
	k.dTot[0] = orbs[0].RDM1()
	if orbs[1] == orbs[0] {
		k.dTot[1] = k.dTot[0]
	} else {
		k.dTot[1] = orbs[1].RDM1()
	}
	k.dSum = sumDense(k.dTot[0], k.dTot[1])
	if k.prop == Energy {
		k.vjSum = sumDense(ops.VJ[0], ops.VJ[1])
	}
	if asg != nil {
		k.w = asg.Weights
	}
	if o.Part() == EDA {
		k.aos = make([][]int, sys.Len())
		for a := 0; a < sys.Len(); a++ {
			k.aos[a] = sys.AtomAOs(a)
		}
		if k.dft && k.prop == Energy {
			k.c0XC = new(mat.Dense)
			k.c0XC.Mul(ops.XC.AO, k.dSum)
			if ops.NLC != nil {
				k.c0NLC = new(mat.Dense)
				k.c0NLC.Mul(ops.NLC.AO, k.dSum)
			}
		}
	}
	return k
}

//atomTask returns the contributions of atom a under the population-weight
//partitioning. The nuclear-attraction term takes half of "this atom's
//electrons feel all nuclei" plus half of "all electrons feel this atom's
//nucleus"; summed over atoms that counts the full attraction exactly once.
func (k *kernel) atomTask(a int) unit {
	var res unit
	var dAtom [2]*mat.Dense
	for s := 0; s < 2; s++ {
		dAtom[s] = k.orbs[s].AtomRDM1(k.w[s], a)
	}
	dAtomSum := sumDense(dAtom[0], dAtom[1])
	if k.prop == Dipole {
		res.dipEl = traceStack(k.ops.Dip, dAtomSum, -1)
		return res
	}
	for s := 0; s < 2; s++ {
		res.coul += trace(k.vjSum, dAtom[s], 0.5)
		res.exch -= trace(k.ops.VK[s], dAtom[s], 0.5)
	}
	res.kin = trace(k.ops.Kin, dAtomSum, 1)
	res.nucAtt = trace(k.ops.Nuc, dAtomSum, 0.5) + trace(k.ops.SubNuc[a], k.dSum, 0.5)
	if k.ops.MMPot != nil {
		res.solv += trace(k.ops.MMPot, dAtomSum, 1)
	}
	if k.ops.ESolvent != nil {
		res.solv += k.ops.ESolvent[a]
	}
	if k.dft {
		res.xc = eXC(k.ops.XC.EpsXC, k.ops.XC.Weights, rhoOnGrid(k.ops.XC.AO, dAtomSum))
		if k.ops.NLC != nil {
			res.xc += eXC(k.ops.NLC.EpsXC, k.ops.NLC.Weights, rhoOnGrid(k.ops.NLC.AO, dAtomSum))
		}
	}
	res.el = res.coul + res.exch + res.kin + res.nucAtt + res.solv + res.xc
	return res
}

//edaTask returns the contributions of atom a under the basis-membership
//partitioning: every contraction is restricted to the rows of the total
//density belonging to the atom's own basis functions. The one exception is
//the second nuclear-attraction term, which keeps the *full* total density
//against the atom's own nuclear potential; restricting it too would break
//the exact resummation to the whole. Don't symmetrize it.
func (k *kernel) edaTask(a int) unit {
	var res unit
	rows := k.aos[a]
	if k.prop == Dipole {
		res.dipEl = traceStackRows(k.ops.Dip, k.dSum, rows, -1)
		return res
	}
	for s := 0; s < 2; s++ {
		res.coul += traceRows(k.vjSum, k.dTot[s], rows, 0.5)
		res.exch -= traceRows(k.ops.VK[s], k.dTot[s], rows, 0.5)
	}
	res.kin = traceRows(k.ops.Kin, k.dSum, rows, 1)
	res.nucAtt = traceRows(k.ops.Nuc, k.dSum, rows, 0.5) + trace(k.ops.SubNuc[a], k.dSum, 0.5)
	if k.ops.MMPot != nil {
		res.solv += traceRows(k.ops.MMPot, k.dSum, rows, 1)
	}
	if k.ops.ESolvent != nil {
		res.solv += k.ops.ESolvent[a]
	}
	if k.dft {
		res.xc = eXC(k.ops.XC.EpsXC, k.ops.XC.Weights, rhoSelected(k.ops.XC.AO, k.c0XC, rows))
		if k.ops.NLC != nil {
			res.xc += eXC(k.ops.NLC.EpsXC, k.ops.NLC.Weights, rhoSelected(k.ops.NLC.AO, k.c0NLC, rows))
		}
	}
	res.el = res.coul + res.exch + res.kin + res.nucAtt + res.solv + res.xc
	return res
}

//bondTask returns the contribution of one localized spin-orbital. The
//orbital is attributed as a whole; its two centres are carried through by
//the caller, not used here.
func (k *kernel) bondTask(s, j int) unit {
	var res unit
	dOrb := k.orbs[s].OrbRDM1(j)
	if k.prop == Dipole {
		res.dipEl = traceStack(k.ops.Dip, dOrb, -1)
		return res
	}
	res.el = trace(k.vjSum, dOrb, 0.5) - trace(k.ops.VK[s], dOrb, 0.5)
	res.el += trace(k.ops.Kin, dOrb, 1) + trace(k.ops.Nuc, dOrb, 1)
	if k.ops.MMPot != nil {
		res.el += trace(k.ops.MMPot, dOrb, 1)
	}
	if k.dft {
		res.el += eXC(k.ops.XC.EpsXC, k.ops.XC.Weights, rhoOnGrid(k.ops.XC.AO, dOrb))
		if k.ops.NLC != nil {
			res.el += eXC(k.ops.NLC.EpsXC, k.ops.NLC.Weights, rhoOnGrid(k.ops.NLC.AO, dOrb))
		}
	}
	return res
}
