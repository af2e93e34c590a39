/*
 * decompose.go, part of godens.
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
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//Assignment tells the kernel what belongs to whom: the population weights
//for the "atoms" strategy, or the localized-orbital indexes and their
//centres for the "bonds" strategy. The "eda" strategy reads the
//basis-function ownership from the System instead.
type Assignment struct {
	//Weights[s][m][a] is the share of orbital m of spin s attributed to
	//atom a. For every occupied orbital the shares sum to 1 over atoms.
	Weights [2][][]float64
	//Bonds[s] lists, per spin, the orbital indexes to decompose over.
	Bonds [2][]int
	//Centres[s][i] holds the pair of atoms orbital Bonds[s][i] is assigned
	//to. An equal pair marks a core or lone-pair orbital.
	Centres [2][][2]int
}

//Decompose breaks the property selected in the options down into per-atom
//or per-bond-orbital contributions, using the converged orbitals and
//operators given. alpha and beta are the occupied orbitals of each spin
//channel; pass a nil beta for a restricted reference and the alpha set will
//serve both channels. The asg argument carries the population weights
//(atoms) or the bond assignment (bonds); it may be nil for eda.
//
//The per-unit work is embarrassingly parallel; with the Parallel option set
//it runs on a bounded pool of goroutines, and the results are identical to
//a sequential run since every task only writes its own slot.
func Decompose(sys *System, alpha, beta *Orbitals, ops *OperatorSet, asg *Assignment, options ...*Options) (*Result, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if beta == nil {
		beta = alpha
	}
	orbs := [2]*Orbitals{alpha, beta}
	if err := sanityCheck(sys, orbs, ops, asg, o); err != nil {
		return nil, errDecorate(err, "Decompose")
	}
	k := newKernel(sys, orbs, ops, asg, o)
	ret := &Result{Prop: o.Prop(), Part: o.Part()}

	switch o.Part() {
	case Atoms, EDA:
		task := k.atomTask
		if o.Part() == EDA {
			task = k.edaTask
		}
		units := runUnits(sys.Len(), o, task)
		reduceAtoms(ret, sys, ops, o, units)
		if asg != nil && asg.Weights[0] != nil {
			ret.Charges = atomicCharges(sys, orbs, asg.Weights)
		}
	case Bonds:
		na := len(asg.Bonds[0])
		nb := len(asg.Bonds[1])
		units := runUnits(na+nb, o, func(i int) unit {
			if i < na {
				return k.bondTask(0, asg.Bonds[0][i])
			}
			return k.bondTask(1, asg.Bonds[1][i-na])
		})
		reduceBonds(ret, sys, ops, o, asg, units)
	}
	return ret, nil
}

//runUnits maps task over the domain [0,n), sequentially or on a bounded
//worker pool. Each task writes only its own preallocated slot, so the
//association between domain index and destination survives any completion
//order.
func runUnits(n int, o *Options, task func(int) unit) []unit {
	units := make([]unit, n)
	if !o.Parallel() || n < 2 {
		for i := 0; i < n; i++ {
			units[i] = task(i)
		}
		return units
	}
	lim := o.Cpus()
	if n < lim {
		lim = n
	}
	var g errgroup.Group
	g.SetLimit(lim)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			units[i] = task(i)
			return nil
		})
	}
	g.Wait() //the tasks are pure and pre-validated; they return no errors
	return units
}

//reduceAtoms assembles the per-atom units into the result arrays and adds
//the structural (nuclear) term.
func reduceAtoms(ret *Result, sys *System, ops *OperatorSet, o *Options, units []unit) {
	n := len(units)
	if o.Prop() == Energy {
		ret.Energy = make(map[string][]float64, len(CompKeys))
		for _, key := range CompKeys {
			ret.Energy[key] = make([]float64, n)
		}
		for i, u := range units {
			ret.Energy[CompCoul][i] = u.coul
			ret.Energy[CompExch][i] = u.exch
			ret.Energy[CompKin][i] = u.kin
			ret.Energy[CompNucAtt][i] = u.nucAtt
			ret.Energy[CompSolvent][i] = u.solv
			ret.Energy[CompXC][i] = u.xc
			ret.Energy[CompEl][i] = u.el
		}
		if ops.NucRep != nil {
			copy(ret.Energy[CompStruct], ops.NucRep)
		} else {
			copy(ret.Energy[CompStruct], NucRep(sys, ops.MM))
		}
		return
	}
	ret.Dipole = make(map[string]*mat.Dense, 2)
	el := mat.NewDense(n, 3, nil)
	for i, u := range units {
		for x := 0; x < 3; x++ {
			el.Set(i, x, u.dipEl[x])
		}
	}
	ret.Dipole[CompEl] = el
	if ops.NucDip != nil {
		ret.Dipole[CompStruct] = mat.DenseCopyOf(ops.NucDip)
	} else {
		ret.Dipole[CompStruct] = NucDip(sys, o.DipoleOrigin())
	}
}

//reduceBonds assembles the per-orbital units, splitting them back into the
//two spin channels, and attaches the whole-system structural term: bond
//orbitals have no nuclear counterpart of their own, so the nuclear vector
//is emitted once, per atom, never split per orbital.
func reduceBonds(ret *Result, sys *System, ops *OperatorSet, o *Options, asg *Assignment, units []unit) {
	na := len(asg.Bonds[0])
	ret.Centres = asg.Centres
	if o.Prop() == Energy {
		ret.BondEl[0] = make([]float64, na)
		ret.BondEl[1] = make([]float64, len(asg.Bonds[1]))
		for i, u := range units {
			if i < na {
				ret.BondEl[0][i] = u.el
			} else {
				ret.BondEl[1][i-na] = u.el
			}
		}
		ret.Energy = map[string][]float64{CompStruct: make([]float64, sys.Len())}
		if ops.NucRep != nil {
			copy(ret.Energy[CompStruct], ops.NucRep)
		} else {
			copy(ret.Energy[CompStruct], NucRep(sys, ops.MM))
		}
		return
	}
	if na > 0 {
		ret.BondElDip[0] = mat.NewDense(na, 3, nil)
	}
	if nb := len(asg.Bonds[1]); nb > 0 {
		ret.BondElDip[1] = mat.NewDense(nb, 3, nil)
	}
	for i, u := range units {
		s, j := 0, i
		if i >= na {
			s, j = 1, i-na
		}
		for x := 0; x < 3; x++ {
			ret.BondElDip[s].Set(j, x, u.dipEl[x])
		}
	}
	ret.Dipole = make(map[string]*mat.Dense, 1)
	if ops.NucDip != nil {
		ret.Dipole[CompStruct] = mat.DenseCopyOf(ops.NucDip)
	} else {
		ret.Dipole[CompStruct] = NucDip(sys, o.DipoleOrigin())
	}
}

//atomicCharges returns, per atom, the nuclear charge minus the
//occupation-weighted population assigned by the weight tensor.
func atomicCharges(sys *System, orbs [2]*Orbitals, w [2][][]float64) []float64 {
	ret := sys.Charges()
	for s := 0; s < 2; s++ {
		for m, row := range w[s] {
			occ := orbs[s].Occ(m)
			for a, wa := range row {
				ret[a] -= occ * wa
			}
		}
	}
	return ret
}

//sanityCheck rejects every inconsistent or unsupported request before any
//numerical work starts. Partition bookkeeping needs the full, consistent
//input set, so all of these are fatal.
func sanityCheck(sys *System, orbs [2]*Orbitals, ops *OperatorSet, asg *Assignment, o *Options) error {
	if sys == nil || ops == nil || orbs[0] == nil {
		return CError{"Supplied a nil system, operator set or orbital set", []string{"sanityCheck"}}
	}
	if p := o.Prop(); p != Energy && p != Dipole {
		return CError{fmt.Sprintf("Unknown property: %s", string(p)), []string{"sanityCheck"}}
	}
	if p := o.Part(); p != Atoms && p != EDA && p != Bonds {
		return CError{fmt.Sprintf("Unknown partitioning: %s", string(p)), []string{"sanityCheck"}}
	}
	for s := 0; s < 2; s++ {
		if orbs[s].NBasis() != sys.NBasis() {
			return CError{fmt.Sprintf("Spin channel %d expanded on %d basis functions, system declares %d", s, orbs[s].NBasis(), sys.NBasis()), []string{"sanityCheck"}}
		}
	}
	if err := ops.check(sys, o.Prop()); err != nil {
		return errDecorate(err, "sanityCheck")
	}
	switch o.Part() {
	case Atoms:
		if asg == nil || asg.Weights[0] == nil || asg.Weights[1] == nil {
			return CError{"The atoms partitioning needs a population weight tensor for both spin channels", []string{"sanityCheck"}}
		}
		for s := 0; s < 2; s++ {
			if len(asg.Weights[s]) != orbs[s].NMO() {
				return CError{fmt.Sprintf("Weight tensor of spin %d has %d rows for %d orbitals", s, len(asg.Weights[s]), orbs[s].NMO()), []string{"sanityCheck"}}
			}
			for m, row := range asg.Weights[s] {
				if len(row) != sys.Len() {
					return CError{fmt.Sprintf("Weight row for orbital %d of spin %d has %d entries for %d atoms", m, s, len(row), sys.Len()), []string{"sanityCheck"}}
				}
			}
		}
	case EDA:
		if sys.AOOwner() == nil {
			return CError{"The eda partitioning needs the basis-function ownership list (System.SetAOOwner)", []string{"sanityCheck"}}
		}
	case Bonds:
		if asg == nil || (asg.Bonds[0] == nil && asg.Bonds[1] == nil) {
			return CError{"The bonds partitioning needs the localized-orbital assignment", []string{"sanityCheck"}}
		}
		for s := 0; s < 2; s++ {
			if len(asg.Centres[s]) != len(asg.Bonds[s]) {
				return CError{fmt.Sprintf("Spin %d has %d bond orbitals but %d centre pairs", s, len(asg.Bonds[s]), len(asg.Centres[s])), []string{"sanityCheck"}}
			}
			for _, j := range asg.Bonds[s] {
				if j < 0 || j >= orbs[s].NMO() {
					return CError{fmt.Sprintf("Bond orbital index %d out of range for spin %d", j, s), []string{"sanityCheck"}}
				}
			}
			for i, c := range asg.Centres[s] {
				if c[0] < 0 || c[0] >= sys.Len() || c[1] < 0 || c[1] >= sys.Len() {
					return CError{fmt.Sprintf("Centre pair %d of spin %d names a nonexistent atom", i, s), []string{"sanityCheck"}}
				}
			}
		}
	}
	return nil
}
