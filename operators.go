/*
 * operators.go, part of godens.
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

	"gonum.org/v1/gonum/mat"
)

//GridData holds what godens needs from a DFT quadrature grid: the values of
//every basis function at every grid point (one row per point), the
//quadrature weights, and the exchange-correlation energy density already
//evaluated at the converged total density. The derivative components of the
//density that some functionals need to *evaluate* the energy density never
//enter the partitioning, so they stay with the upstream program.
type GridData struct {
	AO      *mat.Dense //npoints x nbasis
	Weights []float64
	EpsXC   []float64
}

//check validates the internal consistency of the grid against the basis dimension.
func (G *GridData) check(nbasis int) error {
	if G.AO == nil || G.Weights == nil || G.EpsXC == nil {
		return CError{"Grid data needs AO values, weights and an XC energy density", []string{"GridData.check"}}
	}
	np, nb := G.AO.Dims()
	if nb != nbasis {
		return CError{fmt.Sprintf("Grid AO values span %d basis functions, system has %d", nb, nbasis), []string{"GridData.check"}}
	}
	if len(G.Weights) != np || len(G.EpsXC) != np {
		return CError{fmt.Sprintf("Grid with %d points but %d weights and %d energy-density values", np, len(G.Weights), len(G.EpsXC)), []string{"GridData.check"}}
	}
	return nil
}

//OperatorSet bundles the operators of the converged mean-field solution, all
//in the atomic-orbital basis. Kin, Nuc, SubNuc, VJ and VK are required for
//energy decompositions; Dip for dipole decompositions. Everything else is
//optional. godens reads the set, it never modifies it.
//
//VK must already carry whatever hybrid or range-separation scaling the
//reference functional implies; godens contracts it as given.
type OperatorSet struct {
	Kin    *mat.Dense    //kinetic energy
	Nuc    *mat.Dense    //total nuclear attraction
	SubNuc []*mat.Dense  //nuclear attraction to each single nucleus, in atom order
	VJ     [2]*mat.Dense //Coulomb operator at the converged density, per spin
	VK     [2]*mat.Dense //exchange operator at the converged density, per spin
	Dip    [3]*mat.Dense //dipole integrals about the caller's gauge origin, one matrix per Cartesian component

	MMPot    *mat.Dense    //electrostatic-embedding potential from point charges
	MM       []PointCharge //the embedding charges themselves, for the structural term
	ESolvent []float64     //atom-resolved continuum-solvation energies

	NucRep []float64  //externally computed per-atom nuclear repulsion; computed internally when nil
	NucDip *mat.Dense //externally computed per-atom nuclear dipole (natoms x 3); computed internally when nil

	XC  *GridData //primary exchange-correlation grid; nil for Hartree-Fock references
	NLC *GridData //optional secondary grid for nonlocal dispersion corrections
}

//square reports whether m is a square nbasis x nbasis matrix.
func square(m *mat.Dense, nbasis int) bool {
	if m == nil {
		return false
	}
	r, c := m.Dims()
	return r == nbasis && c == nbasis
}

//check validates the operator set against the system and the requested
//property. It catches every dimension problem upfront so the per-atom
//kernels can run without error paths of their own.
func (ops *OperatorSet) check(sys *System, prop Property) error {
	nb := sys.NBasis()
	if prop == Energy {
		if !square(ops.Kin, nb) || !square(ops.Nuc, nb) {
			return CError{"Kinetic and total nuclear-attraction operators must be basis-sized square matrices", []string{"OperatorSet.check"}}
		}
		if len(ops.SubNuc) != sys.Len() {
			return CError{fmt.Sprintf("Got %d per-atom nuclear-attraction operators for %d atoms", len(ops.SubNuc), sys.Len()), []string{"OperatorSet.check"}}
		}
		for i, v := range ops.SubNuc {
			if !square(v, nb) {
				return CError{fmt.Sprintf("Nuclear-attraction operator for atom %d has wrong dimensions", i), []string{"OperatorSet.check"}}
			}
		}
		for s := 0; s < 2; s++ {
			if !square(ops.VJ[s], nb) {
				return CError{"Coulomb operator missing or mis-sized; references without a full two-electron treatment are not supported", []string{"OperatorSet.check"}}
			}
			if !square(ops.VK[s], nb) {
				return CError{"Exchange operator missing or mis-sized; long-range-only exchange treatments are not supported", []string{"OperatorSet.check"}}
			}
		}
		if ops.MMPot != nil && !square(ops.MMPot, nb) {
			return CError{"Embedding potential has wrong dimensions", []string{"OperatorSet.check"}}
		}
		if ops.ESolvent != nil && len(ops.ESolvent) != sys.Len() {
			return CError{fmt.Sprintf("Got %d solvation energies for %d atoms", len(ops.ESolvent), sys.Len()), []string{"OperatorSet.check"}}
		}
		if ops.NucRep != nil && len(ops.NucRep) != sys.Len() {
			return CError{fmt.Sprintf("Got %d nuclear-repulsion terms for %d atoms", len(ops.NucRep), sys.Len()), []string{"OperatorSet.check"}}
		}
		if ops.XC != nil {
			if err := ops.XC.check(nb); err != nil {
				return errDecorate(err, "OperatorSet.check: XC grid")
			}
		}
		if ops.NLC != nil {
			if ops.XC == nil {
				return CError{"A dispersion grid without a primary XC grid makes no sense", []string{"OperatorSet.check"}}
			}
			if err := ops.NLC.check(nb); err != nil {
				return errDecorate(err, "OperatorSet.check: NLC grid")
			}
		}
	} else { //dipole
		for x := 0; x < 3; x++ {
			if !square(ops.Dip[x], nb) {
				return CError{"Dipole decomposition needs the 3-component dipole integral stack", []string{"OperatorSet.check"}}
			}
		}
		if ops.NucDip != nil {
			r, c := ops.NucDip.Dims()
			if r != sys.Len() || c != 3 {
				return CError{fmt.Sprintf("Nuclear dipole array is %dx%d, want %dx3", r, c, sys.Len()), []string{"OperatorSet.check"}}
			}
		}
	}
	return nil
}
