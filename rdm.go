/*
 * rdm.go, part of godens.
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

//rdm.go assembles one-particle density matrices from orbital coefficients:
//the total RDM1 of a spin channel, the part of it attributed to one atom by
//a set of population weights, and the density of one single orbital.

package dens

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

//Population weights below this value contribute nothing to an atomic
//density; they are skipped rather than accumulated, so an atom with no
//share of any orbital cleanly gets a zero matrix.
const negligibleWeight = 1e-14

//accOuter accumulates s times the outer product of c with itself onto d.
//Panics if dimensions are inconsistent.
func accOuter(d *mat.Dense, c []float64, s float64) {
	r, q := d.Dims()
	if r != q || r != len(c) {
		panic(ErrShape)
	}
	for p := 0; p < r; p++ {
		row := d.RawRowView(p)
		cp := s * c[p]
		for j, v := range c {
			row[j] += cp * v
		}
	}
}

//RDM1 returns the one-particle density matrix of the spin channel: the
//occupation-weighted sum of the outer products of the orbital coefficient
//vectors.
func (O *Orbitals) RDM1() *mat.Dense {
	if O == nil {
		panic(ErrNilData)
	}
	n := O.NBasis()
	d := mat.NewDense(n, n, nil)
	c := make([]float64, n)
	for j := 0; j < O.NMO(); j++ {
		mat.Col(c, j, O.coeff)
		accOuter(d, c, O.occ[j])
	}
	return d
}

//AtomRDM1 returns the part of the spin channel's density matrix attributed
//to atom a by the weight tensor w: each orbital's outer product is scaled by
//its population weight on a before summing. w must have one row per orbital
//in the set; each row holds the weights of that orbital over all atoms.
//Panics on dimension mismatch.
func (O *Orbitals) AtomRDM1(w [][]float64, a int) *mat.Dense {
	if O == nil || w == nil {
		panic(ErrNilData)
	}
	if len(w) != O.NMO() {
		panic(ErrNoWeightRow)
	}
	n := O.NBasis()
	d := mat.NewDense(n, n, nil)
	c := make([]float64, n)
	for j := 0; j < O.NMO(); j++ {
		if a < 0 || a >= len(w[j]) {
			panic(ErrAtomOutOfs)
		}
		s := O.occ[j] * w[j][a]
		if math.Abs(s) < negligibleWeight {
			continue
		}
		mat.Col(c, j, O.coeff)
		accOuter(d, c, s)
	}
	return d
}

//OrbRDM1 returns the density matrix of the single orbital j, i.e. its
//occupation times the outer product of its coefficient vector. Panics if j
//is out of range.
func (O *Orbitals) OrbRDM1(j int) *mat.Dense {
	if O == nil {
		panic(ErrNilData)
	}
	if j < 0 || j >= O.NMO() {
		panic(ErrOrbOutOfs)
	}
	n := O.NBasis()
	d := mat.NewDense(n, n, nil)
	c := make([]float64, n)
	mat.Col(c, j, O.coeff)
	accOuter(d, c, O.occ[j])
	return d
}

//sumDense returns a+b in a fresh matrix. Panics on dimension mismatch.
func sumDense(a, b *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	ret := mat.NewDense(r, c, nil)
	ret.Add(a, b)
	return ret
}
