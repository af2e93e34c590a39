/*
 * orbitals.go, part of godens.
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

//Orbitals is the set of occupied molecular orbitals of one spin channel: a
//coefficient matrix with one column per orbital (rows run over basis
//functions) and the corresponding occupation numbers. For a restricted
//reference the same set serves both channels, each with occupation 1 per
//orbital, the way upstream programs emit spin-resolved occupied spaces.
type Orbitals struct {
	coeff *mat.Dense
	occ   []float64
}

//NewOrbitals builds an orbital set from the coefficient matrix and the
//occupations. It returns an error if either is nil, if the number of
//occupations doesn't match the number of columns of coeff, or if any
//occupation is negative.
func NewOrbitals(coeff *mat.Dense, occ []float64) (*Orbitals, error) {
	if coeff == nil || occ == nil {
		return nil, CError{"Supplied nil coefficients or occupations", []string{"NewOrbitals"}}
	}
	_, c := coeff.Dims()
	if c != len(occ) {
		return nil, CError{fmt.Sprintf("Got %d orbitals but %d occupations", c, len(occ)), []string{"NewOrbitals"}}
	}
	for i, v := range occ {
		if v < 0 {
			return nil, CError{fmt.Sprintf("Negative occupation (%4.2f) for orbital %d", v, i), []string{"NewOrbitals"}}
		}
	}
	O := new(Orbitals)
	O.coeff = coeff
	O.occ = occ
	return O, nil
}

//NMO returns the number of orbitals in the set.
func (O *Orbitals) NMO() int {
	_, c := O.coeff.Dims()
	return c
}

//NBasis returns the number of basis functions the orbitals are expanded on.
func (O *Orbitals) NBasis() int {
	r, _ := O.coeff.Dims()
	return r
}

//Occ returns the occupation of the ith orbital. Panics if out of range.
func (O *Orbitals) Occ(i int) float64 {
	if i < 0 || i >= len(O.occ) {
		panic(ErrOrbOutOfs)
	}
	return O.occ[i]
}

//ElCount returns the total number of electrons in the set, i.e. the sum of
//the occupations.
func (O *Orbitals) ElCount() float64 {
	var n float64
	for _, v := range O.occ {
		n += v
	}
	return n
}
