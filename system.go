/*
 * system.go, part of godens.
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
	"math"
)

/**Note: Several functions here panic instead of returning errors. They are "fundamental"
 * functions: if something goes wrong in them, the program is way-most-likely wrong as a
 * whole and should crash.**/

//Bohr2A is the conversion factor from Bohr to Angstrom.
const Bohr2A = 0.52917721092

//Reference is the kind of mean-field reference function that produced the
//orbitals: restricted or unrestricted.
type Reference string

const (
	Restricted   Reference = "restricted"
	Unrestricted Reference = "unrestricted"
)

//Atom represents one nucleus of the system: an element symbol, the nuclear
//charge and the Cartesian position, in Bohr. The position is stored by value;
//a System is an immutable snapshot for the duration of a decomposition.
type Atom struct {
	Symbol string
	Z      float64    //nuclear charge
	Coord  [3]float64 //Bohr
}

//NewAtom returns an Atom for the given element symbol at the given
//coordinates, looking up the nuclear charge. It returns an error if the
//symbol is not in the table.
func NewAtom(symbol string, coord [3]float64) (*Atom, error) {
	z, ok := symbolZ[symbol]
	if !ok {
		return nil, CError{fmt.Sprintf("Unknown element symbol: %s", symbol), []string{"NewAtom"}}
	}
	return &Atom{Symbol: symbol, Z: z, Coord: coord}, nil
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic(ErrNilData)
	}
	newat := new(Atom)
	*newat = *A
	return newat
}

//System describes the molecule a decomposition refers to: the ordered atoms,
//the spin multiplicity, the size of the atomic-orbital basis and the kind of
//reference function. It does not change during a decomposition.
type System struct {
	atoms   []*Atom
	multi   int
	nbasis  int
	ref     Reference
	aoOwner []int //for each basis function, the index of the atom it is centred on. Only needed for the "eda" partitioning.
}

//NewSystem builds a System from the given atoms, multiplicity, basis
//dimension and reference kind. It returns an error if atoms is nil or empty,
//or if nbasis is not positive.
func NewSystem(atoms []*Atom, multi, nbasis int, ref Reference) (*System, error) {
	if atoms == nil || len(atoms) == 0 {
		return nil, CError{"Supplied a nil or empty atom slice", []string{"NewSystem"}}
	}
	if nbasis <= 0 {
		return nil, CError{fmt.Sprintf("Nonsensical basis dimension: %d", nbasis), []string{"NewSystem"}}
	}
	if ref != Restricted && ref != Unrestricted {
		return nil, CError{fmt.Sprintf("Unknown reference kind: %s", string(ref)), []string{"NewSystem"}}
	}
	S := new(System)
	S.atoms = atoms
	S.multi = multi
	S.nbasis = nbasis
	S.ref = ref
	return S, nil
}

//Atom returns the Atom corresponding to the index i.
//Panics if out of range.
func (S *System) Atom(i int) *Atom {
	if i < 0 || i >= S.Len() {
		panic(ErrAtomOutOfs)
	}
	return S.atoms[i]
}

//Len returns the number of atoms in the system.
func (S *System) Len() int {
	return len(S.atoms)
}

//NBasis returns the dimension of the atomic-orbital basis.
func (S *System) NBasis() int {
	return S.nbasis
}

//Multi returns the spin multiplicity.
func (S *System) Multi() int {
	return S.multi
}

//Ref returns the kind of reference function (restricted or unrestricted).
func (S *System) Ref() Reference {
	return S.ref
}

//SetAOOwner declares, for each basis function, the atom it is centred on.
//This assignment is what the "eda" partitioning cuts along. It returns an
//error if the slice does not have one entry per basis function or if any
//entry is not a valid atom index.
func (S *System) SetAOOwner(owner []int) error {
	if len(owner) != S.nbasis {
		return CError{fmt.Sprintf("AO ownership list has %d entries for %d basis functions", len(owner), S.nbasis), []string{"SetAOOwner"}}
	}
	for i, v := range owner {
		if v < 0 || v >= S.Len() {
			return CError{fmt.Sprintf("AO %d assigned to nonexistent atom %d", i, v), []string{"SetAOOwner"}}
		}
	}
	S.aoOwner = owner
	return nil
}

//AOOwner returns the basis-function ownership list, or nil if it was never set.
func (S *System) AOOwner() []int {
	return S.aoOwner
}

//AtomAOs returns the indexes of the basis functions centred on atom a.
//Panics if a is out of range.
func (S *System) AtomAOs(a int) []int {
	if a < 0 || a >= S.Len() {
		panic(ErrAtomOutOfs)
	}
	ret := make([]int, 0, S.nbasis/S.Len()+1)
	for i, v := range S.aoOwner {
		if v == a {
			ret = append(ret, i)
		}
	}
	return ret
}

//Charges returns a slice with the nuclear charges of all atoms, in order.
func (S *System) Charges() []float64 {
	ret := make([]float64, S.Len())
	for i, v := range S.atoms {
		ret[i] = v.Z
	}
	return ret
}

//Distance returns the distance, in Bohr, between atoms i and j.
//Panics if either index is out of range.
func (S *System) Distance(i, j int) float64 {
	a := S.Atom(i)
	b := S.Atom(j)
	var d2 float64
	for k := 0; k < 3; k++ {
		d := a.Coord[k] - b.Coord[k]
		d2 += d * d
	}
	return math.Sqrt(d2)
}

//PointCharge is an external (MM) point charge interacting with the system,
//for electrostatic-embedding calculations.
type PointCharge struct {
	Q     float64
	Coord [3]float64 //Bohr
}

//A map for assigning nuclear charge to elements.
//Note that just common "bio-elements" are present.
var symbolZ = map[string]float64{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Cr": 24,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Cu": 29,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"I":  53,
}
