/*
 * trace.go, part of godens.
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

//trace.go has the two numeric primitives every partitioning strategy is
//built from: the operator/density trace contraction and the grid
//integration of the exchange-correlation energy density.

package dens

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//trace returns the scalar contraction sum_pq O_pq D_pq, scaled by s. The
//factor 0.5 is what callers use to un-double-count two-electron terms.
//Panics if the matrices don't have the same shape.
func trace(op, d *mat.Dense, s float64) float64 {
	or, oc := op.Dims()
	dr, dc := d.Dims()
	if or != dr || oc != dc {
		panic(ErrShape)
	}
	var tot float64
	for i := 0; i < or; i++ {
		tot += floats.Dot(op.RawRowView(i), d.RawRowView(i))
	}
	return tot * s
}

//traceRows is trace restricted to the given basis-function rows: the
//contraction runs only over row indexes in rows, with all columns kept.
//This is the cut the "eda" partitioning makes.
func traceRows(op, d *mat.Dense, rows []int, s float64) float64 {
	or, oc := op.Dims()
	dr, dc := d.Dims()
	if or != dr || oc != dc {
		panic(ErrShape)
	}
	var tot float64
	for _, i := range rows {
		tot += floats.Dot(op.RawRowView(i), d.RawRowView(i))
	}
	return tot * s
}

//traceStack contracts a stack of 3 operator matrices (dipole-type) against
//one density, returning one scalar per Cartesian component.
func traceStack(ops [3]*mat.Dense, d *mat.Dense, s float64) [3]float64 {
	var ret [3]float64
	for x := 0; x < 3; x++ {
		ret[x] = trace(ops[x], d, s)
	}
	return ret
}

//traceStackRows is traceStack restricted to the given rows.
func traceStackRows(ops [3]*mat.Dense, d *mat.Dense, rows []int, s float64) [3]float64 {
	var ret [3]float64
	for x := 0; x < 3; x++ {
		ret[x] = traceRows(ops[x], d, rows, s)
	}
	return ret
}

//rhoOnGrid returns the electron density on the grid points implied by the
//AO-value matrix ao (npoints x nbasis) and the density matrix d:
//rho_g = sum_pq ao_gp D_pq ao_gq, evaluated as c0 = ao*D followed by
//row-wise dot products.
func rhoOnGrid(ao, d *mat.Dense) []float64 {
	c0 := new(mat.Dense)
	c0.Mul(ao, d)
	np, _ := ao.Dims()
	rho := make([]float64, np)
	for g := 0; g < np; g++ {
		rho[g] = floats.Dot(c0.RawRowView(g), ao.RawRowView(g))
	}
	return rho
}

//rhoSelected returns the part of the grid density that comes from the given
//basis functions, given the precomputed intermediate c0 = ao*Dtot:
//rho_g = sum_{p in cols} c0_gp ao_gp. Restricting the columns of c0 rather
//than rebuilding it from a partial density is what makes the eda density
//cut consistent with its trace cut.
func rhoSelected(ao, c0 *mat.Dense, cols []int) []float64 {
	np, _ := ao.Dims()
	rho := make([]float64, np)
	for g := 0; g < np; g++ {
		c0row := c0.RawRowView(g)
		aorow := ao.RawRowView(g)
		var r float64
		for _, p := range cols {
			r += c0row[p] * aorow[p]
		}
		rho[g] = r
	}
	return rho
}

//eXC integrates an exchange-correlation energy density against a density
//scalar field with the grid quadrature weights: sum_g eps_g rho_g w_g.
//Panics if the arrays differ in length.
func eXC(eps, w, rho []float64) float64 {
	if len(eps) != len(w) || len(w) != len(rho) {
		panic(ErrGridMismatch)
	}
	var tot float64
	for g, e := range eps {
		tot += e * rho[g] * w[g]
	}
	return tot
}
