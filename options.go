/*
 * options.go, part of godens.
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

import "runtime"

//Property is the molecular property to be decomposed.
type Property string

const (
	Energy Property = "energy"
	Dipole Property = "dipole"
)

//Partition selects one of the three partitioning strategies.
type Partition string

const (
	Atoms Partition = "atoms" //population weights over orbitals
	EDA   Partition = "eda"   //basis-function membership
	Bonds Partition = "bonds" //localized orbitals assigned to one or two centres
)

//Options holds the configuration of a decomposition request.
type Options struct {
	prop     Property
	part     Partition
	parallel bool
	cpus     int
	origin   [3]float64
}

//DefaultOptions returns an Options with the default settings: sequential
//decomposition of the energy over atoms, dipole gauge origin at zero.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.prop = Energy
	ret.part = Atoms
	ret.parallel = false
	ret.cpus = runtime.NumCPU()
	return ret
}

//Prop returns the property to decompose and sets it
//to the value given, if any.
func (r *Options) Prop(prop ...Property) Property {
	ret := r.prop
	if len(prop) > 0 {
		r.prop = prop[0]
	}
	return ret
}

//Part returns the partitioning strategy and sets it
//to the value given, if any.
func (r *Options) Part(part ...Partition) Partition {
	ret := r.part
	if len(part) > 0 {
		r.part = part[0]
	}
	return ret
}

//Parallel returns whether the per-atom/per-orbital kernels run concurrently,
//and sets the value to the one given, if any.
func (r *Options) Parallel(parallel ...bool) bool {
	ret := r.parallel
	if len(parallel) > 0 {
		r.parallel = parallel[0]
	}
	return ret
}

//Cpus returns the current value of the Cpus option (the upper bound on the
//number of goroutines used in a concurrent decomposition) and sets it, if a
//valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

//DipoleOrigin returns the gauge origin used for the nuclear part of a dipole
//decomposition, and sets it, if given. It must match the origin the dipole
//integrals in the OperatorSet were evaluated about.
func (r *Options) DipoleOrigin(origin ...[3]float64) [3]float64 {
	ret := r.origin
	if len(origin) > 0 {
		r.origin = origin[0]
	}
	return ret
}
