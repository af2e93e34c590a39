/*
 * doc.go, part of godens.
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

/*Package dens decomposes converged mean-field (Hartree-Fock or Kohn-Sham)
results into atom-wise or bond-wise contributions to the total electronic
energy or to the electric dipole moment.

	**godens capabilities**

    Decomposes the electronic energy of a converged HF or KS-DFT
	calculation into per-atom contributions (kinetic, Coulomb, exchange,
	nuclear attraction, exchange-correlation and solvent terms) that sum
	exactly to the total.

    Decomposes the molecular dipole moment into per-atom electronic and
	nuclear contributions.

    Supports three partitionings: population weights over localized
	orbitals ("atoms"), basis-function membership ("eda") and localized
	spin-orbitals assigned to one or two centres ("bonds").

    Works with restricted and unrestricted references, implicit-solvent
	and point-charge embedding, and grid-based exchange-correlation
	functionals, including an optional secondary dispersion grid.

    Computes effective atomic charges from the population weights.

    Runs the per-atom/per-orbital work sequentially or concurrently;
	both paths give the same numbers.

godens does not run SCF calculations, evaluate integrals, or localize
orbitals. Those belong to the upstream quantum chemistry program; godens
consumes its converged output. The subpackages report, dmf and densplot
print, store and plot decomposition results, respectively.

All quantities are in atomic units unless stated otherwise.
*/
package dens
