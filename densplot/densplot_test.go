/*
 * densplot_test.go, part of godens.
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

package densplot

import (
	"fmt"
	"os"
	"testing"

	dens "github.com/rmera/godens"
)

func TestAtomEnergiesPlot(Te *testing.T) {
	o, err := dens.NewAtom("O", [3]float64{0, 0, 0.22})
	if err != nil {
		Te.Fatal(err)
	}
	h1, err := dens.NewAtom("H", [3]float64{0, 1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	h2, err := dens.NewAtom("H", [3]float64{0, -1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	sys, err := dens.NewSystem([]*dens.Atom{o, h1, h2}, 1, 6, dens.Restricted)
	if err != nil {
		Te.Fatal(err)
	}
	res := &dens.Result{
		Prop: dens.Energy,
		Part: dens.Atoms,
		Energy: map[string][]float64{
			dens.CompEl:     {-75.1, -0.4, -0.4},
			dens.CompStruct: {5.3, 2.1, 2.1},
		},
		Charges: []float64{-0.7, 0.35, 0.35},
	}
	name := Te.TempDir() + "/energies"
	if err := AtomEnergies(sys, res, "water", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatalf("plot file not written: %v", err)
	}
	name = Te.TempDir() + "/charges"
	if err := AtomCharges(sys, res, "water charges", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatalf("plot file not written: %v", err)
	}
	res.Part = dens.Bonds
	if err := AtomEnergies(sys, res, "bad", name); err == nil {
		Te.Fatalf("bonds result accepted by the per-atom plot")
	}
	fmt.Println("Plots written OK")
}
