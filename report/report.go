/*
 * report.go, part of godens.
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

//Package report formats decomposition results as fixed-width text tables,
//one row per atom or per localized orbital, with the resummed totals as a
//footer so conservation can be checked at a glance.
package report

import (
	"fmt"
	"strings"

	dens "github.com/rmera/godens"
)

const hline = "----------------------------------------------------\n"
const hlineBonds = "--------------------------------------------------------\n"

//Info returns a header with the geometry (in Angstrom) and the settings of
//the decomposition.
func Info(sys *dens.System, res *dens.Result) string {
	b := new(strings.Builder)
	b.WriteString("\n   ------------------------------------\n")
	b.WriteString(fmt.Sprintf("%s\n", center("geometry", 40)))
	b.WriteString("   ------------------------------------\n")
	for i := 0; i < sys.Len(); i++ {
		at := sys.Atom(i)
		b.WriteString(fmt.Sprintf("   %-3s %10.5f %10.5f %10.5f\n", at.Symbol,
			at.Coord[0]*dens.Bohr2A, at.Coord[1]*dens.Bohr2A, at.Coord[2]*dens.Bohr2A))
	}
	b.WriteString("   ------------------------------------\n")
	b.WriteString("\n system info:\n")
	b.WriteString(" ------------\n")
	b.WriteString(fmt.Sprintf(" property           =  %s\n", string(res.Prop)))
	b.WriteString(fmt.Sprintf(" partitioning       =  %s\n", string(res.Part)))
	b.WriteString(fmt.Sprintf(" reference funct.   =  %s\n", string(sys.Ref())))
	b.WriteString(fmt.Sprintf(" spin multiplicity  =  %d\n", sys.Multi()))
	b.WriteString(fmt.Sprintf(" basis functions    =  %d\n", sys.NBasis()))
	if res.Prop == dens.Energy {
		b.WriteString(fmt.Sprintf("\n total              = %.5f\n", res.TotalEnergy()))
	}
	return b.String()
}

//Atoms returns the per-atom table of an atom-resolved decomposition
//(the "atoms" or "eda" partitioning), with the sums as a footer.
func Atoms(sys *dens.System, res *dens.Result) (string, error) {
	if res.Part != dens.Atoms && res.Part != dens.EDA {
		return "", Error{fmt.Sprintf("Got a %s-partitioned result", string(res.Part)), []string{"Atoms"}, true}
	}
	b := new(strings.Builder)
	if res.Prop == dens.Energy {
		if res.Energy == nil {
			return "", Error{"Result carries no energy data", []string{"Atoms"}, true}
		}
		b.WriteString(hline)
		b.WriteString(center("ground-state energy", 52) + "\n")
		b.WriteString(hline)
		b.WriteString(" atom |  electronic  |    nuclear   |     total\n")
		b.WriteString(hline)
		el := res.Energy[dens.CompEl]
		nuc := res.Energy[dens.CompStruct]
		for i := 0; i < sys.Len(); i++ {
			b.WriteString(fmt.Sprintf(" %-5s|%12.5f  |%+12.5f  |%+12.5f\n",
				label(sys, i), el[i], nuc[i], el[i]+nuc[i]))
		}
		b.WriteString(hline)
		b.WriteString(fmt.Sprintf(" sum  |%12.5f  |%+12.5f  |%+12.5f\n",
			res.SumEnergy(dens.CompEl), res.SumEnergy(dens.CompStruct), res.TotalEnergy()))
		b.WriteString(hline)
		return b.String(), nil
	}
	if res.Dipole == nil {
		return "", Error{"Result carries no dipole data", []string{"Atoms"}, true}
	}
	el := res.Dipole[dens.CompEl]
	nuc := res.Dipole[dens.CompStruct]
	wide := strings.Repeat("-", 115) + "\n"
	b.WriteString(wide)
	b.WriteString(center("ground-state dipole moment", 113) + "\n")
	b.WriteString(wide)
	b.WriteString("      |             electronic            |               nuclear             |               total\n")
	b.WriteString(" atom |     x     /     y     /     z     |     x     /     y     /     z     |     x     /     y     /     z\n")
	b.WriteString(wide)
	for i := 0; i < sys.Len(); i++ {
		b.WriteString(fmt.Sprintf(" %-5s| %8.3f  / %8.3f  / %8.3f  | %8.3f  / %8.3f  / %8.3f  | %8.3f  / %8.3f  / %8.3f\n",
			label(sys, i),
			el.At(i, 0), el.At(i, 1), el.At(i, 2),
			nuc.At(i, 0), nuc.At(i, 1), nuc.At(i, 2),
			el.At(i, 0)+nuc.At(i, 0), el.At(i, 1)+nuc.At(i, 1), el.At(i, 2)+nuc.At(i, 2)))
	}
	b.WriteString(wide)
	sel := res.SumDipole(dens.CompEl)
	snuc := res.SumDipole(dens.CompStruct)
	b.WriteString(fmt.Sprintf(" sum  | %8.3f  / %8.3f  / %8.3f  | %8.3f  / %8.3f  / %8.3f  | %8.3f  / %8.3f  / %8.3f\n",
		sel[0], sel[1], sel[2], snuc[0], snuc[1], snuc[2],
		sel[0]+snuc[0], sel[1]+snuc[1], sel[2]+snuc[2]))
	b.WriteString(wide)
	return b.String(), nil
}

//Components returns a table with every energy component of an atom-resolved
//decomposition, one column per component.
func Components(sys *dens.System, res *dens.Result) (string, error) {
	if res.Part != dens.Atoms && res.Part != dens.EDA {
		return "", Error{fmt.Sprintf("Got a %s-partitioned result", string(res.Part)), []string{"Components"}, true}
	}
	if res.Prop != dens.Energy || res.Energy == nil {
		return "", Error{"Result carries no energy data", []string{"Components"}, true}
	}
	b := new(strings.Builder)
	b.WriteString(" atom ")
	for _, key := range dens.CompKeys {
		b.WriteString(fmt.Sprintf("|%12s ", key))
	}
	b.WriteString("\n")
	for i := 0; i < sys.Len(); i++ {
		b.WriteString(fmt.Sprintf(" %-5s", label(sys, i)))
		for _, key := range dens.CompKeys {
			b.WriteString(fmt.Sprintf("|%+12.5f ", res.Energy[key][i]))
		}
		b.WriteString("\n")
	}
	b.WriteString(" sum  ")
	for _, key := range dens.CompKeys {
		b.WriteString(fmt.Sprintf("|%+12.5f ", res.SumEnergy(key)))
	}
	b.WriteString("\n")
	return b.String(), nil
}

//Bonds returns the per-orbital table of a bonds-partitioned energy
//decomposition: one block per spin channel, each row with the orbital's
//electronic energy, the atom or atom pair it is assigned to, and, for
//two-centre orbitals, the internuclear distance in Angstrom.
func Bonds(sys *dens.System, res *dens.Result) (string, error) {
	if res.Part != dens.Bonds {
		return "", Error{fmt.Sprintf("Got a %s-partitioned result", string(res.Part)), []string{"Bonds"}, true}
	}
	if res.Prop != dens.Energy {
		return "", Error{"Only energy results have a bonds table", []string{"Bonds"}, true}
	}
	b := new(strings.Builder)
	b.WriteString(hlineBonds)
	b.WriteString(center("ground-state energy", 55) + "\n")
	b.WriteString(hlineBonds)
	b.WriteString("  MO  |   electronic  |    atom(s)    |   bond length\n")
	b.WriteString(hlineBonds)
	names := [2]string{"alpha-spin", "beta-spin"}
	for s := 0; s < 2; s++ {
		b.WriteString(hlineBonds)
		b.WriteString(center(names[s], 55) + "\n")
		b.WriteString(hlineBonds)
		for j, e := range res.BondEl[s] {
			c := res.Centres[s][j]
			var atoms, dist string
			if c[0] == c[1] {
				atoms = label(sys, c[0])
			} else {
				atoms = label(sys, c[0]) + "-" + label(sys, c[1])
				dist = fmt.Sprintf("%10.6f", sys.Distance(c[0], c[1])*dens.Bohr2A)
			}
			b.WriteString(fmt.Sprintf("  %2d  |%12.5f   |    %-11s|  %10s\n", j, e, atoms, dist))
		}
	}
	b.WriteString(hlineBonds)
	b.WriteString(fmt.Sprintf(" sum  |%12.5f   |\n", res.SumBondEl()))
	b.WriteString(fmt.Sprintf(" nuc  |%12.5f   |\n", res.SumEnergy(dens.CompStruct)))
	b.WriteString(fmt.Sprintf(" tot  |%12.5f   |\n", res.TotalEnergy()))
	b.WriteString(hlineBonds)
	return b.String(), nil
}

//label returns the "symbol+index" name of an atom, e.g. "O0".
func label(sys *dens.System, i int) string {
	return fmt.Sprintf("%s%d", sys.Atom(i).Symbol, i)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

//Error is the concrete error type for the report package. It fullfills dens.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
