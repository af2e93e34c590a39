/*
 * densplot.go, part of godens.
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

//Package densplot draws decomposition results as bar charts, one bar group
//per atom.
package densplot

import (
	"fmt"
	"image/color"

	dens "github.com/rmera/godens"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Atom"
	p.Y.Label.Text = ylabel
	return p
}

//AtomEnergies plots the electronic, nuclear and total energy of each atom of
//an atom-resolved energy decomposition as grouped bars, and saves the result
//to plotname.png.
func AtomEnergies(sys *dens.System, res *dens.Result, title, plotname string) error {
	if sys == nil || res == nil {
		panic("Given nil data")
	}
	if res.Part != dens.Atoms && res.Part != dens.EDA {
		return Error{fmt.Sprintf("Got a %s-partitioned result", string(res.Part)), []string{"AtomEnergies"}, true}
	}
	if res.Prop != dens.Energy || res.Energy == nil {
		return Error{"Result carries no energy data", []string{"AtomEnergies"}, true}
	}
	el := res.Energy[dens.CompEl]
	nuc := res.Energy[dens.CompStruct]
	tot := make(plotter.Values, sys.Len())
	for i := range tot {
		tot[i] = el[i] + nuc[i]
	}
	p := basicPlot(title, "Energy (Hartree)")
	w := vg.Points(10)
	series := []struct {
		name string
		vals plotter.Values
		col  color.RGBA
		off  vg.Length
	}{
		{"electronic", plotter.Values(el), color.RGBA{R: 190, B: 60, A: 255}, -w},
		{"nuclear", plotter.Values(nuc), color.RGBA{G: 140, B: 80, A: 255}, 0},
		{"total", tot, color.RGBA{B: 200, A: 255}, w},
	}
	for _, s := range series {
		bars, err := plotter.NewBarChart(s.vals, w)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = s.col
		bars.Offset = s.off
		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}
	p.Legend.Top = true
	names := make([]string, sys.Len())
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", sys.Atom(i).Symbol, i)
	}
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//AtomCharges plots the effective atomic charges of a decomposition and
//saves the result to plotname.png.
func AtomCharges(sys *dens.System, res *dens.Result, title, plotname string) error {
	if sys == nil || res == nil {
		panic("Given nil data")
	}
	if res.Charges == nil {
		return Error{"Result carries no charges", []string{"AtomCharges"}, true}
	}
	p := basicPlot(title, "Charge (a.u.)")
	bars, err := plotter.NewBarChart(plotter.Values(res.Charges), vg.Points(18))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 120, G: 60, B: 140, A: 255}
	p.Add(bars)
	names := make([]string, sys.Len())
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", sys.Atom(i).Symbol, i)
	}
	p.NominalX(names...)
	return p.Save(6*vg.Inch, 4*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//Error is the concrete error type for the densplot package. It fullfills dens.Error.
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
