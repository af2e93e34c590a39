/*
 * decompose_test.go, part of godens.
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

//The conservation tests here work on synthetic operator matrices. The
//partitioning identities they check are algebraic: they hold for any
//symmetric operators as long as the per-atom nuclear potentials sum to the
//total one, so no real integrals are needed to test them exactly.

package dens

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//symRand returns a random symmetric n x n matrix scaled by s.
func symRand(rng *rand.Rand, n int, s float64) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.NormFloat64() * s
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

//randGrid returns a synthetic quadrature grid of np points on nb basis
//functions, with positive weights and a negative energy density.
func randGrid(rng *rand.Rand, np, nb int) *GridData {
	ao := mat.NewDense(np, nb, nil)
	for i := 0; i < np; i++ {
		for j := 0; j < nb; j++ {
			ao.Set(i, j, rng.NormFloat64())
		}
	}
	w := make([]float64, np)
	eps := make([]float64, np)
	for g := 0; g < np; g++ {
		w[g] = rng.Float64() + 0.1
		eps[g] = -rng.Float64()
	}
	return &GridData{AO: ao, Weights: w, EpsXC: eps}
}

//scene is a complete synthetic decomposition input: a water-like system
//with a restricted reference, embedding charges and both DFT grids.
type scene struct {
	sys         *System
	alpha, beta *Orbitals
	ops         *OperatorSet
	asg         *Assignment
}

func waterScene(Te *testing.T, seed int64) *scene {
	rng := rand.New(rand.NewSource(seed))
	const nbasis, nmo = 6, 4
	o, err := NewAtom("O", [3]float64{0, 0, 0.22})
	if err != nil {
		Te.Fatal(err)
	}
	h1, err := NewAtom("H", [3]float64{0, 1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	h2, err := NewAtom("H", [3]float64{0, -1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	sys, err := NewSystem([]*Atom{o, h1, h2}, 1, nbasis, Restricted)
	if err != nil {
		Te.Fatal(err)
	}
	if err := sys.SetAOOwner([]int{0, 0, 0, 0, 1, 2}); err != nil {
		Te.Fatal(err)
	}
	occ := []float64{1, 1, 1, 1}
	orbs := randOrbitals(rng, nbasis, nmo, occ)
	ops := new(OperatorSet)
	ops.Kin = symRand(rng, nbasis, 1)
	ops.SubNuc = make([]*mat.Dense, sys.Len())
	nuc := mat.NewDense(nbasis, nbasis, nil)
	for a := range ops.SubNuc {
		ops.SubNuc[a] = symRand(rng, nbasis, -1)
		nuc.Add(nuc, ops.SubNuc[a])
	}
	ops.Nuc = nuc
	vj := symRand(rng, nbasis, 1)
	vk := symRand(rng, nbasis, 0.5)
	ops.VJ = [2]*mat.Dense{vj, vj}
	ops.VK = [2]*mat.Dense{vk, vk}
	for x := 0; x < 3; x++ {
		ops.Dip[x] = symRand(rng, nbasis, 1)
	}
	ops.MMPot = symRand(rng, nbasis, 0.1)
	ops.MM = []PointCharge{{Q: -0.8, Coord: [3]float64{4, 0, 0}}, {Q: 0.4, Coord: [3]float64{5, 1, 0}}}
	ops.ESolvent = []float64{-0.01, -0.002, -0.003}
	ops.XC = randGrid(rng, 25, nbasis)
	ops.NLC = randGrid(rng, 10, nbasis)
	asg := new(Assignment)
	w := randWeights(rng, nmo, sys.Len())
	asg.Weights = [2][][]float64{w, w}
	asg.Bonds = [2][]int{{0, 1, 2, 3}, {0, 1, 2, 3}}
	asg.Centres = [2][][2]int{
		{{0, 0}, {0, 1}, {0, 2}, {0, 0}},
		{{0, 0}, {0, 1}, {0, 2}, {0, 0}},
	}
	return &scene{sys: sys, alpha: orbs, beta: nil, ops: ops, asg: asg}
}

//direct computes the whole-system component totals straight from the total
//density, with no partitioning involved.
func (sc *scene) direct() map[string]float64 {
	d := sc.alpha.RDM1()
	dSum := sumDense(d, d) //restricted
	vjSum := sumDense(sc.ops.VJ[0], sc.ops.VJ[1])
	tot := make(map[string]float64)
	tot[CompCoul] = trace(vjSum, dSum, 0.5)
	tot[CompExch] = -trace(sc.ops.VK[0], d, 0.5) - trace(sc.ops.VK[1], d, 0.5)
	tot[CompKin] = trace(sc.ops.Kin, dSum, 1)
	tot[CompNucAtt] = trace(sc.ops.Nuc, dSum, 1)
	tot[CompSolvent] = trace(sc.ops.MMPot, dSum, 1)
	for _, v := range sc.ops.ESolvent {
		tot[CompSolvent] += v
	}
	tot[CompXC] = eXC(sc.ops.XC.EpsXC, sc.ops.XC.Weights, rhoOnGrid(sc.ops.XC.AO, dSum)) +
		eXC(sc.ops.NLC.EpsXC, sc.ops.NLC.Weights, rhoOnGrid(sc.ops.NLC.AO, dSum))
	tot[CompEl] = tot[CompCoul] + tot[CompExch] + tot[CompKin] + tot[CompNucAtt] + tot[CompSolvent] + tot[CompXC]
	var rep float64
	for _, v := range NucRep(sc.sys, sc.ops.MM) {
		rep += v
	}
	tot[CompStruct] = rep
	return tot
}

//Summed over atoms, every component of the population-weight partitioning
//must reproduce the corresponding whole-system value.
func TestAtomsEnergyConservation(Te *testing.T) {
	sc := waterScene(Te, 1)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg)
	if err != nil {
		Te.Fatal(err)
	}
	want := sc.direct()
	for _, key := range CompKeys {
		got := res.SumEnergy(key)
		if math.Abs(got-want[key]) > 1e-10 {
			Te.Errorf("component %s sums to %.12f, want %.12f", key, got, want[key])
		}
	}
	fmt.Printf("Atoms partitioning total: %.8f\n", res.TotalEnergy())
}

//The basis-membership partitioning makes different per-atom cuts but must
//resum to the same whole-system values.
func TestEDAEnergyConservation(Te *testing.T) {
	sc := waterScene(Te, 2)
	o := DefaultOptions()
	o.Part(EDA)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg, o)
	if err != nil {
		Te.Fatal(err)
	}
	want := sc.direct()
	for _, key := range CompKeys {
		got := res.SumEnergy(key)
		if math.Abs(got-want[key]) > 1e-10 {
			Te.Errorf("component %s sums to %.12f, want %.12f", key, got, want[key])
		}
	}
	fmt.Printf("EDA partitioning total: %.8f\n", res.TotalEnergy())
}

//Over all occupied orbitals of both spins, the bond-orbital electronic
//energies plus the structural vector give the same total as the per-atom
//strategies.
func TestBondsEnergyConservation(Te *testing.T) {
	sc := waterScene(Te, 3)
	o := DefaultOptions()
	o.Part(Bonds)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg, o)
	if err != nil {
		Te.Fatal(err)
	}
	want := sc.direct()
	//the bond partitioning has no per-orbital home for the atom-resolved
	//solvation energies, so its electronic total excludes them
	wantEl := want[CompEl]
	for _, v := range sc.ops.ESolvent {
		wantEl -= v
	}
	if got := res.SumBondEl(); math.Abs(got-wantEl) > 1e-10 {
		Te.Errorf("bond electronic energies sum to %.12f, want %.12f", got, wantEl)
	}
	if got := res.SumEnergy(CompStruct); math.Abs(got-want[CompStruct]) > 1e-10 {
		Te.Errorf("structural term sums to %.12f, want %.12f", got, want[CompStruct])
	}
	if len(res.Centres[0]) != len(res.BondEl[0]) {
		Te.Errorf("centre assignment lost in the result")
	}
	fmt.Printf("Bonds partitioning total: %.8f\n", res.TotalEnergy())
}

//A parallel run writes each unit to its own slot, so it must match the
//sequential run exactly, not just to a tolerance.
func TestParallelAgreement(Te *testing.T) {
	sc := waterScene(Te, 4)
	seq, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg)
	if err != nil {
		Te.Fatal(err)
	}
	o := DefaultOptions()
	o.Parallel(true)
	o.Cpus(4)
	par, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg, o)
	if err != nil {
		Te.Fatal(err)
	}
	for _, key := range CompKeys {
		for a := range seq.Energy[key] {
			if seq.Energy[key][a] != par.Energy[key][a] {
				Te.Errorf("component %s of atom %d differs between sequential and parallel runs", key, a)
			}
		}
	}
	fmt.Println("Sequential and parallel runs agree bit for bit")
}

//The electronic dipole rows must sum to -tr(Dip D) per component and the
//nuclear rows to the Z-weighted positions about the gauge origin.
func TestDipoleConservation(Te *testing.T) {
	sc := waterScene(Te, 5)
	origin := [3]float64{0.1, -0.2, 0.3}
	o := DefaultOptions()
	o.Prop(Dipole)
	o.DipoleOrigin(origin)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg, o)
	if err != nil {
		Te.Fatal(err)
	}
	d := sc.alpha.RDM1()
	dSum := sumDense(d, d)
	el := res.SumDipole(CompEl)
	st := res.SumDipole(CompStruct)
	for x := 0; x < 3; x++ {
		want := trace(sc.ops.Dip[x], dSum, -1)
		if math.Abs(el[x]-want) > 1e-10 {
			Te.Errorf("electronic dipole component %d sums to %.12f, want %.12f", x, el[x], want)
		}
		var wantN float64
		for a := 0; a < sc.sys.Len(); a++ {
			at := sc.sys.Atom(a)
			wantN += at.Z * (at.Coord[x] - origin[x])
		}
		if math.Abs(st[x]-wantN) > 1e-10 {
			Te.Errorf("nuclear dipole component %d sums to %.12f, want %.12f", x, st[x], wantN)
		}
	}
	fmt.Println("Dipole conservation OK")
}

//The effective atomic charges must sum to the total charge of the system.
func TestChargeConservation(Te *testing.T) {
	sc := waterScene(Te, 6)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, sc.asg)
	if err != nil {
		Te.Fatal(err)
	}
	var zTot, qTot float64
	for _, z := range sc.sys.Charges() {
		zTot += z
	}
	for _, q := range res.Charges {
		qTot += q
	}
	nel := 2 * sc.alpha.ElCount() //restricted
	if math.Abs(qTot-(zTot-nel)) > 1e-10 {
		Te.Errorf("charges sum to %.12f, want %.12f", qTot, zTot-nel)
	}
	fmt.Printf("Charges sum to %.6f\n", qTot)
}

//A homonuclear diatomic with swap-symmetric orbitals, weights and operators
//must decompose into two identical halves, with zero effective charges.
func TestSymmetricDiatomic(Te *testing.T) {
	h1, err := NewAtom("H", [3]float64{0, 0, 0.7})
	if err != nil {
		Te.Fatal(err)
	}
	h2, err := NewAtom("H", [3]float64{0, 0, -0.7})
	if err != nil {
		Te.Fatal(err)
	}
	sys, err := NewSystem([]*Atom{h1, h2}, 1, 2, Restricted)
	if err != nil {
		Te.Fatal(err)
	}
	s2 := 1 / math.Sqrt(2)
	orbs, err := NewOrbitals(mat.NewDense(2, 1, []float64{s2, s2}), []float64{1})
	if err != nil {
		Te.Fatal(err)
	}
	swapSym := func(diag, off float64) *mat.Dense {
		return mat.NewDense(2, 2, []float64{diag, off, off, diag})
	}
	ops := new(OperatorSet)
	ops.Kin = swapSym(0.6, 0.1)
	ops.SubNuc = []*mat.Dense{
		mat.NewDense(2, 2, []float64{-1.2, -0.3, -0.3, -0.4}),
		mat.NewDense(2, 2, []float64{-0.4, -0.3, -0.3, -1.2}),
	}
	ops.Nuc = sumDense(ops.SubNuc[0], ops.SubNuc[1])
	vj := swapSym(0.7, 0.2)
	vk := swapSym(0.3, 0.05)
	ops.VJ = [2]*mat.Dense{vj, vj}
	ops.VK = [2]*mat.Dense{vk, vk}
	w := [][]float64{{0.5, 0.5}}
	asg := &Assignment{Weights: [2][][]float64{w, w}}
	res, err := Decompose(sys, orbs, nil, ops, asg)
	if err != nil {
		Te.Fatal(err)
	}
	for _, key := range CompKeys {
		v := res.Energy[key]
		if math.Abs(v[0]-v[1]) > 1e-12 {
			Te.Errorf("component %s not symmetric: %.12f vs %.12f", key, v[0], v[1])
		}
	}
	d := orbs.RDM1()
	dSum := sumDense(d, d)
	if got, want := res.SumEnergy(CompKin), trace(ops.Kin, dSum, 1); math.Abs(got-want) > 1e-12 {
		Te.Errorf("kinetic energy sums to %.12f, want %.12f", got, want)
	}
	for a, q := range res.Charges {
		if math.Abs(q) > 1e-12 {
			Te.Errorf("atom %d of a neutral symmetric diatomic carries charge %.12f", a, q)
		}
	}
	fmt.Println("Symmetric diatomic OK")
}

//An unrestricted reference, with distinct orbital sets, weight tensors and
//exchange operators per spin channel, must resum to the same whole-system
//totals as the restricted case does.
func TestUnrestrictedAtomsConservation(Te *testing.T) {
	rng := rand.New(rand.NewSource(9))
	const nbasis, nmoA, nmoB = 6, 4, 3
	o, err := NewAtom("O", [3]float64{0, 0, 0.22})
	if err != nil {
		Te.Fatal(err)
	}
	h1, err := NewAtom("H", [3]float64{0, 1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	h2, err := NewAtom("H", [3]float64{0, -1.43, -0.89})
	if err != nil {
		Te.Fatal(err)
	}
	sys, err := NewSystem([]*Atom{o, h1, h2}, 2, nbasis, Unrestricted)
	if err != nil {
		Te.Fatal(err)
	}
	alpha := randOrbitals(rng, nbasis, nmoA, []float64{1, 1, 1, 1})
	beta := randOrbitals(rng, nbasis, nmoB, []float64{1, 1, 1})
	ops := new(OperatorSet)
	ops.Kin = symRand(rng, nbasis, 1)
	ops.SubNuc = make([]*mat.Dense, sys.Len())
	nuc := mat.NewDense(nbasis, nbasis, nil)
	for a := range ops.SubNuc {
		ops.SubNuc[a] = symRand(rng, nbasis, -1)
		nuc.Add(nuc, ops.SubNuc[a])
	}
	ops.Nuc = nuc
	ops.VJ = [2]*mat.Dense{symRand(rng, nbasis, 1), symRand(rng, nbasis, 1)}
	ops.VK = [2]*mat.Dense{symRand(rng, nbasis, 0.5), symRand(rng, nbasis, 0.5)}
	ops.XC = randGrid(rng, 25, nbasis)
	asg := &Assignment{Weights: [2][][]float64{
		randWeights(rng, nmoA, sys.Len()),
		randWeights(rng, nmoB, sys.Len()),
	}}
	res, err := Decompose(sys, alpha, beta, ops, asg)
	if err != nil {
		Te.Fatal(err)
	}
	dA := alpha.RDM1()
	dB := beta.RDM1()
	dSum := sumDense(dA, dB)
	vjSum := sumDense(ops.VJ[0], ops.VJ[1])
	want := map[string]float64{
		CompCoul:   trace(vjSum, dSum, 0.5),
		CompExch:   -trace(ops.VK[0], dA, 0.5) - trace(ops.VK[1], dB, 0.5),
		CompKin:    trace(ops.Kin, dSum, 1),
		CompNucAtt: trace(ops.Nuc, dSum, 1),
		CompXC:     eXC(ops.XC.EpsXC, ops.XC.Weights, rhoOnGrid(ops.XC.AO, dSum)),
	}
	want[CompEl] = want[CompCoul] + want[CompExch] + want[CompKin] + want[CompNucAtt] + want[CompXC]
	for key, w := range want {
		got := res.SumEnergy(key)
		if math.Abs(got-w) > 1e-10 {
			Te.Errorf("component %s sums to %.12f, want %.12f", key, got, w)
		}
	}
	var qTot float64
	for _, q := range res.Charges {
		qTot += q
	}
	wantQ := 10.0 - alpha.ElCount() - beta.ElCount()
	if math.Abs(qTot-wantQ) > 1e-10 {
		Te.Errorf("charges sum to %.12f, want %.12f", qTot, wantQ)
	}
	fmt.Printf("Unrestricted atoms partitioning total: %.8f\n", res.SumEnergy(CompEl))
}

//A bonds dipole decomposition over one spin channel only must leave the
//other channel's matrix nil, and the listed channel's rows must resum to
//the channel's electronic dipole.
func TestBondsDipoleOneChannel(Te *testing.T) {
	sc := waterScene(Te, 10)
	asg := &Assignment{
		Bonds:   [2][]int{{0, 1, 2, 3}, nil},
		Centres: [2][][2]int{{{0, 0}, {0, 1}, {0, 2}, {0, 0}}, nil},
	}
	o := DefaultOptions()
	o.Prop(Dipole)
	o.Part(Bonds)
	res, err := Decompose(sc.sys, sc.alpha, sc.beta, sc.ops, asg, o)
	if err != nil {
		Te.Fatal(err)
	}
	if res.BondElDip[1] != nil {
		Te.Errorf("empty spin channel got a non-nil dipole matrix")
	}
	dA := sc.alpha.RDM1()
	for x := 0; x < 3; x++ {
		var got float64
		for j := range asg.Bonds[0] {
			got += res.BondElDip[0].At(j, x)
		}
		want := trace(sc.ops.Dip[x], dA, -1)
		if math.Abs(got-want) > 1e-10 {
			Te.Errorf("dipole component %d sums to %.12f, want %.12f", x, got, want)
		}
	}
	if res.Dipole[CompStruct] == nil {
		Te.Errorf("structural dipole missing from the result")
	}
	fmt.Println("One-channel bonds dipole OK")
}

//Inconsistent inputs must come back as errors before any numerical work.
func TestDecomposeInputChecks(Te *testing.T) {
	sc := waterScene(Te, 7)
	if _, err := Decompose(sc.sys, sc.alpha, nil, nil, sc.asg); err == nil {
		Te.Errorf("nil operator set not caught")
	}
	if _, err := Decompose(sc.sys, sc.alpha, nil, sc.ops, nil); err == nil {
		Te.Errorf("missing weight tensor not caught")
	}
	bad := &Assignment{Weights: sc.asg.Weights, Bonds: sc.asg.Bonds, Centres: [2][][2]int{{{0, 0}}, {{0, 0}}}}
	o := DefaultOptions()
	o.Part(Bonds)
	if _, err := Decompose(sc.sys, sc.alpha, nil, sc.ops, bad, o); err == nil {
		Te.Errorf("bond/centre length mismatch not caught")
	}
	short := new(OperatorSet)
	*short = *sc.ops
	short.SubNuc = sc.ops.SubNuc[:2]
	if _, err := Decompose(sc.sys, sc.alpha, nil, short, sc.asg); err == nil {
		Te.Errorf("missing per-atom nuclear operator not caught")
	}
	fmt.Println("Input checks OK")
}
