/*
 * dmf_test.go, part of godens.
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

package dmf

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	dens "github.com/rmera/godens"
	"gonum.org/v1/gonum/mat"
)

func symRand(rng *rand.Rand, n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.NormFloat64()
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
	return m
}

func TestDMFRoundTrip(Te *testing.T) {
	const nbasis = 5
	rng := rand.New(rand.NewSource(7))
	name := Te.TempDir() + "/test.dmf"
	labels := []string{"O0", "H1", ""}
	mats := make([]*mat.Dense, len(labels))
	for i := range mats {
		mats[i] = symRand(rng, nbasis)
	}
	w, err := NewWriter(name, nbasis, map[string]string{"part": "atoms", "prec": "9"})
	if err != nil {
		Te.Fatal(err)
	}
	for i, m := range mats {
		if err := w.WNext(m, labels[i]); err != nil {
			Te.Fatal(err)
		}
	}
	w.Close()
	r, header, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if header["part"] != "atoms" {
		Te.Fatalf("header lost: %v", header)
	}
	if r.Len() != nbasis {
		Te.Fatalf("got dimension %d, want %d", r.Len(), nbasis)
	}
	got := mat.NewDense(nbasis, nbasis, nil)
	for i, want := range mats {
		label, err := r.Next(got)
		if err != nil {
			Te.Fatal(err)
		}
		if label != labels[i] {
			Te.Errorf("matrix %d labeled %q, want %q", i, label, labels[i])
		}
		for p := 0; p < nbasis; p++ {
			for q := 0; q < nbasis; q++ {
				if math.Abs(got.At(p, q)-want.At(p, q)) > 1e-8 {
					Te.Fatalf("matrix %d element %d,%d: got %f, want %f", i, p, q, got.At(p, q), want.At(p, q))
				}
			}
		}
	}
	_, err = r.Next(got)
	if err == nil {
		Te.Fatalf("no error past the last matrix")
	}
	if _, ok := err.(dens.LastMatrixError); !ok {
		Te.Fatalf("end of file reported as a real error: %v", err)
	}
	fmt.Println("DMF round trip OK")
}

func TestDMFSkipAndChecks(Te *testing.T) {
	const nbasis = 3
	rng := rand.New(rand.NewSource(8))
	name := Te.TempDir() + "/skip.dmf"
	w, err := NewWriter(name, nbasis, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(nil); err == nil {
		Te.Fatalf("nil matrix not caught")
	}
	if err := w.WNext(symRand(rng, nbasis+1)); err == nil {
		Te.Fatalf("mis-sized matrix not caught")
	}
	second := symRand(rng, nbasis)
	if err := w.WNext(symRand(rng, nbasis), "skipped"); err != nil {
		Te.Fatal(err)
	}
	if err := w.WNext(second, "kept"); err != nil {
		Te.Fatal(err)
	}
	w.Close()
	if err := w.WNext(second); err == nil {
		Te.Fatalf("write to a closed handle not caught")
	}
	r, header, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer r.Close()
	if header != nil {
		Te.Fatalf("got a header from a headerless file: %v", header)
	}
	//a nil destination skips the matrix but still validates it
	label, err := r.Next(nil)
	if err != nil {
		Te.Fatal(err)
	}
	if label != "skipped" {
		Te.Fatalf("got label %q, want \"skipped\"", label)
	}
	got := mat.NewDense(nbasis, nbasis, nil)
	label, err = r.Next(got)
	if err != nil {
		Te.Fatal(err)
	}
	if label != "kept" || math.Abs(got.At(1, 2)-second.At(1, 2)) > 1e-8 {
		Te.Fatalf("second matrix not recovered after a skip")
	}
	fmt.Println("DMF skip and input checks OK")
}
