/*
 * dmf.go, part of godens.
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

//Package dmf reads and writes DMF (density-matrix file) files: sequences of
//basis-sized square matrices, such as the partial one-particle densities of a
//decomposition, stored as zstd-compressed fixed-precision text. One file
//holds any number of matrices of the same dimension, each with an optional
//text label, plus a free-form key=value header.
package dmf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dens "github.com/rmera/godens"
	"gonum.org/v1/gonum/mat"
)

//Write!
type DMFW struct {
	f         *os.File
	h         io.WriteCloser
	nbasis    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter creates a DMF file for writing matrices of dimension nbasis.
//The header map, if non-nil, is written as key=value lines before the data;
//a "prec" key overrides the default number of decimals kept (9).
func NewWriter(name string, nbasis int, header map[string]string) (*DMFW, error) {
	if nbasis <= 0 {
		return nil, Error{fmt.Sprintf("Nonsensical matrix dimension: %d", nbasis), name, []string{"NewWriter"}, true}
	}
	D := new(DMFW)
	var err error
	D.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	D.h, err = zstd.NewWriter(D.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, Error{"Can't set up the compressor " + err.Error(), name, []string{"NewWriter"}, true}
	}
	D.nbasis = nbasis
	D.filename = name
	D.writeable = true
	D.prec = 9 //the default
	if header != nil {
		if p, ok := header["prec"]; ok {
			prec, err := strconv.Atoi(p)
			if err == nil && prec > 0 {
				D.prec = prec
			} else {
				return nil, Error{fmt.Sprintf("Invalid precision: %s", p), name, []string{"NewWriter"}, true}
			}
		}
		for k, v := range header {
			D.h.Write([]byte(fmt.Sprintf("%s=%v\n", k, v)))
		}
	}
	D.h.Write([]byte(fmt.Sprintf("** %d\n", D.nbasis)))
	return D, nil
}

//WNext writes one matrix to the file, with the label given, if any. The
//matrix must be nbasis x nbasis.
func (D *DMFW) WNext(d *mat.Dense, label ...string) error {
	if !D.writeable {
		return Error{UnIniWrite, D.filename, []string{"WNext"}, true}
	}
	if d == nil {
		return Error{NilMatrix, D.filename, []string{"WNext"}, true}
	}
	r, c := d.Dims()
	if r != D.nbasis || c != D.nbasis {
		return Error{fmt.Sprintf("%dx%d matrix given, but dimension %d expected", r, c, D.nbasis), D.filename, []string{"WNext"}, true}
	}
	p := math.Pow(10, float64(D.prec))
	b := new(strings.Builder)
	for i := 0; i < r; i++ {
		row := d.RawRowView(i)
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatInt(int64(math.RoundToEven(v*p)), 10))
		}
		b.WriteByte('\n')
	}
	if len(label) > 0 && label[0] != "" {
		b.WriteString("* " + label[0] + "\n")
	} else {
		b.WriteString("*\n")
	}
	_, err := D.h.Write([]byte(b.String()))
	if err != nil {
		return Error{err.Error(), D.filename, []string{"WNext"}, true}
	}
	return nil
}

//Len returns the dimension of the matrices in the file.
func (D *DMFW) Len() int {
	return D.nbasis
}

//Close flushes and closes the file. The handle can not be used after this call.
func (D *DMFW) Close() {
	if D == nil {
		return
	}
	if D.writeable {
		D.h.Close()
		D.f.Close()
	}
	D.writeable = false
	return
}

//Read!
type DMFR struct {
	f        *os.File
	zst      io.ReadCloser
	h        *bufio.Reader
	nbasis   int
	filename string
	prec     int
	readable bool
}

//*zstd.Decoder doesn't implement io.ReadCloser by itself, as its Close
//returns nothing. This wrapper fixes that.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.closeql()
	return nil
}

//New opens a DMF file for reading and returns a pointer to the handle, a map
//with the header metadata (nil if the file has none) and error or nil.
func New(name string) (*DMFR, map[string]string, error) {
	D := new(DMFR)
	D.nbasis = -1 //just so we know if things don't work
	D.filename = name
	D.prec = 9
	var err error
	D.f, err = os.Open(D.filename)
	if err != nil {
		return nil, nil, err
	}
	dec, err := zstd.NewReader(bufio.NewReader(D.f))
	if err != nil {
		return nil, nil, Error{"Can't set up the decompressor " + err.Error(), D.filename, []string{"New"}, true}
	}
	D.zst = &stdql{dec.Close, dec}
	D.h = bufio.NewReader(D.zst)
	var m map[string]string
	for {
		str, err := D.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"Can't read header " + err.Error(), D.filename, []string{"New"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) < 2 {
				return nil, nil, Error{fmt.Sprintf("Can't read matrix dimension from '%s'", str), D.filename, []string{"New"}, true}
			}
			D.nbasis, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("Can't read matrix dimension from '%s': %s", fields[1], err.Error()), D.filename, []string{"New"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, nil, Error{"Malformed header line: " + str, D.filename, []string{"New"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err == nil && prec > 0 {
			D.prec = prec
		}
	}
	D.readable = true
	return D, m, nil
}

//Readable returns true if it is possible to call Next on the handle.
func (D *DMFR) Readable() bool {
	return D.readable
}

//Len returns the dimension of the matrices in the file.
func (D *DMFR) Len() int {
	return D.nbasis
}

//Next reads the next matrix of the file into d, which must be
//nbasis x nbasis, and returns its label, or an empty string if it has none.
//A nil d skips the matrix, still checking it for correctness. When the file
//ends normally the returned error implements dens.LastMatrixError.
func (D *DMFR) Next(d *mat.Dense) (string, error) {
	if !D.readable {
		return "", Error{UnIniRead, D.filename, []string{"Next"}, true}
	}
	if d != nil {
		r, c := d.Dims()
		if r != D.nbasis || c != D.nbasis {
			return "", Error{fmt.Sprintf("%dx%d matrix given, but dimension %d expected", r, c, D.nbasis), D.filename, []string{"Next"}, true}
		}
	}
	p := math.Pow(10, float64(D.prec))
	for i := 0; i < D.nbasis; i++ {
		str, err := D.h.ReadString('\n')
		if err != nil {
			//EOF should only happen before the first row of a matrix
			if err == io.EOF && i == 0 && str == "" {
				D.Close()
				return "", newLastMatrixError(D.filename, "Next")
			}
			return "", Error{message: err.Error(), filename: D.filename, critical: true}
		}
		fields := strings.Fields(str)
		if len(fields) != D.nbasis {
			return "", Error{fmt.Sprintf("Row %d has %d values, want %d", i, len(fields), D.nbasis), D.filename, []string{"Next"}, true}
		}
		for j, v := range fields {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return "", Error{fmt.Sprintf("Can't parse element %d,%d (%s): %s", i, j, v, err.Error()), D.filename, []string{"Next"}, true}
			}
			if d != nil {
				d.Set(i, j, float64(n)/p)
			}
		}
	}
	str, err := D.h.ReadString('\n')
	if err != nil {
		return "", Error{"Can't read the matrix termination mark: " + err.Error(), D.filename, []string{"Next"}, true}
	}
	if str[0] != '*' {
		return "", Error{"Wrong number of rows in matrix", D.filename, []string{"Next"}, true}
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSuffix(str, "\n"), "*")), nil
}

//Close closes the handle and marks it as unreadable.
func (D *DMFR) Close() {
	if !D.readable {
		return
	}
	D.zst.Close()
	D.readable = false
	return
}

//Errors

//errDecorate asserts that the error implements dens.Error and decorates it
//with the caller's name before returning it. Any other error type will cause
//a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(dens.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for DMF file errors. It fullfills dens.Error.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dmf file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file the failing handle was associated to
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnIniRead  = "DMF object uninitialized to read"
	UnIniWrite = "DMF object uninitialized to write"
	NilMatrix  = "Given a nil matrix"
)

//lastMatrixError implements dens.LastMatrixError
type lastMatrixError struct {
	deco     []string
	fileName string
}

//lastMatrixError does nothing
func (E lastMatrixError) NormalLastMatrixTermination() {}

func (E lastMatrixError) FileName() string { return E.fileName }

func (E lastMatrixError) Error() string { return "EOF" }

func (E lastMatrixError) Critical() bool { return false }

func (E lastMatrixError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastMatrixError(filename string, caller string) *lastMatrixError {
	e := new(lastMatrixError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
