/*
 * errors.go, part of godens.
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

// Error is the interface for errors that all packages in this library implement. The Decorate
// method allows to add and retrieve info from the error, without changing it's type or wrapping
// it around something else. The decorate slice should contain a list of functions in the calling
// stack, plus, for each function, any relevant information, in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//CError is the concrete error type for the dens package. All fatal conditions
//in a decomposition are critical: partition bookkeeping needs the complete,
//consistent operator and weight set, so there is no partial-result recovery.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. If given an empty string, it just returns the
//current decoration.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err CError) Critical() bool { return true }

//errDecorate asserts that err implements dens.Error and decorates it with
//the caller's name before returning it. Using it on any other error type
//will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//LastMatrixError is implemented by the error that marks the normal end of a
//density-matrix file, as opposed to an actual reading failure. Readers should
//test for it before treating a Next error as fatal.
type LastMatrixError interface {
	Error
	NormalLastMatrixTermination()
}

//PanicMsg is a message used for panics on programmer errors (nil receivers,
//out-of-range access, dimension mismatches between quantities that were
//already validated). For recoverable conditions use CError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData       = PanicMsg("goDens: nil data given")
	ErrShape         = PanicMsg("goDens: dimension mismatch")
	ErrAtomOutOfs    = PanicMsg("goDens: requested Atom out of bounds")
	ErrOrbOutOfs     = PanicMsg("goDens: requested orbital out of bounds")
	ErrNoWeightRow   = PanicMsg("goDens: weight tensor lacks a row for the requested orbital")
	ErrGridMismatch  = PanicMsg("goDens: grid arrays of inconsistent length")
	ErrNotSquare     = PanicMsg("goDens: expected a square, basis-sized matrix")
	ErrUnknownSymbol = PanicMsg("goDens: unknown element symbol")
)
