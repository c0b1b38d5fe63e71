// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Kind identifies the type of value carried by an Arg.
type Kind byte

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindChar
)

var kindNames = []string{
	KindNone:   "none",
	KindString: "string",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindChar:   "char",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// An Arg is a single typed argument consumed by a template directive.
// Construct one with String, Int, Uint, Float or Char.
type Arg struct {
	kind Kind
	bits uint8   // bit width of the original integer or float type
	s    string  // KindString
	u    uint64  // KindInt (sign-extended), KindUint, KindChar
	f    float64 // KindFloat
}

// String returns a string argument.
func String(s string) Arg {
	return Arg{kind: KindString, s: s}
}

// Int returns a signed integer argument. The bit width of T is
// remembered so that unsigned verbs such as %X reinterpret negative values
// at their original width.
func Int[T constraints.Signed](v T) Arg {
	return Arg{kind: KindInt, bits: uint8(unsafe.Sizeof(v) * 8), u: uint64(int64(v))}
}

// Uint returns an unsigned integer argument.
func Uint[T constraints.Unsigned](v T) Arg {
	return Arg{kind: KindUint, bits: uint8(unsafe.Sizeof(v) * 8), u: uint64(v)}
}

// Float returns a floating-point argument.
func Float[T constraints.Float](v T) Arg {
	return Arg{kind: KindFloat, bits: uint8(unsafe.Sizeof(v) * 8), f: float64(v)}
}

// Char returns a character argument.
func Char(r rune) Arg {
	return Arg{kind: KindChar, bits: 32, u: uint64(uint32(r))}
}

// Kind returns the kind of value carried by the argument.
func (a Arg) Kind() Kind {
	return a.kind
}

// Return the argument's integer value reinterpreted as an unsigned value
// of the argument's own bit width.
func (a Arg) unsigned() uint64 {
	if a.kind == KindInt && a.bits < 64 {
		return a.u & (1<<a.bits - 1)
	}
	return a.u
}

// Return the argument's value as a signed integer. Unsigned arguments
// that overflow int64 are reported as not fitting.
func (a Arg) signed() (v int64, fits bool) {
	if a.kind == KindUint {
		return int64(a.u), a.u <= 1<<63-1
	}
	return int64(a.u), true
}
