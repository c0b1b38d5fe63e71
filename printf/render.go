// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// A field is a directive bound to its argument, with '*' widths and
// precisions resolved. Its layout is computed once and shared by the
// measure and render passes.
type field struct {
	lit   string
	d     *directive
	arg   Arg
	width int
	prec  int
	left  bool

	sign   string
	prefix string
	zeros  int
	body   []byte // rendered body for float and char fields
	str    string // body for string fields
	mag    uint64 // magnitude for integer fields
	digits int    // digit count for integer fields
	pad    int
}

// Render formats the template's directives with args and returns the
// result. The output length is measured exactly before it is rendered, and
// rendering writes into a buffer of exactly that length.
func (t *Template) Render(args ...Arg) (string, error) {
	fields, err := t.bind(args)
	if err != nil {
		return "", err
	}

	// Measure.
	n := 0
	for i := range fields {
		n += fields[i].measure()
	}
	if n == 0 {
		return "", nil
	}

	// Render.
	w := boundedWriter{buf: make([]byte, n)}
	for i := range fields {
		fields[i].render(&w)
	}

	return string(w.buf[:w.n]), nil
}

// Bind arguments to directives, checking argument counts and kinds.
func (t *Template) bind(args []Arg) ([]field, error) {
	fields := make([]field, len(t.parts))

	next := 0
	take := func(d *directive) (Arg, error) {
		if next >= len(args) {
			return Arg{}, errors.Wrapf(ErrMissingArg, "for '%%%c' at offset %d", d.verb, d.offset)
		}
		a := args[next]
		next++
		return a, nil
	}
	takeInt := func(d *directive, what string) (int, error) {
		a, err := take(d)
		if err != nil {
			return 0, err
		}
		v, fits := a.signed()
		if (a.kind != KindInt && a.kind != KindUint) || !fits {
			return 0, errors.Wrapf(ErrArgType, "%s argument for '%%%c' at offset %d is %s", what, d.verb, d.offset, a.kind)
		}
		if v > maxWidth || v < -maxWidth {
			return 0, errors.Wrapf(ErrBadDirective, "%s %d out of range at offset %d", what, v, d.offset)
		}
		return int(v), nil
	}

	for i, p := range t.parts {
		f := &fields[i]
		if p.d == nil {
			f.lit = p.lit
			continue
		}

		d := p.d
		f.d, f.width, f.prec, f.left = d, d.width, d.prec, d.flags&flagMinus != 0

		if d.widthStar {
			w, err := takeInt(d, "width")
			if err != nil {
				return nil, err
			}
			if w < 0 {
				f.left, w = true, -w
			}
			f.width = w
		}
		if d.precStar {
			prec, err := takeInt(d, "precision")
			if err != nil {
				return nil, err
			}
			if prec < 0 {
				prec = -1
			}
			f.prec = prec
		}

		a, err := take(d)
		if err != nil {
			return nil, err
		}
		if !accepts(d.verb, a.kind) {
			return nil, errors.Wrapf(ErrArgType, "'%%%c' at offset %d wants %s, got %s",
				d.verb, d.offset, verbKind(d.verb), a.kind)
		}
		f.arg = a
		f.layout()
	}

	if next < len(args) {
		return nil, errors.Wrapf(ErrExtraArg, "%d unused", len(args)-next)
	}

	return fields, nil
}

// Compute the sign, prefix, zero padding, body and space padding of a
// bound field.
func (f *field) layout() {
	switch verbKind(f.d.verb) {
	case KindInt, KindUint:
		f.layoutInt()
	case KindFloat:
		f.layoutFloat()
	case KindChar:
		f.body = utf8.AppendRune(nil, f.char())
	case KindString:
		f.str = truncate(f.arg.s, f.prec)
	}

	// Width counts characters, not bytes.
	n := len(f.sign) + len(f.prefix) + f.zeros + f.bodyRunes()
	if f.width > n {
		f.pad = f.width - n
	}
}

func (f *field) layoutInt() {
	d := f.d
	base := uint64(10)
	switch d.verb {
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
	}

	signedVerb := d.verb == 'd' || d.verb == 'i'
	if signedVerb && f.arg.kind == KindInt {
		v := int64(f.arg.u)
		switch d.size {
		case 8:
			v = int64(int8(v))
		case 16:
			v = int64(int16(v))
		}
		if v < 0 {
			f.sign, f.mag = "-", uint64(-v)
		} else {
			f.mag = uint64(v)
		}
	} else {
		f.mag = f.arg.unsigned()
		switch d.size {
		case 8:
			f.mag &= 0xff
		case 16:
			f.mag &= 0xffff
		}
	}

	if f.sign == "" && signedVerb {
		switch {
		case d.flags&flagPlus != 0:
			f.sign = "+"
		case d.flags&flagSpace != 0:
			f.sign = " "
		}
	}

	// A zero value with zero precision renders no digits.
	if f.prec == 0 && f.mag == 0 {
		f.digits = 0
	} else {
		f.digits = digitLen(f.mag, base)
	}
	if f.prec > f.digits {
		f.zeros = f.prec - f.digits
	}

	if d.flags&flagSharp != 0 {
		switch {
		case d.verb == 'x' && f.mag != 0:
			f.prefix = "0x"
		case d.verb == 'X' && f.mag != 0:
			f.prefix = "0X"
		case d.verb == 'o' && f.zeros == 0 && (f.mag != 0 || f.digits == 0):
			f.prefix = "0"
		}
	}

	if d.flags&flagZero != 0 && !f.left && f.prec < 0 {
		n := len(f.sign) + len(f.prefix) + f.zeros + f.digits
		if f.width > n {
			f.zeros += f.width - n
		}
	}
}

func (f *field) layoutFloat() {
	d := f.d
	v := f.arg.f
	upper := d.verb == 'F' || d.verb == 'E' || d.verb == 'G'

	switch {
	case math.Signbit(v):
		f.sign, v = "-", -v
	case d.flags&flagPlus != 0:
		f.sign = "+"
	case d.flags&flagSpace != 0:
		f.sign = " "
	}

	switch {
	case math.IsNaN(v):
		f.sign, f.body = "", []byte(caseOf("nan", upper))
		return
	case math.IsInf(v, 0):
		f.body = []byte(caseOf("inf", upper))
		return
	}

	prec := f.prec
	if prec < 0 {
		prec = 6
	}

	var fmtByte byte
	switch d.verb {
	case 'f', 'F':
		fmtByte = 'f'
	case 'g', 'G':
		fmtByte = d.verb
		if prec == 0 {
			prec = 1
		}
	default:
		fmtByte = d.verb
	}

	bitSize := 64
	if f.arg.bits == 32 {
		bitSize = 32
	}
	switch {
	case d.flags&flagSharp == 0:
		f.body = strconv.AppendFloat(nil, v, fmtByte, prec, bitSize)
	case fmtByte == 'g' || fmtByte == 'G':
		f.body = sharpG(v, d.verb == 'G', prec, bitSize)
	default:
		f.body = strconv.AppendFloat(nil, v, fmtByte, prec, bitSize)
		if prec == 0 {
			f.body = insertPoint(f.body)
		}
	}

	if d.flags&flagZero != 0 && !f.left {
		n := len(f.sign) + len(f.body)
		if f.width > n {
			f.zeros = f.width - n
		}
	}
}

// Format v the way C formats %#g: trailing zeros are kept and the decimal
// point is always present.
func sharpG(v float64, upper bool, prec, bitSize int) []byte {
	e := byte('e')
	if upper {
		e = 'E'
	}

	// The exponent is taken after rounding to prec significant digits.
	b := strconv.AppendFloat(nil, v, e, prec-1, bitSize)
	i := len(b) - 1
	for b[i] != e {
		i--
	}
	x, _ := strconv.Atoi(string(b[i+1:]))

	if x >= -4 && x < prec {
		b = strconv.AppendFloat(b[:0], v, 'f', prec-1-x, bitSize)
	}
	return insertPoint(b)
}

// Insert a decimal point after the integer digits of a formatted float if
// it has none.
func insertPoint(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i < len(b) && b[i] == '.' {
		return b
	}
	b = append(b, 0)
	copy(b[i+1:], b[i:])
	b[i] = '.'
	return b
}

func (f *field) char() rune {
	r := rune(int32(f.arg.u))
	if !utf8.ValidRune(r) {
		return utf8.RuneError
	}
	return r
}

func (f *field) bodyLen() int {
	switch verbKind(f.d.verb) {
	case KindString:
		return len(f.str)
	case KindInt, KindUint:
		return f.digits
	default:
		return len(f.body)
	}
}

func (f *field) bodyRunes() int {
	switch verbKind(f.d.verb) {
	case KindString:
		return utf8.RuneCountInString(f.str)
	case KindChar:
		return utf8.RuneCount(f.body)
	default:
		return f.bodyLen()
	}
}

// Return the exact number of bytes the field renders to.
func (f *field) measure() int {
	if f.d == nil {
		return len(f.lit)
	}
	return f.pad + len(f.sign) + len(f.prefix) + f.zeros + f.bodyLen()
}

func (f *field) render(w *boundedWriter) {
	if f.d == nil {
		w.writeString(f.lit)
		return
	}

	if !f.left {
		w.repeat(' ', f.pad)
	}
	w.writeString(f.sign)
	w.writeString(f.prefix)
	w.repeat('0', f.zeros)

	switch verbKind(f.d.verb) {
	case KindString:
		w.writeString(f.str)
	case KindInt, KindUint:
		w.writeDigits(f.mag, f.d.verb, f.digits)
	default:
		w.write(f.body)
	}

	if f.left {
		w.repeat(' ', f.pad)
	}
}

// A boundedWriter writes into a fixed-size buffer, silently truncating
// anything that does not fit.
type boundedWriter struct {
	buf []byte
	n   int
}

func (w *boundedWriter) write(b []byte) {
	w.n += copy(w.buf[w.n:], b)
}

func (w *boundedWriter) writeString(s string) {
	w.n += copy(w.buf[w.n:], s)
}

func (w *boundedWriter) repeat(c byte, count int) {
	for ; count > 0 && w.n < len(w.buf); count-- {
		w.buf[w.n] = c
		w.n++
	}
}

// Write the count lowest digits of v in the base selected by verb, most
// significant first.
func (w *boundedWriter) writeDigits(v uint64, verb byte, count int) {
	if count == 0 {
		return
	}

	base, digits := uint64(10), lowerDigits
	switch verb {
	case 'o':
		base = 8
	case 'x':
		base = 16
	case 'X':
		base, digits = 16, upperDigits
	}

	var tmp [64]byte
	j := len(tmp)
	for i := 0; i < count; i++ {
		j--
		tmp[j] = digits[v%base]
		v /= base
	}
	w.write(tmp[j:])
}

// Return the number of digits required to represent v in base.
func digitLen(v, base uint64) int {
	n := 1
	for v >= base {
		v /= base
		n++
	}
	return n
}

// Return the first n runes of s, or all of s if n is negative.
func truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

func caseOf(s string, upper bool) string {
	if !upper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
