// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package printf

import (
	"strings"

	"github.com/pkg/errors"
)

// Largest width or precision accepted in a template or from a '*'
// argument.
const maxWidth = 1 << 20

type flags byte

const (
	flagMinus flags = 1 << iota
	flagPlus
	flagSpace
	flagSharp
	flagZero
)

// A directive is a single parsed %-sequence.
type directive struct {
	offset    int // byte offset of the '%' in the template
	flags     flags
	width     int // -1 if unspecified
	widthStar bool
	prec      int // -1 if unspecified
	precStar  bool
	size      uint8 // 8 or 16 for hh and h, otherwise 0
	verb      byte
}

// A part is either a run of literal text or a directive.
type part struct {
	lit string
	d   *directive
}

// A Template is a compiled format template. It is immutable and safe for
// concurrent use.
type Template struct {
	src   string
	parts []part
	kinds []Kind
}

// Parse compiles a printf-style template.
func Parse(template string) (*Template, error) {
	t := &Template{src: template}

	start := 0
	for i := 0; i < len(template); {
		if template[i] != '%' {
			i++
			continue
		}
		if i > start {
			t.parts = append(t.parts, part{lit: template[start:i]})
		}

		d, n, err := parseDirective(template, i)
		if err != nil {
			return nil, err
		}

		if d.verb == '%' {
			t.parts = append(t.parts, part{lit: "%"})
		} else {
			t.parts = append(t.parts, part{d: d})
			if d.widthStar {
				t.kinds = append(t.kinds, KindInt)
			}
			if d.precStar {
				t.kinds = append(t.kinds, KindInt)
			}
			t.kinds = append(t.kinds, verbKind(d.verb))
		}

		i += n
		start = i
	}
	if start < len(template) {
		t.parts = append(t.parts, part{lit: template[start:]})
	}

	return t, nil
}

// Source returns the template text the template was compiled from.
func (t *Template) Source() string {
	return t.src
}

// Kinds returns the kinds of the arguments consumed by the template's
// directives, in order. A width or precision given as '*' consumes an
// integer argument before the directive's own argument.
func (t *Template) Kinds() []Kind {
	k := make([]Kind, len(t.kinds))
	copy(k, t.kinds)
	return k
}

var sizeModifiers = []struct {
	s    string
	size uint8
}{
	{"hh", 8},
	{"h", 16},
	{"ll", 0},
	{"l", 0},
	{"L", 0},
	{"z", 0},
	{"j", 0},
	{"t", 0},
	{"I64", 0},
	{"I32", 0},
	{"I", 0},
}

// Parse the directive starting at s[pos], which must be a '%'. Returns the
// directive and the number of bytes it spans.
func parseDirective(s string, pos int) (*directive, int, error) {
	d := &directive{offset: pos, width: -1, prec: -1}
	i := pos + 1

	incomplete := func() (*directive, int, error) {
		return nil, 0, errors.Wrapf(ErrBadDirective, "incomplete directive at offset %d", pos)
	}

	// Flags
flagLoop:
	for ; i < len(s); i++ {
		switch s[i] {
		case '-':
			d.flags |= flagMinus
		case '+':
			d.flags |= flagPlus
		case ' ':
			d.flags |= flagSpace
		case '#':
			d.flags |= flagSharp
		case '0':
			d.flags |= flagZero
		default:
			break flagLoop
		}
	}

	// Width
	if i < len(s) && s[i] == '*' {
		d.widthStar = true
		i++
	} else {
		w, n, ok := parseNumber(s[i:])
		if !ok {
			return nil, 0, errors.Wrapf(ErrBadDirective, "width out of range at offset %d", pos)
		}
		if n > 0 {
			d.width = w
		}
		i += n
	}

	// Precision
	if i < len(s) && s[i] == '.' {
		i++
		if i < len(s) && s[i] == '*' {
			d.precStar = true
			i++
		} else {
			p, n, ok := parseNumber(s[i:])
			if !ok {
				return nil, 0, errors.Wrapf(ErrBadDirective, "precision out of range at offset %d", pos)
			}
			d.prec = p
			i += n
		}
	}

	// Length modifier
	for _, m := range sizeModifiers {
		if strings.HasPrefix(s[i:], m.s) {
			d.size = m.size
			i += len(m.s)
			break
		}
	}

	if i >= len(s) {
		return incomplete()
	}

	d.verb = s[i]
	if verbKind(d.verb) == KindNone && d.verb != '%' {
		return nil, 0, errors.Wrapf(ErrBadVerb, "'%c' at offset %d", d.verb, pos)
	}

	return d, i + 1 - pos, nil
}

// Parse a run of decimal digits. Returns the value, the number of digits
// consumed and false if the value exceeds maxWidth.
func parseNumber(s string) (v, n int, ok bool) {
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		v = v*10 + int(s[n]-'0')
		if v > maxWidth {
			return 0, 0, false
		}
		n++
	}
	return v, n, true
}

// Return the kind of argument consumed by a verb, or KindNone if the verb
// is unknown or consumes nothing.
func verbKind(verb byte) Kind {
	switch verb {
	case 'd', 'i':
		return KindInt
	case 'u', 'o', 'x', 'X':
		return KindUint
	case 'c':
		return KindChar
	case 's':
		return KindString
	case 'f', 'F', 'e', 'E', 'g', 'G':
		return KindFloat
	default:
		return KindNone
	}
}

// Return true if an argument of kind k may be consumed by verb.
func accepts(verb byte, k Kind) bool {
	switch verbKind(verb) {
	case KindInt, KindUint:
		return k == KindInt || k == KindUint
	case KindChar:
		return k == KindChar || k == KindInt || k == KindUint
	default:
		return verbKind(verb) == k
	}
}
