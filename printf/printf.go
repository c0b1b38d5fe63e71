// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package printf renders printf-style templates with type-checked
// arguments.
//
// Templates follow the C printf convention:
//
//	%[flags][width][.precision][length]verb
//
// Flags are '-', '+', ' ', '#' and '0'. Width and precision are decimal
// numbers or '*', which takes the value from an integer argument. The
// length modifiers hh and h truncate integer arguments to 8 and 16 bits;
// l, ll, L, z, j, t, I, I32 and I64 are accepted and ignored. The verbs
// are d, i, u, o, x, X, c, s, f, F, e, E, g, G and %.
//
// Unlike C, every argument carries its type, and a mismatch between a
// directive and its argument is reported as an error rather than producing
// undefined output:
//
//	s, err := printf.Sprintf("Hello %s, you are %d years old.",
//		printf.String("Ann"), printf.Int(30))
package printf

import "github.com/pkg/errors"

var (
	ErrBadDirective = errors.New("printf: malformed directive")
	ErrBadVerb      = errors.New("printf: unknown verb")
	ErrMissingArg   = errors.New("printf: missing argument")
	ErrExtraArg     = errors.New("printf: too many arguments")
	ErrArgType      = errors.New("printf: argument type mismatch")
)

// Sprintf renders template with args.
func Sprintf(template string, args ...Arg) (string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", err
	}
	return t.Render(args...)
}

// MustSprintf is like Sprintf but panics if the template is malformed or
// the arguments do not match it.
func MustSprintf(template string, args ...Arg) string {
	s, err := Sprintf(template, args...)
	if err != nil {
		panic(err)
	}
	return s
}
