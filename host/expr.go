// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	errExprParse  = errors.New("expression syntax error")
	errExprDivide = errors.New("division by zero")
)

type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// Binary operators, grouped by increasing precedence. All are
// left-associative.
var binaryOps = [][]struct {
	symbol string
	eval   func(a, b int64) (int64, error)
}{
	{{"|", func(a, b int64) (int64, error) { return a | b, nil }}},
	{{"^", func(a, b int64) (int64, error) { return a ^ b, nil }}},
	{{"&", func(a, b int64) (int64, error) { return a & b, nil }}},
	{
		{"<<", func(a, b int64) (int64, error) { return a << uint64(b&63), nil }},
		{">>", func(a, b int64) (int64, error) { return a >> uint64(b&63), nil }},
	},
	{
		{"+", func(a, b int64) (int64, error) { return a + b, nil }},
		{"-", func(a, b int64) (int64, error) { return a - b, nil }},
	},
	{
		{"*", func(a, b int64) (int64, error) { return a * b, nil }},
		{"/", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errExprDivide
			}
			return a / b, nil
		}},
		{"%", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, errExprDivide
			}
			return a % b, nil
		}},
	},
}

// An exprParser evaluates integer expressions such as "$FF & ~(1<<3)".
//
// Numbers may be written in decimal, in hex with a '$' or "0x" prefix, in
// binary with a '%' or "0b" prefix, or as a quoted character ('A'). In hex
// mode, bare numbers are hexadecimal and "0d" selects decimal. Identifiers
// are passed to a resolver.
type exprParser struct {
	hexMode bool
}

func newExprParser() *exprParser {
	return &exprParser{}
}

// Parse evaluates expr.
func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	s := &exprState{p: p, r: r, t: tstring(expr)}
	v, err := s.parseBinary(0)
	if err != nil {
		return 0, err
	}
	if s.skipSpace(); len(s.t) > 0 {
		return 0, errExprParse
	}
	return v, nil
}

type exprState struct {
	p *exprParser
	r resolver
	t tstring
}

func (s *exprState) skipSpace() {
	s.t = s.t.consume(s.t.scanWhile(whitespace))
}

func (s *exprState) parseBinary(level int) (int64, error) {
	if level == len(binaryOps) {
		return s.parseUnary()
	}

	a, err := s.parseBinary(level + 1)
	if err != nil {
		return 0, err
	}

	for {
		s.skipSpace()
		matched := false
		for _, op := range binaryOps[level] {
			if !s.t.hasPrefix(op.symbol) {
				continue
			}
			s.t = s.t.consume(len(op.symbol))
			b, err := s.parseBinary(level + 1)
			if err != nil {
				return 0, err
			}
			if a, err = op.eval(a, b); err != nil {
				return 0, err
			}
			matched = true
			break
		}
		if !matched {
			return a, nil
		}
	}
}

func (s *exprState) parseUnary() (int64, error) {
	s.skipSpace()
	if len(s.t) == 0 {
		return 0, errExprParse
	}

	switch s.t[0] {
	case '-':
		s.t = s.t.consume(1)
		v, err := s.parseUnary()
		return -v, err
	case '+':
		s.t = s.t.consume(1)
		return s.parseUnary()
	case '~':
		s.t = s.t.consume(1)
		v, err := s.parseUnary()
		return ^v, err
	case '(':
		s.t = s.t.consume(1)
		v, err := s.parseBinary(0)
		if err != nil {
			return 0, err
		}
		s.skipSpace()
		if len(s.t) == 0 || s.t[0] != ')' {
			return 0, errExprParse
		}
		s.t = s.t.consume(1)
		return v, nil
	case '\'':
		if len(s.t) < 3 || s.t[2] != '\'' {
			return 0, errExprParse
		}
		v := int64(s.t[1])
		s.t = s.t.consume(3)
		return v, nil
	case '$':
		return s.parseNumber(16, hexadecimal, 1)
	case '%':
		return s.parseNumber(2, binary, 1)
	}

	if s.t.hasPrefix("0x") || s.t.hasPrefix("0X") {
		return s.parseNumber(16, hexadecimal, 2)
	}
	if s.t.hasPrefix("0b") || s.t.hasPrefix("0B") {
		return s.parseNumber(2, binary, 2)
	}
	if s.t.hasPrefix("0d") || s.t.hasPrefix("0D") {
		return s.parseNumber(10, decimal, 2)
	}

	if identifier(s.t[0]) {
		tok, _ := s.t.consumeWhile(identifier)
		if s.p.hexMode && tok.scanWhile(hexadecimal) == len(tok) {
			return s.parseNumber(16, hexadecimal, 0)
		}
		if decimal(tok[0]) {
			return s.parseNumber(10, decimal, 0)
		}
		s.t = s.t.consume(len(tok))
		if s.r == nil {
			return 0, errors.Wrapf(errExprParse, "unknown identifier '%s'", tok)
		}
		return s.r.resolveIdentifier(string(tok))
	}

	return 0, errExprParse
}

// Parse a number in the given base after skipping a prefix of skip bytes.
func (s *exprState) parseNumber(base int, fn func(c byte) bool, skip int) (int64, error) {
	num, remain := s.t.consume(skip).consumeWhile(fn)
	if num == "" || (len(remain) > 0 && identifier(remain[0])) {
		return 0, errExprParse
	}

	// Parse as unsigned so that 64-bit hex values such as $FFFFFFFFFFFFFFFF
	// are accepted, then reinterpret.
	v, err := strconv.ParseUint(string(num), base, 64)
	if err != nil {
		return 0, errExprParse
	}
	s.t = remain
	return int64(v), nil
}

//
// tstring
//

type tstring string

func (t tstring) consume(n int) tstring {
	return t[n:]
}

func (t tstring) hasPrefix(p string) bool {
	return len(t) >= len(p) && string(t[:len(p)]) == p
}

func (t tstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(t) && fn(t[i]); i++ {
	}
	return i
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := t.scanWhile(fn)
	return t[:i], t[i:]
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
