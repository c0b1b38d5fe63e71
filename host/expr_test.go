// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beevik/winstr/hresult"
)

func TestExprParser(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"0", 0},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{" ( 1 + 2 ) * 3 ", 9},
		{"$FF", 255},
		{"0x10", 16},
		{"0XfF", 255},
		{"%1010", 10},
		{"0b11", 3},
		{"0d99", 99},
		{"'A'", 65},
		{"~0", -1},
		{"-5 + 2", -3},
		{"+4", 4},
		{"--4", 4},
		{"10 - 2 - 3", 5},
		{"100 / 10 / 5", 2},
		{"10 % 3", 1},
		{"1<<4", 16},
		{"$F0 >> 4", 15},
		{"7 & 3", 3},
		{"4 | 1", 5},
		{"6 ^ 3", 5},
		{"1 | 2 ^ 3 & 4", 3},
		{"1 + 2 << 3", 24},
		{"$FFFFFFFFFFFFFFFF", -1},
		{"$ff & ~(1<<3)", 0xf7},
		{"E_FAIL", int64(hresult.E_FAIL)},
		{"s_ok + 1", 1},
	}

	h := New(Config{})
	p := newExprParser()
	for _, tt := range tests {
		v, err := p.Parse(tt.expr, h)
		if assert.NoError(t, err, tt.expr) {
			assert.Equal(t, tt.want, v, tt.expr)
		}
	}
}

func TestExprParserHexMode(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"ff", 255},
		{"10", 16},
		{"0d10", 10},
		{"$10", 16},
		{"a + b", 21},
		{"e_fail", int64(hresult.E_FAIL)},
	}

	h := New(Config{})
	p := &exprParser{hexMode: true}
	for _, tt := range tests {
		v, err := p.Parse(tt.expr, h)
		if assert.NoError(t, err, tt.expr) {
			assert.Equal(t, tt.want, v, tt.expr)
		}
	}
}

func TestExprParserErrors(t *testing.T) {
	tests := []struct {
		expr string
		err  error
	}{
		{"", errExprParse},
		{"1 +", errExprParse},
		{"(1", errExprParse},
		{"1)", errExprParse},
		{"$", errExprParse},
		{"$G", errExprParse},
		{"12abc", errExprParse},
		{"'A", errExprParse},
		{"0d", errExprParse},
		{"$10000000000000000", errExprParse},
		{"1/0", errExprDivide},
		{"1 % 0", errExprDivide},
		{"unknown_id", errNotFound},
	}

	h := New(Config{})
	p := newExprParser()
	for _, tt := range tests {
		_, err := p.Parse(tt.expr, h)
		assert.ErrorIs(t, err, tt.err, tt.expr)
	}

	_, err := p.Parse("abc", nil)
	assert.ErrorIs(t, err, errExprParse)
}

func TestFitsWidth(t *testing.T) {
	assert.True(t, fitsWidth(255, 8))
	assert.True(t, fitsWidth(-128, 8))
	assert.False(t, fitsWidth(256, 8))
	assert.False(t, fitsWidth(-129, 8))
	assert.True(t, fitsWidth(0xFFFFFFFF, 32))
	assert.True(t, fitsWidth(-1<<31, 32))
	assert.False(t, fitsWidth(1<<32, 32))
	assert.True(t, fitsWidth(-1<<63, 64))
}

func TestHex64(t *testing.T) {
	assert.Equal(t, "00000000", hex64(0))
	assert.Equal(t, "FFFFFFFF", hex64(-1))
	assert.Equal(t, "FFFFFFFF", hex64(0xFFFFFFFF))
	assert.Equal(t, "0000000100000000", hex64(1<<32))
	assert.Equal(t, "8000000000000000", hex64(-1<<63))
}

func TestStringToBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "on"} {
		b, err := stringToBool(s)
		assert.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"0", "false", "Off"} {
		b, err := stringToBool(s)
		assert.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := stringToBool("yes")
	assert.Error(t, err)
}

func TestIndentWrap(t *testing.T) {
	assert.Equal(t, "   one two", indentWrap(3, "one  two"))

	long := strings.Repeat("word ", 30)
	for _, line := range strings.Split(indentWrap(3, long), "\n") {
		assert.LessOrEqual(t, len(line), 76)
		assert.Equal(t, "   w", line[:4])
	}
}

func TestSettings(t *testing.T) {
	s := newSettings()
	assert.NoError(t, s.Set("prefix", true))
	assert.True(t, s.Prefix)
	assert.NoError(t, s.Set("mod", int64(0x1000)))
	assert.Equal(t, uint64(0x1000), s.Module)

	assert.ErrorIs(t, s.Set("prefix", int64(1)), errSettingType)
	assert.ErrorIs(t, s.Set("module", true), errSettingType)
	assert.ErrorIs(t, s.Set("none", true), errSettingNotFound)
}
