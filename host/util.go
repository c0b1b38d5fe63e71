// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/beevik/winstr/hexfmt"
)

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, errors.Errorf("invalid bool value '%s'", s)
	}
}

// Return true if v can be represented in an integer of the given bit
// width, either as a signed or an unsigned value.
func fitsWidth(v int64, bits uint) bool {
	if bits >= 64 {
		return true
	}
	return v >= -(1<<(bits-1)) && v < 1<<bits
}

// Return the hex representation of v: 8 digits if it fits in a double
// word, 16 otherwise.
func hex64(v int64) string {
	u := uint64(v)
	if fitsWidth(v, 32) {
		return hexfmt.Dword(uint32(u))
	}
	return hexfmt.Dword(uint32(u>>32)) + hexfmt.Dword(uint32(u))
}

// Word-wrap s to lines of at most 76 characters, indenting every line by
// indent spaces.
func indentWrap(indent int, s string) string {
	const width = 76

	var b strings.Builder
	pad := strings.Repeat(" ", indent)
	col := 0
	for _, word := range strings.Fields(s) {
		switch {
		case col == 0:
			b.WriteString(pad)
			col = indent
		case col+1+len(word) > width:
			b.WriteString("\n")
			b.WriteString(pad)
			col = indent
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}
