// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// Number of strings stored in each string table block.
const BlockSize = 16

// ErrBadBlock is returned when a string table block is malformed.
var ErrBadBlock = errors.New("invalid string table block")

// BlockOf returns the string table block holding string id, along with the
// string's index within the block. Block ids start at 1. String ids in a
// native string table are 16 bits wide, so every id maps to one of blocks
// 1 through 4096.
func BlockOf(id uint16) (block uint16, index int) {
	return id/BlockSize + 1, int(id % BlockSize)
}

// ParseBlock decodes a native string table block (an RT_STRING resource).
// A block holds BlockSize consecutive strings, each stored as a 16-bit
// little-endian length followed by that many UTF-16LE code units. String
// i of block b has id (b-1)*BlockSize + i. Zero-length strings are absent
// from the block and are not returned.
func ParseBlock(block uint16, data []byte) (map[uint32]string, error) {
	if block == 0 {
		return nil, errors.Wrap(ErrBadBlock, "block id 0")
	}

	base := (uint32(block) - 1) * BlockSize
	strs := make(map[uint32]string)

	for i := 0; i < BlockSize; i++ {
		if len(data) < 2 {
			return nil, errors.Wrapf(ErrBadBlock, "block %d truncated at string %d", block, i)
		}
		n := int(binary.LittleEndian.Uint16(data)) * 2
		data = data[2:]
		if len(data) < n {
			return nil, errors.Wrapf(ErrBadBlock, "block %d string %d is truncated", block, i)
		}
		if n > 0 {
			s, err := decodeUTF16(data[:n])
			if err != nil {
				return nil, errors.Wrapf(ErrBadBlock, "block %d string %d: %v", block, i, err)
			}
			strs[base+uint32(i)] = s
		}
		data = data[n:]
	}

	return strs, nil
}

// Decode length-counted UTF-16LE text. Embedded NULs are kept.
func decodeUTF16(b []byte) (string, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
