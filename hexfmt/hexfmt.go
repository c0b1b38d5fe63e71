// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hexfmt formats fixed-width unsigned integers as fixed-length
// uppercase hexadecimal text.
//
// The output never carries a "0x" prefix, a sign or padding other than the
// leading zeros required to reach the full width of the type: a byte always
// formats to 2 characters, a word to 4, and a double-word to 8.
package hexfmt

// Return the hex digit (0-9, A-F) of the low nibble of v.
func nibble(v byte) byte {
	v &= 0x0f
	if v < 10 {
		return '0' + v
	}
	return 'A' + (v - 10)
}

// AppendByte appends the 2-character hex representation of b to dst.
func AppendByte(dst []byte, b uint8) []byte {
	return append(dst, nibble(b>>4), nibble(b))
}

// AppendWord appends the 4-character hex representation of w to dst, high
// byte first.
func AppendWord(dst []byte, w uint16) []byte {
	dst = AppendByte(dst, uint8(w>>8))
	return AppendByte(dst, uint8(w&0x00ff))
}

// AppendDword appends the 8-character hex representation of dw to dst,
// high word first.
func AppendDword(dst []byte, dw uint32) []byte {
	dst = AppendWord(dst, uint16(dw>>16))
	return AppendWord(dst, uint16(dw&0x0000ffff))
}

// Byte returns the 2-character hex representation of b.
func Byte(b uint8) string {
	var buf [2]byte
	return string(AppendByte(buf[:0], b))
}

// Word returns the 4-character hex representation of w.
func Word(w uint16) string {
	var buf [4]byte
	return string(AppendWord(buf[:0], w))
}

// Dword returns the 8-character hex representation of dw.
func Dword(dw uint32) string {
	var buf [8]byte
	return string(AppendDword(buf[:0], dw))
}

// Status returns the 8-character hex representation of a 32-bit status
// code. Signed codes are reinterpreted bit-for-bit, so a failure code
// such as -2147024809 formats as "80070057".
func Status[T ~int32 | ~uint32](code T) string {
	return Dword(uint32(code))
}
