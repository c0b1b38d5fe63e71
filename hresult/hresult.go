// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hresult describes 32-bit Windows status codes (HRESULTs).
//
// An HRESULT packs a severity bit, an 11-bit facility and a 16-bit code:
//
//	 3 3 2 2 2 2 2 2 2 2 2 2 1 1 1 1 1 1 1 1 1 1
//	 1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//	+-+-+-+-+-+---------------------+-------------------------------+
//	|S|R|C|N|r|    Facility         |               Code            |
//	+-+-+-+-+-+---------------------+-------------------------------+
package hresult

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/pkg/errors"

	"github.com/beevik/winstr/hexfmt"
)

// HRESULT is a 32-bit status code. Negative values are failures.
type HRESULT int32

// Well-known status codes.
const (
	S_OK           HRESULT = 0x00000000
	S_FALSE        HRESULT = 0x00000001
	E_NOTIMPL      HRESULT = 0x80004001 - 1<<32
	E_NOINTERFACE  HRESULT = 0x80004002 - 1<<32
	E_POINTER      HRESULT = 0x80004003 - 1<<32
	E_ABORT        HRESULT = 0x80004004 - 1<<32
	E_FAIL         HRESULT = 0x80004005 - 1<<32
	E_UNEXPECTED   HRESULT = 0x8000FFFF - 1<<32
	E_ACCESSDENIED HRESULT = 0x80070005 - 1<<32
	E_HANDLE       HRESULT = 0x80070006 - 1<<32
	E_OUTOFMEMORY  HRESULT = 0x8007000E - 1<<32
	E_INVALIDARG   HRESULT = 0x80070057 - 1<<32
)

// Severity values.
const (
	SeveritySuccess = 0
	SeverityError   = 1
)

// Facility values used by the well-known codes.
const (
	FacilityNull     = 0
	FacilityRPC      = 1
	FacilityDispatch = 2
	FacilityStorage  = 3
	FacilityITF      = 4
	FacilityWin32    = 7
	FacilityWindows  = 8
)

// ErrUnknownName is returned by Lookup when a name does not identify
// exactly one well-known status code.
var ErrUnknownName = errors.New("unknown status name")

var names = []struct {
	name string
	hr   HRESULT
}{
	{"S_OK", S_OK},
	{"S_FALSE", S_FALSE},
	{"E_NOTIMPL", E_NOTIMPL},
	{"E_NOINTERFACE", E_NOINTERFACE},
	{"E_POINTER", E_POINTER},
	{"E_ABORT", E_ABORT},
	{"E_FAIL", E_FAIL},
	{"E_UNEXPECTED", E_UNEXPECTED},
	{"E_ACCESSDENIED", E_ACCESSDENIED},
	{"E_HANDLE", E_HANDLE},
	{"E_OUTOFMEMORY", E_OUTOFMEMORY},
	{"E_INVALIDARG", E_INVALIDARG},
}

var (
	nameTree = prefixtree.New[HRESULT]()
	nameOfHR = make(map[HRESULT]string)
)

func init() {
	for _, n := range names {
		nameTree.Add(strings.ToLower(n.name), n.hr)
		nameOfHR[n.hr] = n.name
	}
}

// Make builds an HRESULT from its severity, facility and code fields.
func Make(severity, facility, code uint32) HRESULT {
	return HRESULT((severity&1)<<31 | (facility&0x7ff)<<16 | code&0xffff)
}

// FromWin32 maps a Win32 error code onto an HRESULT in the Win32
// facility. Zero and values that already look like HRESULTs are returned
// unchanged.
func FromWin32(code uint32) HRESULT {
	if int32(code) <= 0 {
		return HRESULT(code)
	}
	return Make(SeverityError, FacilityWin32, code)
}

// Succeeded returns true if hr reports success.
func (hr HRESULT) Succeeded() bool {
	return hr >= 0
}

// Failed returns true if hr reports failure.
func (hr HRESULT) Failed() bool {
	return hr < 0
}

// Severity returns the severity bit.
func (hr HRESULT) Severity() uint32 {
	return uint32(hr) >> 31
}

// Facility returns the 11-bit facility field.
func (hr HRESULT) Facility() uint32 {
	return (uint32(hr) >> 16) & 0x7ff
}

// Code returns the 16-bit code field.
func (hr HRESULT) Code() uint32 {
	return uint32(hr) & 0xffff
}

// Hex returns the 8-character uppercase hex representation of hr.
func (hr HRESULT) Hex() string {
	return hexfmt.Status(hr)
}

// Name returns the symbolic name of a well-known status code, or the
// empty string.
func (hr HRESULT) Name() string {
	return nameOfHR[hr]
}

// String returns the name of a well-known status code, or its hex value
// with a "0x" prefix.
func (hr HRESULT) String() string {
	if n, ok := nameOfHR[hr]; ok {
		return n
	}
	return "0x" + hr.Hex()
}

// Lookup returns the well-known status code identified by name. Names are
// case-insensitive and may be abbreviated to any unique prefix.
func Lookup(name string) (HRESULT, error) {
	hr, err := nameTree.FindValue(strings.ToLower(name))
	if err != nil {
		return 0, errors.Wrapf(ErrUnknownName, "'%s' (%v)", name, err)
	}
	return hr, nil
}

// Names returns the symbolic names of all well-known status codes.
func Names() []string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = n.name
	}
	return s
}
