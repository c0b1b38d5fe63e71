// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var procLoadStringW = windows.NewLazySystemDLL("user32.dll").NewProc("LoadStringW")

type systemLoader struct{}

// System returns the Loader backed by the Windows resource manager.
func System() Loader {
	return systemLoader{}
}

// LoadString calls LoadStringW with a zero buffer size, which makes it
// return a read-only pointer into the module's string table instead of
// copying the text.
func (systemLoader) LoadString(module Handle, id uint32) string {
	if procLoadStringW.Find() != nil {
		return ""
	}

	var p *uint16
	n, _, _ := procLoadStringW.Call(
		uintptr(module),
		uintptr(id),
		uintptr(unsafe.Pointer(&p)),
		0)
	if n == 0 || p == nil {
		return ""
	}

	// The text is length-counted and may contain NULs, so all n code
	// units are decoded.
	s, err := decodeUTF16(unsafe.Slice((*byte)(unsafe.Pointer(p)), 2*int(n)))
	if err != nil {
		return ""
	}
	return s
}

// CurrentModule returns the handle of the running executable.
func CurrentModule() Handle {
	var h windows.Handle
	err := windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, nil, &h)
	if err != nil {
		return 0
	}
	return Handle(h)
}
