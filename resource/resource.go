// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resource looks up localized text in a module's string resource
// table.
//
// The platform resource table is reached through a Loader, so code that
// needs localized strings can be handed the system loader in production
// and a Table in tests.
package resource

// Handle identifies a loaded module (an HINSTANCE on Windows).
type Handle uintptr

// A Loader loads string resources from a module's string table.
// LoadString returns the empty string when the module has no string with
// the requested id, or when the module handle is invalid.
type Loader interface {
	LoadString(module Handle, id uint32) string
}

// Text returns the string resource id from module, or the empty string if
// the string cannot be found. A missing string and an empty string are
// indistinguishable.
func Text(l Loader, module Handle, id uint32) string {
	if l == nil {
		return ""
	}
	return l.LoadString(module, id)
}

type chain []Loader

// Chain returns a Loader that tries each of loaders in order and returns
// the first non-empty string found.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) LoadString(module Handle, id uint32) string {
	for _, l := range c {
		if s := Text(l, module, id); s != "" {
			return s
		}
	}
	return ""
}
