// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows

package resource

type systemLoader struct{}

// System returns the platform Loader. Platforms without embedded string
// resources have none, so every lookup misses.
func System() Loader {
	return systemLoader{}
}

func (systemLoader) LoadString(module Handle, id uint32) string {
	return ""
}

// CurrentModule returns the handle of the running executable, which is
// always zero on platforms without module handles.
func CurrentModule() Handle {
	return 0
}
