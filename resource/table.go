// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resource

import (
	"io"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ErrBadTable is returned when a string table file cannot be decoded.
var ErrBadTable = errors.New("invalid string table")

// A Table is an in-memory Loader holding string tables for any number of
// modules. The zero value is an empty table ready for use.
type Table struct {
	modules map[Handle]map[uint32]string
}

// NewTable creates an empty string table.
func NewTable() *Table {
	return &Table{}
}

// Add stores a string resource.
func (t *Table) Add(module Handle, id uint32, s string) {
	if t.modules == nil {
		t.modules = make(map[Handle]map[uint32]string)
	}
	m := t.modules[module]
	if m == nil {
		m = make(map[uint32]string)
		t.modules[module] = m
	}
	m[id] = s
}

// LoadString returns string resource id stored for module.
func (t *Table) LoadString(module Handle, id uint32) string {
	return t.modules[module][id]
}

// Len returns the number of strings stored for module.
func (t *Table) Len(module Handle) int {
	return len(t.modules[module])
}

// IDs returns the ids of all strings stored for module in increasing
// order.
func (t *Table) IDs(module Handle) []uint32 {
	m := t.modules[module]
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddBlock decodes a native string table block and stores its non-empty
// strings for module.
func (t *Table) AddBlock(module Handle, block uint16, data []byte) error {
	strs, err := ParseBlock(block, data)
	if err != nil {
		return err
	}
	for id, s := range strs {
		t.Add(module, id, s)
	}
	return nil
}

type tomlTable struct {
	Strings map[string]string `toml:"strings"`
}

// ReadTOML reads string resources for module from a TOML document of the
// form:
//
//	[strings]
//	101 = "Hello"
//	0x66 = "World"
//
// Keys are string ids in decimal or 0x-prefixed hex. It returns the number
// of strings read.
func (t *Table) ReadTOML(module Handle, r io.Reader) (int, error) {
	var doc tomlTable
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return 0, errors.Wrap(ErrBadTable, err.Error())
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return 0, errors.Wrapf(ErrBadTable, "unexpected key '%s'", undecoded[0].String())
	}

	ids := make(map[uint32]string, len(doc.Strings))
	for k, s := range doc.Strings {
		id, err := strconv.ParseUint(k, 0, 32)
		if err != nil {
			return 0, errors.Wrapf(ErrBadTable, "invalid string id '%s'", k)
		}
		ids[uint32(id)] = s
	}

	for id, s := range ids {
		t.Add(module, id, s)
	}
	return len(ids), nil
}
