// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/pkg/errors"

	"github.com/beevik/winstr/hexfmt"
)

var (
	errSettingNotFound = errors.New("setting not found")
	errSettingType     = errors.New("invalid setting type")
)

type settings struct {
	HexMode bool   `doc:"bare numbers are hexadecimal"`
	Prefix  bool   `doc:"prefix hex output with 0x"`
	Module  uint64 `doc:"module handle for resource lookups"`
}

func newSettings() *settings {
	return &settings{}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := range settingsFields {
		f := t.Field(i)
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   f.Tag.Get("doc"),
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes the name, value and description of every setting.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for _, f := range settingsFields {
		v := value.Field(f.index)
		var str string
		switch f.kind {
		case reflect.Uint8:
			str = "$" + hexfmt.Byte(uint8(v.Uint()))
		case reflect.Uint16:
			str = "$" + hexfmt.Word(uint16(v.Uint()))
		case reflect.Uint32, reflect.Uint64:
			u := v.Uint()
			str = "$" + hexfmt.Dword(uint32(u))
			if hi := uint32(u >> 32); hi != 0 {
				str = "$" + hexfmt.Dword(hi) + hexfmt.Dword(uint32(u))
			}
		default:
			str = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "    %-10s %-18s (%s)\n", f.name, str, f.doc)
	}
}

// Kind returns the kind of the setting identified by key, or
// reflect.Invalid if there is none.
func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns value to the setting identified by key. The key may be any
// unique prefix of the setting's name.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return errors.Wrapf(errSettingNotFound, "'%s'", key)
	}

	in := reflect.ValueOf(value)
	if (f.kind == reflect.Bool) != (in.Kind() == reflect.Bool) || !in.Type().ConvertibleTo(f.typ) {
		return errors.Wrapf(errSettingType, "%s wants %s, got %s", f.name, f.typ, in.Type())
	}

	reflect.ValueOf(s).Elem().Field(f.index).Set(in.Convert(f.typ))
	return nil
}
