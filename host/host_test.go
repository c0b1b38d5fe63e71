// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beevik/winstr/resource"
)

func run(t *testing.T, h *Host, script string) ([]string, bool) {
	t.Helper()
	var out bytes.Buffer
	quit := h.RunCommands(strings.NewReader(script), &out, false)
	s := strings.TrimRight(out.String(), "\n")
	if s == "" {
		return nil, quit
	}
	return strings.Split(s, "\n"), quit
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFormatCommands(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{"byte 255", "FF"},
		{"byte $ab", "AB"},
		{"byte -1", "FF"},
		{"b 10", "0A"},
		{"word 0x1234", "1234"},
		{"w %1111", "000F"},
		{"dword 0xDEADBEEF", "DEADBEEF"},
		{"dword -1", "FFFFFFFF"},
		{"d 1 << 31", "80000000"},
		{"byte 256", "ERROR: 256 does not fit in 8 bits: value out of range."},
		{"word", "ERROR: syntax: word <expression>: missing argument."},
	}

	for _, tt := range tests {
		h := New(Config{})
		out, quit := run(t, h, tt.cmd)
		assert.False(t, quit)
		assert.Equal(t, []string{tt.want}, out, tt.cmd)
	}
}

func TestStatusCommand(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{"status 0", "00000000  S_OK  (success, facility 0, code $0000)"},
		{"status 1", "00000001  S_FALSE  (success, facility 0, code $0001)"},
		{"status E_INVALIDARG", "80070057  E_INVALIDARG  (failure, facility 7, code $0057)"},
		{"status e_inv", "80070057  E_INVALIDARG  (failure, facility 7, code $0057)"},
		{"s $80004005", "80004005  E_FAIL  (failure, facility 0, code $4005)"},
		{"status $80070002", "80070002  (failure, facility 7, code $0002)"},
		{"status e_zzz", "ERROR: 'e_zzz': identifier not found."},
	}

	for _, tt := range tests {
		h := New(Config{})
		out, _ := run(t, h, tt.cmd)
		assert.Equal(t, []string{tt.want}, out, tt.cmd)
	}
}

func TestPrintfCommand(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{`printf "Hello %s, you are %d years old." Ann 30`, "Hello Ann, you are 30 years old."},
		{`printf "Testing StringPrintf %s %d 0x%08X." Hello 10 E_INVALIDARG`, "Testing StringPrintf Hello 10 0x80070057."},
		{`printf 0x%08X $DEADBEEF`, "0xDEADBEEF"},
		{`printf %X -1`, "FFFFFFFF"},
		{`printf %u 4000000000`, "4000000000"},
		{`printf %c%c 'h' i`, "hi"},
		{`printf %c 65`, "A"},
		{`printf %.2f 3.14159`, "3.14"},
		{`printf "[%5s]" ab`, "[   ab]"},
		{`p "%-4d|" 7`, "7   |"},
		{`printf "%*d" 6 42`, "    42"},
		{`printf 100%%`, "100%"},
	}

	for _, tt := range tests {
		h := New(Config{})
		out, _ := run(t, h, tt.cmd)
		assert.Equal(t, []string{tt.want}, out, tt.cmd)
	}
}

func TestPrintfErrors(t *testing.T) {
	for _, c := range []string{
		`printf`,
		`printf %d`,
		`printf %d 1 2`,
		`printf %q 1`,
		`printf %f abc`,
		`printf %d (1`,
		`printf "unterminated`,
	} {
		h := New(Config{})
		out, _ := run(t, h, c)
		require.Len(t, out, 1, c)
		assert.True(t, strings.HasPrefix(out[0], "ERROR: "), "%s: %s", c, out[0])
	}
}

func TestEvaluateCommand(t *testing.T) {
	h := New(Config{})
	out, _ := run(t, h, strings.Join([]string{
		"evaluate 1<<4 | 1",
		"e -1",
		"evaluate $100000000",
		"evaluate 'A' + 1",
		"evaluate 1/0",
	}, "\n"))
	assert.Equal(t, []string{
		"17  $00000011",
		"-1  $FFFFFFFF",
		"4294967296  $0000000100000000",
		"66  $00000042",
		"ERROR: division by zero.",
	}, out)
}

func TestSetCommand(t *testing.T) {
	h := New(Config{})
	out, _ := run(t, h, strings.Join([]string{
		"set prefix true",
		"byte 1",
		"set hexmode on",
		"byte ff",
		"evaluate 0d10",
		"set hex off",
		"set prefix 0",
		"byte 10",
		"set module $400000",
		"set bogus 1",
		"set prefix maybe",
		"set prefix",
	}, "\n"))
	assert.Equal(t, []string{
		"Setting updated.",
		"0x01",
		"Setting updated.",
		"0xFF",
		"10  $0000000A",
		"Setting updated.",
		"Setting updated.",
		"0A",
		"Setting updated.",
		"ERROR: 'bogus': setting not found.",
		"ERROR: invalid bool value 'maybe'.",
		"ERROR: syntax: set [<var> <value>]: missing argument.",
	}, out)
	assert.Equal(t, resource.Handle(0x400000), h.module())

	out, _ = run(t, h, "set")
	require.Len(t, out, 4)
	assert.Equal(t, "Variables:", out[0])
	assert.Contains(t, out[1], "HexMode")
	assert.Contains(t, out[2], "Prefix")
	assert.Contains(t, out[3], "$00400000")
}

type fakeLoader map[uint32]string

func (l fakeLoader) LoadString(module resource.Handle, id uint32) string {
	return l[id]
}

func TestResourceCommands(t *testing.T) {
	h := New(Config{Loader: fakeLoader{101: "System 101", 300: "System 300"}})
	h.Table().Add(0, 101, "Table 101")

	path := writeFile(t, "strings.toml", `
[strings]
200 = "Two hundred"
0x12D = "Three hundred one"
`)

	out, _ := run(t, h, strings.Join([]string{
		"resource text 101",
		"r 300",
		"r 999",
		"resource load " + path,
		"resource text 200",
		"r $12D",
		"resource list",
	}, "\n"))
	assert.Equal(t, []string{
		"Table 101",
		"System 300",
		"String not found.",
		fmt.Sprintf("Loaded 2 strings from '%s'.", path),
		"Two hundred",
		"Three hundred one",
		`      101  $0065  "Table 101"`,
		`      200  $00C8  "Two hundred"`,
		`      301  $012D  "Three hundred one"`,
	}, out)
}

func TestResourceModules(t *testing.T) {
	h := New(Config{Module: 7})
	h.Table().Add(7, 1, "Module seven")
	h.Table().Add(8, 1, "Module eight")

	out, _ := run(t, h, "r 1\nset module 8\nr 1\nset module 9\nresource list")
	assert.Equal(t, []string{
		"Module seven",
		"Setting updated.",
		"Module eight",
		"Setting updated.",
		"No strings loaded.",
	}, out)
}

func TestResourceLoadErrors(t *testing.T) {
	h := New(Config{})
	bad := writeFile(t, "bad.toml", "[strings]\nabc = \"x\"\n")

	out, _ := run(t, h, "resource load\nresource load "+bad+"\nresource load "+filepath.Join(t.TempDir(), "missing.toml"))
	require.Len(t, out, 3)
	for _, line := range out {
		assert.True(t, strings.HasPrefix(line, "ERROR: "), line)
	}
	assert.Zero(t, h.Table().Len(0))
}

func TestExecuteCommand(t *testing.T) {
	script := writeFile(t, "script.txt", "# comment\nbyte 1\n\nword 2\n")

	h := New(Config{})
	out, quit := run(t, h, "execute "+script+"\ndword 3")
	assert.False(t, quit)
	assert.Equal(t, []string{"01", "0002", "00000003"}, out)
}

func TestExecuteQuit(t *testing.T) {
	script := writeFile(t, "quit.txt", "byte 1\nquit\nbyte 2\n")

	h := New(Config{})
	out, quit := run(t, h, "execute "+script+"\nbyte 3")
	assert.True(t, quit)
	assert.Equal(t, []string{"01"}, out)
}

func TestExecuteRecursion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "self.txt")
	require.NoError(t, os.WriteFile(path, []byte("execute "+path+"\n"), 0o644))

	h := New(Config{})
	out, quit := run(t, h, "execute "+path)
	assert.False(t, quit)
	assert.Equal(t, []string{"ERROR: scripts nested too deeply."}, out)
	assert.Zero(t, h.depth)
}

func TestQuit(t *testing.T) {
	h := New(Config{})
	out, quit := run(t, h, "byte 1\nquit\nbyte 2")
	assert.True(t, quit)
	assert.Equal(t, []string{"01"}, out)
}

func TestUnknownCommand(t *testing.T) {
	h := New(Config{})
	out, _ := run(t, h, "bogus\n# ignored\n")
	assert.Equal(t, []string{"Command not found."}, out)
}

func TestCommandLookup(t *testing.T) {
	h := New(Config{})
	out, _ := run(t, h, strings.Join([]string{
		"dw 1",
		"st 0",
		"res li",
		"resource l",
		"resource",
		"resource bogus",
		"\tbyte\t2",
	}, "\n"))
	assert.Equal(t, []string{
		"00000001",
		"00000000  S_OK  (success, facility 0, code $0000)",
		"No strings loaded.",
		"Command is ambiguous.",
		"Command not found.",
		"Command not found.",
		"02",
	}, out)
}

func TestInteractiveRepeat(t *testing.T) {
	h := New(Config{})
	var out bytes.Buffer
	h.RunCommands(strings.NewReader("byte 1\n\n"), &out, true)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "winstr. Type ? for help.\n"))
	assert.Equal(t, 2, strings.Count(s, "01\n"))
}

func TestNonInteractiveNoRepeat(t *testing.T) {
	h := New(Config{})
	out, _ := run(t, h, "byte 1\n\n\n")
	assert.Equal(t, []string{"01"}, out)
}

func TestHelp(t *testing.T) {
	h := New(Config{})

	out, _ := run(t, h, "help")
	require.NotEmpty(t, out)
	assert.Equal(t, "Commands:", out[0])
	all := strings.Join(out, "\n")
	for _, name := range []string{"byte", "status", "printf", "resource", "quit"} {
		assert.Contains(t, all, name)
	}

	out, _ = run(t, h, "help resource")
	require.NotEmpty(t, out)
	assert.Equal(t, "String resource commands:", out[0])
	assert.Contains(t, strings.Join(out, "\n"), "resource load")

	out, _ = run(t, h, "? status")
	require.NotEmpty(t, out)
	assert.Equal(t, "Syntax: status <expression>", out[0])
}
