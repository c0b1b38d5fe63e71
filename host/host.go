// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host implements an interactive command shell for the winstr
// formatting helpers.
//
// Within the host it is possible to format bytes, words, double words and
// status codes as hex, render printf-style templates, look up string
// resources, load string tables from disk, and evaluate integer
// expressions.
package host

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beevik/cmd"
	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/beevik/winstr/hexfmt"
	"github.com/beevik/winstr/hresult"
	"github.com/beevik/winstr/printf"
	"github.com/beevik/winstr/resource"
)

// Maximum nesting depth of execute commands.
const maxScriptDepth = 8

var (
	errQuit      = errors.New("quit")
	errNoArgs    = errors.New("missing argument")
	errRange     = errors.New("value out of range")
	errNotFound  = errors.New("identifier not found")
	errTooDeep   = errors.New("scripts nested too deeply")
	errBadNumber = errors.New("invalid number")
)

// Config holds the collaborators of a Host.
type Config struct {
	// Loader is the system resource loader consulted after any string
	// tables loaded with "resource load". It may be nil.
	Loader resource.Loader

	// Module is the initial module handle used for resource lookups.
	Module resource.Handle

	// Logger receives diagnostic output. If nil, logging is discarded.
	Logger *slog.Logger
}

// A Host reads formatting commands from a reader and writes the results to
// a writer.
type Host struct {
	output      *bufio.Writer
	interactive bool
	depth       int
	line        string
	lastCmd     *selection
	exprParser  *exprParser
	settings    *settings
	table       *resource.Table
	loader      resource.Loader
	logger      *slog.Logger
}

// New creates a new host.
func New(c Config) *Host {
	h := &Host{
		output:     bufio.NewWriter(io.Discard),
		exprParser: newExprParser(),
		settings:   newSettings(),
		table:      resource.NewTable(),
		logger:     c.Logger,
	}
	h.settings.Module = uint64(c.Module)
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Loaded string tables take precedence over the system loader.
	if c.Loader != nil {
		h.loader = resource.Chain(h.table, c.Loader)
	} else {
		h.loader = h.table
	}

	return h
}

// Table returns the host's in-memory string table. Strings added to it are
// visible to "resource" commands.
func (h *Host) Table() *resource.Table {
	return h.table
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered. It returns true if a
// quit command was executed.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) bool {
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	defer h.flush()

	if interactive {
		h.println("winstr. Type ? for help.")
	}
	return h.run(r)
}

func (h *Host) run(r io.Reader) (quit bool) {
	input := bufio.NewScanner(r)
	for {
		h.prompt()

		if !input.Scan() {
			if err := input.Err(); err != nil {
				h.logger.Warn("reading commands", "err", err)
			}
			return false
		}
		line := strings.TrimSpace(input.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}

		var c selection
		if line != "" {
			var err error
			c.Command, c.Args, err = cmds.LookupCommand(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
			h.line = line
		} else if h.interactive && h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		info := c.Command.Data.(*command)
		h.logger.Debug("command", "name", info.path, "args", c.Args)

		err := info.handler(h, c)
		switch {
		case errors.Is(err, errQuit):
			return true
		case err != nil:
			h.logger.Warn("command failed", "name", info.path, "err", err)
			h.printf("ERROR: %v.\n", err)
		}
	}
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) hex(s string) string {
	if h.settings.Prefix {
		return "0x" + s
	}
	return s
}

func (h *Host) module() resource.Handle {
	return resource.Handle(h.settings.Module)
}

func (h *Host) parseExpr(expr string) (int64, error) {
	h.exprParser.hexMode = h.settings.HexMode
	return h.exprParser.Parse(expr, h)
}

// Parse the command's arguments as an expression that must fit in an
// integer of the given bit width.
func (h *Host) parseArg(c selection, bits uint) (int64, error) {
	if len(c.Args) == 0 {
		return 0, errors.Wrapf(errNoArgs, "syntax: %s", c.Command.Data.(*command).usage)
	}
	v, err := h.parseExpr(strings.Join(c.Args, " "))
	if err != nil {
		return 0, err
	}
	if !fitsWidth(v, bits) {
		return 0, errors.Wrapf(errRange, "%d does not fit in %d bits", v, bits)
	}
	return v, nil
}

func (h *Host) resolveIdentifier(s string) (int64, error) {
	hr, err := hresult.Lookup(s)
	if err != nil {
		return 0, errors.Wrapf(errNotFound, "'%s'", s)
	}
	return int64(hr), nil
}

func (h *Host) cmdHelp(c selection) error {
	if len(c.Args) == 0 {
		h.println("Commands:")
		h.displayCommands(topLevel)
		for _, g := range groups {
			h.printf("    %-15s  %s\n", g.name, g.brief)
		}
		return nil
	}

	name := strings.Join(c.Args, " ")
	for _, g := range groups {
		if strings.EqualFold(name, g.name) {
			h.printf("%s:\n", g.brief)
			h.displayCommands(g.commands)
			return nil
		}
	}

	found, _, err := cmds.LookupCommand(name)
	if err != nil {
		h.println("Command not found.")
		return nil
	}

	info := found.Data.(*command)
	h.printf("Syntax: %s\n\n", info.usage)
	h.printf("Description:\n%s\n\n", indentWrap(3, info.description))
	return nil
}

func (h *Host) displayCommands(commands []*command) {
	for _, c := range commands {
		h.printf("    %-15s  %s\n", c.path, c.brief)
	}
}

func (h *Host) cmdByte(c selection) error {
	v, err := h.parseArg(c, 8)
	if err != nil {
		return err
	}
	h.println(h.hex(hexfmt.Byte(uint8(v))))
	return nil
}

func (h *Host) cmdWord(c selection) error {
	v, err := h.parseArg(c, 16)
	if err != nil {
		return err
	}
	h.println(h.hex(hexfmt.Word(uint16(v))))
	return nil
}

func (h *Host) cmdDword(c selection) error {
	v, err := h.parseArg(c, 32)
	if err != nil {
		return err
	}
	h.println(h.hex(hexfmt.Dword(uint32(v))))
	return nil
}

func (h *Host) cmdStatus(c selection) error {
	v, err := h.parseArg(c, 32)
	if err != nil {
		return err
	}

	hr := hresult.HRESULT(uint32(v))
	outcome := "success"
	if hr.Failed() {
		outcome = "failure"
	}

	h.printf("%s", h.hex(hexfmt.Status(hr)))
	if name := hr.Name(); name != "" {
		h.printf("  %s", name)
	}
	h.printf("  (%s, facility %d, code $%s)\n", outcome, hr.Facility(), hexfmt.Word(uint16(hr.Code())))
	return nil
}

func (h *Host) cmdPrintf(c selection) error {
	// Split the raw command line so that quoted arguments keep their
	// original spacing.
	words, err := shlex.Split(commandTail(h.line))
	if err != nil {
		return errors.Wrap(err, "splitting arguments")
	}
	if len(words) == 0 {
		return errors.Wrap(errNoArgs, "syntax: printf <template> [<arg> ...]")
	}

	t, err := printf.Parse(words[0])
	if err != nil {
		return err
	}

	kinds := t.Kinds()
	args := make([]printf.Arg, len(words)-1)
	for i, w := range words[1:] {
		k := printf.KindString
		if i < len(kinds) {
			k = kinds[i]
		}
		if args[i], err = h.toArg(w, k); err != nil {
			return err
		}
	}

	s, err := t.Render(args...)
	if err != nil {
		return err
	}
	h.println(s)
	return nil
}

// Return everything after the first word of a command line.
func commandTail(line string) string {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return line[i+1:]
}

// Convert a command-line word to a printf argument of kind k.
func (h *Host) toArg(w string, k printf.Kind) (printf.Arg, error) {
	switch k {
	case printf.KindInt, printf.KindUint:
		v, err := h.parseExpr(w)
		if err != nil {
			return printf.Arg{}, errors.Wrapf(err, "argument '%s'", w)
		}
		// Values that fit in 32 bits are passed the way a C caller would
		// pass an int, so that %X of -1 yields FFFFFFFF.
		switch {
		case v >= math.MinInt32 && v <= math.MaxInt32:
			return printf.Int(int32(v)), nil
		case v >= 0 && v <= math.MaxUint32:
			return printf.Uint(uint32(v)), nil
		default:
			return printf.Int(v), nil
		}

	case printf.KindChar:
		if utf8.RuneCountInString(w) == 1 {
			r, _ := utf8.DecodeRuneInString(w)
			return printf.Char(r), nil
		}
		v, err := h.parseExpr(w)
		if err != nil {
			return printf.Arg{}, errors.Wrapf(err, "argument '%s'", w)
		}
		return printf.Char(rune(v)), nil

	case printf.KindFloat:
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return printf.Arg{}, errors.Wrapf(errBadNumber, "argument '%s'", w)
		}
		return printf.Float(f), nil

	default:
		return printf.String(w), nil
	}
}

func (h *Host) cmdEvaluate(c selection) error {
	v, err := h.parseArg(c, 64)
	if err != nil {
		return err
	}
	h.printf("%d  $%s\n", v, hex64(v))
	return nil
}

func (h *Host) cmdExecute(c selection) error {
	if len(c.Args) < 1 {
		return errors.Wrap(errNoArgs, "syntax: execute <filename>")
	}
	if h.depth >= maxScriptDepth {
		return errTooDeep
	}

	filename := strings.Join(c.Args, " ")
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	h.logger.Debug("executing script", "file", filename)

	interactive, lastCmd := h.interactive, h.lastCmd
	h.interactive = false
	h.depth++
	quit := h.run(file)
	h.depth--
	h.interactive, h.lastCmd = interactive, lastCmd

	if quit {
		return errQuit
	}
	return nil
}

func (h *Host) cmdResourceText(c selection) error {
	v, err := h.parseArg(c, 32)
	if err != nil {
		return err
	}

	s := resource.Text(h.loader, h.module(), uint32(v))
	if s == "" {
		h.println("String not found.")
		return nil
	}
	h.println(s)
	return nil
}

func (h *Host) cmdResourceLoad(c selection) error {
	if len(c.Args) < 1 {
		return errors.Wrap(errNoArgs, "syntax: resource load <filename>")
	}

	filename := strings.Join(c.Args, " ")
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	n, err := h.table.ReadTOML(h.module(), file)
	if err != nil {
		return errors.Wrapf(err, "'%s'", filename)
	}

	h.logger.Debug("loaded string table", "file", filename, "strings", n, "module", h.module())
	h.printf("Loaded %d strings from '%s'.\n", n, filename)
	return nil
}

func (h *Host) cmdResourceList(c selection) error {
	ids := h.table.IDs(h.module())
	if len(ids) == 0 {
		h.println("No strings loaded.")
		return nil
	}
	for _, id := range ids {
		h.printf("    %5d  $%s  %q\n", id, hexfmt.Word(uint16(id)), h.table.LoadString(h.module(), id))
	}
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()
		return nil

	case 1:
		return errors.Wrap(errNoArgs, "syntax: set [<var> <value>]")
	}

	key, value := c.Args[0], strings.Join(c.Args[1:], " ")

	var err error
	switch h.settings.Kind(key) {
	case reflect.Invalid:
		err = errors.Wrapf(errSettingNotFound, "'%s'", key)
	case reflect.Bool:
		var b bool
		if b, err = stringToBool(value); err == nil {
			err = h.settings.Set(key, b)
		}
	default:
		var v int64
		if v, err = h.parseExpr(value); err == nil {
			err = h.settings.Set(key, v)
		}
	}
	if err != nil {
		return err
	}

	h.println("Setting updated.")
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return errQuit
}
