// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/beevik/term"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"

	"github.com/beevik/winstr/host"
	"github.com/beevik/winstr/resource"
)

var (
	table    string
	logLevel string
)

func init() {
	flag.StringVar(&table, "table", "", "load string resources from a TOML file")
	flag.StringVar(&logLevel, "log", "warn", "log level (debug, info, warn, error)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: winstr [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	logger, err := newLogger(logLevel)
	if err != nil {
		exitOnError(err)
	}

	h := host.New(host.Config{
		Loader: resource.System(),
		Module: resource.CurrentModule(),
		Logger: logger,
	})

	if table != "" {
		if err := loadTable(h, table); err != nil {
			exitOnError(err)
		}
		logger.Info("loaded string table", "file", table, "strings", h.Table().Len(resource.CurrentModule()))
	}

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		quit := h.RunCommands(file, os.Stdout, false)
		file.Close()
		if quit {
			return
		}
	}

	// Run commands from standard input, interactively if it is a terminal.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "invalid log level '%s'", level)
	}

	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      l,
		TimeFormat: time.Kitchen,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	})
	return slog.New(h), nil
}

func loadTable(h *host.Host, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := h.Table().ReadTOML(resource.CurrentModule(), file); err != nil {
		return errors.Wrapf(err, "'%s'", filename)
	}
	return nil
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
