// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// A command describes a host command and the handler that runs it. It is
// stored as the Data of each entry in the command tree.
type command struct {
	path        string
	brief       string
	description string
	usage       string
	handler     func(*Host, selection) error
}

// A selection is a command matched from an input line along with the
// remaining arguments on the line.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// A commandGroup is a titled list of commands displayed by help.
type commandGroup struct {
	name     string
	brief    string
	commands []*command
}

var (
	cmds     *cmd.Tree
	topLevel []*command
	groups   []*commandGroup
)

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "winstr"})

	add := func(t *cmd.Tree, g *commandGroup, name string, c *command) {
		if g == nil {
			c.path = name
			topLevel = append(topLevel, c)
		} else {
			c.path = g.name + " " + name
			g.commands = append(g.commands, c)
		}
		t.AddCommand(cmd.CommandDescriptor{
			Name:        name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
	}

	add(root, nil, "help", &command{
		brief:       "Display help for a command",
		description: "Display help for a command.",
		usage:       "help [<command>]",
		handler:     (*Host).cmdHelp,
	})
	add(root, nil, "byte", &command{
		brief: "Format a byte as hex",
		description: "Evaluate an expression and format its value as a" +
			" 2-digit hexadecimal byte. Negative values are formatted as" +
			" their two's complement.",
		usage:   "byte <expression>",
		handler: (*Host).cmdByte,
	})
	add(root, nil, "word", &command{
		brief: "Format a word as hex",
		description: "Evaluate an expression and format its value as a" +
			" 4-digit hexadecimal word.",
		usage:   "word <expression>",
		handler: (*Host).cmdWord,
	})
	add(root, nil, "dword", &command{
		brief: "Format a double word as hex",
		description: "Evaluate an expression and format its value as an" +
			" 8-digit hexadecimal double word.",
		usage:   "dword <expression>",
		handler: (*Host).cmdDword,
	})
	add(root, nil, "status", &command{
		brief: "Describe a status code",
		description: "Evaluate an expression or status name (such as" +
			" E_INVALIDARG, or any unique prefix of one) and display the" +
			" status code in hex along with its name, severity, facility" +
			" and code fields.",
		usage:   "status <expression>",
		handler: (*Host).cmdStatus,
	})
	add(root, nil, "printf", &command{
		brief: "Format text with a printf template",
		description: "Render a printf-style template. The template and" +
			" its arguments are split like shell words, so quote them if" +
			" they contain spaces. Each argument is converted to the type" +
			" its directive expects: numeric directives take expressions," +
			" %s takes the argument text, and %c takes a single character" +
			" or an expression.",
		usage:   "printf <template> [<arg> ...]",
		handler: (*Host).cmdPrintf,
	})
	add(root, nil, "evaluate", &command{
		brief:       "Evaluate an expression",
		description: "Evaluate an integer expression and display it in decimal and hex.",
		usage:       "evaluate <expression>",
		handler:     (*Host).cmdEvaluate,
	})
	add(root, nil, "execute", &command{
		brief: "Execute a script file",
		description: "Load a script file from disk and execute the" +
			" commands it contains.",
		usage:   "execute <filename>",
		handler: (*Host).cmdExecute,
	})

	// Resource commands
	rg := &commandGroup{name: "resource", brief: "String resource commands"}
	groups = append(groups, rg)
	rs := root.AddSubtree(cmd.TreeDescriptor{Name: rg.name, Brief: rg.brief})
	add(rs, rg, "text", &command{
		brief: "Look up a string resource",
		description: "Display the string resource with the given id from" +
			" the current module. Strings loaded from table files are" +
			" searched before the system resource table.",
		usage:   "resource text <id>",
		handler: (*Host).cmdResourceText,
	})
	add(rs, rg, "load", &command{
		brief: "Load a string table file",
		description: "Load string resources for the current module from a" +
			" TOML file containing a [strings] table of id = \"text\" pairs.",
		usage:   "resource load <filename>",
		handler: (*Host).cmdResourceLoad,
	})
	add(rs, rg, "list", &command{
		brief:       "List loaded string resources",
		description: "List the strings loaded from table files for the current module.",
		usage:       "resource list",
		handler:     (*Host).cmdResourceList,
	})

	add(root, nil, "set", &command{
		brief: "Set a configuration variable",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		usage:   "set [<var> <value>]",
		handler: (*Host).cmdSet,
	})
	add(root, nil, "quit", &command{
		brief:       "Quit the program",
		description: "Quit the program.",
		usage:       "quit",
		handler:     (*Host).cmdQuit,
	})

	// Add command shortcuts.
	root.AddShortcut("b", "byte")
	root.AddShortcut("w", "word")
	root.AddShortcut("d", "dword")
	root.AddShortcut("s", "status")
	root.AddShortcut("p", "printf")
	root.AddShortcut("e", "evaluate")
	root.AddShortcut("r", "resource text")
	root.AddShortcut("rl", "resource load")
	root.AddShortcut("?", "help")

	cmds = root
}
