// Copyright 2019 The WinFuse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"flag"
	"strings"
)

// A Command is one '<program> <command> ...' implementation. A Command
// with a nil Run is a documentation pseudo-command reachable only through
// '<program> help <topic>'.
type Command struct {
	// Run executes the command with the arguments following the command
	// name. Flag parsing errors should be wrapped with CmdParseError so
	// usage output stays consistent.
	Run func(cmd *Command, args []string) error

	// UsageLine is the one-line usage message; its first word is the
	// command name.
	UsageLine string

	// Short is the description shown in the '<program> help' listing.
	Short string

	// Long is the description shown by '<program> help <command>'.
	Long string

	// FlagSet holds the command's flags. Its output is discarded; usage
	// rendering is handled by this package.
	FlagSet flag.FlagSet
}

type Commands []*Command

// Name returns the command's name: the first word of the usage line.
func (c *Command) Name() string {
	name := c.UsageLine
	if i := strings.Index(name, " "); i >= 0 {
		name = name[:i]
	}
	return name
}

// Runnable reports whether the command can be run, as opposed to being a
// documentation topic.
func (c *Command) Runnable() bool {
	return c.Run != nil
}

type cmdParseError struct{ err error }

func (e cmdParseError) Error() string { return e.err.Error() }

// CmdParseError marks err as a flag parsing failure; Process renders the
// command usage for it instead of propagating it.
func CmdParseError(err error) error {
	return cmdParseError{err: err}
}
