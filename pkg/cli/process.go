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
	"fmt"
	"io"
	"os"
	"strings"
)

// Process is the entry point for the CLI. It resolves os.Args against the
// given commands and executes the matching one. '<program>' without
// arguments, '<program> help' and '<program> -h' print the full usage;
// '<program> help <command>' prints that command's usage. CLI resolution
// errors print to os.Stderr and exit with status 2; command execution
// errors propagate to the caller.
func Process(abstract string, commands Commands) error {
	program, args := os.Args[0], os.Args[1:]

	for _, cmd := range commands {
		cmd.FlagSet.SetOutput(io.Discard)
	}

	if len(args) == 0 || (len(args) == 1 && (args[0] == "help" || args[0] == "-h")) {
		printFullUsage(program, abstract, commands)
		return nil
	}

	if args[0] == "help" {
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "Usage: %s help [command]\n", program)
			os.Exit(2)
		}
		if !printCommandUsage(program, args[1], commands) {
			fmt.Fprintf(os.Stderr, "Unknown help topic '%s'; run '%s help' for available topics.\n",
				args[1], program)
			os.Exit(2)
		}
		return nil
	}

	for _, cmd := range commands {
		if cmd.Name() != args[0] || !cmd.Runnable() {
			continue
		}
		err := cmd.Run(cmd, args[1:])
		if _, ok := err.(cmdParseError); ok {
			fmt.Fprintln(os.Stderr, err)
			printCommandUsage(program, cmd.Name(), commands)
			os.Exit(2)
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "Unknown command '%s'; run '%s help' for usage.\n", args[0], program)
	os.Exit(2)
	return nil
}

func printFullUsage(program, abstract string, commands Commands) {
	fmt.Fprintln(os.Stdout, abstract)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Usage of %s:\n", program)
	for _, cmd := range commands {
		fmt.Fprintf(os.Stdout, "    %-16s %s\n", cmd.Name(), cmd.Short)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Use '%s help [command]' for details.\n", program)
}

func printCommandUsage(program, name string, commands Commands) bool {
	for _, cmd := range commands {
		if cmd.Name() != name {
			continue
		}
		fmt.Fprintf(os.Stdout, "Usage: %s %s\n", program, cmd.UsageLine)
		if long := strings.TrimSpace(cmd.Long); long != "" {
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, long)
		}
		return true
	}
	return false
}
