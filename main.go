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

package main

import (
	"os"

	"github.com/msgpo/winfuse/doc"
	"github.com/msgpo/winfuse/pkg/cli"

	transactsim "github.com/msgpo/winfuse/cmd/transact-sim"
)

func main() {
	var commands cli.Commands

	commands = append(commands, transactsim.TransactSimCmd)
	commands = append(commands, doc.ArchitectureCmd)

	abstract := "Winfuse bridges kernel file system transactions to user-mode FUSE servers."
	if err := cli.Process(abstract, commands); err != nil {
		os.Exit(1)
	}
}
