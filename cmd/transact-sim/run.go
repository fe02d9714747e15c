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

package transactsim

import (
	"os"
	"time"

	"github.com/msgpo/winfuse/pkg/cli"
	"github.com/msgpo/winfuse/pkg/log"
)

var TransactSimCmd = &cli.Command{
	Run:       transactSimCmdRun,
	UsageLine: "transact-sim [-workers n] [-requests n] [-sweep-interval d] [-debug]",
	Short:     "drive a simulated volume through the exchange protocol",
	Long: `
Transact-sim stands up one volume over an in-memory host framework
transport, queues a batch of internal requests, and runs a pool of worker
goroutines that behave like user-mode FUSE server threads: each issues
blocking exchange calls, answers the FUSE requests it is handed (INIT,
STATFS), and feeds the responses back through the next exchange. The
command exits once the host side has drained and every internal response
has been delivered.
    `,
}

func transactSimCmdRun(cmd *cli.Command, args []string) error {
	var (
		workersFlag       int
		requestsFlag      int
		sweepIntervalFlag time.Duration
		debugFlag         bool
	)
	cmd.FlagSet.IntVar(&workersFlag, "workers", 4,
		"Number of concurrent exchange workers")
	cmd.FlagSet.IntVar(&requestsFlag, "requests", 16,
		"Number of internal requests to queue on the host side")
	cmd.FlagSet.DurationVar(&sweepIntervalFlag, "sweep-interval", time.Second,
		"Attribute cache expiration sweep interval")
	cmd.FlagSet.BoolVar(&debugFlag, "debug", false,
		"Emit debug logging")
	if err := cmd.FlagSet.Parse(args); err != nil {
		return cli.CmdParseError(err)
	}

	mode := log.DefaultMode
	if debugFlag {
		mode |= log.DebugMode
	}
	logger := log.New(
		log.Writer(log.SynchronizedWriter(os.Stderr)),
		log.Flags(log.LstdFlags|log.LUTC),
		log.Modes(mode),
	)

	return run(logger, workersFlag, requestsFlag, sweepIntervalFlag)
}
