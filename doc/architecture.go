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

// Package doc holds documentation pseudo-commands for the winfuse
// binary.
package doc

import "github.com/msgpo/winfuse/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "architecture overview",
	Long: `
Winfuse bridges a host file-system-extension framework to a user-mode
FUSE server. The host framework hands down internal request records, each
tagged with an operation kind and an opaque correlation hint. The FUSE
server drives the volume with blocking exchange calls; a single call both
delivers the FUSE response for a previously issued request and picks up
the next FUSE request, so the two directions share one round trip.

The bridge (pkg/fuse) gives every internal request an operation context
and dispatches it through a kind-indexed handler table. A handler that
needs a FUSE round trip writes the outgoing request and parks the context
in the correlation queue under a fresh correlation id; the matching FUSE
response later routes back to the same context through that id. Completed
operations forward their internal response to the host framework over the
side channel (pkg/winfsp.Transport). Unsupported kinds resolve to a bare
failure status without ever allocating a context.

Exchange calls that find no parked work fetch fresh internal requests
from the host side, gated on FUSE_INIT protocol negotiation: until the
bootstrap handshake publishes the negotiated version, fetching callers
block cancellably; if negotiation fails they observe access denied.

A per-volume attribute cache (bounded, deadline-swept) serves name
resolution results; an external timer drives its expiration sweep.
`,
}
