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

package fuse

import (
	"fmt"

	"github.com/msgpo/winfuse/pkg/winfsp"
)

// A ProcessFunc handles one dispatch of a context. During a request-phase
// dispatch c.FuseRequest is the writable output region and c.FuseResponse
// is nil; during a completion-phase dispatch c.FuseResponse holds the
// inbound FUSE response and c.FuseRequest is nil. Returning true asks the
// engine for another FUSE round trip; returning false declares the
// operation complete, at which point the engine forwards the internal
// response (if the context has an internal request) and deletes the
// context.
//
// Handlers must not block and must not retain the exchange buffers past
// the dispatch call.
type ProcessFunc func(*Context) bool

// processFuncs maps transaction kinds to handlers. It is populated during
// package and program initialization, before any volume can dispatch,
// and is read-only afterwards, so lookups need no synchronization. A nil
// slot means the kind is unsupported and operations of that kind resolve
// to an invalid-device-request status without a context ever existing.
var processFuncs [winfsp.KindCount]ProcessFunc

// RegisterProcessFunc binds a handler to a transaction kind. It is meant
// to be called from init functions of handler packages; binding a kind
// twice or out of range is a programming error.
func RegisterProcessFunc(kind winfsp.Kind, fn ProcessFunc) {
	if kind >= winfsp.KindCount {
		panic(fmt.Sprintf("fuse: register %v: kind out of range", kind))
	}
	if processFuncs[kind] != nil {
		panic(fmt.Sprintf("fuse: register %v: already registered", kind))
	}
	processFuncs[kind] = fn
}
