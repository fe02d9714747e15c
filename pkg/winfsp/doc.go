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

// Package winfsp models the boundary to the host file-system-extension
// framework: the transaction kinds it dispatches, the internal
// request/response envelopes it exchanges, the NTSTATUS-style result codes
// it understands, and the side channel (Transport) over which a mounted
// volume fetches new internal requests and delivers completed internal
// responses.
//
// The envelopes here carry only the fields the FUSE bridge reads (Kind,
// Hint, IoStatus); kind-specific payloads are opaque byte slices owned by
// whoever produced them.
package winfsp
