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

// Package fuse implements the transaction bridge between the host
// file-system-extension framework and a user-mode FUSE server.
//
// The host framework delivers abstracted file system operations as
// internal request records; the FUSE server speaks the FUSE wire protocol
// and drives the volume with blocking exchange calls, each of which may
// simultaneously deliver one FUSE response and pick up one new FUSE
// request. Device.Transact correlates the two protocols: it creates an
// operation Context per internal request, dispatches it through a
// kind-indexed handler table, parks multi-round-trip operations in the
// correlation queue (Ioq), and forwards completed internal responses back
// over the host side channel.
//
// Protocol negotiation is version gated: exchange calls that need to
// fetch new work block (cancellably) until the FUSE_INIT handshake driven
// by the bootstrap context has published the negotiated version.
package fuse
