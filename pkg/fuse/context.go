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

import "github.com/msgpo/winfuse/pkg/winfsp"

// A Context carries the state of one in-flight file system operation
// across however many FUSE round trips the operation needs. It is created
// on first touch of an internal request, handed between the correlation
// queue and the exchange workers, and deleted exactly once when its
// handler declares the operation complete.
//
// Ownership: a context is in the pending set, in the processing set, or
// held by the single worker currently dispatching it, never more than
// one of those at a time.
type Context struct {
	// Dev is the volume the operation belongs to.
	Dev *Device

	// InternalRequest is the originating host framework request. It is
	// nil for bootstrap contexts, which exist only to drive protocol
	// negotiation and produce no internal response.
	InternalRequest *winfsp.Request

	// InternalResponse is the response under construction. It points at
	// the embedded rspBuf until a handler asks for a separately
	// allocated, larger response via AllocResponse.
	InternalResponse *winfsp.Response
	rspBuf           winfsp.Response

	// FuseRequest and FuseResponse overlay the exchange call's buffers.
	// They are set for the duration of one dispatch and must not be
	// retained by handlers across round trips.
	FuseRequest  []byte
	FuseResponse []byte

	// Unique is the correlation id, assigned by Ioq.StartProcessing.
	Unique uint64

	// Fini, when set by a handler, runs first during deletion.
	Fini func(*Context)

	// State is handler-owned scratch that survives across round trips.
	State interface{}
}

// newContext builds a context for an internal request (nil for the
// bootstrap kind). When the kind has no registered handler the failure
// comes back as a bare status and no context exists; the caller resolves
// it through the status-only completion path.
func newContext(dev *Device, internalRequest *winfsp.Request) (*Context, winfsp.Status) {
	kind := winfsp.ReservedKind
	if internalRequest != nil {
		kind = internalRequest.Kind
	}
	if kind >= winfsp.KindCount || processFuncs[kind] == nil {
		return nil, winfsp.StatusInvalidDeviceRequest
	}

	c := &Context{
		Dev:             dev,
		InternalRequest: internalRequest,
	}
	c.InternalResponse = &c.rspBuf
	c.InternalResponse.Size = responseEnvelopeSize
	c.InternalResponse.Kind = kind
	if internalRequest != nil {
		c.InternalResponse.Hint = internalRequest.Hint
	}
	return c, winfsp.StatusSuccess
}

// responseEnvelopeSize is the fixed size of the internal response
// envelope header the host framework expects when no kind-specific
// payload is attached.
const responseEnvelopeSize = 128

// AllocResponse replaces the embedded internal response with a separately
// allocated one carrying room for size bytes of kind-specific payload.
// The envelope fields already populated are preserved. The new response
// is owned by the context and released with it.
func (c *Context) AllocResponse(size uint32) *winfsp.Response {
	rsp := &winfsp.Response{
		Size: responseEnvelopeSize + size,
		Kind: c.InternalResponse.Kind,
		Hint: c.InternalResponse.Hint,
		Buf:  make([]byte, size),
	}
	rsp.IoStatus = c.InternalResponse.IoStatus
	c.InternalResponse = rsp
	return rsp
}

// process runs the context's kind handler against the supplied exchange
// buffers. The return value is the handler's continuation decision: true
// means the operation needs another FUSE round trip.
func (c *Context) process(fuseResponse, fuseRequest []byte) bool {
	kind := winfsp.ReservedKind
	if c.InternalRequest != nil {
		kind = c.InternalRequest.Kind
	}

	c.FuseResponse = fuseResponse
	c.FuseRequest = fuseRequest

	return processFuncs[kind](c)
}

// delete finalizes the context: the Fini callback runs first, then owned
// references are dropped. Every engine path deletes a context exactly
// once.
func (c *Context) delete() {
	if c.Fini != nil {
		c.Fini(c)
	}
	c.InternalRequest = nil
	c.InternalResponse = nil
	c.FuseRequest = nil
	c.FuseResponse = nil
	c.State = nil
}
