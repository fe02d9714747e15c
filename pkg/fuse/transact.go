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
	"context"

	"github.com/msgpo/winfuse/pkg/winfsp"
)

// Transact is the engine behind one exchange call. Each FUSE server
// worker thread issues one blocking exchange at a time: rspBuf, when
// non-nil, carries the FUSE response to a previously issued request;
// reqBuf, when non-nil, receives the next FUSE request. Processing the
// inbound response and producing the outbound request share the one call
// so an idle round trip is never needed.
//
// The returned count is the number of bytes written into reqBuf. Failures
// are winfsp.Status values; completed operations that themselves failed
// are not call failures and resolve through the internal response.
func (d *Device) Transact(ctx context.Context, rspBuf, reqBuf []byte) (int, error) {
	if rspBuf != nil {
		if len(rspBuf) < ProtoRspHeaderSize {
			return 0, winfsp.StatusInvalidParameter
		}
		rsp := Rsp(rspBuf)
		if int(rsp.Len) < ProtoRspHeaderSize || int(rsp.Len) > len(rspBuf) {
			return 0, winfsp.StatusInvalidParameter
		}
	}
	if reqBuf != nil && len(reqBuf) < ProtoReqSizeMin {
		return 0, winfsp.StatusBufferTooSmall
	}

	if rspBuf != nil {
		rsp := Rsp(rspBuf)
		if c := d.Ioq.EndProcessing(rsp.Unique); c == nil {
			// Late, duplicate or stale response. Not an error.
			d.logger.Debugf("ignoring response with unknown unique %#x", rsp.Unique)
		} else if c.process(rspBuf, nil) {
			d.Ioq.PostPending(c)
		} else if c.InternalRequest == nil {
			c.delete()
		} else {
			err := d.transport.SendResponse(ctx, c.InternalResponse)
			c.delete()
			if err != nil {
				return 0, err
			}
		}
	}

	if reqBuf == nil {
		return 0, nil
	}

	for i := 0; i < ProtoReqHeaderSize; i++ {
		reqBuf[i] = 0
	}

	c := d.Ioq.NextPending()
	cont := false
	status := winfsp.StatusSuccess
	var internalRequest *winfsp.Request
	if c == nil {
		versionMajor := d.versionMajor.Load()
		if versionMajor == 0 {
			select {
			case <-d.initDone:
			case <-ctx.Done():
				return 0, winfsp.StatusCancelled
			}
			versionMajor = d.versionMajor.Load()
		}
		if versionMajor == VersionFailed {
			return 0, winfsp.StatusAccessDenied
		}

		var err error
		internalRequest, err = d.transport.NextRequest(ctx)
		if err != nil {
			return 0, err
		}
		if internalRequest == nil {
			// Idle poll: nothing queued on the host side.
			return 0, nil
		}

		c, status = newContext(d, internalRequest)
		if status == winfsp.StatusSuccess {
			cont = c.process(nil, reqBuf)
		}
	} else {
		cont = c.process(nil, reqBuf)
	}

	switch {
	case cont:
		d.Ioq.StartProcessing(c)
		Req(reqBuf).Unique = c.Unique
	case status != winfsp.StatusSuccess:
		// No context was ever created; deliver a bare failure response so
		// the host framework sees a symmetric completion.
		rsp := &winfsp.Response{
			Size: responseEnvelopeSize,
			Kind: internalRequest.Kind,
			Hint: internalRequest.Hint,
		}
		rsp.IoStatus.Status = status
		if err := d.transport.SendResponse(ctx, rsp); err != nil {
			return 0, err
		}
	case c.InternalRequest == nil:
		// Bootstrap context that completes during the request phase has
		// nothing to forward and nothing further to do.
	default:
		err := d.transport.SendResponse(ctx, c.InternalResponse)
		c.delete()
		if err != nil {
			return 0, err
		}
	}

	return int(Req(reqBuf).Len), nil
}
