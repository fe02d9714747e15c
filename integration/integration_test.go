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

// Package integration drives a full volume end to end: an in-memory host
// framework transport on one side, a scripted user-mode FUSE server on
// the other, with concurrent exchange workers in between.
package integration

import (
	"context"
	"encoding/binary"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/msgpo/winfuse/pkg/fuse"
	"github.com/msgpo/winfuse/pkg/winfsp"
)

func fuseResponse(unique uint64, errno int32, payload []byte) []byte {
	buf := make([]byte, fuse.ProtoRspHeaderSize+len(payload))
	rsp := fuse.Rsp(buf)
	rsp.Len = uint32(len(buf))
	rsp.Error = errno
	rsp.Unique = unique
	copy(buf[fuse.ProtoRspHeaderSize:], payload)
	return buf
}

// serveFuseRequest answers the opcodes the scenarios below can emit.
func serveFuseRequest(req *fuse.ProtoReq) []byte {
	switch req.Opcode {
	case 26: // FUSE_INIT
		payload := make([]byte, 24)
		binary.LittleEndian.PutUint32(payload[0:], fuse.ProtoVersion)
		binary.LittleEndian.PutUint32(payload[4:], fuse.ProtoVersionMinor)
		return fuseResponse(req.Unique, 0, payload)
	case 17: // FUSE_STATFS
		payload := make([]byte, 80)
		binary.LittleEndian.PutUint64(payload[0:], 1<<20) // blocks
		binary.LittleEndian.PutUint32(payload[40:], 4096) // bsize
		binary.LittleEndian.PutUint32(payload[44:], 255)  // namelen
		return fuseResponse(req.Unique, 0, payload)
	default:
		return fuseResponse(req.Unique, -38, nil) // -ENOSYS
	}
}

func exchangeUntilIdle(ctx context.Context, d *fuse.Device, transport *winfsp.MemTransport) error {
	var rspBuf []byte
	reqBuf := make([]byte, fuse.ProtoReqSizeMin)
	for {
		n, err := d.Transact(ctx, rspBuf, reqBuf)
		if err != nil {
			return err
		}
		if n == 0 {
			// Zero bytes means either an idle poll or an operation that
			// resolved without a FUSE round trip; keep exchanging while
			// the host side still has requests queued.
			if transport.RequestCount() == 0 {
				return nil
			}
			rspBuf = nil
			continue
		}
		rspBuf = serveFuseRequest(fuse.Req(reqBuf))
	}
}

func TestVolumeExchangeConcurrent(t *testing.T) {
	const (
		workers  = 4
		requests = 32
	)

	transport := winfsp.NewMemTransport()
	for i := 0; i < requests; i++ {
		transport.PostRequest(&winfsp.Request{
			Kind: winfsp.QueryVolumeInformationKind,
			Hint: uint64(i + 1),
		})
	}

	d, err := fuse.NewDevice(transport, winfsp.VolumeParams{}, nil)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer d.Close()

	group, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		group.Go(func() error { return exchangeUntilIdle(ctx, d, transport) })
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("exchange workers: %v", err)
	}

	if v := d.VersionMajor(); v != fuse.ProtoVersion {
		t.Fatalf("negotiated version: got %d, want %d", v, fuse.ProtoVersion)
	}

	hints := make(map[uint64]bool)
	for rsp := transport.TakeResponse(); rsp != nil; rsp = transport.TakeResponse() {
		if rsp.Kind != winfsp.QueryVolumeInformationKind {
			t.Errorf("unexpected response kind %v", rsp.Kind)
		}
		if rsp.IoStatus.Status != winfsp.StatusSuccess {
			t.Errorf("hint %d: status %v, want success", rsp.Hint, rsp.IoStatus.Status)
		}
		if rsp.IoStatus.Information != 80 {
			t.Errorf("hint %d: information %d, want 80", rsp.Hint, rsp.IoStatus.Information)
		}
		if hints[rsp.Hint] {
			t.Errorf("hint %d delivered more than once", rsp.Hint)
		}
		hints[rsp.Hint] = true
	}
	if len(hints) != requests {
		t.Fatalf("delivered %d responses, want %d", len(hints), requests)
	}
}

func TestVolumeExchangeUnsupportedKind(t *testing.T) {
	transport := winfsp.NewMemTransport()
	transport.PostRequest(&winfsp.Request{Kind: winfsp.CreateKind, Hint: 7})

	d, err := fuse.NewDevice(transport, winfsp.VolumeParams{}, nil)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer d.Close()

	if err := exchangeUntilIdle(context.Background(), d, transport); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	rsp := transport.TakeResponse()
	if rsp == nil {
		t.Fatal("no internal response delivered")
	}
	if rsp.Kind != winfsp.CreateKind || rsp.Hint != 7 {
		t.Errorf("envelope: kind %v hint %d", rsp.Kind, rsp.Hint)
	}
	if rsp.IoStatus.Status != winfsp.StatusInvalidDeviceRequest {
		t.Errorf("status: got %v, want %v", rsp.IoStatus.Status, winfsp.StatusInvalidDeviceRequest)
	}
	if transport.TakeResponse() != nil {
		t.Error("more responses than requests")
	}
}

func TestVolumeExchangeMixedKinds(t *testing.T) {
	transport := winfsp.NewMemTransport()
	transport.PostRequest(&winfsp.Request{Kind: winfsp.QueryVolumeInformationKind, Hint: 1})
	transport.PostRequest(&winfsp.Request{Kind: winfsp.ShutdownKind, Hint: 2})
	transport.PostRequest(&winfsp.Request{Kind: winfsp.QueryVolumeInformationKind, Hint: 3})

	d, err := fuse.NewDevice(transport, winfsp.VolumeParams{}, nil)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer d.Close()

	if err := exchangeUntilIdle(context.Background(), d, transport); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	byHint := make(map[uint64]*winfsp.Response)
	for rsp := transport.TakeResponse(); rsp != nil; rsp = transport.TakeResponse() {
		byHint[rsp.Hint] = rsp
	}
	if len(byHint) != 3 {
		t.Fatalf("delivered %d responses, want 3", len(byHint))
	}
	for _, hint := range []uint64{1, 3} {
		if byHint[hint].IoStatus.Status != winfsp.StatusSuccess {
			t.Errorf("hint %d: status %v, want success", hint, byHint[hint].IoStatus.Status)
		}
	}
	if byHint[2].IoStatus.Status != winfsp.StatusInvalidDeviceRequest {
		t.Errorf("hint 2: status %v, want %v", byHint[2].IoStatus.Status, winfsp.StatusInvalidDeviceRequest)
	}
}
