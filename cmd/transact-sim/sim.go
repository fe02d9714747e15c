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
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/msgpo/winfuse/pkg/fuse"
	"github.com/msgpo/winfuse/pkg/log"
	"github.com/msgpo/winfuse/pkg/winfsp"
)

func run(logger *log.Logger, workers, requests int, sweepInterval time.Duration) error {
	transport := winfsp.NewMemTransport()
	for i := 0; i < requests; i++ {
		transport.PostRequest(&winfsp.Request{
			Kind: winfsp.QueryVolumeInformationKind,
			Hint: uint64(i + 1),
		})
	}

	dev, err := fuse.NewDevice(transport, winfsp.VolumeParams{
		SectorSize:          512,
		CaseSensitiveSearch: false,
	}, logger)
	if err != nil {
		return err
	}
	defer dev.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodic attribute cache sweep, the way the host framework's volume
	// timer would drive it.
	clk := clock.New()
	go func() {
		ticker := clk.Ticker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				dev.ExpirationRoutine(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Infof("starting %d exchange workers against %d queued requests", workers, requests)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		worker := i
		group.Go(func() error {
			return exchangeLoop(groupCtx, dev, logger, worker)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	delivered := 0
	for rsp := transport.TakeResponse(); rsp != nil; rsp = transport.TakeResponse() {
		logger.Debugf("internal response kind=%v hint=%d status=%v information=%d",
			rsp.Kind, rsp.Hint, rsp.IoStatus.Status, rsp.IoStatus.Information)
		delivered++
	}
	logger.Infof("delivered %d internal responses (version major %d)",
		delivered, dev.VersionMajor())
	if delivered != requests {
		return fmt.Errorf("transact-sim: delivered %d of %d responses", delivered, requests)
	}
	return nil
}

// exchangeLoop plays one user-mode FUSE server worker thread: a blocking
// exchange call per iteration, carrying the previous request's response
// inbound and receiving the next request outbound.
func exchangeLoop(ctx context.Context, dev *fuse.Device, logger *log.Logger, worker int) error {
	var rspBuf []byte
	reqBuf := make([]byte, fuse.ProtoReqSizeMin)

	for {
		n, err := dev.Transact(ctx, rspBuf, reqBuf)
		if err != nil {
			return fmt.Errorf("transact-sim: worker %d: %w", worker, err)
		}
		if n == 0 {
			// Host side drained; the response we carried (if any) was
			// still processed by this call.
			return nil
		}
		req := fuse.Req(reqBuf)
		logger.Debugf("worker %d serving opcode %d unique %#x", worker, req.Opcode, req.Unique)
		rspBuf = serveFuseRequest(req)
	}
}

// serveFuseRequest is the scripted FUSE server: it answers the handful of
// opcodes the simulation emits.
func serveFuseRequest(req *fuse.ProtoReq) []byte {
	switch req.Opcode {
	case 26: // FUSE_INIT
		payload := make([]byte, 24)
		binary.LittleEndian.PutUint32(payload[0:], fuse.ProtoVersion)
		binary.LittleEndian.PutUint32(payload[4:], fuse.ProtoVersionMinor)
		binary.LittleEndian.PutUint32(payload[8:], 1<<17)  // max readahead
		binary.LittleEndian.PutUint32(payload[20:], 1<<20) // max write
		return fuseResponse(req.Unique, 0, payload)
	case 17: // FUSE_STATFS
		payload := make([]byte, 80)
		binary.LittleEndian.PutUint64(payload[0:], 1<<20) // blocks
		binary.LittleEndian.PutUint64(payload[8:], 1<<19) // bfree
		binary.LittleEndian.PutUint64(payload[16:], 1<<19)
		binary.LittleEndian.PutUint32(payload[40:], 4096) // bsize
		binary.LittleEndian.PutUint32(payload[44:], 255)  // namelen
		return fuseResponse(req.Unique, 0, payload)
	default:
		return fuseResponse(req.Unique, -38, nil) // -ENOSYS
	}
}

func fuseResponse(unique uint64, errno int32, payload []byte) []byte {
	buf := make([]byte, fuse.ProtoRspHeaderSize+len(payload))
	rsp := fuse.Rsp(buf)
	rsp.Len = uint32(len(buf))
	rsp.Error = errno
	rsp.Unique = unique
	copy(buf[fuse.ProtoRspHeaderSize:], payload)
	return buf
}
