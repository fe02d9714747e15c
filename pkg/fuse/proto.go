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

import "unsafe"

// FUSE wire protocol version spoken on the request side of the exchange.
const (
	ProtoVersion      = 7
	ProtoVersionMinor = 27
)

// Fixed sizes of the FUSE wire records. A request record is the in-header
// followed by an opcode-specific payload; a response record is the
// out-header followed by a payload. ProtoReqSizeMin is the smallest output
// region an exchange call may supply: big enough for any fixed-size request
// plus one maximal path component.
const (
	ProtoReqHeaderSize = int(unsafe.Sizeof(ProtoReq{}))
	ProtoRspHeaderSize = int(unsafe.Sizeof(ProtoRsp{}))
	ProtoReqSizeMin    = 4096
)

// FUSE opcodes. Only a subset is emitted by the in-tree kind handlers;
// the rest are listed for externally registered handlers.
const (
	opLookup      = 1
	opForget      = 2
	opGetattr     = 3
	opSetattr     = 4
	opReadlink    = 5
	opSymlink     = 6
	opMknod       = 8
	opMkdir       = 9
	opUnlink      = 10
	opRmdir       = 11
	opRename      = 12
	opLink        = 13
	opOpen        = 14
	opRead        = 15
	opWrite       = 16
	opStatfs      = 17
	opRelease     = 18
	opFsync       = 20
	opSetxattr    = 21
	opGetxattr    = 22
	opListxattr   = 23
	opRemovexattr = 24
	opFlush       = 25
	opInit        = 26
	opOpendir     = 27
	opReaddir     = 28
	opReleasedir  = 29
	opFsyncdir    = 30
	opGetlk       = 31
	opSetlk       = 32
	opSetlkw      = 33
	opAccess      = 34
	opCreate      = 35
	opInterrupt   = 36
	opBmap        = 37
	opDestroy     = 38
)

// ProtoReq is the FUSE in-header, laid out exactly as on the wire. It is
// always accessed in place over the exchange call's output region; the
// opcode-specific payload follows at ProtoReqHeaderSize.
type ProtoReq struct {
	Len    uint32
	Opcode uint32
	Unique uint64
	Nodeid uint64
	UID    uint32
	GID    uint32
	PID    uint32
	_      uint32
}

// ProtoRsp is the FUSE out-header. Error carries a negated errno on
// failure, zero on success.
type ProtoRsp struct {
	Len    uint32
	Error  int32
	Unique uint64
}

// Req overlays the FUSE request header onto buf. Caller guarantees
// len(buf) >= ProtoReqHeaderSize.
func Req(buf []byte) *ProtoReq {
	return (*ProtoReq)(unsafe.Pointer(&buf[0]))
}

// Rsp overlays the FUSE response header onto buf. Caller guarantees
// len(buf) >= ProtoRspHeaderSize.
func Rsp(buf []byte) *ProtoRsp {
	return (*ProtoRsp)(unsafe.Pointer(&buf[0]))
}

// protoInitIn is the payload of a FUSE_INIT request.
type protoInitIn struct {
	Major        uint32
	Minor        uint32
	MaxReadahead uint32
	Flags        uint32
}

// protoInitOut is the payload of a FUSE_INIT response.
type protoInitOut struct {
	Major               uint32
	Minor               uint32
	MaxReadahead        uint32
	Flags               uint32
	MaxBackground       uint16
	CongestionThreshold uint16
	MaxWrite            uint32
}

// protoStatfsOut is the payload of a FUSE_STATFS response (struct
// fuse_kstatfs).
type protoStatfsOut struct {
	Blocks  uint64
	Bfree   uint64
	Bavail  uint64
	Files   uint64
	Ffree   uint64
	Bsize   uint32
	Namelen uint32
	Frsize  uint32
	_       uint32
	_       [6]uint32
}

const (
	protoInitInSize    = int(unsafe.Sizeof(protoInitIn{}))
	protoInitOutSize   = int(unsafe.Sizeof(protoInitOut{}))
	protoStatfsOutSize = int(unsafe.Sizeof(protoStatfsOut{}))
)

const maxReadahead = 1 << 17

func initIn(buf []byte) *protoInitIn {
	return (*protoInitIn)(unsafe.Pointer(&buf[ProtoReqHeaderSize]))
}

func initOut(buf []byte) *protoInitOut {
	return (*protoInitOut)(unsafe.Pointer(&buf[ProtoRspHeaderSize]))
}

func statfsOut(buf []byte) *protoStatfsOut {
	return (*protoStatfsOut)(unsafe.Pointer(&buf[ProtoRspHeaderSize]))
}
