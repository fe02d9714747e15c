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

// rootID is the fixed FUSE node id of the volume root.
const rootID = 1

func init() {
	RegisterProcessFunc(winfsp.ReservedKind, opReserved)
	RegisterProcessFunc(winfsp.QueryVolumeInformationKind, opQueryVolumeInformation)
}

// opReserved drives protocol negotiation. The bootstrap context posted at
// volume creation has no internal request; its first dispatch emits
// FUSE_INIT and its second consumes the init response and publishes the
// negotiated version through the device gate. Either way the context
// produces no internal response.
func opReserved(c *Context) bool {
	if c.FuseResponse == nil {
		req := Req(c.FuseRequest)
		req.Len = uint32(ProtoReqHeaderSize + protoInitInSize)
		req.Opcode = opInit
		in := initIn(c.FuseRequest)
		in.Major = ProtoVersion
		in.Minor = ProtoVersionMinor
		in.MaxReadahead = maxReadahead
		return true
	}

	rsp := Rsp(c.FuseResponse)
	if rsp.Error != 0 || int(rsp.Len) < ProtoRspHeaderSize+protoInitOutSize {
		c.Dev.setVersionMajor(VersionFailed)
		return false
	}
	out := initOut(c.FuseResponse)
	if out.Major < ProtoVersion {
		c.Dev.setVersionMajor(VersionFailed)
		return false
	}
	c.Dev.setVersionMajor(out.Major)
	return false
}

// opQueryVolumeInformation satisfies a query-volume-information request
// with one FUSE_STATFS round trip, copying the statfs payload into a
// separately allocated internal response.
func opQueryVolumeInformation(c *Context) bool {
	if c.FuseResponse == nil {
		req := Req(c.FuseRequest)
		req.Len = uint32(ProtoReqHeaderSize)
		req.Opcode = opStatfs
		req.Nodeid = rootID
		return true
	}

	rsp := Rsp(c.FuseResponse)
	if rsp.Error != 0 {
		c.InternalResponse.IoStatus.Status = NtStatusFromErrno(rsp.Error)
		return false
	}
	if int(rsp.Len) < ProtoRspHeaderSize+protoStatfsOutSize {
		c.InternalResponse.IoStatus.Status = winfsp.StatusIoDeviceError
		return false
	}

	out := c.AllocResponse(uint32(protoStatfsOutSize))
	copy(out.Buf, c.FuseResponse[ProtoRspHeaderSize:ProtoRspHeaderSize+protoStatfsOutSize])
	out.IoStatus.Status = winfsp.StatusSuccess
	out.IoStatus.Information = uint64(protoStatfsOutSize)
	return false
}
