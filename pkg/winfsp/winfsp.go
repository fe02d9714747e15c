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

package winfsp

import "fmt"

// Kind discriminates internal transaction requests by operation. The
// reserved kind never appears on the wire; it is used internally for
// bootstrap transactions that have no originating internal request.
type Kind uint32

const (
	ReservedKind Kind = iota
	CreateKind
	OverwriteKind
	CleanupKind
	CloseKind
	ReadKind
	WriteKind
	QueryInformationKind
	SetInformationKind
	QueryEaKind
	SetEaKind
	FlushBuffersKind
	QueryVolumeInformationKind
	SetVolumeInformationKind
	QueryDirectoryKind
	FileSystemControlKind
	DeviceControlKind
	ShutdownKind
	LockControlKind
	QuerySecurityKind
	SetSecurityKind
	QueryStreamInformationKind

	KindCount
)

var kindNames = [KindCount]string{
	"Reserved", "Create", "Overwrite", "Cleanup", "Close", "Read", "Write",
	"QueryInformation", "SetInformation", "QueryEa", "SetEa", "FlushBuffers",
	"QueryVolumeInformation", "SetVolumeInformation", "QueryDirectory",
	"FileSystemControl", "DeviceControl", "Shutdown", "LockControl",
	"QuerySecurity", "SetSecurity", "QueryStreamInformation",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// IoStatus is the completion status block of an internal response.
type IoStatus struct {
	Status      Status
	Information uint64
}

// Request is one internal transaction request handed down by the host
// framework. Hint is an opaque correlation token; it must be echoed
// verbatim in the matching Response. Buf is the kind-specific payload and
// is not interpreted by the bridge.
type Request struct {
	Size uint32
	Kind Kind
	Hint uint64
	Buf  []byte
}

// Response is one internal transaction response delivered back to the host
// framework over the side channel.
type Response struct {
	Size     uint32
	Kind     Kind
	Hint     uint64
	IoStatus IoStatus
	Buf      []byte
}

// VolumeParams are fixed at mount time and never change afterwards.
type VolumeParams struct {
	SectorSize                uint16
	SectorsPerAllocationUnit  uint16
	MaxComponentLength        uint16
	CaseSensitiveSearch       bool
	ReadOnlyVolume            bool
}
