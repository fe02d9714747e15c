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

// The FUSE wire protocol speaks Linux errno numbers regardless of the
// platform the volume is hosted on, so the table below is written against
// the Linux assignments rather than the local syscall package.
const (
	errPERM        = 1
	errNOENT       = 2
	errINTR        = 4
	errIO          = 5
	errNXIO        = 6
	errBADF        = 9
	errAGAIN       = 11
	errNOMEM       = 12
	errACCES       = 13
	errBUSY        = 16
	errEXIST       = 17
	errXDEV        = 18
	errNODEV       = 19
	errNOTDIR      = 20
	errISDIR       = 21
	errINVAL       = 22
	errNFILE       = 23
	errMFILE       = 24
	errFBIG        = 27
	errNOSPC       = 28
	errROFS        = 30
	errRANGE       = 34
	errDEADLK      = 35
	errNAMETOOLONG = 36
	errNOSYS       = 38
	errNOTEMPTY    = 39
	errNODATA      = 61
	errOVERFLOW    = 75
	errOPNOTSUPP   = 95
	errTIMEDOUT    = 110
	errDQUOT       = 122
)

var ntStatusFromErrno = map[int32]winfsp.Status{
	errPERM:        winfsp.StatusAccessDenied,
	errNOENT:       winfsp.StatusObjectNameNotFound,
	errINTR:        winfsp.StatusCancelled,
	errIO:          winfsp.StatusIoDeviceError,
	errNXIO:        winfsp.StatusNoSuchDevice,
	errBADF:        winfsp.StatusInvalidHandle,
	errAGAIN:       winfsp.StatusDeviceNotReady,
	errNOMEM:       winfsp.StatusInsufficientResources,
	errACCES:       winfsp.StatusAccessDenied,
	errBUSY:        winfsp.StatusDeviceBusy,
	errEXIST:       winfsp.StatusObjectNameCollision,
	errXDEV:        winfsp.StatusNotSameDevice,
	errNODEV:       winfsp.StatusNoSuchDevice,
	errNOTDIR:      winfsp.StatusNotADirectory,
	errISDIR:       winfsp.StatusFileIsADirectory,
	errINVAL:       winfsp.StatusInvalidParameter,
	errNFILE:       winfsp.StatusTooManyOpenedFiles,
	errMFILE:       winfsp.StatusTooManyOpenedFiles,
	errFBIG:        winfsp.StatusFileTooLarge,
	errNOSPC:       winfsp.StatusDiskFull,
	errROFS:        winfsp.StatusMediaWriteProtected,
	errRANGE:       winfsp.StatusBufferOverflow,
	errDEADLK:      winfsp.StatusPossibleDeadlock,
	errNAMETOOLONG: winfsp.StatusObjectNameInvalid,
	errNOSYS:       winfsp.StatusInvalidDeviceRequest,
	errNOTEMPTY:    winfsp.StatusDirectoryNotEmpty,
	errNODATA:      winfsp.StatusObjectNameNotFound,
	errOVERFLOW:    winfsp.StatusIntegerOverflow,
	errOPNOTSUPP:   winfsp.StatusNotSupported,
	errTIMEDOUT:    winfsp.StatusIoTimeout,
	errDQUOT:       winfsp.StatusDiskFull,
}

// NtStatusFromErrno translates a FUSE errno into the host framework's
// result code. FUSE responses carry negated errno values; both signs are
// accepted. Zero translates to success and anything outside the table to
// access denied.
func NtStatusFromErrno(errno int32) winfsp.Status {
	if errno < 0 {
		errno = -errno
	}
	if errno == 0 {
		return winfsp.StatusSuccess
	}
	if status, ok := ntStatusFromErrno[errno]; ok {
		return status
	}
	return winfsp.StatusAccessDenied
}
