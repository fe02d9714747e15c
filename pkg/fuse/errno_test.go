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
	"testing"

	"github.com/msgpo/winfuse/pkg/winfsp"
)

func TestNtStatusFromErrno(t *testing.T) {
	cases := []struct {
		errno int32
		want  winfsp.Status
	}{
		{0, winfsp.StatusSuccess},
		{errNOENT, winfsp.StatusObjectNameNotFound},
		{errIO, winfsp.StatusIoDeviceError},
		{errNOMEM, winfsp.StatusInsufficientResources},
		{errACCES, winfsp.StatusAccessDenied},
		{errEXIST, winfsp.StatusObjectNameCollision},
		{errNOTDIR, winfsp.StatusNotADirectory},
		{errISDIR, winfsp.StatusFileIsADirectory},
		{errINVAL, winfsp.StatusInvalidParameter},
		{errNOSPC, winfsp.StatusDiskFull},
		{errROFS, winfsp.StatusMediaWriteProtected},
		{errNAMETOOLONG, winfsp.StatusObjectNameInvalid},
		{errNOSYS, winfsp.StatusInvalidDeviceRequest},
		{errNOTEMPTY, winfsp.StatusDirectoryNotEmpty},
		{errOPNOTSUPP, winfsp.StatusNotSupported},
		{errTIMEDOUT, winfsp.StatusIoTimeout},
		{errDQUOT, winfsp.StatusDiskFull},
	}
	for _, tc := range cases {
		if got := NtStatusFromErrno(tc.errno); got != tc.want {
			t.Errorf("errno %d: got %v, want %v", tc.errno, got, tc.want)
		}
		// FUSE responses carry negated errno values.
		if got := NtStatusFromErrno(-tc.errno); got != tc.want {
			t.Errorf("errno %d: got %v, want %v", -tc.errno, got, tc.want)
		}
	}
}

func TestNtStatusFromErrnoDefault(t *testing.T) {
	for _, errno := range []int32{3, 200, -513, 1 << 20} {
		if got := NtStatusFromErrno(errno); got != winfsp.StatusAccessDenied {
			t.Errorf("errno %d: got %v, want %v", errno, got, winfsp.StatusAccessDenied)
		}
	}
}
