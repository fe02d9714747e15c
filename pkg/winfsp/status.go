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

// Status is an NTSTATUS-style result code. The severity lives in the top
// two bits; anything with the sign bit clear counts as success. Status
// implements error so that channel-level failures can propagate through
// ordinary Go error returns without translation.
type Status uint32

const (
	StatusSuccess Status = 0x00000000

	StatusBufferOverflow Status = 0x80000005
	StatusDeviceBusy     Status = 0x80000011

	StatusInvalidHandle         Status = 0xC0000008
	StatusInvalidParameter      Status = 0xC000000D
	StatusNoSuchDevice          Status = 0xC000000E
	StatusInvalidDeviceRequest  Status = 0xC0000010
	StatusEndOfFile             Status = 0xC0000011
	StatusAccessDenied          Status = 0xC0000022
	StatusBufferTooSmall        Status = 0xC0000023
	StatusObjectNameInvalid     Status = 0xC0000033
	StatusObjectNameNotFound    Status = 0xC0000034
	StatusObjectNameCollision   Status = 0xC0000035
	StatusObjectPathNotFound    Status = 0xC000003A
	StatusSharingViolation      Status = 0xC0000043
	StatusDiskFull              Status = 0xC000007F
	StatusIntegerOverflow       Status = 0xC0000095
	StatusInsufficientResources Status = 0xC000009A
	StatusMediaWriteProtected   Status = 0xC00000A2
	StatusDeviceNotReady        Status = 0xC00000A3
	StatusIoTimeout             Status = 0xC00000B5
	StatusFileIsADirectory      Status = 0xC00000BA
	StatusNotSupported          Status = 0xC00000BB
	StatusNotSameDevice         Status = 0xC00000D4
	StatusDirectoryNotEmpty     Status = 0xC0000101
	StatusNotADirectory         Status = 0xC0000103
	StatusTooManyOpenedFiles    Status = 0xC000011F
	StatusCancelled             Status = 0xC0000120
	StatusCannotDelete          Status = 0xC0000121
	StatusFileDeleted           Status = 0xC0000123
	StatusIoDeviceError         Status = 0xC0000185
	StatusPossibleDeadlock      Status = 0xC0000194
	StatusFileTooLarge          Status = 0xC0000904
)

var statusNames = map[Status]string{
	StatusSuccess:               "STATUS_SUCCESS",
	StatusBufferOverflow:        "STATUS_BUFFER_OVERFLOW",
	StatusDeviceBusy:            "STATUS_DEVICE_BUSY",
	StatusInvalidHandle:         "STATUS_INVALID_HANDLE",
	StatusInvalidParameter:      "STATUS_INVALID_PARAMETER",
	StatusNoSuchDevice:          "STATUS_NO_SUCH_DEVICE",
	StatusInvalidDeviceRequest:  "STATUS_INVALID_DEVICE_REQUEST",
	StatusEndOfFile:             "STATUS_END_OF_FILE",
	StatusAccessDenied:          "STATUS_ACCESS_DENIED",
	StatusBufferTooSmall:        "STATUS_BUFFER_TOO_SMALL",
	StatusObjectNameInvalid:     "STATUS_OBJECT_NAME_INVALID",
	StatusObjectNameNotFound:    "STATUS_OBJECT_NAME_NOT_FOUND",
	StatusObjectNameCollision:   "STATUS_OBJECT_NAME_COLLISION",
	StatusObjectPathNotFound:    "STATUS_OBJECT_PATH_NOT_FOUND",
	StatusSharingViolation:      "STATUS_SHARING_VIOLATION",
	StatusDiskFull:              "STATUS_DISK_FULL",
	StatusIntegerOverflow:       "STATUS_INTEGER_OVERFLOW",
	StatusInsufficientResources: "STATUS_INSUFFICIENT_RESOURCES",
	StatusMediaWriteProtected:   "STATUS_MEDIA_WRITE_PROTECTED",
	StatusDeviceNotReady:        "STATUS_DEVICE_NOT_READY",
	StatusIoTimeout:             "STATUS_IO_TIMEOUT",
	StatusFileIsADirectory:      "STATUS_FILE_IS_A_DIRECTORY",
	StatusNotSupported:          "STATUS_NOT_SUPPORTED",
	StatusNotSameDevice:         "STATUS_NOT_SAME_DEVICE",
	StatusDirectoryNotEmpty:     "STATUS_DIRECTORY_NOT_EMPTY",
	StatusNotADirectory:         "STATUS_NOT_A_DIRECTORY",
	StatusTooManyOpenedFiles:    "STATUS_TOO_MANY_OPENED_FILES",
	StatusCancelled:             "STATUS_CANCELLED",
	StatusCannotDelete:          "STATUS_CANNOT_DELETE",
	StatusFileDeleted:           "STATUS_FILE_DELETED",
	StatusIoDeviceError:         "STATUS_IO_DEVICE_ERROR",
	StatusPossibleDeadlock:      "STATUS_POSSIBLE_DEADLOCK",
	StatusFileTooLarge:          "STATUS_FILE_TOO_LARGE",
}

// Succeeded reports whether s is a success or informational code
// (NT_SUCCESS semantics: non-negative when viewed as a signed 32-bit
// value).
func (s Status) Succeeded() bool {
	return int32(s) >= 0
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(0x%08X)", uint32(s))
}

func (s Status) Error() string {
	return s.String()
}
