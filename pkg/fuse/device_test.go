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
	"time"

	"github.com/msgpo/winfuse/pkg/winfsp"
)

func TestNewDeviceRequiresTransport(t *testing.T) {
	if _, err := NewDevice(nil, winfsp.VolumeParams{}, nil); err == nil {
		t.Fatal("device created without a transport")
	}
}

func TestNewDeviceQueuesBootstrap(t *testing.T) {
	d := newTestDevice(t, winfsp.NewMemTransport())
	defer d.Close()

	c := d.Ioq.NextPending()
	if c == nil {
		t.Fatal("no bootstrap context pending")
	}
	if c.InternalRequest != nil {
		t.Error("bootstrap context carries an internal request")
	}
	if d.VersionMajor() != 0 {
		t.Errorf("version before negotiation: got %d, want 0", d.VersionMajor())
	}
}

func TestDeviceCaseSensitivityFollowsVolumeParams(t *testing.T) {
	d, err := NewDevice(winfsp.NewMemTransport(), winfsp.VolumeParams{CaseSensitiveSearch: false}, nil)
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer d.Close()

	d.Cache.SetEntry(1, "File.TXT", Entry{Ino: 4})
	if _, ok := d.Cache.GetEntry(1, "file.txt"); !ok {
		t.Error("case-insensitive volume missed a differently cased name")
	}
}

func TestDeviceExpirationRoutine(t *testing.T) {
	d := newTestDevice(t, winfsp.NewMemTransport())
	defer d.Close()

	d.Cache.SetEntry(1, "a", Entry{Ino: 2})
	d.ExpirationRoutine(time.Now().Add(time.Hour))
	if d.Cache.Len() != 0 {
		t.Errorf("sweep left %d entries", d.Cache.Len())
	}
}

func TestDeviceCloseTwice(t *testing.T) {
	d := newTestDevice(t, winfsp.NewMemTransport())
	d.Close()
	d.Close()
}
