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
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/msgpo/winfuse/pkg/log"
	"github.com/msgpo/winfuse/pkg/winfsp"
)

// VersionFailed is the negotiated-version sentinel meaning protocol
// negotiation failed permanently; every exchange call observing it fails
// with access denied.
const VersionFailed = ^uint32(0)

// Device is the per-volume state: the correlation queue, the attribute
// cache, the negotiation gate and the immutable volume parameters. One
// Device exists per mounted volume, created at mount and closed at
// unmount.
type Device struct {
	Ioq          *Ioq
	Cache        *Cache
	VolumeParams winfsp.VolumeParams

	transport winfsp.Transport
	logger    *log.Logger

	// versionMajor is 0 until negotiation completes, VersionFailed if it
	// failed, the negotiated major version otherwise. initDone is closed
	// exactly once when the value leaves 0.
	versionMajor atomic.Uint32
	initOnce     sync.Once
	initDone     chan struct{}
}

// NewDevice creates the per-volume state and queues the bootstrap
// context, so the first idle exchange call starts protocol negotiation.
// On error nothing needs cleanup; on success the caller owns the device
// and must Close it at unmount.
func NewDevice(transport winfsp.Transport, params winfsp.VolumeParams, logger *log.Logger) (*Device, error) {
	if transport == nil {
		return nil, errors.New("fuse: device requires a transport")
	}
	if logger == nil {
		logger = log.Discarder()
	}

	d := &Device{
		VolumeParams: params,
		transport:    transport,
		logger:       logger,
		initDone:     make(chan struct{}),
	}

	d.Ioq = NewIoq()
	cache, err := NewCache(0, !params.CaseSensitiveSearch, nil)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.Cache = cache

	bootstrap, status := newContext(d, nil)
	if status != winfsp.StatusSuccess {
		d.Close()
		return nil, status
	}
	d.Ioq.PostPending(bootstrap)

	return d, nil
}

// Close tears down the volume state: cache first, then queue. It
// tolerates partially constructed devices.
func (d *Device) Close() {
	if d.Cache != nil {
		d.Cache.Close()
		d.Cache = nil
	}
	if d.Ioq != nil {
		d.Ioq.Close()
		d.Ioq = nil
	}
}

// ExpirationRoutine sweeps the attribute cache. It is invoked by an
// external periodic timer, never from the exchange path.
func (d *Device) ExpirationRoutine(now time.Time) {
	d.Cache.InvalidateExpired(now)
}

// VersionMajor returns the negotiated protocol major version, 0 while
// negotiation is outstanding, or VersionFailed.
func (d *Device) VersionMajor() uint32 {
	return d.versionMajor.Load()
}

// setVersionMajor publishes the negotiation outcome and signals the gate.
// Only the first call has any effect.
func (d *Device) setVersionMajor(version uint32) {
	d.initOnce.Do(func() {
		d.versionMajor.Store(version)
		close(d.initDone)
		if version == VersionFailed {
			d.logger.Debugf("protocol negotiation failed")
		} else {
			d.logger.Debugf("negotiated FUSE protocol major version %d", version)
		}
	})
}
