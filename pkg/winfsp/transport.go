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

import (
	"context"
	"sync"
)

// Transport is the side channel between a mounted volume and the host
// framework. NextRequest returns the next queued internal request, or
// (nil, nil) when none is queued; it must not block waiting for one.
// SendResponse delivers a completed internal response; an error from it
// aborts the exchange call that attempted the delivery.
//
// Implementations must be safe for concurrent use by multiple exchange
// workers.
type Transport interface {
	NextRequest(ctx context.Context) (*Request, error)
	SendResponse(ctx context.Context, rsp *Response) error
}

// MemTransport is an in-memory Transport. The host side posts internal
// requests with PostRequest and collects delivered responses with
// TakeResponse. It is used by the simulator and by tests standing in for
// the host framework.
type MemTransport struct {
	mu        sync.Mutex
	requests  []*Request
	responses []*Response

	// SendError, when non-nil, is returned by the next SendResponse call
	// and then cleared. Tests use it to model side-channel delivery
	// failures.
	SendError error
}

var _ Transport = (*MemTransport)(nil)

func NewMemTransport() *MemTransport {
	return &MemTransport{}
}

// PostRequest queues an internal request for delivery to the bridge.
func (t *MemTransport) PostRequest(req *Request) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, req)
}

// RequestCount returns the number of posted, not yet fetched requests.
func (t *MemTransport) RequestCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// TakeResponse removes and returns the oldest delivered response, or nil
// if none has been delivered.
func (t *MemTransport) TakeResponse() *Response {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.responses) == 0 {
		return nil
	}
	rsp := t.responses[0]
	t.responses = t.responses[1:]
	return rsp
}

// ResponseCount returns the number of delivered, not yet taken responses.
func (t *MemTransport) ResponseCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.responses)
}

func (t *MemTransport) NextRequest(ctx context.Context) (*Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil, nil
	}
	req := t.requests[0]
	t.requests = t.requests[1:]
	return req, nil
}

func (t *MemTransport) SendResponse(ctx context.Context, rsp *Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.SendError; err != nil {
		t.SendError = nil
		return err
	}
	t.responses = append(t.responses, rsp)
	return nil
}
