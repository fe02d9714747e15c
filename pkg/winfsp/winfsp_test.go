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
	"errors"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{ReservedKind, "Reserved"},
		{CreateKind, "Create"},
		{QueryVolumeInformationKind, "QueryVolumeInformation"},
		{QueryStreamInformationKind, "QueryStreamInformation"},
		{KindCount, "Kind(22)"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String(): got %q, want %q", uint32(tc.kind), got, tc.want)
		}
	}
}

func TestStatusSucceeded(t *testing.T) {
	if !StatusSuccess.Succeeded() {
		t.Error("StatusSuccess reported as failure")
	}
	for _, s := range []Status{StatusInvalidParameter, StatusAccessDenied, StatusCancelled} {
		if s.Succeeded() {
			t.Errorf("%v reported as success", s)
		}
	}
}

func TestStatusIsError(t *testing.T) {
	var err error = StatusAccessDenied
	if !errors.Is(err, StatusAccessDenied) {
		t.Error("status does not match itself through errors.Is")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}

func TestMemTransportOrdering(t *testing.T) {
	tr := NewMemTransport()
	ctx := context.Background()

	if req, err := tr.NextRequest(ctx); req != nil || err != nil {
		t.Fatalf("empty transport: got (%v, %v)", req, err)
	}

	a := &Request{Kind: CreateKind, Hint: 1}
	b := &Request{Kind: CloseKind, Hint: 2}
	tr.PostRequest(a)
	tr.PostRequest(b)
	if req, _ := tr.NextRequest(ctx); req != a {
		t.Error("requests not delivered in posting order")
	}
	if req, _ := tr.NextRequest(ctx); req != b {
		t.Error("requests not delivered in posting order")
	}

	if err := tr.SendResponse(ctx, &Response{Hint: 1}); err != nil {
		t.Fatalf("SendResponse: %v", err)
	}
	if tr.ResponseCount() != 1 {
		t.Fatalf("ResponseCount: got %d, want 1", tr.ResponseCount())
	}
	if rsp := tr.TakeResponse(); rsp == nil || rsp.Hint != 1 {
		t.Fatalf("TakeResponse: got %v", rsp)
	}
}

func TestMemTransportSendErrorOnce(t *testing.T) {
	tr := NewMemTransport()
	ctx := context.Background()

	fail := errors.New("injected")
	tr.SendError = fail
	if err := tr.SendResponse(ctx, &Response{}); err != fail {
		t.Fatalf("got %v, want injected failure", err)
	}
	if err := tr.SendResponse(ctx, &Response{}); err != nil {
		t.Fatalf("failure not cleared after one delivery: %v", err)
	}
	if tr.ResponseCount() != 1 {
		t.Fatalf("ResponseCount: got %d, want 1", tr.ResponseCount())
	}
}
