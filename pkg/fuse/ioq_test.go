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

import "testing"

func TestIoqStartEndProcessing(t *testing.T) {
	q := NewIoq()
	c := &Context{}

	unique := q.StartProcessing(c)
	if unique == 0 {
		t.Fatal("correlation id 0 handed out")
	}
	if c.Unique != unique {
		t.Fatalf("context unique %d, want %d", c.Unique, unique)
	}

	if got := q.EndProcessing(unique); got != c {
		t.Fatalf("EndProcessing returned %v, want the started context", got)
	}
	if got := q.EndProcessing(unique); got != nil {
		t.Fatalf("second EndProcessing returned %v, want nil", got)
	}
}

func TestIoqUniquesMonotonic(t *testing.T) {
	q := NewIoq()
	var last uint64
	for i := 0; i < 100; i++ {
		unique := q.StartProcessing(&Context{})
		if unique <= last {
			t.Fatalf("correlation id %d after %d", unique, last)
		}
		last = unique
	}
}

func TestIoqPendingFIFO(t *testing.T) {
	q := NewIoq()
	a, b, c := &Context{}, &Context{}, &Context{}
	q.PostPending(a)
	q.PostPending(b)
	q.PostPending(c)

	for i, want := range []*Context{a, b, c} {
		if got := q.NextPending(); got != want {
			t.Fatalf("NextPending %d returned wrong context", i)
		}
	}
	if got := q.NextPending(); got != nil {
		t.Fatalf("NextPending on empty set returned %v, want nil", got)
	}
}

func TestIoqCloseDrainsBothSets(t *testing.T) {
	q := NewIoq()

	finis := 0
	fini := func(*Context) { finis++ }
	q.PostPending(&Context{Fini: fini})
	q.PostPending(&Context{Fini: fini})
	unique := q.StartProcessing(&Context{Fini: fini})

	q.Close()

	if finis != 3 {
		t.Fatalf("finalizers ran %d times, want 3", finis)
	}
	if q.NextPending() != nil {
		t.Error("pending set not drained")
	}
	if q.EndProcessing(unique) != nil {
		t.Error("processing set not drained")
	}
}
