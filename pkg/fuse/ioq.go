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
	"sync"

	"github.com/google/btree"
)

// Ioq is the per-volume correlation queue. A context lives in exactly one
// of two sets: pending (ready to be written out as a FUSE request) or
// processing (written out, awaiting the matching FUSE response, keyed by
// its correlation id). All mutations serialize on one mutex; exchange
// workers call into the queue concurrently.
type Ioq struct {
	mu         sync.Mutex
	unique     uint64
	pending    []*Context
	processing *btree.BTree
}

type ioqItem struct {
	unique  uint64
	context *Context
}

func (i ioqItem) Less(than btree.Item) bool {
	return i.unique < than.(ioqItem).unique
}

const ioqDegree = 8

func NewIoq() *Ioq {
	return &Ioq{processing: btree.New(ioqDegree)}
}

// StartProcessing assigns the context a fresh correlation id and moves it
// into the processing set. Ids increase monotonically and are never
// reused for the lifetime of the queue, so an id can never collide with
// one still outstanding.
func (q *Ioq) StartProcessing(c *Context) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.unique++
	if q.unique == 0 {
		q.unique++
	}
	c.Unique = q.unique
	q.processing.ReplaceOrInsert(ioqItem{unique: q.unique, context: c})
	return q.unique
}

// EndProcessing removes and returns the processing-set context with the
// given correlation id. A stale or unknown id returns nil; the caller
// treats that as a non-event.
func (q *Ioq) EndProcessing(unique uint64) *Context {
	q.mu.Lock()
	defer q.mu.Unlock()
	item := q.processing.Delete(ioqItem{unique: unique})
	if item == nil {
		return nil
	}
	return item.(ioqItem).context
}

// PostPending appends the context to the pending set. Pending contexts
// are handed out in FIFO order.
func (q *Ioq) PostPending(c *Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, c)
}

// NextPending removes and returns the oldest pending context, or nil when
// the pending set is empty.
func (q *Ioq) NextPending() *Context {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	c := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return c
}

// Close drains both sets, deleting every queued context. Contexts being
// dispatched at the time of the call are owned by their worker and are
// not touched.
func (q *Ioq) Close() {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	var processing []*Context
	q.processing.Ascend(func(item btree.Item) bool {
		processing = append(processing, item.(ioqItem).context)
		return true
	})
	q.processing.Clear(false)
	q.mu.Unlock()

	for _, c := range pending {
		c.delete()
	}
	for _, c := range processing {
		c.delete()
	}
}
