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
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/btree"
	lru "github.com/hashicorp/golang-lru"
)

// Entry is the cached result of a name resolution: the resolved inode and
// the attributes the FUSE server reported for it.
type Entry struct {
	Ino   uint64
	Size  uint64
	Mode  uint32
	Nlink uint32
}

// Cache is the per-volume attribute/name cache. Entries are keyed by
// (parent inode, component name), case-folded on case-insensitive
// volumes. Capacity is bounded LRU; on top of that every entry carries an
// absolute deadline computed at insertion from the expiration hint, and
// InvalidateExpired sweeps entries whose deadline has passed. The sweep
// is driven by an external timer, not by the exchange path.
type Cache struct {
	mu        sync.Mutex
	entries   *lru.Cache
	deadlines *btree.BTree
	hint      time.Duration
	caseIns   bool
	clock     clock.Clock
}

type cacheKey struct {
	parent uint64
	name   string
}

type cacheEntry struct {
	entry    Entry
	deadline int64
}

type cacheDeadline struct {
	when int64
	key  cacheKey
}

func (d cacheDeadline) Less(than btree.Item) bool {
	o := than.(cacheDeadline)
	if d.when != o.when {
		return d.when < o.when
	}
	if d.key.parent != o.key.parent {
		return d.key.parent < o.key.parent
	}
	return d.key.name < o.key.name
}

const (
	cacheCapacity    = 4096
	cacheDefaultHint = 10 * time.Second
)

// NewCache creates a cache. A zero expiration hint selects the default.
func NewCache(expirationHint time.Duration, caseInsensitive bool, clk clock.Clock) (*Cache, error) {
	if expirationHint == 0 {
		expirationHint = cacheDefaultHint
	}
	if clk == nil {
		clk = clock.New()
	}
	c := &Cache{
		deadlines: btree.New(ioqDegree),
		hint:      expirationHint,
		caseIns:   caseInsensitive,
		clock:     clk,
	}
	entries, err := lru.NewWithEvict(cacheCapacity, func(key, value interface{}) {
		// Runs under c.mu (all lru mutation happens inside it).
		c.deadlines.Delete(cacheDeadline{
			when: value.(*cacheEntry).deadline,
			key:  key.(cacheKey),
		})
	})
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

func (c *Cache) key(parent uint64, name string) cacheKey {
	if c.caseIns {
		name = strings.ToUpper(name)
	}
	return cacheKey{parent: parent, name: name}
}

// SetEntry inserts or replaces the entry for (parent, name) with a fresh
// deadline.
func (c *Cache) SetEntry(parent uint64, name string, e Entry) {
	key := c.key(parent, name)
	deadline := c.clock.Now().Add(c.hint).UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries.Peek(key); ok {
		c.deadlines.Delete(cacheDeadline{when: prev.(*cacheEntry).deadline, key: key})
	}
	c.entries.Add(key, &cacheEntry{entry: e, deadline: deadline})
	c.deadlines.ReplaceOrInsert(cacheDeadline{when: deadline, key: key})
}

// GetEntry returns the cached entry for (parent, name). Expired entries
// are misses even before the sweep has collected them.
func (c *Cache) GetEntry(parent uint64, name string) (Entry, bool) {
	key := c.key(parent, name)
	now := c.clock.Now().UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries.Get(key)
	if !ok {
		return Entry{}, false
	}
	ce := value.(*cacheEntry)
	if ce.deadline <= now {
		c.entries.Remove(key)
		return Entry{}, false
	}
	return ce.entry, true
}

// InvalidateEntry removes the entry for (parent, name), if present.
func (c *Cache) InvalidateEntry(parent uint64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Remove(c.key(parent, name))
}

// InvalidateExpired evicts every entry whose deadline is at or before
// now.
func (c *Cache) InvalidateExpired(now time.Time) {
	cutoff := now.UnixNano()

	c.mu.Lock()
	defer c.mu.Unlock()
	var expired []cacheKey
	c.deadlines.AscendLessThan(cacheDeadline{when: cutoff + 1}, func(item btree.Item) bool {
		expired = append(expired, item.(cacheDeadline).key)
		return true
	})
	for _, key := range expired {
		c.entries.Remove(key)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Close drops all entries.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	c.deadlines.Clear(false)
}
