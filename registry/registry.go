/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package registry implements the process-wide live-object table behind
// census and leak diagnostics. Entries live in a slot table addressed by
// stable integer handles; adding and removing are O(1) and allocation-free
// once the table has grown to its working size.
package registry

import (
	"sync"

	"dirpx.dev/obx/apis"
)

// New constructs the instrumented live-object registry.
func New(_ apis.Config) apis.Registry {
	return &registry{}
}

// slot is one entry in the table. gen increments on every removal so a
// stale handle can never free a reused slot.
type slot struct {
	entry apis.Trackable
	gen   uint32
}

// registry is the instrumented apis.Registry. A single mutex guards the
// table, the free list, and the count; it is held only for the brief
// splice/unsplice/tally operations.
type registry struct {
	mu    sync.Mutex
	slots []slot
	free  []uint32
	count int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// handleIndexBits is the low half of a Handle; the high half carries the
// slot generation. Index zero is reserved so the zero Handle stays invalid.
const handleIndexBits = 32

func packHandle(idx, gen uint32) apis.Handle {
	return apis.Handle(uint64(gen)<<handleIndexBits | uint64(idx+1))
}

func unpackHandle(h apis.Handle) (idx, gen uint32) {
	return uint32(uint64(h)&(1<<handleIndexBits-1)) - 1, uint32(uint64(h) >> handleIndexBits)
}

// Add records a live instance and returns its slot handle.
func (r *registry) Add(t apis.Trackable) apis.Handle {
	if t == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = uint32(len(r.slots) - 1)
	}
	r.slots[idx].entry = t
	r.count++
	return packHandle(idx, r.slots[idx].gen)
}

// Remove drops a previously added instance. Zero or stale handles are no-ops.
func (r *registry) Remove(h apis.Handle) {
	if h == 0 {
		return
	}
	idx, gen := unpackHandle(h)

	r.mu.Lock()
	defer r.mu.Unlock()

	if int(idx) >= len(r.slots) {
		return
	}
	s := &r.slots[idx]
	if s.entry == nil || s.gen != gen {
		return // stale handle
	}
	s.entry = nil
	s.gen++
	r.free = append(r.free, idx)
	r.count--
}

// Count returns the number of live entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Tally groups live entries by TypeName. The walk happens under the
// registry lock so the totals match Count at a single shared instant.
func (r *registry) Tally() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int)
	for i := range r.slots {
		if e := r.slots[i].entry; e != nil {
			out[e.TypeName()]++
		}
	}
	return out
}

// Enabled reports that this registry records entries.
func (r *registry) Enabled() bool { return true }
