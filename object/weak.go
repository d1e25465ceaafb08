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

package object

import "sync/atomic"

// weakNode is one link in an object's weak-reference chain. The target
// pointer is the liveness signal: non-nil means the object has not been
// disposed. Links are guarded by the owning Core's weakMu; the target is
// atomic so Get stays lock-free.
type weakNode struct {
	target atomic.Pointer[Core]
	prev   *weakNode
	next   *weakNode
}

// Weak observes an object's liveness without extending it. Get returns the
// instance only while the owner has not disposed it; disposal invalidates
// every outstanding Weak atomically before the Finalize hook runs, so a
// successful Get never returns a finalized object.
//
// A Weak is not safe for concurrent use by multiple goroutines; clone one
// per goroutine instead. The zero Weak is valid and permanently dead.
type Weak[T Target] struct {
	t    T
	core *Core
	node *weakNode
}

// WeakTo creates a weak reference to t. Creating a weak reference performs
// no affinity check: observing liveness is allowed from any role.
func WeakTo[T Target](t T) Weak[T] {
	c := t.objectCore()
	n := &weakNode{}
	n.target.Store(c)

	c.weakMu.Lock()
	defer c.weakMu.Unlock()
	if c.disposed.Load() {
		// Too late: hand back an already-dead reference.
		n.target.Store(nil)
		return Weak[T]{t: t, core: c, node: n}
	}
	n.next = c.weakHead
	if c.weakHead != nil {
		c.weakHead.prev = n
	}
	c.weakHead = n
	return Weak[T]{t: t, core: c, node: n}
}

// Get returns the instance and true while the object is alive. One atomic
// load; safe to call concurrently with disposal.
func (w Weak[T]) Get() (T, bool) {
	if w.node == nil || w.node.target.Load() == nil {
		var zero T
		return zero, false
	}
	return w.t, true
}

// Alive reports whether the object has not been disposed.
func (w Weak[T]) Alive() bool {
	return w.node != nil && w.node.target.Load() != nil
}

// Clone returns an independent weak reference to the same object. Cloning
// a dead reference yields a dead reference.
func (w Weak[T]) Clone() Weak[T] {
	if !w.Alive() {
		return Weak[T]{t: w.t, core: w.core}
	}
	return WeakTo(w.t)
}

// Release detaches the reference from the object's chain so disposal no
// longer has to visit it. Idempotent; releasing a dead or zero reference
// is a no-op. The reference reads as dead afterwards.
func (w *Weak[T]) Release() {
	if w.node == nil || w.core == nil {
		return
	}
	c := w.core
	c.weakMu.Lock()
	defer c.weakMu.Unlock()
	// Disposal may have raced us here and emptied the chain already.
	if w.node.target.Load() == nil {
		return
	}
	w.node.target.Store(nil)
	if w.node.prev != nil {
		w.node.prev.next = w.node.next
	} else {
		c.weakHead = w.node.next
	}
	if w.node.next != nil {
		w.node.next.prev = w.node.prev
	}
	w.node.prev, w.node.next = nil, nil
}
