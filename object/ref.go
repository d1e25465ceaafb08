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

// Ref is a counted strong reference. It declares active use of the object:
// the owner can still dispose at any moment, but doing so while strong
// references are outstanding is flagged as a leak diagnostic. A Ref does
// not keep a disposed object usable; it keeps the books honest.
type Ref[T Target] struct {
	t        T
	core     *Core
	released atomic.Bool
}

// Acquire takes a strong reference to t. For first-referencing objects
// this is the binding moment: the first acquire fixes the object's role to
// the caller's. The caller's role is affinity-checked.
func Acquire[T Target](t T) *Ref[T] {
	c := t.objectCore()
	c.bindFirstTouch()
	c.CheckAccess()
	c.strong.Add(1)
	return &Ref[T]{t: t, core: c}
}

// Get returns the instance. The caller's role is affinity-checked on
// every call, so a Ref smuggled across goroutines still trips.
func (r *Ref[T]) Get() T {
	r.core.CheckAccess()
	return r.t
}

// Clone takes an additional strong reference to the same object.
func (r *Ref[T]) Clone() *Ref[T] {
	return Acquire(r.t)
}

// Release drops the reference. Idempotent: only the first call decrements
// the count.
func (r *Ref[T]) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.core.strong.Add(-1)
	}
}
