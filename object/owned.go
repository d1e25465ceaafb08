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

import "sync"

// Owned is the single owner handle for a tracked object. New hands out
// exactly one; whoever holds it decides when the object dies. Dispose is
// the only way a tracked object is torn down.
type Owned[T Target] struct {
	t    T
	once sync.Once
}

// Get returns the instance. The caller's role is affinity-checked.
func (o *Owned[T]) Get() T {
	o.t.objectCore().CheckAccess()
	return o.t
}

// Ref takes a strong reference to the owned object.
func (o *Owned[T]) Ref() *Ref[T] {
	return Acquire(o.t)
}

// Weak creates a weak reference to the owned object.
func (o *Owned[T]) Weak() Weak[T] {
	return WeakTo(o.t)
}

// Dispose tears the object down: it is removed from the live registry,
// outstanding strong references are reported, weak references are
// invalidated, and the Finalize hook (if any) runs. Exactly once;
// further calls are no-ops.
func (o *Owned[T]) Dispose() {
	o.once.Do(o.t.objectCore().dispose)
}
