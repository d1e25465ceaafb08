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

package apis

// Handle identifies a live-registry slot. The zero Handle means
// "not tracked" and is always safe to Remove.
type Handle uint64

// Trackable is the minimal surface the live registry needs from an entry.
type Trackable interface {
	// TypeName returns the census grouping name for the instance.
	TypeName() string
}

// Registry is the process-wide live-object table used for leak and census
// diagnostics. Implementations must keep Count consistent with Add/Remove
// under a single lock so census totals are exact at the instant the lock
// is held, and must hold that lock only for brief splice/tally operations.
type Registry interface {
	// Add records a live instance and returns its slot handle.
	Add(t Trackable) Handle

	// Remove drops a previously added instance.
	// Zero or stale handles are no-ops.
	Remove(h Handle)

	// Count returns the number of live entries.
	Count() int

	// Tally groups live entries by TypeName under the registry lock.
	Tally() map[string]int

	// Enabled reports whether the registry actually records anything.
	// The no-op flavor used when object tracking is disabled returns false.
	Enabled() bool
}
