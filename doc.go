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

// Package obx provides explicit lifetime and thread-affinity tracking for
// long-lived engine objects.
//
// Go's garbage collector answers "when is this memory reclaimable", but
// engine code tends to need a different question answered: "who owns this
// object, which goroutine may touch it, and is it still alive". obx models
// that directly. Objects embed an object.Core, are created through a single
// owner handle, and hand out strong references (which keep a use count and
// delay teardown diagnostics) and weak references (which observe liveness
// and are invalidated atomically when the owner disposes the object).
//
// Around that core sit a set of replaceable layers, published together as
// one immutable global snapshot:
//
//   - a live-object registry, which tracks every constructed object while
//     object tracking is enabled and feeds the census reports;
//   - a thread-identity oracle, which assigns logical roles (logic, audio,
//     assets, ...) to goroutines and backs affinity checks;
//   - a type-name table and resolver chain, which turn arbitrary values
//     into stable human-readable names for census and log output;
//   - a logger, through which diagnostics flow.
//
// Reads of the global state are a single atomic pointer load and never
// block. Reconfiguration (SetConfig, SetBuilder, SetExt, SetAll) rebuilds
// the layers through the configured apis.Builder under an internal mutex
// and publishes a fresh snapshot. Individual layers can be injected
// directly (SetRegistry, SetOracle), which pins them: pinned layers survive
// later rebuilds until unpinned.
//
// The registry and the affinity checks exist for development builds.
// Flipping config.ReleaseConfig() replaces them with no-op counterparts so
// that release binaries pay nothing for either.
package obx
