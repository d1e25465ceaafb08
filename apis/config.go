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

import "time"

// Config carries read-only knobs for the object core.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// TrackObjects enables the live-object registry and birth timestamps.
	// When false, builders are expected to produce a no-op registry and
	// census reports say "unavailable".
	TrackObjects bool

	// ThreadChecks enables affinity enforcement on object access.
	// When false, access checks return immediately and first-touch binding
	// is skipped; production builds pay no cost.
	ThreadChecks bool

	// Clock supplies timestamps for birth times and census reports.
	// Nil means time.Now.
	Clock func() time.Time

	// IncludeBuiltins controls whether builtin/no-package named types
	// (e.g., "int", "string") are returned as type names. If false, such cases yield "".
	IncludeBuiltins bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// during type-name resolution.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered primary
	// when searching for a nearest named inner type. If true, prefer V; otherwise K.
	MapPreferElem bool
}

// Now returns the configured clock's current time, falling back to time.Now.
func (c Config) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}
