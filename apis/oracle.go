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

// Oracle answers which logical role the calling goroutine is registered
// under. It is a pure query service; the only state it owns is the
// goroutine-to-role assignment table.
type Oracle interface {
	// Current returns the caller's role, or RoleInvalid and an error when
	// the goroutine has not been registered.
	Current() (Role, error)

	// MustCurrent is Current, but panics on an unregistered goroutine.
	// An unrecognized thread is fatal: the core cannot assign a default
	// affinity and must not silently mis-attribute ownership.
	MustCurrent() Role

	// Register assigns the calling goroutine a role for its lifetime.
	// Registering again with the same role is idempotent; a different
	// role is an error.
	Register(r Role) error

	// Unregister drops the calling goroutine's role assignment.
	Unregister()
}
