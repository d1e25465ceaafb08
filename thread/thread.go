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

// Package thread implements the thread identity oracle: a goroutine-to-role
// assignment table answering "what logical role is the caller running as".
package thread

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/obx/apis"
)

var (
	// ErrUnrecognizedThread is returned when the calling goroutine holds
	// no role assignment.
	ErrUnrecognizedThread = errors.New("obx(thread): goroutine has no registered role")
	// ErrRoleConflict is returned when a goroutine re-registers with a
	// different role than it already holds.
	ErrRoleConflict = errors.New("obx(thread): goroutine already registered with a different role")
	// ErrInvalidRole is returned when an out-of-range role is registered.
	ErrInvalidRole = errors.New("obx(thread): invalid role")
)

// New constructs an apis.Oracle backed by a goroutine-id keyed table.
func New() apis.Oracle {
	return &oracle{}
}

// oracle maps goroutine ids to roles. Reads dominate (one lookup per
// affinity check), so the table is a sync.Map.
type oracle struct {
	roles sync.Map // goroutine id (uint64) -> apis.Role
}

// Ensure oracle implements apis.Oracle.
var _ apis.Oracle = (*oracle)(nil)

// Register assigns the calling goroutine a role for its lifetime.
// Idempotent for the same role; a different role is ErrRoleConflict.
func (o *oracle) Register(r apis.Role) error {
	if !r.Valid() {
		return ErrInvalidRole
	}
	if prev, loaded := o.roles.LoadOrStore(goroutineID(), r); loaded && prev.(apis.Role) != r {
		return ErrRoleConflict
	}
	return nil
}

// Unregister drops the calling goroutine's role assignment.
func (o *oracle) Unregister() {
	o.roles.Delete(goroutineID())
}

// Current returns the calling goroutine's role.
func (o *oracle) Current() (apis.Role, error) {
	if v, ok := o.roles.Load(goroutineID()); ok {
		return v.(apis.Role), nil
	}
	return apis.RoleInvalid, ErrUnrecognizedThread
}

// MustCurrent is Current, but panics on an unregistered goroutine.
// Every goroutine that touches affinity-checked objects must carry a role,
// so an unrecognized caller is programmer error, not a runtime condition.
func (o *oracle) MustCurrent() apis.Role {
	r, err := o.Current()
	if err != nil {
		panic(fmt.Sprintf("obx(thread): unrecognized thread: goroutine %d holds no role", goroutineID()))
	}
	return r
}

// Run spawns a goroutine registered under role for the duration of fn and
// returns a func that waits for it to finish. Registration failures panic:
// a fresh goroutine can only conflict if role ids are being misused.
func Run(o apis.Oracle, role apis.Role, fn func()) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := o.Register(role); err != nil {
			panic(err)
		}
		defer o.Unregister()
		fn()
	}()
	return func() { <-done }
}
