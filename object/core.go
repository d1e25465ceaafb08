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

// Package object implements the tracked-object core: single-owner lifetime,
// strong/weak references, and per-object thread-affinity enforcement.
//
// A tracked type embeds Core and is constructed through New, which returns
// the one Owned handle controlling its lifetime. Everything else holds a
// Ref (strong, counted) or a Weak (observes liveness, invalidated at
// dispose). Disposal is explicit; the garbage collector only reclaims
// memory afterwards.
package object

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/obx"
	"dirpx.dev/obx/apis"
	olog "dirpx.dev/obx/log"
)

// Target is satisfied by pointers to structs embedding Core. The method is
// unexported on purpose: only types that embed Core can be tracked.
type Target interface {
	objectCore() *Core
}

// Services bundles the layers a Core talks to. Captured once at
// construction so an object always unregisters from the same registry it
// registered with, even if the globals are swapped mid-lifetime.
type Services struct {
	Registry apis.Registry
	Oracle   apis.Oracle
	Logger   apis.Logger
	Resolver apis.Resolver
	Config   apis.Config
}

// defaultServices snapshots the current global layers.
func defaultServices() Services {
	return Services{
		Registry: obx.Registry(),
		Oracle:   obx.Oracle(),
		Logger:   obx.Logger(),
		Resolver: obx.Resolver(),
		Config:   obx.Config(),
	}
}

// instanceSeq numbers objects across the process for diagnostics.
var instanceSeq atomic.Uint64

// Core carries the per-object tracking state. Embed it by value in the
// concrete type and construct instances with New; a zero Core that never
// went through New is inert and must not be handed to Ref or Weak.
type Core struct {
	// svc is the layer set captured at construction.
	svc Services
	// self is the concrete instance embedding this Core.
	self any
	// seq is the process-wide instance number.
	seq uint64
	// born is the construction timestamp (zero when tracking is off).
	born time.Time
	// handle is the live-registry slot (zero when tracking is off).
	handle apis.Handle
	// strong counts outstanding strong references.
	strong atomic.Int64
	// mode selects how the required role is resolved.
	mode apis.AffinityMode
	// class is the role checked under class-default and fixed-role modes.
	class apis.Role
	// bound is the first-touch role (apis.Role) for first-referencing
	// mode. Zero means unbound; the transition is a one-way CAS.
	bound atomic.Uint32
	// weakMu guards the weak-reference chain and the disposed transition
	// as observed by WeakTo.
	weakMu sync.Mutex
	// weakHead is the head of the doubly-linked weak-reference chain.
	weakHead *weakNode
	// disposed flips exactly once, in dispose.
	disposed atomic.Bool
}

func (c *Core) objectCore() *Core { return c }

// Ensure Core satisfies the registry and description contracts.
var (
	_ apis.Trackable = (*Core)(nil)
	_ apis.Describer = (*Core)(nil)
)

// Option adjusts a Core at construction time.
type Option func(*Core)

// WithFixedRole pins the object to role: only goroutines registered under
// it may acquire or use references, regardless of the type's default.
func WithFixedRole(role apis.Role) Option {
	return func(c *Core) {
		c.mode = apis.AffinityFixedRole
		c.class = role
	}
}

// WithFirstReferencing leaves the object unbound until the first strong
// reference is acquired, then binds it to that goroutine's role forever.
func WithFirstReferencing() Option {
	return func(c *Core) {
		c.mode = apis.AffinityFirstReferencing
	}
}

// WithServices injects an explicit layer set instead of snapshotting the
// globals. Tests use it to run against private registries and oracles.
func WithServices(svc Services) Option {
	return func(c *Core) {
		c.svc = svc
	}
}

// New initializes the Core embedded in t, registers the instance while
// tracking is enabled, and returns the single owner handle. The concrete
// value must be fully allocated before the call; New touches only the Core.
func New[T Target](t T, opts ...Option) *Owned[T] {
	c := t.objectCore()
	c.self = t
	c.mode = apis.AffinityClassDefault
	c.class = apis.RoleLogic
	if rd, ok := any(t).(apis.RoleDefaulter); ok {
		c.class = rd.DefaultRole()
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.svc.Registry == nil {
		c.svc = defaultServices()
	}
	c.seq = instanceSeq.Add(1)
	if c.svc.Config.TrackObjects {
		c.born = c.svc.Config.Now()
		c.handle = c.svc.Registry.Add(c)
	}
	return &Owned[T]{t: t}
}

// TypeName resolves the census grouping name for the instance.
func (c *Core) TypeName() string {
	if c.self == nil {
		return "object.Core"
	}
	if n, ok := c.self.(apis.Namer); ok {
		return n.ObjectTypeName()
	}
	if c.svc.Resolver != nil {
		if name := c.svc.Resolver.Resolve(c.self, c.svc.Config); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", c.self)
}

// Describe returns a short identity string, "<pkg.Type object #42>".
func (c *Core) Describe() string {
	return fmt.Sprintf("<%s object #%d>", c.TypeName(), c.seq)
}

// Alive reports whether the owner has not yet disposed the object.
func (c *Core) Alive() bool {
	return !c.disposed.Load()
}

// StrongCount returns the number of outstanding strong references.
func (c *Core) StrongCount() int64 {
	return c.strong.Load()
}

// Born returns the construction timestamp; zero when tracking was off.
func (c *Core) Born() time.Time {
	return c.born
}

// Affinity returns the object's affinity mode.
func (c *Core) Affinity() apis.AffinityMode {
	return c.mode
}

// BoundRole returns the role the object is currently checked against.
// RoleInvalid means a first-referencing object that is still unbound.
func (c *Core) BoundRole() apis.Role {
	return c.requiredRole()
}

// Logger returns the diagnostic sink captured at construction.
func (c *Core) Logger() apis.Logger {
	return c.svc.Logger
}

// requiredRole resolves the role access is checked against right now.
func (c *Core) requiredRole() apis.Role {
	if c.mode == apis.AffinityFirstReferencing {
		return apis.Role(c.bound.Load())
	}
	return c.class
}

// CheckAccess panics unless the calling goroutine's role matches the
// object's required role. An unbound first-referencing object passes: no
// role has claimed it yet, so no goroutine is wrong. No-op when thread
// checks are disabled.
func (c *Core) CheckAccess() {
	if !c.svc.Config.ThreadChecks {
		return
	}
	need := c.requiredRole()
	if need == apis.RoleInvalid {
		return
	}
	got := c.svc.Oracle.MustCurrent()
	if got != need {
		panic(fmt.Sprintf(
			"obx(object): %s accessed from role %q, bound to role %q",
			c.Describe(), got, need,
		))
	}
}

// bindFirstTouch performs the one-way unbound-to-bound transition for
// first-referencing objects. Under concurrent first touches exactly one
// CAS wins; the losers fall through to CheckAccess and fail there if they
// carry a different role.
func (c *Core) bindFirstTouch() {
	if c.mode != apis.AffinityFirstReferencing || !c.svc.Config.ThreadChecks {
		return
	}
	if c.bound.Load() != uint32(apis.RoleInvalid) {
		return
	}
	c.bound.CompareAndSwap(uint32(apis.RoleInvalid), uint32(c.svc.Oracle.MustCurrent()))
}

// dispose tears the object down: registry removal, leak diagnostics, weak
// invalidation, then the optional Finalize hook. Runs at most once; the
// Owned handle serializes callers through its sync.Once.
func (c *Core) dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}
	c.svc.Registry.Remove(c.handle)
	// The leak warning bypasses the configured logger: sinks may take
	// locks, and a lock acquired mid-teardown can deadlock against a
	// registry tally running on another goroutine.
	if n := c.strong.Load(); n != 0 {
		olog.RawWarn(fmt.Sprintf(
			"obx(object): %s disposed with %d strong reference(s) outstanding",
			c.Describe(), n,
		))
	}
	c.invalidateWeakRefs()
	if f, ok := c.self.(apis.Finalizer); ok {
		f.Finalize()
	}
}

// invalidateWeakRefs empties the weak chain. Each node's target pointer is
// cleared atomically, so a concurrent Weak.Get never observes a dead
// object as live. Allocation-free: nodes are unlinked, not collected.
func (c *Core) invalidateWeakRefs() {
	c.weakMu.Lock()
	defer c.weakMu.Unlock()
	for n := c.weakHead; n != nil; {
		next := n.next
		n.target.Store(nil)
		n.prev, n.next = nil, nil
		n = next
	}
	c.weakHead = nil
}
