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

package registry_test

import (
	"testing"

	apis "dirpx.dev/obx/apis"
	"dirpx.dev/obx/config"
	"dirpx.dev/obx/registry"
)

// fake is a minimal Trackable for registry tests.
type fake struct{ name string }

func (f *fake) TypeName() string { return f.name }

func TestAddRemove_Count(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	h1 := reg.Add(&fake{name: "a"})
	h2 := reg.Add(&fake{name: "a"})
	h3 := reg.Add(&fake{name: "b"})
	if h1 == 0 || h2 == 0 || h3 == 0 {
		t.Fatalf("Add returned a zero handle: %v %v %v", h1, h2, h3)
	}
	if h1 == h2 || h2 == h3 || h1 == h3 {
		t.Fatalf("handles must be distinct: %v %v %v", h1, h2, h3)
	}
	if reg.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", reg.Count())
	}

	reg.Remove(h2)
	if reg.Count() != 2 {
		t.Fatalf("Count() after Remove = %d, want 2", reg.Count())
	}

	tally := reg.Tally()
	if tally["a"] != 1 || tally["b"] != 1 {
		t.Fatalf("Tally() = %v, want a:1 b:1", tally)
	}
}

func TestRemove_ZeroHandleIsNoop(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	reg.Add(&fake{name: "a"})

	reg.Remove(0)
	if reg.Count() != 1 {
		t.Fatalf("Count() after Remove(0) = %d, want 1", reg.Count())
	}
}

func TestRemove_StaleHandleIsNoop(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	h := reg.Add(&fake{name: "a"})
	reg.Remove(h)

	// The freed slot is reused; the old handle must not free the new entry.
	h2 := reg.Add(&fake{name: "b"})
	reg.Remove(h) // stale
	if reg.Count() != 1 {
		t.Fatalf("stale Remove freed a live entry: Count() = %d, want 1", reg.Count())
	}
	if tally := reg.Tally(); tally["b"] != 1 {
		t.Fatalf("Tally() = %v, want b:1", tally)
	}

	// Double Remove of the same handle is also a no-op.
	reg.Remove(h2)
	reg.Remove(h2)
	if reg.Count() != 0 {
		t.Fatalf("Count() after double Remove = %d, want 0", reg.Count())
	}
}

func TestAdd_NilIsNoop(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	if h := reg.Add(nil); h != 0 {
		t.Fatalf("Add(nil) = %v, want 0", h)
	}
	if reg.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", reg.Count())
	}
}

func TestSlotReuse(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	// Fill, drain, refill: the table must not grow past its working size
	// and every handle generation must stay distinct from its predecessor.
	seen := map[apis.Handle]bool{}
	for round := 0; round < 3; round++ {
		handles := make([]apis.Handle, 0, 100)
		for i := 0; i < 100; i++ {
			h := reg.Add(&fake{name: "x"})
			if seen[h] {
				t.Fatalf("handle %v reused across generations", h)
			}
			seen[h] = true
			handles = append(handles, h)
		}
		if reg.Count() != 100 {
			t.Fatalf("round %d: Count() = %d, want 100", round, reg.Count())
		}
		for _, h := range handles {
			reg.Remove(h)
		}
		if reg.Count() != 0 {
			t.Fatalf("round %d: Count() after drain = %d, want 0", round, reg.Count())
		}
	}
}

func TestNoopRegistry(t *testing.T) {
	reg := registry.Noop()

	if reg.Enabled() {
		t.Fatalf("Noop().Enabled() = true, want false")
	}
	if h := reg.Add(&fake{name: "a"}); h != 0 {
		t.Fatalf("Noop().Add() = %v, want 0", h)
	}
	reg.Remove(0)
	if reg.Count() != 0 {
		t.Fatalf("Noop().Count() = %d, want 0", reg.Count())
	}
	if tally := reg.Tally(); len(tally) != 0 {
		t.Fatalf("Noop().Tally() = %v, want empty", tally)
	}
}

func TestEnabled(t *testing.T) {
	if !registry.New(config.DefaultConfig()).Enabled() {
		t.Fatalf("New().Enabled() = false, want true")
	}
}
