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

// Role tags a goroutine with the logical execution context it serves for
// its lifetime. The set is closed: every goroutine that touches
// affinity-checked objects must carry exactly one of these.
type Role uint8

const (
	// RoleInvalid marks an unassigned or unresolved role.
	RoleInvalid Role = iota
	// RoleMain is the process main goroutine.
	RoleMain
	// RoleLogic runs simulation and gameplay logic. Most object types
	// default to it.
	RoleLogic
	// RoleAudio runs audio mixing and playback.
	RoleAudio
	// RoleNetworkWrite runs outbound network I/O.
	RoleNetworkWrite
	// RoleAssets runs asset loading and renderer-resource management.
	RoleAssets
	// RoleBGDynamics runs background simulation work.
	RoleBGDynamics

	roleCount // sentinel
)

// roleNames indexes Role values; keep in sync with the constants above.
var roleNames = [roleCount]string{
	"invalid",
	"main",
	"logic",
	"audio",
	"network-write",
	"assets",
	"bg-dynamics",
}

// String returns the canonical lowercase name of the role.
func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "unknown"
}

// Valid reports whether r is one of the assigned roles.
func (r Role) Valid() bool {
	return r > RoleInvalid && r < roleCount
}

// AffinityMode selects how an object resolves the role allowed to touch it.
type AffinityMode uint8

const (
	// AffinityClassDefault checks access against the type's default role
	// (RoleDefaulter, or RoleLogic when not implemented).
	AffinityClassDefault AffinityMode = iota
	// AffinityFixedRole checks access against a role chosen at
	// construction; it never changes.
	AffinityFixedRole
	// AffinityFirstReferencing leaves the object unbound at construction
	// and binds it to the role of the goroutine that acquires the first
	// strong reference. The transition is one-way and happens at most once.
	AffinityFirstReferencing
)

// String returns a short name for the mode.
func (m AffinityMode) String() string {
	switch m {
	case AffinityClassDefault:
		return "class-default"
	case AffinityFixedRole:
		return "fixed-role"
	case AffinityFirstReferencing:
		return "first-referencing"
	}
	return "unknown"
}
