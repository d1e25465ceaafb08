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

// Namer lets a concrete type override the reflect-derived census name.
// The resolver's fast path prefers this over every other strategy, so the
// returned name must be cheap, deterministic, and instance-independent.
type Namer interface {
	// ObjectTypeName returns the human-readable name for the type.
	ObjectTypeName() string
}

// Describer provides a short diagnostic description of a tracked instance,
// combining its type name and identity. Used in failure messages.
type Describer interface {
	// Describe returns something like "<domain.widget object #42>".
	Describe() string
}

// Finalizer is an optional teardown hook on concrete object types. It runs
// exactly once, after the instance has been removed from the registry and
// its weak references invalidated.
type Finalizer interface {
	Finalize()
}

// RoleDefaulter lets a concrete type choose the role checked under
// AffinityClassDefault. Types that do not implement it default to
// RoleLogic.
type RoleDefaulter interface {
	DefaultRole() Role
}
