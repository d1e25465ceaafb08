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

// Builder composes the core's service layers from a Config.
// Implementations may migrate or reuse state from previous instances
// (prev*), or ignore them.
type Builder interface {
	// BuildRegistry constructs a live-object Registry for Config. Live
	// entries cannot be copied between registries, so implementations are
	// expected to reuse prev when it is still the right flavor.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry

	// BuildOracle constructs a thread-identity Oracle. Role assignments
	// should survive reconfiguration, so prev is normally reused.
	BuildOracle(cfg Config, prev Oracle, ext any) Oracle

	// BuildNameTable constructs a NameTable for Config. May migrate
	// entries from the previous table.
	BuildNameTable(cfg Config, prev NameTable, ext any) NameTable

	// BuildResolver constructs a Resolver for Config and NameTable.
	// May reuse state from the previous resolver.
	BuildResolver(cfg Config, tab NameTable, prev Resolver, ext any) Resolver
}
