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

package builder

import (
	"dirpx.dev/obx/apis"
	"dirpx.dev/obx/names"
	"dirpx.dev/obx/registry"
	"dirpx.dev/obx/resolver"
	"dirpx.dev/obx/strategy"
	"dirpx.dev/obx/thread"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry returns the live-object registry matching cfg. Live entries
// cannot be copied between registries, so a previous registry of the right
// flavor is reused rather than rebuilt; switching flavors produces a fresh
// (empty) one, which is why reconfiguration must happen before objects are
// constructed.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	if !cfg.TrackObjects {
		return registry.Noop()
	}
	if prev != nil && prev.Enabled() {
		return prev
	}
	return registry.New(cfg)
}

// BuildOracle returns the thread-identity oracle. Role assignments must
// survive reconfiguration, so a previous oracle is always reused.
func (b *builder) BuildOracle(_ apis.Config, prev apis.Oracle, _ any) apis.Oracle {
	if prev != nil {
		return prev
	}
	return thread.New()
}

// BuildNameTable builds a new name table for cfg. If a previous table is
// provided, its entries are migrated into the new one.
func (b *builder) BuildNameTable(cfg apis.Config, prev apis.NameTable, _ any) apis.NameTable {
	ntab := names.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = ntab.Register(e.Type, e.Name)
		}
	}
	return ntab
}

// BuildResolver builds the standard resolution chain: per-type override,
// then explicit table entry, then reflect fallback.
func (b *builder) BuildResolver(_ apis.Config, tab apis.NameTable, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewTableStrategy(tab),
		strategy.NewReflectStrategy(),
	)
}
