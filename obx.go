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

package obx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/obx/apis"
	"dirpx.dev/obx/builder"
	"dirpx.dev/obx/census"
	"dirpx.dev/obx/config"
	olog "dirpx.dev/obx/log"
)

// init initializes the global obx state.
func init() {
	// Initialize state with default cfg and builder-made layers.
	s := &state{cfg: config.DefaultConfig(), log: olog.New(apis.LogLevelInfo)}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.ora = b.BuildOracle(s.cfg, nil, nil)
	s.tab = b.BuildNameTable(s.cfg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.tab, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("obx: builder returned nil registry")
	// ErrNilOracle is returned when a builder returns a nil oracle.
	ErrNilOracle = errors.New("obx: builder returned nil oracle")
	// ErrNilNameTable is returned when a builder returns a nil name table.
	ErrNilNameTable = errors.New("obx: builder returned nil name table")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("obx: builder returned nil resolver")
)

// TypeName resolves the census/type name of the provided value v using the
// global resolver. This is a convenience wrapper around the global res.
func TypeName(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeNameOf resolves the census/type name of the provided reflect.Type t
// using the global resolver.
func TypeNameOf(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// RegisterTypeName adds an explicit type-name mapping to the global name
// table, overriding reflect-derived names in census reports and log lines.
func RegisterTypeName(t reflect.Type, name string) error {
	return st.Load().tab.Register(t, name)
}

// Describe returns a short diagnostic description of v. Instances tracked
// by the object core implement apis.Describer and report their identity;
// everything else degrades to the resolved type name.
func Describe(v any) string {
	if d, ok := v.(apis.Describer); ok {
		return d.Describe()
	}
	return "<" + TypeName(v) + ">"
}

// Census snapshots the global live-object registry into a deterministic
// report. When object tracking is disabled the report says "unavailable".
func Census() census.Report {
	s := st.Load()
	return census.Build(s.reg, s.cfg)
}

// LogCensus emits the current census report through the global logger.
func LogCensus() {
	s := st.Load()
	s.log.Info(census.Build(s.reg, s.cfg).String())
}

// CurrentRole returns the calling goroutine's registered role.
func CurrentRole() (apis.Role, error) {
	return st.Load().ora.Current()
}

// RegisterThread assigns the calling goroutine a role for its lifetime.
func RegisterThread(r apis.Role) error {
	return st.Load().ora.Register(r)
}

// UnregisterThread drops the calling goroutine's role assignment.
func UnregisterThread() {
	st.Load().ora.Unregister()
}

// SetAll explicitly sets all global obx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, ora apis.Oracle, lg apis.Logger, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Logger
	nlog := old.log
	if lg != nil {
		nlog = lg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Oracle
	nora := ora
	npora := false
	if nora == nil {
		nora = nbld.BuildOracle(ncfg, old.ora, next)
	} else {
		npora = true
	}

	// Name table and resolver always follow the builder.
	ntab := nbld.BuildNameTable(ncfg, old.tab, next)
	nres := nbld.BuildResolver(ncfg, ntab, old.res, next)

	checkLayers(nreg, nora, ntab, nres)

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			log:  nlog,
			reg:  nreg,
			ora:  nora,
			tab:  ntab,
			res:  nres,
			bld:  nbld,
			preg: npreg,
			pora: npora,
		},
	)
}

// checkLayers panics when a builder produced a nil layer.
func checkLayers(reg apis.Registry, ora apis.Oracle, tab apis.NameTable, res apis.Resolver) {
	if reg == nil {
		panic(ErrNilRegistry)
	}
	if ora == nil {
		panic(ErrNilOracle)
	}
	if tab == nil {
		panic(ErrNilNameTable)
	}
	if res == nil {
		panic(ErrNilResolver)
	}
}

// Config returns the global obx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global obx configuration to cfg.
// It rebuilds the unpinned layers using the new configuration.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new layers based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	nora := old.ora
	if !old.pora {
		nora = b.BuildOracle(cfg, old.ora, old.ext)
	}
	ntab := b.BuildNameTable(cfg, old.tab, old.ext)
	nres := b.BuildResolver(cfg, ntab, old.res, old.ext)

	checkLayers(nreg, nora, ntab, nres)

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			log:  old.log,
			reg:  nreg,
			ora:  nora,
			tab:  ntab,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pora: old.pora,
		},
	)
}

// Registry returns the global live-object registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global live-object registry to reg and pins it.
// Pinned layers are not rebuilt by SetConfig until unpinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			log:  old.log,
			reg:  reg,
			ora:  old.ora,
			tab:  old.tab,
			res:  old.res,
			bld:  old.bld,
			preg: true,
			pora: old.pora,
		},
	)
}

// Oracle returns the global thread-identity oracle.
func Oracle() apis.Oracle {
	return st.Load().ora
}

// SetOracle sets the global thread-identity oracle to ora and pins it.
func SetOracle(ora apis.Oracle) {
	if ora == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			log:  old.log,
			reg:  old.reg,
			ora:  ora,
			tab:  old.tab,
			res:  old.res,
			bld:  old.bld,
			preg: old.preg,
			pora: true,
		},
	)
}

// NameTable returns the global type-name table.
func NameTable() apis.NameTable {
	return st.Load().tab
}

// Resolver returns the global type-name resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// Logger returns the global logger.
func Logger() apis.Logger {
	return st.Load().log
}

// SetLogger sets the global logger to lg. The logger is not a built layer;
// swapping it never triggers rebuilds.
func SetLogger(lg apis.Logger) {
	if lg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			log:  lg,
			reg:  old.reg,
			ora:  old.ora,
			tab:  old.tab,
			res:  old.res,
			bld:  old.bld,
			preg: old.preg,
			pora: old.pora,
		},
	)
}

// Builder returns the global obx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global obx builder to b and rebuilds the unpinned
// layers through it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new layers based on the new builder and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	nora := old.ora
	if !old.pora {
		nora = b.BuildOracle(old.cfg, old.ora, old.ext)
	}
	ntab := b.BuildNameTable(old.cfg, old.tab, old.ext)
	nres := b.BuildResolver(old.cfg, ntab, old.res, old.ext)

	checkLayers(nreg, nora, ntab, nres)

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			log:  old.log,
			reg:  nreg,
			ora:  nora,
			tab:  ntab,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pora: old.pora,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new layers based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	nora := old.ora
	if !old.pora {
		nora = b.BuildOracle(old.cfg, old.ora, ext)
	}
	ntab := b.BuildNameTable(old.cfg, old.tab, ext)
	nres := b.BuildResolver(old.cfg, ntab, old.res, ext)

	checkLayers(nreg, nora, ntab, nres)

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			log:  old.log,
			reg:  nreg,
			ora:  nora,
			tab:  ntab,
			res:  nres,
			bld:  b,
			preg: old.preg,
			pora: old.pora,
		},
	)
}

// ExtAs returns the global obx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global registry immune to rebuilds.
func PinRegistry() {
	setPins(true, nil)
}

// UnpinRegistry makes the global registry rebuildable again.
func UnpinRegistry() {
	setPins(false, nil)
}

// IsOraclePinned returns whether the global oracle is pinned (immutable).
func IsOraclePinned() bool {
	return st.Load().pora
}

// PinOracle makes the global oracle immune to rebuilds.
func PinOracle() {
	setPins(nil, true)
}

// UnpinOracle makes the global oracle rebuildable again.
func UnpinOracle() {
	setPins(nil, false)
}

// setPins updates the pin flags; nil leaves a flag unchanged.
func setPins(preg, pora any) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	npreg := old.preg
	if v, ok := preg.(bool); ok {
		npreg = v
	}
	npora := old.pora
	if v, ok := pora.(bool); ok {
		npora = v
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			log:  old.log,
			reg:  old.reg,
			ora:  old.ora,
			tab:  old.tab,
			res:  old.res,
			bld:  old.bld,
			preg: npreg,
			pora: npora,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global obx state.
var st atomic.Pointer[state]

// state is the global obx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global obx configuration.
	cfg apis.Config
	// ext is the global obx extension configuration.
	ext any
	// log is the global diagnostic sink.
	log apis.Logger
	// reg is the global live-object registry.
	reg apis.Registry
	// ora is the global thread-identity oracle.
	ora apis.Oracle
	// tab is the global type-name table.
	tab apis.NameTable
	// res is the global type-name resolver.
	res apis.Resolver
	// bld is the global obx builder.
	bld apis.Builder
	// preg indicates whether the registry is pinned (immutable).
	preg bool
	// pora indicates whether the oracle is pinned (immutable).
	pora bool
}
