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

// Package appconfig is a typed application-settings registry. Every
// setting is declared once with a stable dotted name, a kind, and a
// default; reads go through kind-specific resolve methods so a typo or a
// kind mismatch is a compile error, not a runtime surprise.
package appconfig

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Kind discriminates the value type of a setting.
type Kind uint8

const (
	KindFloat Kind = iota
	KindOptionalFloat
	KindString
	KindInt
	KindBool
)

// String returns the kind's short name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindOptionalFloat:
		return "optional-float"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Typed setting identifiers. One enum per kind; the arrays below supply
// name and default per id.

type FloatID uint8

const (
	ScreenGamma FloatID = iota
	AudioVolume
	MusicVolume
	TouchControlsScale
	floatIDCount
)

type OptionalFloatID uint8

const (
	IdleExitMinutes OptionalFloatID = iota
	optionalFloatIDCount
)

type StringID uint8

const (
	TextureQuality StringID = iota
	VerticalSync
	stringIDCount
)

type IntID uint8

const (
	Port IntID = iota
	MaxPartySize
	intIDCount
)

type BoolID uint8

const (
	Fullscreen BoolID = iota
	KeepScreenOn
	EnablePackageMods
	boolIDCount
)

type floatMeta struct {
	name string
	def  float64
}

type stringMeta struct {
	name string
	def  string
}

type intMeta struct {
	name string
	def  int
}

type boolMeta struct {
	name string
	def  bool
}

var floatMetas = [floatIDCount]floatMeta{
	{"screen.gamma", 1.0},
	{"audio.volume", 1.0},
	{"audio.music-volume", 1.0},
	{"input.touch-controls-scale", 1.0},
}

// Optional floats have no default; unset resolves to (0, false).
var optionalFloatMetas = [optionalFloatIDCount]struct{ name string }{
	{"app.idle-exit-minutes"},
}

var stringMetas = [stringIDCount]stringMeta{
	{"graphics.texture-quality", "auto"},
	{"graphics.vsync", "auto"},
}

var intMetas = [intIDCount]intMeta{
	{"net.port", 43210},
	{"net.max-party-size", 6},
}

var boolMetas = [boolIDCount]boolMeta{
	{"graphics.fullscreen", true},
	{"app.keep-screen-on", true},
	{"app.enable-package-mods", false},
}

// Entry describes one declared setting.
type Entry struct {
	Name string
	Kind Kind
}

// entryRef locates a setting by kind and per-kind index.
type entryRef struct {
	kind Kind
	idx  uint8
}

var (
	// ErrUnknownSetting is returned when a name matches no declared setting.
	ErrUnknownSetting = errors.New("appconfig: unknown setting")
	// ErrBadValue is returned when a raw value cannot be parsed for the
	// setting's kind.
	ErrBadValue = errors.New("appconfig: bad value")
)

// Config holds override values layered over the declared defaults.
// Safe for concurrent use.
type Config struct {
	mu             sync.RWMutex
	floats         map[FloatID]float64
	optionalFloats map[OptionalFloatID]float64
	strings        map[StringID]string
	ints           map[IntID]int
	bools          map[BoolID]bool
	byName         map[string]entryRef
}

// New returns an empty Config; every setting resolves to its default.
func New() *Config {
	c := &Config{
		floats:         make(map[FloatID]float64),
		optionalFloats: make(map[OptionalFloatID]float64),
		strings:        make(map[StringID]string),
		ints:           make(map[IntID]int),
		bools:          make(map[BoolID]bool),
		byName:         make(map[string]entryRef),
	}
	for i, m := range floatMetas {
		c.byName[m.name] = entryRef{KindFloat, uint8(i)}
	}
	for i, m := range optionalFloatMetas {
		c.byName[m.name] = entryRef{KindOptionalFloat, uint8(i)}
	}
	for i, m := range stringMetas {
		c.byName[m.name] = entryRef{KindString, uint8(i)}
	}
	for i, m := range intMetas {
		c.byName[m.name] = entryRef{KindInt, uint8(i)}
	}
	for i, m := range boolMetas {
		c.byName[m.name] = entryRef{KindBool, uint8(i)}
	}
	return c
}

// Entry looks up a declared setting by its dotted name.
func (c *Config) Entry(name string) (Entry, bool) {
	ref, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return Entry{Name: name, Kind: ref.kind}, true
}

// Entries returns every declared setting, grouped by kind.
func (c *Config) Entries() []Entry {
	out := make([]Entry, 0, len(c.byName))
	for _, m := range floatMetas {
		out = append(out, Entry{m.name, KindFloat})
	}
	for _, m := range optionalFloatMetas {
		out = append(out, Entry{m.name, KindOptionalFloat})
	}
	for _, m := range stringMetas {
		out = append(out, Entry{m.name, KindString})
	}
	for _, m := range intMetas {
		out = append(out, Entry{m.name, KindInt})
	}
	for _, m := range boolMetas {
		out = append(out, Entry{m.name, KindBool})
	}
	return out
}

// ResolveFloat returns the effective value for id.
func (c *Config) ResolveFloat(id FloatID) float64 {
	if id >= floatIDCount {
		panic(fmt.Sprintf("appconfig: invalid float id %d", id))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.floats[id]; ok {
		return v
	}
	return floatMetas[id].def
}

// ResolveOptionalFloat returns the value for id and whether it is set.
func (c *Config) ResolveOptionalFloat(id OptionalFloatID) (float64, bool) {
	if id >= optionalFloatIDCount {
		panic(fmt.Sprintf("appconfig: invalid optional-float id %d", id))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.optionalFloats[id]
	return v, ok
}

// ResolveString returns the effective value for id.
func (c *Config) ResolveString(id StringID) string {
	if id >= stringIDCount {
		panic(fmt.Sprintf("appconfig: invalid string id %d", id))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.strings[id]; ok {
		return v
	}
	return stringMetas[id].def
}

// ResolveInt returns the effective value for id.
func (c *Config) ResolveInt(id IntID) int {
	if id >= intIDCount {
		panic(fmt.Sprintf("appconfig: invalid int id %d", id))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.ints[id]; ok {
		return v
	}
	return intMetas[id].def
}

// ResolveBool returns the effective value for id.
func (c *Config) ResolveBool(id BoolID) bool {
	if id >= boolIDCount {
		panic(fmt.Sprintf("appconfig: invalid bool id %d", id))
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.bools[id]; ok {
		return v
	}
	return boolMetas[id].def
}

// SetFloat overrides the value for id.
func (c *Config) SetFloat(id FloatID, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.floats[id] = v
}

// SetOptionalFloat overrides the value for id.
func (c *Config) SetOptionalFloat(id OptionalFloatID, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.optionalFloats[id] = v
}

// ClearOptionalFloat unsets id; it resolves as absent again.
func (c *Config) ClearOptionalFloat(id OptionalFloatID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.optionalFloats, id)
}

// SetString overrides the value for id.
func (c *Config) SetString(id StringID, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strings[id] = v
}

// SetInt overrides the value for id.
func (c *Config) SetInt(id IntID, v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ints[id] = v
}

// SetBool overrides the value for id.
func (c *Config) SetBool(id BoolID, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bools[id] = v
}

// setRaw parses raw for the referenced setting's kind and stores it.
func (c *Config) setRaw(name string, ref entryRef, raw string) error {
	switch ref.kind {
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrBadValue, name, raw, err)
		}
		c.SetFloat(FloatID(ref.idx), v)
	case KindOptionalFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrBadValue, name, raw, err)
		}
		c.SetOptionalFloat(OptionalFloatID(ref.idx), v)
	case KindString:
		c.SetString(StringID(ref.idx), raw)
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrBadValue, name, raw, err)
		}
		c.SetInt(IntID(ref.idx), v)
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrBadValue, name, raw, err)
		}
		c.SetBool(BoolID(ref.idx), v)
	}
	return nil
}

// Overlay applies raw name/value pairs. Unknown names and unparsable
// values are errors; earlier pairs in the map are still applied.
func (c *Config) Overlay(values map[string]string) error {
	for name, raw := range values {
		ref, ok := c.byName[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
		}
		if err := c.setRaw(name, ref, raw); err != nil {
			return err
		}
	}
	return nil
}

// envPrefix namespaces the env keys LoadEnv recognizes.
const envPrefix = "APPCONFIG_"

// envKey maps a dotted setting name to its env form:
// "graphics.texture-quality" becomes "APPCONFIG_GRAPHICS_TEXTURE_QUALITY".
func envKey(name string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return envPrefix + strings.ToUpper(r.Replace(name))
}

// LoadEnv reads dotenv files and applies the APPCONFIG_* keys they define
// as overrides. Keys outside the prefix are ignored, so the files can be
// shared with other tools.
func (c *Config) LoadEnv(filenames ...string) error {
	env, err := godotenv.Read(filenames...)
	if err != nil {
		return fmt.Errorf("appconfig: reading env: %w", err)
	}
	for name, ref := range c.byName {
		raw, ok := env[envKey(name)]
		if !ok {
			continue
		}
		if err := c.setRaw(name, ref, raw); err != nil {
			return err
		}
	}
	return nil
}
