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

// Package meshdata wraps renderer-owned mesh buffers in a tracked object.
// It is the canonical consumer of the object core: assets-role affinity,
// explicit load/unload of an external resource, and a Finalize hook that
// flags resources leaked past disposal.
package meshdata

import (
	"errors"
	"fmt"

	"dirpx.dev/obx/apis"
	"dirpx.dev/obx/object"
)

// DataType selects the index width of the mesh buffer.
type DataType uint8

const (
	Index16 DataType = iota
	Index32
)

// DrawType hints how often the buffer contents change.
type DrawType uint8

const (
	Static DrawType = iota
	Dynamic
)

// Renderer allocates and frees the backing renderer resource. The value
// returned by Alloc is opaque to this package and handed back on Free.
type Renderer interface {
	Alloc(m *MeshData) (any, error)
	Free(m *MeshData, data any)
}

// ErrNotLoaded is returned when Unload is called on an unloaded mesh.
var ErrNotLoaded = errors.New("meshdata: not loaded")

// MeshData is a tracked wrapper around one renderer mesh buffer. Access is
// bound to the assets role; loaded state is not separately locked because
// affinity enforcement already serializes callers onto one goroutine.
type MeshData struct {
	object.Core
	renderer Renderer
	dataType DataType
	drawType DrawType
	data     any
	loaded   bool
}

// New constructs a tracked MeshData and returns its owner handle.
func New(r Renderer, dt DataType, draw DrawType, opts ...object.Option) *object.Owned[*MeshData] {
	return object.New(&MeshData{renderer: r, dataType: dt, drawType: draw}, opts...)
}

// DefaultRole binds mesh data to the assets role.
func (m *MeshData) DefaultRole() apis.Role {
	return apis.RoleAssets
}

// Ensure MeshData participates in role defaulting.
var _ apis.RoleDefaulter = (*MeshData)(nil)

// DataType returns the index width.
func (m *MeshData) DataType() DataType { return m.dataType }

// DrawType returns the draw-frequency hint.
func (m *MeshData) DrawType() DrawType { return m.drawType }

// Loaded reports whether a renderer resource is currently held.
func (m *MeshData) Loaded() bool { return m.loaded }

// Load allocates the renderer resource. Idempotent while loaded.
func (m *MeshData) Load() error {
	m.CheckAccess()
	if m.loaded {
		return nil
	}
	data, err := m.renderer.Alloc(m)
	if err != nil {
		return fmt.Errorf("meshdata: load: %w", err)
	}
	m.data = data
	m.loaded = true
	return nil
}

// Unload returns the resource to the renderer.
func (m *MeshData) Unload() error {
	m.CheckAccess()
	if !m.loaded {
		return ErrNotLoaded
	}
	m.renderer.Free(m, m.data)
	m.data = nil
	m.loaded = false
	return nil
}

// RendererData returns the opaque resource handle. Calling it on an
// unloaded mesh is programmer error.
func (m *MeshData) RendererData() any {
	m.CheckAccess()
	if !m.loaded {
		panic(fmt.Sprintf("meshdata: %s renderer data requested while unloaded", m.Describe()))
	}
	return m.data
}

// Finalize reports meshes disposed while still holding a renderer
// resource. The resource itself cannot be freed here: disposal may run on
// any goroutine, and renderer calls are only legal on the assets role.
func (m *MeshData) Finalize() {
	if m.loaded {
		m.Logger().Error(fmt.Errorf("meshdata: %s disposed while still loaded", m.Describe()))
	}
}

// Ensure the teardown hook is wired.
var _ apis.Finalizer = (*MeshData)(nil)
