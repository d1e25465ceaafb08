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

package meshdata_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apis "dirpx.dev/obx/apis"
	"dirpx.dev/obx/config"
	olog "dirpx.dev/obx/log"
	"dirpx.dev/obx/meshdata"
	"dirpx.dev/obx/object"
	"dirpx.dev/obx/registry"
	"dirpx.dev/obx/thread"
)

// fakeRenderer hands out sequential buffer ids and records frees.
type fakeRenderer struct {
	next    int
	freed   []int
	failure error
}

func (r *fakeRenderer) Alloc(_ *meshdata.MeshData) (any, error) {
	if r.failure != nil {
		return nil, r.failure
	}
	r.next++
	return r.next, nil
}

func (r *fakeRenderer) Free(_ *meshdata.MeshData, data any) {
	r.freed = append(r.freed, data.(int))
}

// assetServices registers the calling goroutine under the assets role.
func assetServices(t *testing.T) object.Services {
	t.Helper()
	cfg := config.DefaultConfig()
	svc := object.Services{
		Registry: registry.New(cfg),
		Oracle:   thread.New(),
		Logger:   olog.New(apis.LogLevelWarn),
		Config:   cfg,
	}
	require.NoError(t, svc.Oracle.Register(apis.RoleAssets))
	t.Cleanup(svc.Oracle.Unregister)
	return svc
}

func TestLoadUnload(t *testing.T) {
	svc := assetServices(t)
	r := &fakeRenderer{}

	owned := meshdata.New(r, meshdata.Index16, meshdata.Static, object.WithServices(svc))
	m := owned.Get()

	assert.Equal(t, meshdata.Index16, m.DataType())
	assert.Equal(t, meshdata.Static, m.DrawType())
	assert.False(t, m.Loaded())

	require.NoError(t, m.Load())
	assert.True(t, m.Loaded())
	assert.Equal(t, 1, m.RendererData())

	// Load while loaded is a no-op; no second allocation.
	require.NoError(t, m.Load())
	assert.Equal(t, 1, m.RendererData())

	require.NoError(t, m.Unload())
	assert.False(t, m.Loaded())
	assert.Equal(t, []int{1}, r.freed)

	assert.ErrorIs(t, m.Unload(), meshdata.ErrNotLoaded)

	owned.Dispose()
}

func TestLoad_AllocFailure(t *testing.T) {
	svc := assetServices(t)
	boom := errors.New("out of buffers")
	r := &fakeRenderer{failure: boom}

	owned := meshdata.New(r, meshdata.Index32, meshdata.Dynamic, object.WithServices(svc))
	m := owned.Get()

	assert.ErrorIs(t, m.Load(), boom)
	assert.False(t, m.Loaded())

	owned.Dispose()
}

func TestRendererData_PanicsUnloaded(t *testing.T) {
	svc := assetServices(t)

	owned := meshdata.New(&fakeRenderer{}, meshdata.Index16, meshdata.Static,
		object.WithServices(svc))
	assert.Panics(t, func() { owned.Get().RendererData() })
	owned.Dispose()
}

func TestAffinity_AssetsRoleOnly(t *testing.T) {
	svc := assetServices(t)

	owned := meshdata.New(&fakeRenderer{}, meshdata.Index16, meshdata.Static,
		object.WithServices(svc))
	assert.Equal(t, apis.RoleAssets, owned.Get().BoundRole())

	// A logic-role goroutine may not touch mesh data.
	wait := thread.Run(svc.Oracle, apis.RoleLogic, func() {
		assert.Panics(t, func() { owned.Get() })
	})
	wait()

	owned.Dispose()
}

// captureLogger records errors for teardown assertions.
type captureLogger struct {
	errs []error
}

func (l *captureLogger) Debug(string)           {}
func (l *captureLogger) Info(string)            {}
func (l *captureLogger) Warn(string)            {}
func (l *captureLogger) Error(err error)        { l.errs = append(l.errs, err) }
func (l *captureLogger) SetLevel(apis.LogLevel) {}

func TestDispose_WhileLoadedReportsLeak(t *testing.T) {
	cfg := config.DefaultConfig()
	lg := &captureLogger{}
	svc := object.Services{
		Registry: registry.New(cfg),
		Oracle:   thread.New(),
		Logger:   lg,
		Config:   cfg,
	}
	require.NoError(t, svc.Oracle.Register(apis.RoleAssets))
	defer svc.Oracle.Unregister()

	owned := meshdata.New(&fakeRenderer{}, meshdata.Index16, meshdata.Static,
		object.WithServices(svc))
	require.NoError(t, owned.Get().Load())

	owned.Dispose()

	require.Len(t, lg.errs, 1)
	assert.Contains(t, lg.errs[0].Error(), "disposed while still loaded")
}

func TestDispose_UnloadedIsQuiet(t *testing.T) {
	cfg := config.DefaultConfig()
	lg := &captureLogger{}
	svc := object.Services{
		Registry: registry.New(cfg),
		Oracle:   thread.New(),
		Logger:   lg,
		Config:   cfg,
	}
	require.NoError(t, svc.Oracle.Register(apis.RoleAssets))
	defer svc.Oracle.Unregister()

	owned := meshdata.New(&fakeRenderer{}, meshdata.Index16, meshdata.Static,
		object.WithServices(svc))
	require.NoError(t, owned.Get().Load())
	require.NoError(t, owned.Get().Unload())
	owned.Dispose()

	assert.Empty(t, lg.errs)
}
