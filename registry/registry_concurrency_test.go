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
	"runtime"
	"sync"
	"testing"

	apis "dirpx.dev/obx/apis"
	"dirpx.dev/obx/config"
	"dirpx.dev/obx/registry"
)

// TestConcurrentAddRemove verifies that Add/Remove/Count/Tally are race-free
// and that the final count is exact after every worker has drained.
func TestConcurrentAddRemove(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	workers := runtime.GOMAXPROCS(0) * 4
	const perWorker = 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			handles := make([]apis.Handle, 0, 16)
			for i := 0; i < perWorker; i++ {
				handles = append(handles, reg.Add(&fake{name: "churn"}))
				// Drain in bursts to force slot reuse under contention.
				if len(handles) == 16 {
					for _, h := range handles {
						reg.Remove(h)
					}
					handles = handles[:0]
				}
			}
			for _, h := range handles {
				reg.Remove(h)
			}
		}()
	}

	// Concurrent census readers.
	done := make(chan struct{})
	var rg sync.WaitGroup
	rg.Add(2)
	for r := 0; r < 2; r++ {
		go func() {
			defer rg.Done()
			for {
				select {
				case <-done:
					return
				default:
					if reg.Count() < 0 {
						t.Error("negative live count observed")
						return
					}
					_ = reg.Tally()
				}
			}
		}()
	}

	wg.Wait()
	close(done)
	rg.Wait()

	if reg.Count() != 0 {
		t.Fatalf("final Count() = %d, want 0", reg.Count())
	}
	if tally := reg.Tally(); len(tally) != 0 {
		t.Fatalf("final Tally() = %v, want empty", tally)
	}
}

// Compile-time checks for both registry flavors.
var (
	_ apis.Registry = registry.New(config.DefaultConfig())
	_ apis.Registry = registry.Noop()
)
