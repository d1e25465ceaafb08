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

package registry

import "dirpx.dev/obx/apis"

// Noop returns the registry flavor used when object tracking is disabled:
// it records nothing and costs nothing. Callers never branch on build
// mode; they always talk to the same interface.
func Noop() apis.Registry {
	return noop{}
}

type noop struct{}

// Ensure noop implements apis.Registry.
var _ apis.Registry = noop{}

func (noop) Add(apis.Trackable) apis.Handle { return 0 }
func (noop) Remove(apis.Handle)             {}
func (noop) Count() int                     { return 0 }
func (noop) Tally() map[string]int          { return nil }
func (noop) Enabled() bool                  { return false }
