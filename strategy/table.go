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

package strategy

import (
	"reflect"

	"dirpx.dev/obx/apis"
)

// NewTableStrategy creates an apis.Strategy that consults an apis.NameTable.
func NewTableStrategy(tab apis.NameTable) apis.Strategy {
	return &tableStrategy{tab: tab}
}

// tableStrategy consults a provided apis.NameTable (reflection-free lookup).
type tableStrategy struct {
	tab apis.NameTable
}

// Ensure tableStrategy implements apis.Strategy.
var _ apis.Strategy = (*tableStrategy)(nil)

// TryResolve looks up v's type in the table.
func (s *tableStrategy) TryResolve(v any, _ apis.Config) (string, bool) {
	if v == nil || s.tab == nil {
		return "", false
	}
	return s.tab.Lookup(reflect.TypeOf(v))
}

// TryResolveType looks up t in the table.
func (s *tableStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || s.tab == nil {
		return "", false
	}
	return s.tab.Lookup(t)
}
