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

package census

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// Ensure Report round-trips through the standard marshaler interfaces.
var (
	_ json.Marshaler   = Report{}
	_ json.Unmarshaler = (*Report)(nil)
)

// MarshalJSON encodes the report for machine consumers (dashboards,
// leak-tracking tooling) using sonic.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return sonic.Marshal(alias(r))
}

// UnmarshalJSON decodes a report produced by MarshalJSON.
func (r *Report) UnmarshalJSON(data []byte) error {
	type alias Report
	return sonic.Unmarshal(data, (*alias)(r))
}
