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

// Package census turns a live-object registry snapshot into a
// deterministic, reportable summary of the live population.
package census

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dirpx.dev/obx/apis"
)

// Group is one type bucket in a census report.
type Group struct {
	// Name is the census type name shared by the bucket's instances.
	Name string `json:"name"`
	// Count is the number of live instances in the bucket.
	Count int `json:"count"`
}

// Report is a snapshot of the live-object population. Groups are sorted by
// descending count; ties break by ascending name so equal inputs always
// produce equal reports.
type Report struct {
	// Total is the number of live instances, or -1 when the registry is
	// the no-op flavor and no census is possible.
	Total int `json:"total"`
	// At is when the snapshot was taken.
	At time.Time `json:"at"`
	// Groups holds the per-type buckets.
	Groups []Group `json:"groups,omitempty"`
}

// Build snapshots reg into a Report. The registry tallies under its own
// lock, so Total always equals the number of live instances at the
// instant the lock was held.
func Build(reg apis.Registry, cfg apis.Config) Report {
	if reg == nil || !reg.Enabled() {
		return Report{Total: -1, At: cfg.Now()}
	}

	tally := reg.Tally()
	groups := make([]Group, 0, len(tally))
	total := 0
	for name, n := range tally {
		groups = append(groups, Group{Name: name, Count: n})
		total += n
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Name < groups[j].Name
	})

	return Report{Total: total, At: cfg.Now(), Groups: groups}
}

// Unavailable reports whether the snapshot came from a disabled registry.
func (r Report) Unavailable() bool {
	return r.Total < 0
}

// String renders the report as a human-readable block: the total and
// timestamp, then one indented "count: name" line per bucket.
func (r Report) String() string {
	if r.Unavailable() {
		return "census unavailable; object tracking is disabled"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d objects at %s;", r.Total, r.At.Format(time.RFC3339))
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "\n   %d: %s", g.Count, g.Name)
	}
	return b.String()
}
