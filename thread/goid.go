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

package thread

import "runtime"

// stackHeader is the fixed prefix of a runtime.Stack dump:
// "goroutine 123 [running]:".
const stackHeader = "goroutine "

// goroutineID extracts the runtime's id for the calling goroutine from the
// stack header. The runtime never reuses ids, so the value is a stable key
// for the lifetime of the goroutine. Costs one runtime.Stack call; the
// callers are the role table paths, which only run when thread identity is
// actually being checked.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[len(stackHeader):n]
	var id uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
