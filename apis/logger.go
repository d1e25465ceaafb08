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

package apis

// LogLevel represents the severity of a log message.
type LogLevel string

const (
	// LogLevelDebug emits everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo emits info and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn emits warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError emits errors only.
	LogLevelError LogLevel = "error"
)

// Logger is the sink for the core's human-readable diagnostic lines
// (leak warnings, affinity messages, census reports). Implementations
// must not acquire locks that can also be held around registry
// operations; teardown-path warnings bypass the Logger entirely.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string)
	// Info logs an info-level message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error.
	Error(err error)
	// SetLevel sets the minimum severity that will be emitted.
	SetLevel(level LogLevel)
}
