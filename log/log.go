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

// Package log provides the default apis.Logger used when no sink is
// injected, plus the raw teardown-safe warning channel.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"dirpx.dev/obx/apis"
)

// New creates a Logger writing formatted lines to stdout and errors to
// stderr, emitting only messages at or above level.
func New(level apis.LogLevel) apis.Logger {
	return &stdLogger{level: rank(level)}
}

// stdLogger is a minimal leveled logger. SetLevel is a setup-time call;
// it is not synchronized against concurrent logging.
type stdLogger struct {
	level int
}

// Ensure stdLogger implements apis.Logger.
var _ apis.Logger = (*stdLogger)(nil)

// rank maps a level to its severity order; unknown levels log everything.
func rank(level apis.LogLevel) int {
	switch level {
	case apis.LogLevelDebug:
		return 0
	case apis.LogLevelInfo:
		return 1
	case apis.LogLevelWarn:
		return 2
	case apis.LogLevelError:
		return 3
	}
	return 0
}

// formatMessage renders one line: [OBX-TIMESTAMP] LEVEL: message.
func formatMessage(level apis.LogLevel, msg string, err error) string {
	base := fmt.Sprintf("[OBX-%s] %s: %s", time.Now().Format(time.RFC3339), level, msg)
	if err != nil {
		return fmt.Sprintf("%s (error: %v)", base, err)
	}
	return base
}

func (l *stdLogger) Debug(msg string) {
	if l.level <= rank(apis.LogLevelDebug) {
		fmt.Fprintln(os.Stdout, formatMessage(apis.LogLevelDebug, msg, nil))
	}
}

func (l *stdLogger) Info(msg string) {
	if l.level <= rank(apis.LogLevelInfo) {
		fmt.Fprintln(os.Stdout, formatMessage(apis.LogLevelInfo, msg, nil))
	}
}

func (l *stdLogger) Warn(msg string) {
	if l.level <= rank(apis.LogLevelWarn) {
		fmt.Fprintln(os.Stdout, formatMessage(apis.LogLevelWarn, msg, nil))
	}
}

// Error always emits, regardless of level.
func (l *stdLogger) Error(err error) {
	fmt.Fprintln(os.Stderr, formatMessage(apis.LogLevelError, "", err))
}

func (l *stdLogger) SetLevel(level apis.LogLevel) {
	l.level = rank(level)
}

// rawSink is swapped by tests to capture teardown warnings.
var rawSink io.Writer = os.Stderr

// RawWarn writes one line straight to stderr, bypassing every Logger.
// Teardown diagnostics use it because the configured sink may take locks,
// and locking mid-destruction can deadlock against the registry mutex.
func RawWarn(msg string) {
	fmt.Fprintln(rawSink, msg)
}

// SetRawSink redirects RawWarn output; nil restores stderr. Intended for
// tests that assert on teardown diagnostics.
func SetRawSink(w io.Writer) {
	if w == nil {
		rawSink = os.Stderr
		return
	}
	rawSink = w
}
