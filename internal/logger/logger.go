/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides leveled stderr logging that can be silenced for
// the MCP server, where stdout and stderr belong to the protocol host.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

// Level selects which messages are written.
type Level int

const (
	// LevelQuiet writes warnings only.
	LevelQuiet Level = iota
	// LevelInfo writes warnings and progress messages.
	LevelInfo
	// LevelDebug writes everything.
	LevelDebug
)

var (
	mu     sync.Mutex
	level  = LevelInfo
	logger = log.New(os.Stderr, "", 0)
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

// SetLevel changes the minimum level written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func logf(l Level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l > level {
		return
	}
	logger.Printf(prefix+format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	logf(LevelQuiet, "warning: ", format, args...)
}

// Info logs a progress message.
func Info(format string, args ...any) {
	logf(LevelInfo, "", format, args...)
}

// Debug logs a message shown only with --verbose.
func Debug(format string, args ...any) {
	logf(LevelDebug, "debug: ", format, args...)
}
