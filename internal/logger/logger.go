// Package logger prints diagnostics for chainforensix to stderr.
// Debug, Section and Info lines appear only with --verbose so the lookup,
// retry and verification steps can be followed. Warnings are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
)

var prefixes = map[level]string{
	levelDebug: "[DEBUG] ",
	levelInfo:  "[INFO] ",
	levelWarn:  "[WARN] ",
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects all log lines. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(l level, format string, args []any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < levelWarn && !verbose {
		return
	}
	fmt.Fprintf(output, prefixes[l]+format+"\n", args...)
}

// Debug prints a step-level trace line in verbose mode.
func Debug(format string, args ...any) {
	emit(levelDebug, format, args)
}

// Info prints a progress line in verbose mode.
func Info(format string, args ...any) {
	emit(levelInfo, format, args)
}

// Warn prints a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	emit(levelWarn, format, args)
}

// Section prints a header separating phases, e.g. lookup and verification.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
