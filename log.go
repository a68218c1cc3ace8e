// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package modsys

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Severity mirrors the three diagnostic levels the original compiler's
// console coloring distinguished (yellow/red/magenta): a warning never
// stops compilation, an error stops it only when the Reporter is
// Strict, and a critical always stops it.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Diagnostic is one compiler-emitted message, carrying enough context to
// point a module author at the offending entity without needing a real
// source file and line number (the definition modules are data, not
// text, so there is no file:line to report).
type Diagnostic struct {
	Severity Severity
	Context  string // e.g. "troops: trp_player, statement 3"
	Message  string
}

func (d Diagnostic) String() string {
	if d.Context == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Context, d.Message)
}

// Reporter collects diagnostics as compilation proceeds and decides,
// based on its Strict/Quiet settings, whether an error is merely logged
// or aborts the run. It is the one place compile-time logging happens;
// every other file calls Reporter methods instead of touching the
// logger directly, the way the original routed every warning through
// Warning() instead of printf'ing ad hoc.
type Reporter struct {
	mu   sync.Mutex
	logs []Diagnostic

	// Strict promotes SeverityError into a fatal condition, matching
	// the -strict command line flag.
	Strict bool
	// Quiet suppresses SeverityWarning from the log (but they are still
	// recorded), matching the -no-warnings flag.
	Quiet bool

	logger *log.Logger
}

// NewReporter returns a Reporter that writes human-readable diagnostics
// to os.Stderr via charmbracelet/log, colorizing by severity.
func NewReporter(strict, quiet bool) *Reporter {
	return &Reporter{
		Strict: strict,
		Quiet:  quiet,
		logger: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false}),
	}
}

// Warnf records a warning. It never halts compilation.
func (r *Reporter) Warnf(ctx, format string, a ...interface{}) {
	r.record(Diagnostic{Severity: SeverityWarning, Context: ctx, Message: fmt.Sprintf(format, a...)})
}

// Errorf records an error. If the Reporter is Strict, this is
// equivalent to Fatalf; otherwise compilation continues but Failed()
// becomes true.
func (r *Reporter) Errorf(ctx, format string, a ...interface{}) {
	d := Diagnostic{Severity: SeverityError, Context: ctx, Message: fmt.Sprintf(format, a...)}
	r.record(d)
	if r.Strict {
		r.abort(d)
	}
}

// Fatalf records a critical diagnostic and aborts the process. Critical
// diagnostics correspond to malformed input the compiler has no
// sensible way to recover from (a missing required field, an opcode
// table overflow), never to merely-unexpected data.
func (r *Reporter) Fatalf(ctx, format string, a ...interface{}) {
	d := Diagnostic{Severity: SeverityCritical, Context: ctx, Message: fmt.Sprintf(format, a...)}
	r.record(d)
	r.abort(d)
}

func (r *Reporter) record(d Diagnostic) {
	r.mu.Lock()
	r.logs = append(r.logs, d)
	r.mu.Unlock()
	if d.Severity == SeverityWarning && r.Quiet {
		return
	}
	switch d.Severity {
	case SeverityWarning:
		r.logger.Warn(d.Message, "at", d.Context)
	case SeverityError:
		r.logger.Error(d.Message, "at", d.Context)
	case SeverityCritical:
		r.logger.Error(d.Message, "at", d.Context, "fatal", true)
	}
}

func (r *Reporter) abort(d Diagnostic) {
	os.Exit(1)
}

// Failed reports whether any error- or critical-severity diagnostic has
// been recorded.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.logs {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns every diagnostic recorded so far, in emission
// order. Tests use this instead of scraping stderr.
func (r *Reporter) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.logs))
	copy(out, r.logs)
	return out
}
