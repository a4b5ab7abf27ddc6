// Package diag implements the assembler's error reporter: a per-file,
// sticky-poisoned diagnostics sink that keeps collecting messages after
// the first error but stops being consulted for whether to emit output.
package diag

import (
	"fmt"
	"io"
)

// Severity distinguishes warnings (non-fatal) from errors (which poison
// output for the remainder of the file).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Diagnostic is one reported message.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

// Reporter accumulates diagnostics for a single source file. Once an
// error is reported, Poisoned returns true for the rest of the file's
// processing; callers use that to suppress further mutation of the
// symbol table and images while still letting both passes run to
// completion for diagnostic purposes.
type Reporter struct {
	Filename string
	diags    []Diagnostic
	poisoned bool
	strict   bool
}

// NewReporter creates a reporter scoped to one source filename.
func NewReporter(filename string) *Reporter {
	return &Reporter{Filename: filename}
}

// SetStrict controls whether Warnf promotes warnings to poisoning errors,
// per the optional config file's diagnostics.strict setting.
func (r *Reporter) SetStrict(strict bool) {
	r.strict = strict
}

// Errorf records an error at the given line and poisons the reporter.
func (r *Reporter) Errorf(line int, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{SeverityError, line, fmt.Sprintf(format, args...)})
	r.poisoned = true
}

// Warnf records a warning at the given line. In strict mode it is
// recorded as an error and poisons the reporter instead.
func (r *Reporter) Warnf(line int, format string, args ...any) {
	if r.strict {
		r.Errorf(line, format, args...)
		return
	}
	r.diags = append(r.diags, Diagnostic{SeverityWarning, line, fmt.Sprintf(format, args...)})
}

// Poisoned reports whether an error has been recorded for this file.
func (r *Reporter) Poisoned() bool {
	return r.poisoned
}

// Diagnostics returns every recorded diagnostic, in the order recorded.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// Emit writes every diagnostic to w as "SEVERITY file:line: message".
func (r *Reporter) Emit(w io.Writer) {
	for _, d := range r.diags {
		fmt.Fprintf(w, "%s %s:%d: %s\n", d.Severity, r.Filename, d.Line, d.Message)
	}
}

// EmitSummary writes a final summary line announcing suppressed output,
// matching the contract that a poisoned file produces no object/
// externals/entries output.
func (r *Reporter) EmitSummary(w io.Writer) {
	if r.poisoned {
		fmt.Fprintf(w, "%s: output suppressed, %d diagnostic(s)\n", r.Filename, len(r.diags))
	}
}
