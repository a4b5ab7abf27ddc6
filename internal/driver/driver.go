// Package driver iterates over a list of base filenames, assembling each
// one and producing its .ob/.ext/.ent outputs, and decides the process
// exit code.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gmofishsauce/asm24/internal/assembler"
	"github.com/gmofishsauce/asm24/internal/config"
	"github.com/gmofishsauce/asm24/internal/output"
)

// Exit codes for resource (technical) errors. Values are distinct and
// nonzero; their magnitudes follow the original program's indicator
// constants for the same three failure classes.
const (
	ExitAllocation    = 8
	ExitPrint         = 12
	ExitFileOperation = 13
)

// FatalError is returned by Run when a resource error should terminate
// the process immediately, carrying the exit code to use.
type FatalError struct {
	Code int
	Err  error
}

func (e *FatalError) Error() string { return e.Err.Error() }

// Run processes every base filename in names with default configuration.
// Equivalent to RunWithConfig(names, stderr, config.DefaultConfig()).
func Run(names []string, stderr io.Writer) error {
	return RunWithConfig(names, stderr, config.DefaultConfig())
}

// RunWithConfig processes every base filename in names, each read from
// "<name>.as" and writing "<name>.ob" plus conditional
// "<name>.ext"/"<name>.ent" into cfg.Output.Dir (or alongside the source
// if unset). Diagnostics go to stderr unless cfg.Diagnostics.Quiet
// suppresses the per-file summary line, and cfg.Diagnostics.Strict
// promotes warnings to poisoning errors. RunWithConfig returns a
// *FatalError only for resource failures; per-file assembly errors are
// reported but do not stop the remaining files and do not produce a
// nonzero result.
func RunWithConfig(names []string, stderr io.Writer, cfg *config.Config) error {
	for _, name := range names {
		if err := processFile(name, stderr, cfg); err != nil {
			return err
		}
	}
	return nil
}

func processFile(name string, stderr io.Writer, cfg *config.Config) error {
	srcPath := name + ".as"
	f, err := os.Open(srcPath)
	if err != nil {
		return &FatalError{Code: ExitFileOperation, Err: fmt.Errorf("opening %s: %w", srcPath, err)}
	}
	defer f.Close()

	out := assembler.AssembleWithOptions(srcPath, f, cfg.Diagnostics.Strict)
	out.Reporter.Emit(stderr)

	if out.Reporter.Poisoned() {
		if !cfg.Diagnostics.Quiet {
			out.Reporter.EmitSummary(stderr)
		}
		return nil
	}

	return writeObjectFiles(outputBase(name, cfg), out)
}

// outputBase resolves the base path output files are written under,
// honoring cfg.Output.Dir when set.
func outputBase(name string, cfg *config.Config) string {
	if cfg.Output.Dir == "" {
		return name
	}
	return filepath.Join(cfg.Output.Dir, filepath.Base(name))
}

func writeObjectFiles(base string, out *assembler.Output) error {
	if err := writeFile(base+".ob", func(w io.Writer) error {
		return output.WriteObject(w, out.Code, out.Data)
	}); err != nil {
		return err
	}

	if !out.Externals.Empty() {
		if err := writeFile(base+".ext", func(w io.Writer) error {
			return output.WriteExternals(w, out.Externals)
		}); err != nil {
			return err
		}
	}

	if len(out.Symbols.Entries()) > 0 {
		if err := writeFile(base+".ent", func(w io.Writer) error {
			return output.WriteEntries(w, out.Symbols)
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &FatalError{Code: ExitFileOperation, Err: fmt.Errorf("creating %s: %w", path, err)}
	}
	if err := write(f); err != nil {
		f.Close()
		return &FatalError{Code: ExitPrint, Err: fmt.Errorf("writing %s: %w", path, err)}
	}
	if err := f.Close(); err != nil {
		return &FatalError{Code: ExitFileOperation, Err: fmt.Errorf("closing %s: %w", path, err)}
	}
	return nil
}
