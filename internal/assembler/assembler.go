// Package assembler orchestrates one source file's two-pass assembly:
// pass one, a single data-relocation step, then pass two.
package assembler

import (
	"bufio"
	"io"
	"strings"

	"github.com/gmofishsauce/asm24/internal/diag"
	"github.com/gmofishsauce/asm24/internal/image"
	"github.com/gmofishsauce/asm24/internal/pass1"
	"github.com/gmofishsauce/asm24/internal/pass2"
	"github.com/gmofishsauce/asm24/internal/symtab"
)

// Output is everything the output stage needs to write the .ob/.ext/.ent
// files for one assembled source file.
type Output struct {
	Reporter  *diag.Reporter
	Symbols   *symtab.Table
	Code      *image.Words
	Data      *image.Words
	Externals *image.Externals
}

// Assemble runs both passes over src, named filename for diagnostics.
func Assemble(filename string, src io.Reader) *Output {
	return AssembleWithOptions(filename, src, false)
}

// AssembleWithOptions is Assemble with the diagnostics reporter's strict
// mode set per the optional config file's diagnostics.strict setting.
func AssembleWithOptions(filename string, src io.Reader, strict bool) *Output {
	lines := readLines(src)

	res := pass1.RunStrict(filename, lines, strict)
	res.Symbols.RelocateData(res.Code.Len() + image.LoadBase)
	externals := pass2.Run(lines, res.LineKinds, res.Reporter, res.Symbols, res.Code)

	return &Output{
		Reporter:  res.Reporter,
		Symbols:   res.Symbols,
		Code:      res.Code,
		Data:      res.Data,
		Externals: externals,
	}
}

// readLines splits src into lines, stripping line terminators. A final
// line with no trailing newline is still included.
func readLines(src io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}
