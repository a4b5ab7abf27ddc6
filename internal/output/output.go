// Package output renders an assembled file's code/data images, external
// references, and entry symbols into the .ob/.ext/.ent text formats.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gmofishsauce/asm24/internal/image"
	"github.com/gmofishsauce/asm24/internal/symtab"
	"github.com/gmofishsauce/asm24/internal/word"
)

// WriteObject writes the .ob format: a header line with code/data image
// lengths, the code image, a blank line, then the data image, addresses
// continuing from the end of the code image. No trailing newline; when the
// data image is empty, the blank line is omitted as well.
func WriteObject(w io.Writer, code, data *image.Words) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d\n", code.Len(), data.Len())

	addr := word.Address(image.LoadBase)
	for i, v := range code.All() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s %s", word.AddressToDec(addr), word.ToHex(v))
		addr++
	}
	if data.Len() > 0 {
		if code.Len() > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw)
	}

	for i, v := range data.All() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s %s", word.AddressToDec(addr), word.ToHex(v))
		addr++
	}

	return bw.Flush()
}

// WriteExternals writes the .ext format: one "NAME AAAAAAA" record per
// recorded reference, in recording order.
func WriteExternals(w io.Writer, externals *image.Externals) error {
	bw := bufio.NewWriter(w)
	for i, ref := range externals.All() {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s %s", ref.Name, word.AddressToDec(ref.Address))
	}
	return bw.Flush()
}

// WriteEntries writes the .ent format: one "NAME AAAAAAA" record per
// entry symbol, in the symbol table's bucket iteration order.
func WriteEntries(w io.Writer, tab *symtab.Table) error {
	bw := bufio.NewWriter(w)
	entries := tab.Entries()
	for i, sym := range entries {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s %s", sym.Name, word.AddressToDec(sym.Address()))
	}
	return bw.Flush()
}
