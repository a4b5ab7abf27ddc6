// Package image holds the code image, data image, and externals list
// built by the two passes: plain indexable slices in place of the
// original's hand-built linked lists, so pass two can walk by index and
// mutate slots in place.
package image

import "github.com/gmofishsauce/asm24/internal/word"

// LoadBase is the fixed address the code image starts at.
const LoadBase = 100

// Words is an append-only, indexable sequence of machine words.
type Words struct {
	words []word.Word
}

// Len returns the number of words currently held.
func (w *Words) Len() int { return len(w.words) }

// Append adds a word to the end of the sequence, returning its index.
func (w *Words) Append(v word.Word) int {
	w.words = append(w.words, v)
	return len(w.words) - 1
}

// Set overwrites the word at index i in place.
func (w *Words) Set(i int, v word.Word) {
	w.words[i] = v
}

// At returns the word at index i.
func (w *Words) At(i int) word.Word {
	return w.words[i]
}

// All returns the full sequence in order.
func (w *Words) All() []word.Word {
	return w.words
}

// ExternRef is one recorded use of an external symbol: its name and the
// code address of the slot containing the reference.
type ExternRef struct {
	Name    string
	Address word.Address
}

// Externals is an append-only, ordered list of external-symbol
// references, in the order pass two encountered them.
type Externals struct {
	refs []ExternRef
}

// Add records one external reference.
func (e *Externals) Add(name string, addr word.Address) {
	e.refs = append(e.refs, ExternRef{Name: name, Address: addr})
}

// All returns every recorded reference, in recording order.
func (e *Externals) All() []ExternRef {
	return e.refs
}

// Empty reports whether any external reference was recorded.
func (e *Externals) Empty() bool {
	return len(e.refs) == 0
}
