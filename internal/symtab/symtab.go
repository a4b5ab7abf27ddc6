// Package symtab implements the assembler's symbol table: a hash-keyed
// map from name to Symbol, with chained buckets and bulk relocation of
// data-segment addresses after pass one.
package symtab

import "github.com/gmofishsauce/asm24/internal/word"

// numBuckets matches the original hash table size.
const numBuckets = 58

// Symbol is one entry: a name bound to a replacement word and its flags.
type Symbol struct {
	Name     string
	RepWord  word.Word
	IsExtern bool
	IsEntry  bool
	IsData   bool
}

// Address returns the symbol's target address, read out of the non-ARE
// field of its replacement word.
func (s Symbol) Address() word.Address {
	return word.Address(word.NonARESigned(s.RepWord))
}

// InsertStatus reports the outcome of an Insert call.
type InsertStatus int

const (
	InsertOK InsertStatus = iota
	InsertDuplicate
)

// Table is a chained hash table keyed by symbol name, insertion order
// preserved within each bucket.
type Table struct {
	buckets [numBuckets][]Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{}
}

// hash computes the bucket index for name, using the original
// polynomial hash: hashval = *str + 31*hashval, reduced mod numBuckets.
func hash(name string) int {
	var h int
	for i := 0; i < len(name); i++ {
		h = int(name[i]) + 31*h
	}
	h %= numBuckets
	if h < 0 {
		h += numBuckets
	}
	return h
}

// Insert adds a symbol. Returns InsertDuplicate without modifying the
// table if name is already present.
func (t *Table) Insert(sym Symbol) InsertStatus {
	b := hash(sym.Name)
	for _, existing := range t.buckets[b] {
		if existing.Name == sym.Name {
			return InsertDuplicate
		}
	}
	t.buckets[b] = append(t.buckets[b], sym)
	return InsertOK
}

// Lookup finds a symbol by name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	b := hash(name)
	for i := range t.buckets[b] {
		if t.buckets[b][i].Name == name {
			return &t.buckets[b][i], true
		}
	}
	return nil, false
}

// SetEntry marks name as an entry symbol. Caller has already verified
// the symbol exists and is not external.
func (t *Table) SetEntry(name string) {
	if sym, ok := t.Lookup(name); ok {
		sym.IsEntry = true
	}
}

// RelocateData adds delta to the address field of every data-segment
// symbol's replacement word. Called exactly once, after pass one and
// before pass two.
func (t *Table) RelocateData(delta int) {
	for b := range t.buckets {
		for i := range t.buckets[b] {
			sym := &t.buckets[b][i]
			if !sym.IsData {
				continue
			}
			newAddr := int(sym.Address()) + delta
			sym.RepWord = word.EncodeNonARE(word.NonARETag(sym.RepWord), newAddr)
		}
	}
}

// Entries visits every entry-flagged symbol in bucket order, the order
// the .ent file is written in.
func (t *Table) Entries() []Symbol {
	var out []Symbol
	for b := range t.buckets {
		for _, sym := range t.buckets[b] {
			if sym.IsEntry {
				out = append(out, sym)
			}
		}
	}
	return out
}
