package symtab

import (
	"testing"

	"github.com/gmofishsauce/asm24/internal/word"
)

func newSymbol(name string, addr int, isData bool) Symbol {
	return Symbol{
		Name:    name,
		RepWord: word.EncodeNonARE(word.ARERelocatable, addr),
		IsData:  isData,
	}
}

func TestInsertAndLookup(t *testing.T) {
	tab := New()
	if st := tab.Insert(newSymbol("MAIN", 100, false)); st != InsertOK {
		t.Fatalf("Insert = %v, want OK", st)
	}
	sym, ok := tab.Lookup("MAIN")
	if !ok {
		t.Fatal("MAIN not found")
	}
	if sym.Address() != 100 {
		t.Fatalf("address = %d, want 100", sym.Address())
	}
}

func TestInsertDuplicate(t *testing.T) {
	tab := New()
	tab.Insert(newSymbol("X", 0, true))
	if st := tab.Insert(newSymbol("X", 1, true)); st != InsertDuplicate {
		t.Fatalf("Insert duplicate = %v, want Duplicate", st)
	}
}

func TestLookupMissing(t *testing.T) {
	tab := New()
	if _, ok := tab.Lookup("NOPE"); ok {
		t.Fatal("expected NOPE to be missing")
	}
}

func TestRelocateDataOnlyAffectsDataSymbols(t *testing.T) {
	tab := New()
	tab.Insert(newSymbol("X", 0, true))
	tab.Insert(newSymbol("MAIN", 100, false))
	tab.RelocateData(103)

	x, _ := tab.Lookup("X")
	if x.Address() != 103 {
		t.Fatalf("X.Address() = %d, want 103", x.Address())
	}
	main, _ := tab.Lookup("MAIN")
	if main.Address() != 100 {
		t.Fatalf("MAIN.Address() = %d, want unchanged 100", main.Address())
	}
}

func TestSetEntryAndEntries(t *testing.T) {
	tab := New()
	tab.Insert(newSymbol("K", 101, true))
	tab.SetEntry("K")
	entries := tab.Entries()
	if len(entries) != 1 || entries[0].Name != "K" || !entries[0].IsEntry {
		t.Fatalf("Entries() = %+v", entries)
	}
}

func TestHashDistributesAcrossBuckets(t *testing.T) {
	tab := New()
	names := []string{"A", "B", "MAIN", "LOOP", "X", "K", "EXT", "COUNTER"}
	for i, n := range names {
		tab.Insert(newSymbol(n, i, false))
	}
	for _, n := range names {
		if _, ok := tab.Lookup(n); !ok {
			t.Fatalf("%s not found after insert", n)
		}
	}
}
