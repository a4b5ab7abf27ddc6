// Package isa holds the machine's fixed instruction table and the other
// core-design lookups: directive names, register naming, reserved-word
// checks, and symbol-name validation.
package isa

import (
	"strings"

	"github.com/gmofishsauce/asm24/internal/word"
)

// modeSet is a 4-bit mask of permitted addressing modes, one bit per
// word.AddrMode value.
type modeSet uint8

func modeBit(m word.AddrMode) modeSet {
	return 1 << uint(m)
}

func (s modeSet) allows(m word.AddrMode) bool {
	return s&modeBit(m) != 0
}

func modes(immediate, direct, relative, register bool) modeSet {
	var s modeSet
	if immediate {
		s |= modeBit(word.Immediate)
	}
	if direct {
		s |= modeBit(word.Direct)
	}
	if relative {
		s |= modeBit(word.Relative)
	}
	if register {
		s |= modeBit(word.DirectRegister)
	}
	return s
}

// Instruction is an immutable descriptor for one machine operation.
type Instruction struct {
	Name     string
	Opcode   int
	Funct    int
	NumOpnds int
	Src      modeSet
	Dest     modeSet
}

// SrcAllows reports whether m is a permitted addressing mode for this
// instruction's source operand.
func (i Instruction) SrcAllows(m word.AddrMode) bool { return i.Src.allows(m) }

// DestAllows reports whether m is a permitted addressing mode for this
// instruction's destination operand.
func (i Instruction) DestAllows(m word.AddrMode) bool { return i.Dest.allows(m) }

// table is the full 16-entry instruction set, transcribed from the
// assembly core design's opcode/funct/operand-count/addressing-mode
// matrix. Column order below follows src-imm,src-dir,src-rel,src-reg,
// dest-imm,dest-dir,dest-rel,dest-reg.
var table = []Instruction{
	{"mov", 0, 0, 2, modes(true, true, false, true), modes(false, true, false, true)},
	{"cmp", 1, 0, 2, modes(true, true, false, true), modes(true, true, false, true)},
	{"add", 2, 1, 2, modes(true, true, false, true), modes(false, true, false, true)},
	{"sub", 2, 2, 2, modes(true, true, false, true), modes(false, true, false, true)},
	{"lea", 4, 0, 2, modes(false, true, false, false), modes(false, true, false, true)},
	{"clr", 5, 1, 1, modes(false, false, false, false), modes(false, true, false, true)},
	{"not", 5, 2, 1, modes(false, false, false, false), modes(false, true, false, true)},
	{"inc", 5, 3, 1, modes(false, false, false, false), modes(false, true, false, true)},
	{"dec", 5, 4, 1, modes(false, false, false, false), modes(false, true, false, true)},
	{"jmp", 9, 1, 1, modes(false, false, false, false), modes(false, true, true, false)},
	{"bne", 9, 2, 1, modes(false, false, false, false), modes(false, true, true, false)},
	{"jsr", 9, 3, 1, modes(false, false, false, false), modes(false, true, true, false)},
	{"red", 12, 0, 1, modes(false, false, false, false), modes(false, true, false, true)},
	{"prn", 13, 0, 1, modes(false, false, false, false), modes(true, true, false, true)},
	{"rts", 14, 0, 0, 0, 0},
	{"stop", 15, 0, 0, 0, 0},
}

// FindInstruction looks up an instruction by name. The second return
// value is false if name names no instruction.
func FindInstruction(name string) (Instruction, bool) {
	for _, inst := range table {
		if inst.Name == name {
			return inst, true
		}
	}
	return Instruction{}, false
}

// DirectiveKind enumerates the four guidance statements.
type DirectiveKind int

const (
	DirData DirectiveKind = iota
	DirString
	DirEntry
	DirExtern
)

func (k DirectiveKind) String() string {
	switch k {
	case DirData:
		return ".data"
	case DirString:
		return ".string"
	case DirEntry:
		return ".entry"
	case DirExtern:
		return ".extern"
	default:
		return "<unknown directive>"
	}
}

// FindDirective matches a guidance statement name (with the leading '.'
// already stripped). The second return value is false if no directive
// matches.
func FindDirective(nameWithoutDot string) (DirectiveKind, bool) {
	switch nameWithoutDot {
	case "data":
		return DirData, true
	case "string":
		return DirString, true
	case "entry":
		return DirEntry, true
	case "extern":
		return DirExtern, true
	default:
		return 0, false
	}
}

// RegisterIndex matches a register token of the form r0..r7 and returns
// its index; the second return value is false for anything else.
func RegisterIndex(tok string) (int, bool) {
	if len(tok) != 2 || tok[0] != 'r' {
		return 0, false
	}
	if tok[1] < '0' || tok[1] > '7' {
		return 0, false
	}
	return int(tok[1] - '0'), true
}

// IsReserved reports whether s names an instruction, a directive (without
// its leading dot), or a register — any of which a symbol name may not
// shadow.
func IsReserved(s string) bool {
	if _, ok := FindInstruction(s); ok {
		return true
	}
	if _, ok := FindDirective(s); ok {
		return true
	}
	if _, ok := RegisterIndex(s); ok {
		return true
	}
	return false
}

// MaxSymbolLen is the maximum length, in characters, of a symbol name.
const MaxSymbolLen = 31

// SymbolValidity is the result of validating a candidate symbol name.
type SymbolValidity int

const (
	SymbolValid SymbolValidity = iota
	SymbolEmpty
	SymbolNotAlpha
	SymbolNotAlnum
	SymbolTooLong
	SymbolReserved
)

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9')
}

// ValidateSymbolName checks s against the symbol-naming rules: starts
// with a letter, continues with letters or digits, no longer than
// MaxSymbolLen, and not a reserved word.
func ValidateSymbolName(s string) SymbolValidity {
	if len(s) == 0 {
		return SymbolEmpty
	}
	if !isAlpha(s[0]) {
		return SymbolNotAlpha
	}
	if IsReserved(s) {
		return SymbolReserved
	}
	i := 1
	for ; i < len(s) && i < MaxSymbolLen; i++ {
		if !isAlnum(s[i]) {
			return SymbolNotAlnum
		}
	}
	if i == len(s) {
		return SymbolValid
	}
	return SymbolTooLong
}

// ValidityMessage renders a SymbolValidity as a diagnostic fragment.
func ValidityMessage(v SymbolValidity, name string) string {
	var b strings.Builder
	switch v {
	case SymbolEmpty:
		b.WriteString("empty symbol name")
	case SymbolNotAlpha:
		b.WriteString("symbol name must start with a letter: " + name)
	case SymbolNotAlnum:
		b.WriteString("symbol name must contain only letters and digits: " + name)
	case SymbolTooLong:
		b.WriteString("symbol name longer than 31 characters: " + name)
	case SymbolReserved:
		b.WriteString("symbol name is reserved: " + name)
	default:
		b.WriteString("valid symbol: " + name)
	}
	return b.String()
}
