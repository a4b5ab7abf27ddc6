// Package operand classifies an operand token's syntactic shape. The same
// rules are used by both passes: pass one to validate and reserve words,
// pass two to re-derive the addressing mode while resolving symbols.
package operand

import (
	"fmt"
	"strconv"

	"github.com/gmofishsauce/asm24/internal/isa"
	"github.com/gmofishsauce/asm24/internal/word"
)

// Kind tags which syntactic shape a token took.
type Kind int

const (
	KindImmediate Kind = iota
	KindRegister
	KindRelative
	KindDirect
)

// Operand is the pass-one representation of one operand token.
type Operand struct {
	Kind     Kind
	Mode     word.AddrMode
	Value    int    // immediate literal value, only valid when Kind == KindImmediate
	Symbol   string // symbol name, only valid when Kind == KindRelative or KindDirect
	Register int    // register index, only valid when Kind == KindRegister
}

// Classify determines the syntactic shape of a single operand token. It
// does not resolve symbols; it only recognizes the four operand forms
// and validates literal/symbol syntax.
func Classify(tok string) (Operand, error) {
	if tok == "" {
		return Operand{}, fmt.Errorf("missing operand")
	}
	switch tok[0] {
	case '#':
		lit := tok[1:]
		v, err := ParseInteger(lit)
		if err != nil {
			return Operand{}, fmt.Errorf("malformed immediate operand: %s", tok)
		}
		return Operand{Kind: KindImmediate, Mode: word.Immediate, Value: v}, nil
	case '&':
		name := tok[1:]
		if v := isa.ValidateSymbolName(name); v != isa.SymbolValid {
			return Operand{}, fmt.Errorf("bad symbol name in relative operand: %s", isa.ValidityMessage(v, name))
		}
		return Operand{Kind: KindRelative, Mode: word.Relative, Symbol: name}, nil
	default:
		if idx, ok := isa.RegisterIndex(tok); ok {
			return Operand{Kind: KindRegister, Mode: word.DirectRegister, Register: idx}, nil
		}
		if v := isa.ValidateSymbolName(tok); v != isa.SymbolValid {
			return Operand{}, fmt.Errorf("bad symbol name in operand: %s", isa.ValidityMessage(v, tok))
		}
		return Operand{Kind: KindDirect, Mode: word.Direct, Symbol: tok}, nil
	}
}

// ParseInteger accepts an optional leading sign followed by one or more
// decimal digits, with no embedded whitespace; out-of-range values wrap
// by modular truncation rather than erroring. Shared by immediate
// operands and .data literals.
func ParseInteger(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty integer literal")
	}
	neg := false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i = 1
	}
	if i == len(s) {
		return 0, fmt.Errorf("no digits in integer literal: %s", s)
	}
	for j := i; j < len(s); j++ {
		if s[j] < '0' || s[j] > '9' {
			return 0, fmt.Errorf("invalid integer literal: %s", s)
		}
	}
	v, err := strconv.ParseInt(s[i:], 10, 64)
	if err != nil {
		// The digits are already validated, so ParseInt fails only on
		// overflow; fall back to a wrapping reduction of the digits.
		v = truncateDecimal(s[i:])
	}
	if neg {
		v = -v
	}
	return int(v), nil
}

// truncateDecimal accumulates an over-long decimal digit string one digit
// at a time in an int64, letting it wrap; the result is the value modulo
// 2^64, read as a signed int64.
func truncateDecimal(digits string) int64 {
	var v int64
	for _, c := range digits {
		v = v*10 + int64(c-'0')
	}
	return v
}
