// Package pass2 implements the assembler's second pass: re-parsing
// operand tokens against the code image pass one built, resolving
// symbol references, recording externals, and marking entry symbols.
package pass2

import (
	"strings"

	"github.com/gmofishsauce/asm24/internal/diag"
	"github.com/gmofishsauce/asm24/internal/image"
	"github.com/gmofishsauce/asm24/internal/isa"
	"github.com/gmofishsauce/asm24/internal/lexer"
	"github.com/gmofishsauce/asm24/internal/operand"
	"github.com/gmofishsauce/asm24/internal/pass1"
	"github.com/gmofishsauce/asm24/internal/symtab"
	"github.com/gmofishsauce/asm24/internal/word"
)

// Run re-reads the source a second time, using the per-line
// classification pass one produced to decide what to revisit. It
// returns the externals list built along the way; it never emits
// anything when r is already poisoned, but it keeps running so that
// further diagnostics can still surface.
func Run(lines []string, kinds []pass1.LineKind, r *diag.Reporter, tab *symtab.Table, code *image.Words) *image.Externals {
	externals := &image.Externals{}
	ic := word.Address(image.LoadBase)

	for i, line := range lines {
		lineNum := i + 1
		kind := kinds[i]

		switch kind {
		case pass1.LineSkip:
			continue
		case pass1.LineEntry:
			processEntry(line, lineNum, r, tab)
		case pass1.LineInstruction:
			ic = processInstruction(line, lineNum, r, tab, code, externals, ic)
		}
	}

	return externals
}

func processEntry(line string, lineNum int, r *diag.Reporter, tab *symtab.Table) {
	toks := lexer.Tokenize(line)
	idx := 0
	if strings.HasSuffix(toks[0].Text, ":") {
		idx = 1
	}
	idx++ // skip the ".entry" keyword itself
	if idx >= len(toks) {
		r.Errorf(lineNum, "missing operand for .entry")
		return
	}
	name := toks[idx].Text
	sym, ok := tab.Lookup(name)
	if !ok {
		r.Errorf(lineNum, "unknown symbol in .entry: %s", name)
		return
	}
	if sym.IsExtern {
		r.Errorf(lineNum, "external symbol used in .entry: %s", name)
		return
	}
	if !r.Poisoned() {
		tab.SetEntry(name)
	}
}

// processInstruction walks the operand tokens of one instruction
// statement, resolving direct and relative references into the code
// slots pass one reserved. Returns the IC value for the next
// instruction.
func processInstruction(line string, lineNum int, r *diag.Reporter, tab *symtab.Table, code *image.Words, externals *image.Externals, ic word.Address) word.Address {
	toks := lexer.Tokenize(line)
	idx := 0
	if strings.HasSuffix(toks[0].Text, ":") {
		idx = 1
	}
	name := toks[idx].Text
	idx++

	inst, ok := isa.FindInstruction(name)
	if !ok {
		// Pass one already reported this; nothing to resolve.
		return ic
	}

	headAddr := ic
	ic++ // advance past the head word; ic now addresses the first operand slot, if any

	rest := toks[idx:]
	vals := operandTokens(rest)

	var src, dst *lexer.Token
	switch inst.NumOpnds {
	case 1:
		if len(vals) >= 1 {
			dst = &vals[0]
		}
	case 2:
		if len(vals) >= 2 {
			src, dst = &vals[0], &vals[1]
		}
	}

	if inst.NumOpnds == 2 && src != nil {
		ic = resolveOperand(*src, lineNum, r, tab, code, externals, headAddr, ic)
	}
	if inst.NumOpnds >= 1 && dst != nil {
		ic = resolveOperand(*dst, lineNum, r, tab, code, externals, headAddr, ic)
	}

	return ic
}

// operandTokens drops comma tokens, leaving just the operand tokens in
// source-then-destination order.
func operandTokens(toks []lexer.Token) []lexer.Token {
	var out []lexer.Token
	for _, t := range toks {
		if !t.IsComma() {
			out = append(out, t)
		}
	}
	return out
}

// resolveOperand dispatches on the operand's syntactic shape and
// returns the updated ic. An operand that occupies a code word always
// occupies the slot at address ic, so the code-image index is derived
// from ic itself (ic - image.LoadBase) rather than tracked separately.
func resolveOperand(tok lexer.Token, lineNum int, r *diag.Reporter, tab *symtab.Table, code *image.Words, externals *image.Externals, headAddr word.Address, ic word.Address) word.Address {
	op, err := operand.Classify(tok.Text)
	if err != nil {
		r.Errorf(lineNum, "%v", err)
		return ic
	}

	if op.Kind == operand.KindRegister {
		return ic
	}

	slot := int(ic) - image.LoadBase

	switch op.Kind {
	case operand.KindImmediate:
		return ic + 1

	case operand.KindRelative:
		sym, ok := tab.Lookup(op.Symbol)
		if !ok {
			r.Errorf(lineNum, "unknown symbol: %s", op.Symbol)
			return ic + 1
		}
		if sym.IsExtern {
			r.Errorf(lineNum, "external symbol used with relative addressing: %s", op.Symbol)
			return ic + 1
		}
		distance := int(sym.Address()) - int(headAddr)
		if !r.Poisoned() {
			code.Set(slot, word.EncodeNonARE(word.AREAbsolute, word.ToS21(distance)))
		}
		return ic + 1

	case operand.KindDirect:
		sym, ok := tab.Lookup(op.Symbol)
		if !ok {
			r.Errorf(lineNum, "unknown symbol: %s", op.Symbol)
			return ic + 1
		}
		if !r.Poisoned() {
			code.Set(slot, sym.RepWord)
			if sym.IsExtern {
				externals.Add(op.Symbol, ic)
			}
		}
		return ic + 1
	}
	return ic
}
