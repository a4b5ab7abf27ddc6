// Package pass1 implements the assembler's first pass: line
// classification, symbol declaration, instruction/directive dispatch,
// code-slot reservation, data emission, and symbol table construction.
package pass1

import (
	"strings"

	"github.com/gmofishsauce/asm24/internal/diag"
	"github.com/gmofishsauce/asm24/internal/image"
	"github.com/gmofishsauce/asm24/internal/isa"
	"github.com/gmofishsauce/asm24/internal/lexer"
	"github.com/gmofishsauce/asm24/internal/operand"
	"github.com/gmofishsauce/asm24/internal/symtab"
	"github.com/gmofishsauce/asm24/internal/word"
)

// LineKind tells pass two what, if anything, it needs to redo for a
// given source line.
type LineKind int

const (
	// LineSkip covers comments, blanks, too-long lines, fully-processed
	// directives (.data/.string/.extern), and lines pass one rejected.
	LineSkip LineKind = iota
	// LineEntry marks a .entry directive, resolved in pass two.
	LineEntry
	// LineInstruction marks an instruction statement whose code slots
	// pass two must revisit to resolve deferred operands.
	LineInstruction
)

// Result is everything pass two and the output stage need.
type Result struct {
	Reporter  *diag.Reporter
	Symbols   *symtab.Table
	Code      *image.Words
	Data      *image.Words
	LineKinds []LineKind
}

type state struct {
	r    *diag.Reporter
	tab  *symtab.Table
	code *image.Words
	data *image.Words
}

// Run executes pass one over every line of one source file.
func Run(filename string, lines []string) *Result {
	return RunStrict(filename, lines, false)
}

// RunStrict is Run with the diagnostics reporter's strict mode set,
// promoting warnings to poisoning errors per the optional config file's
// diagnostics.strict setting.
func RunStrict(filename string, lines []string, strict bool) *Result {
	r := diag.NewReporter(filename)
	r.SetStrict(strict)
	s := &state{
		r:    r,
		tab:  symtab.New(),
		code: &image.Words{},
		data: &image.Words{},
	}
	kinds := make([]LineKind, len(lines))

	for i, line := range lines {
		lineNum := i + 1
		mutable := !s.r.Poisoned()

		if len(line) > lexer.MaxLineLen {
			s.r.Errorf(lineNum, "line too long (%d characters, maximum %d)", len(line), lexer.MaxLineLen)
			continue
		}
		if lexer.IsBlank(line) || lexer.IsComment(line) {
			continue
		}

		toks := lexer.Tokenize(line)
		idx := 0
		hasDecl := false
		declName := ""
		declValid := false

		if strings.HasSuffix(toks[0].Text, ":") {
			hasDecl = true
			declName = strings.TrimSuffix(toks[0].Text, ":")
			if v := isa.ValidateSymbolName(declName); v == isa.SymbolValid {
				declValid = true
			} else {
				s.r.Errorf(lineNum, "bad symbol name in declaration: %s", isa.ValidityMessage(v, declName))
			}
			idx = 1
			if idx >= len(toks) {
				s.r.Warnf(lineNum, "symbol declaration on empty line")
				continue
			}
		}

		keyword := toks[idx]
		idx++

		if keyword.IsComma() {
			if hasDecl {
				s.r.Errorf(lineNum, "comma immediately after symbol declaration")
			} else {
				s.r.Errorf(lineNum, "statement cannot start with a comma")
			}
			continue
		}

		if strings.HasPrefix(keyword.Text, ".") {
			dirKind, ok := isa.FindDirective(keyword.Text[1:])
			if !ok {
				s.r.Errorf(lineNum, "unknown directive: %s", keyword.Text)
				continue
			}
			rest := toks[idx:]
			switch dirKind {
			case isa.DirData:
				s.handleData(rest, hasDecl, declName, declValid, lineNum, mutable)
			case isa.DirString:
				s.handleString(line, keyword, hasDecl, declName, declValid, lineNum, mutable)
			case isa.DirExtern:
				s.handleExtern(rest, hasDecl, lineNum, mutable)
			case isa.DirEntry:
				if hasDecl {
					s.r.Warnf(lineNum, "symbol declaration ignored on .entry line")
				}
				kinds[i] = LineEntry
			}
			continue
		}

		if s.handleInstruction(keyword.Text, toks[idx:], hasDecl, declName, declValid, lineNum, mutable) {
			kinds[i] = LineInstruction
		}
	}

	return &Result{
		Reporter:  s.r,
		Symbols:   s.tab,
		Code:      s.code,
		Data:      s.data,
		LineKinds: kinds,
	}
}

// splitCommaList enforces the "operand (, operand)*" discipline: no
// leading, trailing, or doubled comma.
func splitCommaList(toks []lexer.Token) ([]lexer.Token, error) {
	if len(toks) == 0 {
		return nil, errMissingOperand
	}
	if toks[0].IsComma() {
		return nil, errLeadingComma
	}
	var vals []lexer.Token
	expectValue := true
	for _, tok := range toks {
		if expectValue {
			if tok.IsComma() {
				return nil, errDoubledComma
			}
			vals = append(vals, tok)
			expectValue = false
		} else {
			if !tok.IsComma() {
				return nil, errMissingComma
			}
			expectValue = true
		}
	}
	if expectValue {
		return nil, errTrailingComma
	}
	return vals, nil
}

var (
	errMissingOperand = simpleErr("missing operand")
	errLeadingComma   = simpleErr("statement cannot start with a comma")
	errDoubledComma   = simpleErr("doubled comma")
	errTrailingComma  = simpleErr("trailing comma")
	errMissingComma   = simpleErr("missing comma between operands")
)

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

func (s *state) handleData(rest []lexer.Token, hasDecl bool, declName string, declValid bool, lineNum int, mutable bool) {
	vals, err := splitCommaList(rest)
	if err != nil {
		s.r.Errorf(lineNum, "bad .data operand list: %v", err)
		return
	}
	if mutable && hasDecl && declValid {
		st := s.tab.Insert(symtab.Symbol{
			Name:    declName,
			RepWord: word.EncodeNonARE(word.ARERelocatable, s.data.Len()),
			IsData:  true,
		})
		if st == symtab.InsertDuplicate {
			s.r.Errorf(lineNum, "duplicate symbol: %s", declName)
		}
	}
	for _, tok := range vals {
		v, err := operand.ParseInteger(tok.Text)
		if err != nil {
			s.r.Errorf(lineNum, "invalid .data value: %s", tok.Text)
			return
		}
		if mutable {
			s.data.Append(word.SetField(0, 0xffffff, int32(word.ToS24(v)), 0))
		}
	}
}

func (s *state) handleString(line string, keyword lexer.Token, hasDecl bool, declName string, declValid bool, lineNum int, mutable bool) {
	raw := lexer.RestOfLine(line, keyword.Col+len(keyword.Text))
	lit, err := lexer.ParseStringLiteral(raw)
	if err != nil {
		s.r.Errorf(lineNum, "bad .string operand: %v", err)
		return
	}
	if mutable && hasDecl && declValid {
		st := s.tab.Insert(symtab.Symbol{
			Name:    declName,
			RepWord: word.EncodeNonARE(word.ARERelocatable, s.data.Len()),
			IsData:  true,
		})
		if st == symtab.InsertDuplicate {
			s.r.Errorf(lineNum, "duplicate symbol: %s", declName)
		}
	}
	if mutable {
		for i := 0; i < len(lit); i++ {
			s.data.Append(word.CharToWord(lit[i]))
		}
		s.data.Append(word.Word(0))
	}
}

func (s *state) handleExtern(rest []lexer.Token, hasDecl bool, lineNum int, mutable bool) {
	if hasDecl {
		s.r.Warnf(lineNum, "symbol declaration ignored on .extern line")
	}
	if len(rest) != 1 {
		s.r.Errorf(lineNum, "expected exactly one symbol name after .extern")
		return
	}
	name := rest[0].Text
	if v := isa.ValidateSymbolName(name); v != isa.SymbolValid {
		s.r.Errorf(lineNum, "bad symbol name in .extern: %s", isa.ValidityMessage(v, name))
		return
	}
	if mutable {
		st := s.tab.Insert(symtab.Symbol{
			Name:     name,
			RepWord:  word.EncodeNonARE(word.AREExternal, 0),
			IsExtern: true,
		})
		if st == symtab.InsertDuplicate {
			s.r.Errorf(lineNum, "duplicate symbol: %s", name)
		}
	}
}

// handleInstruction reports whether it fully encoded and emitted an
// instruction statement (meaning pass two has a code slot to revisit).
func (s *state) handleInstruction(name string, rest []lexer.Token, hasDecl bool, declName string, declValid bool, lineNum int, mutable bool) bool {
	inst, ok := isa.FindInstruction(name)
	if !ok {
		s.r.Errorf(lineNum, "unknown instruction: %s", name)
		return false
	}

	var src, dst operand.Operand
	switch inst.NumOpnds {
	case 0:
		if len(rest) != 0 {
			s.r.Errorf(lineNum, "extraneous tokens after %s", name)
			return false
		}
	case 1:
		vals, err := splitCommaList(rest)
		if err != nil {
			s.r.Errorf(lineNum, "bad operand for %s: %v", name, err)
			return false
		}
		if len(vals) != 1 {
			s.r.Errorf(lineNum, "%s takes exactly one operand", name)
			return false
		}
		d, err := operand.Classify(vals[0].Text)
		if err != nil {
			s.r.Errorf(lineNum, "%v", err)
			return false
		}
		dst = d
	case 2:
		vals, err := splitCommaList(rest)
		if err != nil {
			s.r.Errorf(lineNum, "bad operands for %s: %v", name, err)
			return false
		}
		if len(vals) != 2 {
			s.r.Errorf(lineNum, "%s takes exactly two operands", name)
			return false
		}
		srcOp, err := operand.Classify(vals[0].Text)
		if err != nil {
			s.r.Errorf(lineNum, "%v", err)
			return false
		}
		dstOp, err := operand.Classify(vals[1].Text)
		if err != nil {
			s.r.Errorf(lineNum, "%v", err)
			return false
		}
		src, dst = srcOp, dstOp
	}

	if inst.NumOpnds == 2 && !inst.SrcAllows(src.Mode) {
		s.r.Errorf(lineNum, "addressing mode %s not permitted for %s source operand", src.Mode, name)
		return false
	}
	if inst.NumOpnds >= 1 && !inst.DestAllows(dst.Mode) {
		s.r.Errorf(lineNum, "addressing mode %s not permitted for %s destination operand", dst.Mode, name)
		return false
	}

	if !mutable {
		return false
	}

	if hasDecl && declValid {
		st := s.tab.Insert(symtab.Symbol{
			Name:    declName,
			RepWord: word.EncodeNonARE(word.ARERelocatable, s.code.Len()+image.LoadBase),
			IsData:  false,
		})
		if st == symtab.InsertDuplicate {
			s.r.Errorf(lineNum, "duplicate symbol: %s", declName)
		}
	}

	fields := word.HeadFields{Opcode: inst.Opcode, Funct: inst.Funct}
	if inst.NumOpnds >= 1 {
		fields.HasDest = true
		fields.DestMode = dst.Mode
		if dst.Mode == word.DirectRegister {
			fields.DestReg = dst.Register
		}
	}
	if inst.NumOpnds == 2 {
		fields.HasSrc = true
		fields.SrcMode = src.Mode
		if src.Mode == word.DirectRegister {
			fields.SrcReg = src.Register
		}
	}
	s.code.Append(word.EncodeHead(fields))

	if inst.NumOpnds == 2 {
		s.appendOperandWord(src)
	}
	if inst.NumOpnds >= 1 {
		s.appendOperandWord(dst)
	}

	return true
}

func (s *state) appendOperandWord(op operand.Operand) {
	switch op.Kind {
	case operand.KindImmediate:
		s.code.Append(word.EncodeNonARE(word.AREAbsolute, word.ToS21(op.Value)))
	case operand.KindDirect, operand.KindRelative:
		s.code.Append(word.Word(0))
	case operand.KindRegister:
		// no extra word
	}
}
