package assembler

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/asm24/internal/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleTinyProgram(t *testing.T) {
	src := "MAIN: mov #5, r3\n      stop\n"
	out := Assemble("a.as", strings.NewReader(src))
	require.False(t, out.Reporter.Poisoned(), "unexpected diagnostics: %+v", out.Reporter.Diagnostics())
	assert.Equal(t, 3, out.Code.Len())

	sym, ok := out.Symbols.Lookup("MAIN")
	require.True(t, ok, "MAIN not found")
	assert.Equal(t, word.Address(100), sym.Address())
}

func TestAssembleDataRelocation(t *testing.T) {
	src := "      mov X, r0\n      stop\nX:    .data 7, -1\n"
	out := Assemble("b.as", strings.NewReader(src))
	require.False(t, out.Reporter.Poisoned(), "unexpected diagnostics: %+v", out.Reporter.Diagnostics())

	x, ok := out.Symbols.Lookup("X")
	require.True(t, ok, "X not found")
	assert.Equal(t, word.Address(103), x.Address())

	head := out.Code.At(0)
	assert.Equal(t, word.AREAbsolute, word.NonARETag(head))

	operand := out.Code.At(1)
	assert.Equal(t, word.ARERelocatable, word.NonARETag(operand), "direct addressing to an internal symbol carries the relocatable tag")
	assert.Equal(t, 103, word.NonARESigned(operand))
}

func TestAssembleExternReference(t *testing.T) {
	src := "      .extern EXT\n      jmp EXT\n      stop\n"
	out := Assemble("c.as", strings.NewReader(src))
	require.False(t, out.Reporter.Poisoned(), "unexpected diagnostics: %+v", out.Reporter.Diagnostics())

	refs := out.Externals.All()
	require.Len(t, refs, 1)
	assert.Equal(t, "EXT", refs[0].Name)
	assert.Equal(t, word.Address(101), refs[0].Address)
}

func TestAssembleRelativeAddressing(t *testing.T) {
	src := "LOOP: inc r1\n      bne &LOOP\n      stop\n"
	out := Assemble("d.as", strings.NewReader(src))
	require.False(t, out.Reporter.Poisoned(), "unexpected diagnostics: %+v", out.Reporter.Diagnostics())

	operand := out.Code.At(2)
	assert.Equal(t, word.AREAbsolute, word.NonARETag(operand))
	assert.Equal(t, -1, word.NonARESigned(operand))
}

func TestAssembleTooFewOperandsPoisons(t *testing.T) {
	src := "      mov #5\n      stop\n"
	out := Assemble("e.as", strings.NewReader(src))
	assert.True(t, out.Reporter.Poisoned())
	assert.Equal(t, 0, out.Code.Len())
}

func TestAssembleEntryResolvedAcrossBothPasses(t *testing.T) {
	src := "      .entry K\nK:    .data 1\n      stop\n"
	out := Assemble("f.as", strings.NewReader(src))
	require.False(t, out.Reporter.Poisoned(), "unexpected diagnostics: %+v", out.Reporter.Diagnostics())

	k, ok := out.Symbols.Lookup("K")
	require.True(t, ok, "K not found")
	assert.True(t, k.IsEntry)
	assert.Equal(t, word.Address(101), k.Address())
}

func TestAssembleScenarioTable(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantPoisoned bool
	}{
		{"valid immediate and stop", "MAIN: mov #5, r3\n      stop\n", false},
		{"missing operand", "      mov #5\n      stop\n", true},
		{"unknown instruction", "      frob r1\n      stop\n", true},
		{"duplicate symbol", "X: .data 1\nX: .data 2\n", true},
		{"doubled comma", "      mov #5,, r3\n      stop\n", true},
		{"unknown symbol reference", "      jmp NOWHERE\n      stop\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Assemble("x.as", strings.NewReader(tt.src))
			assert.Equal(t, tt.wantPoisoned, out.Reporter.Poisoned(), "diagnostics: %+v", out.Reporter.Diagnostics())
		})
	}
}
