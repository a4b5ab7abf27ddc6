package word

import "testing"

func TestEncodeHeadMovImmToReg(t *testing.T) {
	// mov #5, r3 head word: opcode=0, funct=0, dest=register r3, src=immediate.
	w := EncodeHead(HeadFields{
		Opcode:   0,
		Funct:    0,
		HasDest:  true,
		DestMode: DirectRegister,
		DestReg:  3,
		HasSrc:   true,
		SrcMode:  Immediate,
	})
	if NonARETag(w) != AREAbsolute {
		t.Fatalf("ARE = %v, want Absolute", NonARETag(w))
	}
	if got := (int32(w) & MaskDestAdss) >> shiftDestAdss; got != int32(DirectRegister) {
		t.Fatalf("dest addr mode = %d, want %d", got, DirectRegister)
	}
	if got := (int32(w) & MaskDestReg) >> shiftDestReg; got != 3 {
		t.Fatalf("dest reg = %d, want 3", got)
	}
	if got := (int32(w) & MaskSrcAdss) >> shiftSrcAdss; got != int32(Immediate) {
		t.Fatalf("src addr mode = %d, want %d", got, Immediate)
	}
}

func TestEncodeHeadStopAllZero(t *testing.T) {
	w := EncodeHead(HeadFields{Opcode: 15, Funct: 0})
	if NonARETag(w) != AREAbsolute {
		t.Fatalf("ARE = %v, want Absolute", NonARETag(w))
	}
	if int32(w)&(MaskDestAdss|MaskDestReg|MaskSrcAdss|MaskSrcReg) != 0 {
		t.Fatalf("expected all operand fields zero, got %06x", uint32(w))
	}
}

func TestEncodeNonARERoundTrip(t *testing.T) {
	w := EncodeNonARE(AREAbsolute, 5)
	if NonARESigned(w) != 5 {
		t.Fatalf("payload = %d, want 5", NonARESigned(w))
	}
	if NonARETag(w) != AREAbsolute {
		t.Fatalf("ARE = %v, want Absolute", NonARETag(w))
	}
}

func TestEncodeNonARENegative(t *testing.T) {
	w := EncodeNonARE(AREAbsolute, -1)
	if got := NonARESigned(w); got != -1 {
		t.Fatalf("payload = %d, want -1", got)
	}
}

func TestToS21Boundaries(t *testing.T) {
	if got := ToS21(1<<20 - 1); got != 1<<20-1 {
		t.Fatalf("ToS21(2^20-1) = %d", got)
	}
	// -2^20 lies outside +/-(2^20-1) and wraps modulo 2^20 to 0.
	if got := ToS21(-(1 << 20)); got != 0 {
		t.Fatalf("ToS21(-2^20) = %d, want 0", got)
	}
}

func TestToS24(t *testing.T) {
	if got := ToS24(-1); got != -1 {
		t.Fatalf("ToS24(-1) = %d, want -1", got)
	}
	if got := ToS24(7); got != 7 {
		t.Fatalf("ToS24(7) = %d, want 7", got)
	}
}

func TestCharToWord(t *testing.T) {
	if got := CharToWord('A'); got != 65 {
		t.Fatalf("CharToWord('A') = %d, want 65", got)
	}
}

func TestToHex(t *testing.T) {
	w := EncodeNonARE(AREAbsolute, 5)
	if got := ToHex(w); got != "00002c" {
		t.Fatalf("ToHex = %s, want 00002c", got)
	}
}

func TestAddressToDec(t *testing.T) {
	if got := AddressToDec(103); got != "0000103" {
		t.Fatalf("AddressToDec(103) = %s, want 0000103", got)
	}
	if got := AddressToDec(0); got != "0000000" {
		t.Fatalf("AddressToDec(0) = %s, want 0000000", got)
	}
}
