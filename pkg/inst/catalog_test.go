package inst

import "testing"

func TestCatalogComplete(t *testing.T) {
	for op := Opcode(0); op < OpcodeCount; op++ {
		if Catalog[op].Mnemonic == "" {
			t.Errorf("Catalog[%d] has no mnemonic", op)
		}
	}
}

func TestMnemonic(t *testing.T) {
	if got := Mnemonic(HALT); got != "halt" {
		t.Errorf("Mnemonic(HALT) = %q; want halt", got)
	}
	if got := Mnemonic(Opcode(14)); got != "<invalid op 14>" {
		t.Errorf("Mnemonic(14) = %q", got)
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		w    uint32
		want string
	}{
		{0x70000000, "halt"},
		{0xD0000041, "lv r0 0x41"},
		{Std(ADD, 1, 2, 3), "add r1 r2 r3"},
		{Std(MAP, 0, 1, 2), "map r1 r2"},
		{Std(UNMAP, 0, 0, 4), "unmap r4"},
		{Std(OUT, 0, 0, 5), "out r5"},
		{Std(IN, 0, 0, 6), "in r6"},
		{Std(LOADP, 0, 1, 2), "loadp r1 r2"},
		{0xE0000000, "<invalid instruction: 0xe0000000>"},
	}
	for _, tc := range tests {
		if got := Disassemble(tc.w); got != tc.want {
			t.Errorf("Disassemble(%#08x) = %q; want %q", tc.w, got, tc.want)
		}
	}
}
