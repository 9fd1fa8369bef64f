package cpu

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
		x, y   byte
		n, kk  byte
		nnn    uint16
	}{
		{0x00e0, OpCLS, 0, 0xe, 0x0, 0xe0, 0x0e0},
		{0x00ee, OpRET, 0, 0xe, 0xe, 0xee, 0x0ee},
		{0x1234, OpJP, 2, 3, 4, 0x34, 0x234},
		{0x2abc, OpCALL, 0xa, 0xb, 0xc, 0xbc, 0xabc},
		{0x3a42, OpSEByte, 0xa, 4, 2, 0x42, 0xa42},
		{0x4b42, OpSNEByte, 0xb, 4, 2, 0x42, 0xb42},
		{0x5120, OpSEReg, 1, 2, 0, 0x20, 0x120},
		{0x6005, OpLDByte, 0, 0, 5, 0x05, 0x005},
		{0x7003, OpADDByte, 0, 0, 3, 0x03, 0x003},
		{0x8120, OpLDReg, 1, 2, 0, 0x20, 0x120},
		{0x8121, OpOR, 1, 2, 1, 0x21, 0x121},
		{0x8122, OpAND, 1, 2, 2, 0x22, 0x122},
		{0x8123, OpXOR, 1, 2, 3, 0x23, 0x123},
		{0x8124, OpADDReg, 1, 2, 4, 0x24, 0x124},
		{0x8125, OpSUB, 1, 2, 5, 0x25, 0x125},
		{0x8126, OpSHR, 1, 2, 6, 0x26, 0x126},
		{0x8127, OpSUBN, 1, 2, 7, 0x27, 0x127},
		{0x812e, OpSHL, 1, 2, 0xe, 0x2e, 0x12e},
		{0x9120, OpSNEReg, 1, 2, 0, 0x20, 0x120},
		{0xa300, OpLDI, 3, 0, 0, 0x00, 0x300},
		{0xb300, OpJPV0, 3, 0, 0, 0x00, 0x300},
		{0xc10f, OpRND, 1, 0, 0xf, 0x0f, 0x10f},
		{0xd125, OpDRW, 1, 2, 5, 0x25, 0x125},
		{0xe39e, OpSKP, 3, 9, 0xe, 0x9e, 0x39e},
		{0xe3a1, OpSKNP, 3, 0xa, 1, 0xa1, 0x3a1},
		{0xf307, OpLDVxDT, 3, 0, 7, 0x07, 0x307},
		{0xf30a, OpLDVxK, 3, 0, 0xa, 0x0a, 0x30a},
		{0xf315, OpLDDTVx, 3, 1, 5, 0x15, 0x315},
		{0xf318, OpLDSTVx, 3, 1, 8, 0x18, 0x318},
		{0xf31e, OpADDI, 3, 1, 0xe, 0x1e, 0x31e},
		{0xf329, OpLDF, 3, 2, 9, 0x29, 0x329},
		{0xf333, OpLDB, 3, 3, 3, 0x33, 0x333},
		{0xf355, OpLDIVx, 3, 5, 5, 0x55, 0x355},
		{0xf365, OpLDVxI, 3, 6, 5, 0x65, 0x365},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04x", tt.opcode), func(t *testing.T) {
			ins := Decode(tt.opcode)
			assert.Equal(t, tt.op, ins.Op)
			assert.Equal(t, tt.opcode, ins.Opcode)
			assert.Equal(t, tt.x, ins.X)
			assert.Equal(t, tt.y, ins.Y)
			assert.Equal(t, tt.n, ins.N)
			assert.Equal(t, tt.kk, ins.KK)
			assert.Equal(t, tt.nnn, ins.NNN)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	// patterns that share a high nibble with a real instruction but do not match it.
	opcodes := []uint16{
		0x0000, 0x0123, 0x00e1, 0x5121, 0x8128, 0x812f, 0x9121,
		0xe100, 0xe19f, 0xf100, 0xf1ff, 0xf10b,
	}

	for _, opcode := range opcodes {
		t.Run(fmt.Sprintf("%04x", opcode), func(t *testing.T) {
			assert.Equal(t, OpInvalid, Decode(opcode).Op)
		})
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00e0, "CLS"},
		{0x1234, "JP 234"},
		{0x6005, "LD V0, 05"},
		{0x8124, "ADD V1, V2"},
		{0xd125, "DRW V1, V2, 5"},
		{0xf30a, "LD V3, K"},
		{0xf355, "LD [I], V3"},
		{0xffff, "???"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.opcode).String())
		})
	}
}
