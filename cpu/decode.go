package cpu

import "fmt"

// Op identifies a decoded Chip-8 operation.
type Op uint8

// Operations, named after the Cowgod mnemonics.
const (
	OpInvalid Op = iota // any bit pattern that is not an instruction
	OpCLS               // 00E0
	OpRET               // 00EE
	OpJP                // 1nnn
	OpCALL              // 2nnn
	OpSEByte            // 3xkk
	OpSNEByte           // 4xkk
	OpSEReg             // 5xy0
	OpLDByte            // 6xkk
	OpADDByte           // 7xkk
	OpLDReg             // 8xy0
	OpOR                // 8xy1
	OpAND               // 8xy2
	OpXOR               // 8xy3
	OpADDReg            // 8xy4
	OpSUB               // 8xy5
	OpSHR               // 8xy6
	OpSUBN              // 8xy7
	OpSHL               // 8xyE
	OpSNEReg            // 9xy0
	OpLDI               // Annn
	OpJPV0              // Bnnn
	OpRND               // Cxkk
	OpDRW               // Dxyn
	OpSKP               // Ex9E
	OpSKNP              // ExA1
	OpLDVxDT            // Fx07
	OpLDVxK             // Fx0A
	OpLDDTVx            // Fx15
	OpLDSTVx            // Fx18
	OpADDI              // Fx1E
	OpLDF               // Fx29
	OpLDB               // Fx33
	OpLDIVx             // Fx55
	OpLDVxI             // Fx65
)

var opNames = [...]string{
	OpInvalid: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDIVx:   "LD",
	OpLDVxI:   "LD",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OpInvalid]
}

// Instruction is a decoded opcode: the operation and its operands.
// Operands an operation does not use are zero.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   byte   // low 4 bits of the high byte
	Y   byte   // high 4 bits of the low byte
	N   byte   // low 4 bits
	KK  byte   // low byte
	NNN uint16 // low 12 bits
}

// Decode splits a 16 bit opcode into an Instruction. Bit patterns that are
// not instructions decode to OpInvalid, never to an error.
func Decode(opcode uint16) Instruction {
	// key:
	// ------
	// nnn - low 12 bits of opcode
	// n - low 4 bits of opcode
	// x - low 4 bits of opcode's high byte
	// y - high 4 bits of opcode's low byte
	// kk - opcode's low byte
	ins := Instruction{
		Opcode: opcode,
		X:      byte(opcode & 0x0f00 >> 8),
		Y:      byte(opcode & 0x00f0 >> 4),
		N:      byte(opcode & 0x000f),
		KK:     byte(opcode & 0x00ff),
		NNN:    opcode & 0x0fff,
	}
	ins.Op = decodeOp(opcode, ins.N, ins.KK)
	return ins
}

func decodeOp(opcode uint16, n, kk byte) Op {
	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00e0:
			return OpCLS
		case 0x00ee:
			return OpRET
		}
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSEByte
	case 0x4:
		return OpSNEByte
	case 0x5:
		if n == 0 {
			return OpSEReg
		}
	case 0x6:
		return OpLDByte
	case 0x7:
		return OpADDByte
	case 0x8:
		switch n {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xe:
			return OpSHL
		}
	case 0x9:
		if n == 0 {
			return OpSNEReg
		}
	case 0xa:
		return OpLDI
	case 0xb:
		return OpJPV0
	case 0xc:
		return OpRND
	case 0xd:
		return OpDRW
	case 0xe:
		switch kk {
		case 0x9e:
			return OpSKP
		case 0xa1:
			return OpSKNP
		}
	case 0xf:
		switch kk {
		case 0x07:
			return OpLDVxDT
		case 0x0a:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1e:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpLDIVx
		case 0x65:
			return OpLDVxI
		}
	}
	return OpInvalid
}

// String returns the instruction in assembler form, for example "DRW V1, V2, 5".
func (ins Instruction) String() string {
	name := ins.Op.String()
	switch ins.Op {
	case OpCLS, OpRET, OpInvalid:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s %03X", name, ins.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("%s V%X, %02X", name, ins.X, ins.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, ins.X)
	case OpLDI:
		return fmt.Sprintf("%s I, %03X", name, ins.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, %03X", name, ins.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, %X", name, ins.X, ins.Y, ins.N)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, ins.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, ins.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, ins.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, ins.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, ins.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, ins.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, ins.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, ins.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, ins.X)
	}
	return name
}
