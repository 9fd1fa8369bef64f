package cpu

import (
	"github.com/retroenv/retrogolib/log"
)

// exec performs the state change for one decoded instruction. The program
// counter already points at the next instruction when exec is called.
func (c *Chip8) exec(ins Instruction) {
	c.logger.Debug("exec",
		log.Uint16("pc", c.pc-2),
		log.Uint16("opcode", ins.Opcode),
		log.String("op", ins.String()))

	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpCLS:
		c.display.Clear()

	case OpRET:
		// an empty stack leaves the program counter where it is.
		if addr, ok := c.stackPop(); ok {
			c.pc = addr
		}

	case OpJP:
		c.pc = ins.NNN

	case OpCALL:
		c.stackPush(c.pc)
		c.pc = ins.NNN

	case OpSEByte:
		c.skipIf(c.v[x] == ins.KK)

	case OpSNEByte:
		c.skipIf(c.v[x] != ins.KK)

	case OpSEReg:
		c.skipIf(c.v[x] == c.v[y])

	case OpSNEReg:
		c.skipIf(c.v[x] != c.v[y])

	case OpLDByte:
		c.v[x] = ins.KK

	case OpADDByte:
		// no carry
		c.v[x] += ins.KK

	case OpLDReg:
		c.v[x] = c.v[y]

	case OpOR:
		c.v[x] |= c.v[y]

	case OpAND:
		c.v[x] &= c.v[y]

	case OpXOR:
		c.v[x] ^= c.v[y]

	case OpADDReg:
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.setWithFlag(x, byte(sum), sum > 0xff)

	case OpSUB:
		c.setWithFlag(x, c.v[x]-c.v[y], c.v[x] > c.v[y])

	case OpSHR:
		c.setWithFlag(x, c.v[x]>>1, c.v[x]&0x01 != 0)

	case OpSUBN:
		c.setWithFlag(x, c.v[y]-c.v[x], c.v[y] > c.v[x])

	case OpSHL:
		c.setWithFlag(x, c.v[x]<<1, c.v[x]&0x80 != 0)

	case OpLDI:
		c.i = ins.NNN

	case OpJPV0:
		c.pc = ins.NNN + uint16(c.v[0])

	case OpRND:
		c.v[x] = byte(c.rnd.Intn(256)) & ins.KK

	case OpDRW:
		sprite := make([]byte, ins.N)
		for row := range sprite {
			sprite[row] = c.memory[c.i+uint16(row)]
		}
		collision := c.display.Draw(c.v[x], c.v[y], sprite)
		c.v[CarryRegister] = flag(collision)

	case OpSKP:
		key := c.v[x]
		c.skipIf(key < 16 && c.keypad.IsHeld(key))

	case OpSKNP:
		key := c.v[x]
		c.skipIf(key < 16 && !c.keypad.IsHeld(key))

	case OpLDVxDT:
		c.v[x] = c.dt

	case OpLDVxK:
		c.keypad.Await()
		c.waitKey = int(x)

	case OpLDDTVx:
		c.dt = c.v[x]

	case OpLDSTVx:
		c.st = c.v[x]
		if c.speaker != nil {
			if c.st > 0 {
				c.speaker.StartSound()
			} else {
				c.speaker.StopSound()
			}
		}

	case OpADDI:
		c.i += uint16(c.v[x])

	case OpLDF:
		if digit := c.v[x]; digit <= 0xf {
			c.i = FontAddress + uint16(digit)*FontSpriteSize
		}

	case OpLDB:
		value := c.v[x]
		c.memory[c.i] = value / 100
		c.memory[c.i+1] = value / 10 % 10
		c.memory[c.i+2] = value % 10

	case OpLDIVx:
		for n := uint16(0); n <= uint16(x); n++ {
			c.memory[c.i+n] = c.v[n]
		}

	case OpLDVxI:
		for n := uint16(0); n <= uint16(x); n++ {
			c.v[n] = c.memory[c.i+n]
		}

	default:
		c.logger.Debug("ignoring unknown opcode", log.Uint16("opcode", ins.Opcode))
	}
}

// skipIf skips the next instruction when cond holds.
func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

// setWithFlag stores a result in Vx and then the flag in VF, so when x is
// VF the flag wins.
func (c *Chip8) setWithFlag(x, result byte, set bool) {
	c.v[x] = result
	c.v[CarryRegister] = flag(set)
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}
