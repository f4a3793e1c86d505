// interp16.go - the legacy 16-bit boot-time instruction set interpreter

/*
mx26301 - 32-bit Intuition-class virtual machine core

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package vm

// stepInterp16 decodes and executes one 3-byte legacy instruction at the low
// 16 bits of R15. Every register access is masked to 16 bits on both read
// and write, matching execute16.cpp's uint16_t register view.
func (v *VM) stepInterp16() {
	pc := v.Regs[PC] & 0xFFFF
	b1 := v.Mem.bytes[pc]
	b2 := v.Mem.bytes[pc+1]
	b3 := v.Mem.bytes[pc+2]

	opcode := (b1 >> 4) & 0x0F
	regA := b1 & 0x0F
	regB := (b2 >> 4) & 0x0F
	regC := b2 & 0x0F
	imm := uint32(b2)<<8 | uint32(b3)

	jumped := false
	nop := false

	switch opcode {
	case 0x0: // nop
		nop = true

	case 0x1: // mov
		v.Regs[regA] = v.Regs[regB] & 0xFFFF
		jumped = regA == PC

	case 0x2: // movi
		v.Regs[regA] = imm
		jumped = regA == PC

	case 0x3: // add
		v.Regs[regA] = (v.Regs[regA] + v.Regs[regB]) & 0xFFFF

	case 0x4: // sub
		v.Regs[regA] = (v.Regs[regA] - v.Regs[regB]) & 0xFFFF

	case 0x5: // mul
		v.Regs[regA] = (v.Regs[regA] * v.Regs[regB]) & 0xFFFF

	case 0x6: // jgt
		if v.Regs[regA] > v.Regs[regB] {
			v.Regs[PC] = v.Regs[regC] & 0xFFFF
			jumped = true
		}

	case 0x7: // out
		port := v.Regs[regA] & 0xFFFF
		data := v.Regs[regB] & 0xFFFF
		v.out16(port, data)
		if port == 0xFF && data == 1 {
			jumped = true
		}

	case 0x8: // je
		if v.Regs[regA] == v.Regs[regB] {
			v.Regs[PC] = v.Regs[regC] & 0xFFFF
			jumped = true
		}

	case 0x9: // jne
		if v.Regs[regA] != v.Regs[regB] {
			v.Regs[PC] = v.Regs[regC] & 0xFFFF
			jumped = true
		}

	case 0xA: // peek
		addr := v.Regs[regB] & 0xFFFF
		mode := v.Regs[regC] & 0xFFFF
		if addr == 0xFFF2 {
			v.Mem.bytes[0xFFF2] = uint8(v.rng.Intn(256))
		}
		if mode == 1 {
			v.Regs[regA] = uint32(v.Mem.bytes[addr])
		} else {
			hi := uint32(v.Mem.bytes[addr])
			lo := uint32(v.Mem.bytes[addr+1])
			v.Regs[regA] = hi<<8 | lo
		}

	case 0xB: // poke
		val := v.Regs[regA] & 0xFFFF
		addr := v.Regs[regB] & 0xFFFF
		mode := v.Regs[regC] & 0xFFFF
		if mode == 1 {
			v.Mem.bytes[addr] = uint8(val)
			v.Mem.markDirty(addr, 1)
		} else {
			v.Mem.bytes[addr] = uint8(val >> 8)
			v.Mem.bytes[addr+1] = uint8(val)
			v.Mem.markDirty(addr, 2)
		}

	case 0xC: // jlt
		if v.Regs[regA] < v.Regs[regB] {
			v.Regs[PC] = v.Regs[regC] & 0xFFFF
			jumped = true
		}

	case 0xD: // jge
		if v.Regs[regA] >= v.Regs[regB] {
			v.Regs[PC] = v.Regs[regC] & 0xFFFF
			jumped = true
		}

	case 0xE: // pop
		hi := uint32(v.Mem.bytes[v.Regs[SP]])
		lo := uint32(v.Mem.bytes[v.Regs[SP]+1])
		v.Regs[regA] = hi<<8 | lo
		v.Regs[SP] = (v.Regs[SP] + 2) & 0xFFFF
		jumped = regA == PC

	case 0xF: // push
		v.Regs[SP] = (v.Regs[SP] - 2) & 0xFFFF
		v.Mem.bytes[v.Regs[SP]] = uint8(v.Regs[regA] >> 8)
		v.Mem.bytes[v.Regs[SP]+1] = uint8(v.Regs[regA])
	}

	if nop {
		v.Regs[PC] = (pc + 1) & 0xFFFF
	} else if !jumped {
		v.Regs[PC] = (pc + 3) & 0xFFFF
	}
}

// out16 implements the 16-bit interpreter's narrower OUT port set (spec.md
// §6.2, 16-bit column): serial char/int, disk latch+command, video mode,
// buzzer, the wait port, and the bit-width switch that promotes the VM to
// 32-bit mode and redirects R15 to 0x300.
func (v *VM) out16(port, data uint32) {
	switch port {
	case 0x01:
		v.serialChar(uint8(data))
	case 0x02:
		v.serialIntHex(data)
	case 0x10:
		v.diskSector = data
	case 0x11:
		v.diskAddr = data
	case 0x12:
		v.diskCommand(data, MemSize16)
	case 0x20:
		v.Bridge.SetVideoMode(uint8(data))
	case 0x30:
		v.Buzzer.SetFrequency(data)
	case 0x31:
		v.Buzzer.SetDuration(data)
	case 0x32:
		v.Buzzer.Trigger()
	case 0x40:
		v.clockSleepMs(data)
	case 0xFF:
		v.cpuBitWidth = uint8(data)
		if data == 1 {
			v.Regs[PC] = 0x300
		}
	}
}
