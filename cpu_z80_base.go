package spectrum

// initBaseOps builds one 256-entry dispatch table of function pointers,
// each a thin closure into the shared x/y/z decoder — the non-virtual
// switch the Z80's 252 base opcodes (plus CB/ED/DD/FD prefix bytes) decode
// through.
func (c *CPU) initBaseOps() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		c.baseOps[i] = func(cpu *CPU) { cpu.execBase(op) }
	}
}

// execBase decodes and executes one base-table opcode (already fetched),
// following the classic (x,y,z)=(bits7:6,bits5:3,bits2:0) Z80 encoding.
func (c *CPU) execBase(opcode byte) {
	x := int(opcode>>6) & 3
	y := int(opcode>>3) & 7
	z := int(opcode) & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		c.execBaseX0(y, z, p, q)
	case 1:
		c.execLDRR(y, z)
	case 2:
		val := c.idxReg8Get(z)
		c.alu(y, val)
	case 3:
		c.execBaseX3(opcode, y, z, p, q)
	}
}

func (c *CPU) execBaseX0(y, z, p, q int) {
	switch z {
	case 0:
		switch {
		case y == 0:
			c.Cycles += 0 // NOP
		case y == 1:
			c.ExAF()
		case y == 2:
			c.opDJNZ()
		case y == 3:
			c.opJR(true)
		default:
			c.opJRCond(y - 4)
		}
	case 1:
		if q == 0 {
			v := c.fetchWord()
			c.setRP(p, v)
		} else {
			lhs := c.idxBase()
			rhs := c.rp(p)
			c.setIdxBase(c.add16(lhs, rhs))
			c.tickInternal(7)
		}
	case 2:
		c.execIndirectLoad(p, q)
	case 3:
		if q == 0 {
			c.setRP(p, c.rp(p)+1)
		} else {
			c.setRP(p, c.rp(p)-1)
		}
		c.tickInternal(2)
	case 4:
		if y == 6 {
			addr := c.effAddr()
			v := c.readByte(addr)
			c.tickInternal(1)
			c.writeByte(addr, c.inc8(v))
		} else {
			v := c.idxReg8Get(y)
			c.idxReg8Set(y, c.inc8(v))
		}
	case 5:
		if y == 6 {
			addr := c.effAddr()
			v := c.readByte(addr)
			c.tickInternal(1)
			c.writeByte(addr, c.dec8(v))
		} else {
			v := c.idxReg8Get(y)
			c.idxReg8Set(y, c.dec8(v))
		}
	case 6:
		if y == 6 {
			// LD (HL),n / LD (IX+d),n: the displacement precedes n.
			addr := c.effAddr()
			n := c.fetchByte()
			c.writeByte(addr, n)
		} else {
			n := c.fetchByte()
			c.idxReg8Set(y, n)
		}
	case 7:
		c.execAccumOp(y)
	}
}

func (c *CPU) execIndirectLoad(p, q int) {
	switch {
	case q == 0 && p == 0:
		c.writeByte(c.BC(), c.A)
		c.WZ = (uint16(c.A) << 8) | ((c.BC() + 1) & 0xFF)
	case q == 0 && p == 1:
		c.writeByte(c.DE(), c.A)
		c.WZ = (uint16(c.A) << 8) | ((c.DE() + 1) & 0xFF)
	case q == 0 && p == 2:
		addr := c.fetchWord()
		c.writeWord(addr, c.idxBase())
		c.WZ = addr + 1
	case q == 0 && p == 3:
		addr := c.fetchWord()
		c.writeByte(addr, c.A)
		c.WZ = (uint16(c.A) << 8) | ((addr + 1) & 0xFF)
	case q == 1 && p == 0:
		c.A = c.readByte(c.BC())
		c.WZ = c.BC() + 1
	case q == 1 && p == 1:
		c.A = c.readByte(c.DE())
		c.WZ = c.DE() + 1
	case q == 1 && p == 2:
		addr := c.fetchWord()
		c.setIdxBase(c.readWord(addr))
		c.WZ = addr + 1
	case q == 1 && p == 3:
		addr := c.fetchWord()
		c.A = c.readByte(addr)
		c.WZ = addr + 1
	}
}

func (c *CPU) execAccumOp(y int) {
	switch y {
	case 0:
		r := c.A&0x80 != 0
		c.A = c.A << 1
		if r {
			c.A |= 1
		}
		f := c.F & (z80FlagS | z80FlagZ | z80FlagPV)
		f |= c.A & (z80FlagY | z80FlagX)
		if r {
			f |= z80FlagC
		}
		c.F = f
		c.flagsUpdated = true
	case 1:
		r := c.A&0x01 != 0
		c.A = c.A >> 1
		if r {
			c.A |= 0x80
		}
		f := c.F & (z80FlagS | z80FlagZ | z80FlagPV)
		f |= c.A & (z80FlagY | z80FlagX)
		if r {
			f |= z80FlagC
		}
		c.F = f
		c.flagsUpdated = true
	case 2:
		carryIn := c.Flag(z80FlagC)
		r := c.A&0x80 != 0
		c.A = c.A << 1
		if carryIn {
			c.A |= 1
		}
		f := c.F & (z80FlagS | z80FlagZ | z80FlagPV)
		f |= c.A & (z80FlagY | z80FlagX)
		if r {
			f |= z80FlagC
		}
		c.F = f
		c.flagsUpdated = true
	case 3:
		carryIn := c.Flag(z80FlagC)
		r := c.A&0x01 != 0
		c.A = c.A >> 1
		if carryIn {
			c.A |= 0x80
		}
		f := c.F & (z80FlagS | z80FlagZ | z80FlagPV)
		f |= c.A & (z80FlagY | z80FlagX)
		if r {
			f |= z80FlagC
		}
		c.F = f
		c.flagsUpdated = true
	case 4:
		c.daa()
	case 5:
		c.A = ^c.A
		f := (c.F & (z80FlagS | z80FlagZ | z80FlagPV | z80FlagC)) | z80FlagH | z80FlagN
		f |= c.A & (z80FlagY | z80FlagX)
		c.F = f
		c.flagsUpdated = true
	case 6:
		c.opSCF()
	case 7:
		c.opCCF()
	}
}

// opSCF/opCCF implement the Q-register-derived undocumented F5/F3 rule:
// ((Q xor F) or A).
func (c *CPU) opSCF() {
	f := (c.F & (z80FlagS | z80FlagZ | z80FlagPV)) | (((c.Q ^ c.F) | c.A) & (z80FlagY | z80FlagX)) | z80FlagC
	c.F = f
	c.flagsUpdated = true
}

func (c *CPU) opCCF() {
	oldC := c.F & z80FlagC
	f := (c.F & (z80FlagS | z80FlagZ | z80FlagPV)) | (((c.Q ^ c.F) | c.A) & (z80FlagY | z80FlagX))
	if oldC != 0 {
		f |= z80FlagH
	} else {
		f |= z80FlagC
	}
	c.F = f
	c.flagsUpdated = true
}

func (c *CPU) opJR(_ bool) {
	d := int8(c.fetchByte())
	c.PC = uint16(int32(c.PC) + int32(d))
	c.WZ = c.PC
	c.tickInternal(5)
}

func (c *CPU) opJRCond(y int) {
	d := int8(c.fetchByte())
	if c.condition(y) {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.WZ = c.PC
		c.tickInternal(5)
	}
}

func (c *CPU) opDJNZ() {
	d := int8(c.fetchByte())
	c.tickInternal(1)
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.WZ = c.PC
		c.tickInternal(5)
	}
}

// execLDRR implements the x==1 block: LD r,r', HALT, and the (HL)/(IX+d)
// undocumented exception where the non-memory operand names the physical
// H/L register rather than IXH/IXL.
func (c *CPU) execLDRR(y, z int) {
	if y == 6 && z == 6 {
		c.Halted = true
		return
	}
	if y == 6 {
		v := c.plainReg8Get(z)
		c.writeByte(c.effAddr(), v)
		return
	}
	if z == 6 {
		v := c.readByte(c.effAddr())
		c.plainReg8Set(y, v)
		return
	}
	c.idxReg8Set(y, c.idxReg8Get(z))
}

func (c *CPU) execBaseX3(opcode byte, y, z, p, q int) {
	switch z {
	case 0:
		if c.condition(y) {
			c.WZ = c.pop()
			c.PC = c.WZ
		}
		c.tickInternal(1)
	case 1:
		if q == 0 {
			c.setRP2(p, c.pop())
			return
		}
		switch p {
		case 0:
			c.PC = c.pop()
			c.WZ = c.PC
		case 1:
			c.Exx()
		case 2:
			c.PC = c.idxBase()
		default:
			c.SP = c.idxBase()
			c.tickInternal(2)
		}
	case 2:
		addr := c.fetchWord()
		c.WZ = addr
		if c.condition(y) {
			c.PC = addr
		}
	case 3:
		switch y {
		case 0:
			addr := c.fetchWord()
			c.PC = addr
			c.WZ = addr
		case 1:
			c.prefixCB()
		case 2:
			n := c.fetchByte()
			port := uint16(c.A)<<8 | uint16(n)
			c.out(port, c.A)
			c.WZ = (uint16(c.A) << 8) | ((port + 1) & 0xFF)
		case 3:
			n := c.fetchByte()
			port := uint16(c.A)<<8 | uint16(n)
			c.A = c.in(port)
			c.WZ = port + 1
		case 4:
			addr := c.idxBase()
			v := c.readWord(c.SP)
			c.writeWord(c.SP, addr)
			c.setIdxBase(v)
			c.WZ = v
			c.tickInternal(3)
		case 5:
			de := c.DE()
			c.SetDE(c.idxBase())
			c.setIdxBase(de)
		case 6:
			c.IFF1 = false
			c.IFF2 = false
		default:
			c.IFF1 = true
			c.IFF2 = true
		}
	case 4:
		addr := c.fetchWord()
		c.WZ = addr
		if c.condition(y) {
			c.push(c.PC)
			c.PC = addr
			c.tickInternal(1)
		}
	case 5:
		if q == 0 {
			c.tickInternal(1)
			c.push(c.rp2(p))
			return
		}
		switch p {
		case 0:
			addr := c.fetchWord()
			c.WZ = addr
			c.tickInternal(1)
			c.push(c.PC)
			c.PC = addr
		case 2:
			c.prefixED()
		default:
			// p==1 (second DD) / p==3 (second FD): already consumed by
			// Step's prefix-chaining loop; unreachable here.
		}
	case 6:
		n := c.fetchByte()
		c.alu(y, n)
	case 7:
		c.push(c.PC)
		c.PC = uint16(y) * 8
		c.WZ = c.PC
	}
}
