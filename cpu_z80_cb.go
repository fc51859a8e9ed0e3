package spectrum

// initCBOps builds the 256-entry CB table used by the plain (non-indexed)
// path; DDCB/FDCB are handled separately by prefixCB since their operand is
// always (IX+d)/(IY+d) regardless of the z field.
func (c *CPU) initCBOps() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		c.cbOps[i] = func(cpu *CPU) { cpu.execCB(op) }
	}
}

// prefixCB is invoked once the 0xCB byte itself has been fetched; it
// branches between the plain CB path and the DDCB/FDCB path, since the two
// encode their operand address completely differently.
func (c *CPU) prefixCB() {
	if c.idx == idxNone {
		opcode := c.fetchOpcode()
		c.cbOps[opcode](c)
		return
	}
	c.execIndexedCB()
}

func (c *CPU) execCB(opcode byte) {
	x := int(opcode>>6) & 3
	y := int(opcode>>3) & 7
	z := int(opcode) & 7

	viaMemory := z == 6
	val := c.idxReg8Get(z)

	switch x {
	case 0:
		result := c.rotShift(y, val)
		if viaMemory {
			c.tickInternal(1)
		}
		c.idxReg8Set(z, result)
	case 1:
		if viaMemory {
			c.tickInternal(1)
		}
		c.cbBit(y, val, viaMemory)
	case 2:
		result := cbRes(y, val)
		if viaMemory {
			c.tickInternal(1)
		}
		c.idxReg8Set(z, result)
	case 3:
		result := cbSet(y, val)
		if viaMemory {
			c.tickInternal(1)
		}
		c.idxReg8Set(z, result)
	}
}

// execIndexedCB implements DDCB/FDCB: displacement then opcode are fetched
// with plain bus reads (no R increment, not M1 cycles), the operand is
// always (IX+d)/(IY+d), and for z != 6 the result is also copied into the
// named register (the undocumented "indexed CB" register-copy quirk).
func (c *CPU) execIndexedCB() {
	d := int8(c.readByte(c.PC))
	c.PC++
	addr := uint16(int32(c.idxBase()) + int32(d))
	c.WZ = addr
	c.tickInternal(2)

	opcode := c.readByte(c.PC)
	c.PC++

	x := int(opcode>>6) & 3
	y := int(opcode>>3) & 7
	z := int(opcode) & 7

	val := c.readByte(addr)

	var result byte
	switch x {
	case 0:
		result = c.rotShift(y, val)
	case 1:
		c.cbBit(y, val, true)
		c.tickInternal(1)
		return
	case 2:
		result = cbRes(y, val)
	default:
		result = cbSet(y, val)
	}

	c.tickInternal(1)
	c.writeByte(addr, result)
	if z != 6 {
		c.plainReg8Set(z, result)
	}
}
