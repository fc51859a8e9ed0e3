package spectrum

// idxBase returns the 16-bit base register the active DD/FD prefix
// substitutes for HL (or HL itself absent a prefix).
func (c *CPU) idxBase() uint16 {
	switch c.idx {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIdxBase(v uint16) {
	switch c.idx {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

// effAddr resolves the operand address for any instruction whose z/y field
// selects index 6: HL directly with no prefix, or (IX+d)/(IY+d) with one
// fetched displacement byte and 5 T-states of address-calculation time
// otherwise.
func (c *CPU) effAddr() uint16 {
	if c.idx == idxNone {
		return c.HL()
	}
	d := int8(c.fetchByte())
	addr := uint16(int32(c.idxBase()) + int32(d))
	c.WZ = addr
	c.tickInternal(5)
	return addr
}

// idxReg8Get/Set read/write the 8-bit operand selected by a z/y field 0..7
// (B,C,D,E,H,L,(HL),A), substituting IXH/IXL or IYH/IYL for H/L while a
// DD/FD prefix is active, and (IX+d)/(IY+d) for index 6.
func (c *CPU) idxReg8Get(idx int) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		switch c.idx {
		case idxIX:
			return byte(c.IX >> 8)
		case idxIY:
			return byte(c.IY >> 8)
		default:
			return c.H
		}
	case 5:
		switch c.idx {
		case idxIX:
			return byte(c.IX)
		case idxIY:
			return byte(c.IY)
		default:
			return c.L
		}
	case 6:
		return c.readByte(c.effAddr())
	default:
		return c.A
	}
}

func (c *CPU) idxReg8Set(idx int, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		switch c.idx {
		case idxIX:
			c.IX = uint16(v)<<8 | (c.IX & 0xFF)
		case idxIY:
			c.IY = uint16(v)<<8 | (c.IY & 0xFF)
		default:
			c.H = v
		}
	case 5:
		switch c.idx {
		case idxIX:
			c.IX = (c.IX & 0xFF00) | uint16(v)
		case idxIY:
			c.IY = (c.IY & 0xFF00) | uint16(v)
		default:
			c.L = v
		}
	case 6:
		c.writeByte(c.effAddr(), v)
	default:
		c.A = v
	}
}

// plainReg8Get/Set access the *physical* B,C,D,E,H,L,A registers with no
// index substitution, for the undocumented rule that in "LD r,(HL)"-style
// forms rewritten to (IX+d)/(IY+d), the register-only side of the
// instruction still names the real H/L, not IXH/IXL.
func (c *CPU) plainReg8Get(idx int) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	default:
		return c.A
	}
}

func (c *CPU) plainReg8Set(idx int, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	default:
		c.A = v
	}
}

// rp returns BC/DE/HL(idx)/SP for p=0..3 (the "rp" table).
func (c *CPU) rp(p int) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.idxBase()
	default:
		return c.SP
	}
}

func (c *CPU) setRP(p int, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIdxBase(v)
	default:
		c.SP = v
	}
}

// rp2 returns BC/DE/HL(idx)/AF for p=0..3, the PUSH/POP pair table.
func (c *CPU) rp2(p int) uint16 {
	if p == 3 {
		return c.AF()
	}
	return c.rp(p)
}

func (c *CPU) setRP2(p int, v uint16) {
	if p == 3 {
		c.SetAF(v)
		return
	}
	c.setRP(p, v)
}

// condition evaluates cc[y] for y=0..7: NZ,Z,NC,C,PO,PE,P,M.
func (c *CPU) condition(y int) bool {
	switch y {
	case 0:
		return !c.Flag(z80FlagZ)
	case 1:
		return c.Flag(z80FlagZ)
	case 2:
		return !c.Flag(z80FlagC)
	case 3:
		return c.Flag(z80FlagC)
	case 4:
		return !c.Flag(z80FlagPV)
	case 5:
		return c.Flag(z80FlagPV)
	case 6:
		return !c.Flag(z80FlagS)
	default:
		return c.Flag(z80FlagS)
	}
}
