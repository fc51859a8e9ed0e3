package spectrum

// fakeMem is a flat 64KiB address space with no paging, for CPU unit tests
// that don't need the full 48K/128K Memory model.
type fakeMem struct {
	data [0x10000]byte
}

func (m *fakeMem) ReadByte(addr uint16) byte     { return m.data[addr] }
func (m *fakeMem) WriteByte(addr uint16, v byte) { m.data[addr] = v }

func (m *fakeMem) loadAt(addr uint16, bytes ...byte) {
	for i, b := range bytes {
		m.data[int(addr)+i] = b
	}
}

// fakeIO is a PortBus stub; ReadByte floats high unless a port has an
// explicit override queued, and WriteByte records the last value written per
// port for assertions.
type fakeIO struct {
	writes map[uint16]byte
	reads  map[uint16]byte
}

func newFakeIO() *fakeIO {
	return &fakeIO{writes: make(map[uint16]byte), reads: make(map[uint16]byte)}
}

func (f *fakeIO) ReadByte(port uint16, cycle uint64) byte {
	if v, ok := f.reads[port]; ok {
		return v
	}
	return 0xFF
}

func (f *fakeIO) WriteByte(port uint16, value byte, cycle uint64) {
	f.writes[port] = value
}

// zeroContention reports no contention delay for any access, isolating CPU
// instruction-timing tests from the ULA's screen-window logic.
type zeroContention struct{}

func (zeroContention) Contend(cycle uint64, addr uint16, isIO bool) int { return 0 }

func newTestCPU() (*CPU, *fakeMem, *fakeIO) {
	mem := &fakeMem{}
	io := newFakeIO()
	cpu := NewCPU(mem, io, zeroContention{})
	return cpu, mem, io
}
