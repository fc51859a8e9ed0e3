package spectrum

import "testing"

func TestMemory48FlatReadWrite(t *testing.T) {
	m := NewMemory48()
	m.WriteByte(0x8000, 0x42)
	if got := m.ReadByte(0x8000); got != 0x42 {
		t.Fatalf("ReadByte(0x8000) = %02X, want 42", got)
	}
}

func TestMemory48ROMWriteIgnored(t *testing.T) {
	m := NewMemory48()
	if err := m.LoadROM([]byte{0xAA, 0xBB}, 0); err != nil {
		t.Fatal(err)
	}
	m.WriteByte(0x0000, 0xFF)
	if got := m.ReadByte(0x0000); got != 0xAA {
		t.Fatalf("ROM write should be ignored, got %02X", got)
	}
}

func TestMemory128Paging(t *testing.T) {
	m := NewMemory128()
	m.WritePagingLatch7FFD(0x03) // select RAM bank 3 at 0xC000
	m.WriteByte(0xC000, 0x55)
	if got := m.GetBankData(3)[0]; got != 0x55 {
		t.Fatalf("expected write routed to bank 3, got %02X", got)
	}
	if m.CurrentRAMBank() != 3 {
		t.Fatalf("CurrentRAMBank() = %d, want 3", m.CurrentRAMBank())
	}
}

func TestMemory128ScreenBankSelect(t *testing.T) {
	m := NewMemory128()
	if m.ScreenBank() != 5 {
		t.Fatalf("default screen bank = %d, want 5", m.ScreenBank())
	}
	m.WritePagingLatch7FFD(0x08)
	if m.ScreenBank() != 7 {
		t.Fatalf("ScreenBank() = %d, want 7 after bit3 set", m.ScreenBank())
	}
}

func TestMemory128PagingLock(t *testing.T) {
	m := NewMemory128()
	m.WritePagingLatch7FFD(0x20 | 0x02) // lock, select bank 2
	m.WritePagingLatch7FFD(0x04)        // should be ignored
	if m.CurrentRAMBank() != 2 {
		t.Fatalf("paging latch should be locked, bank = %d, want 2", m.CurrentRAMBank())
	}
}

func TestMemory128FixedWindows(t *testing.T) {
	m := NewMemory128()
	m.WriteByte(0x4000, 0x11) // always RAM 5
	m.WriteByte(0x8000, 0x22) // always RAM 2
	if m.GetBankData(5)[0] != 0x11 {
		t.Fatalf("0x4000 window not routed to bank 5")
	}
	if m.GetBankData(2)[0] != 0x22 {
		t.Fatalf("0x8000 window not routed to bank 2")
	}
}

func TestMemoryLoadROMTooLarge(t *testing.T) {
	m := NewMemory128()
	if err := m.LoadROM(make([]byte, 0x5000), 0); err == nil {
		t.Fatal("expected error loading oversized ROM")
	}
}
