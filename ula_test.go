package spectrum

import "testing"

func TestULAPortFEClaimsEvenPortsOnly(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	if _, ok := u.ReadPort(0xFEFE); !ok {
		t.Fatal("expected even port to be claimed")
	}
	if _, ok := u.ReadPort(0x0001); ok {
		t.Fatal("expected odd port to be unclaimed")
	}
}

func TestULAKeyboardRowPressedClearsBit(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	u.SetKey(0xFE, 0, true) // CAPS SHIFT row, bit 0
	v, ok := u.ReadPort(0xFEFE)
	if !ok {
		t.Fatal("expected port 0xFEFE to be claimed")
	}
	if v&0x01 != 0 {
		t.Fatalf("expected bit 0 clear for pressed key, got %02X", v)
	}
}

func TestULABorderColorLatchedFromLowThreeBits(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	u.WritePort(0xFE, 0x06, 0)
	if got := u.BorderColor(); got != 0x06 {
		t.Fatalf("BorderColor() = %d, want 6", got)
	}
}

func TestULAContendedMemory48KRange(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	if !u.isContendedMemory(0x4000) || u.isContendedMemory(0x3FFF) || u.isContendedMemory(0x8000) {
		t.Fatal("48K contended range should be exactly 0x4000-0x7FFF")
	}
}

func TestULAContendedMemory128KFollowsOddRAMBanks(t *testing.T) {
	mem := NewMemory128()
	u := NewULA(mem, true)
	mem.WritePagingLatch7FFD(1) // bank 1 at 0xC000, contended
	if !u.isContendedMemory(0xC000) {
		t.Fatal("bank 1 should be contended when paged at 0xC000")
	}
	mem.WritePagingLatch7FFD(0) // bank 0, not contended
	if u.isContendedMemory(0xC000) {
		t.Fatal("bank 0 should not be contended when paged at 0xC000")
	}
}

func TestULAContendOutsideScreenWindowIsFree(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	if d := u.Contend(0, 0x4000, false); d != 0 {
		t.Fatalf("Contend before screen start = %d, want 0", d)
	}
}

func TestULARenderScreenProducesExpectedFrameSize(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	buf := u.RenderScreen()
	if len(buf) != frameWidth*frameHeight*3 {
		t.Fatalf("RenderScreen() length = %d, want %d", len(buf), frameWidth*frameHeight*3)
	}
}

func TestULARenderAudioProducesRequestedSampleCount(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	out := u.RenderAudio(64, Frame48CyclesPerFrame, nil)
	if len(out) != 64 {
		t.Fatalf("RenderAudio() returned %d samples, want 64", len(out))
	}
}

func TestULAFlashTogglesEveryHalfPeriod(t *testing.T) {
	mem := NewMemory48()
	u := NewULA(mem, false)
	// Flash attribute with ink=1, paper=2: confirm the first pixel's color
	// swaps within one full flash period (32 frames), first at the half
	// period (frame 16).
	bank := mem.GetBankData(5)
	bank[0x1800] = 0x80 | 2<<3 | 1 // flash, paper=2, ink=1
	var first, sawSwap [3]byte
	swapAt := -1
	for i := 0; i < flashPeriod; i++ {
		buf := u.RenderScreen()
		px := buf[(borderSize)*frameWidth*3+borderSize*3:]
		var c [3]byte
		copy(c[:], px[:3])
		if i == 0 {
			first = c
		} else if c != first {
			sawSwap = c
			if swapAt < 0 {
				swapAt = i
			}
		}
	}
	if sawSwap == [3]byte{} {
		t.Fatal("expected flash attribute to swap ink/paper within one period")
	}
	if swapAt != flashPeriod/2 {
		t.Fatalf("first swap at frame %d, want %d", swapAt, flashPeriod/2)
	}
}
