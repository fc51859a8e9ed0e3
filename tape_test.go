package spectrum

import "testing"

func TestFIFOTapeOrder(t *testing.T) {
	tape := NewFIFOTape([][]byte{{0x00, 0x01}, {0xFF, 0x02, 0x03}})
	b, ok := tape.NextBlock()
	if !ok || b[0] != 0x00 {
		t.Fatalf("first block wrong: %v ok=%v", b, ok)
	}
	b, ok = tape.NextBlock()
	if !ok || b[0] != 0xFF {
		t.Fatalf("second block wrong: %v ok=%v", b, ok)
	}
	if _, ok := tape.NextBlock(); ok {
		t.Fatal("expected exhausted tape")
	}
}

func TestFIFOTapeRewind(t *testing.T) {
	tape := NewFIFOTape([][]byte{{0x00}})
	tape.NextBlock()
	if tape.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", tape.Remaining())
	}
	tape.Rewind()
	if tape.Remaining() != 1 {
		t.Fatalf("Remaining() after rewind = %d, want 1", tape.Remaining())
	}
}
