package spectrum

import "fmt"

// Machine wires Memory, the I/O bus, the ULA, the CPU, and (128K only) the
// AY-3-8910/paging hardware into one runnable ZX Spectrum.
type Machine struct {
	Memory   *Memory
	IO       *IOBus
	ULA      *ULA
	CPU      *CPU
	Hardware *Hardware128K // nil in 48K mode

	is128K bool
}

// NewMachine48 builds a 48K machine from a 16KiB ROM image.
func NewMachine48(rom []byte) (*Machine, error) {
	mem := NewMemory48()
	if err := mem.LoadROM(rom, 0); err != nil {
		return nil, fmt.Errorf("machine: load 48K ROM: %w", err)
	}
	return newMachine(mem, false, nil), nil
}

// NewMachine128 builds a 128K machine from its two 16KiB ROM images (bank
// 0: 128K editor/menu ROM, bank 1: 48K-compatible ROM).
func NewMachine128(rom0, rom1 []byte, mixing StereoMixing) (*Machine, error) {
	mem := NewMemory128()
	if err := mem.LoadROM(rom0, 0); err != nil {
		return nil, fmt.Errorf("machine: load 128K ROM bank 0: %w", err)
	}
	if err := mem.LoadROM(rom1, 1); err != nil {
		return nil, fmt.Errorf("machine: load 128K ROM bank 1: %w", err)
	}
	hw := NewHardware128K(mem, mixing)
	return newMachine(mem, true, hw), nil
}

func newMachine(mem *Memory, is128K bool, hw *Hardware128K) *Machine {
	ula := NewULA(mem, is128K)
	io := NewIOBus()
	io.AddDevice(ula)
	io.SetFloatingBusSource(ula)
	if hw != nil {
		io.AddDevice(hw)
	}
	cpu := NewCPU(mem, io, ula)

	return &Machine{
		Memory:   mem,
		IO:       io,
		ULA:      ula,
		CPU:      cpu,
		Hardware: hw,
		is128K:   is128K,
	}
}

// AttachTape wires a tape block source into the CPU's ROM load trap.
func (m *Machine) AttachTape(t TapeProvider) { m.CPU.AttachTape(t) }

// SetKey simulates a key transition at the given half-row select byte and
// bit position (0..4).
func (m *Machine) SetKey(rowAddr byte, bit uint, pressed bool) {
	m.ULA.SetKey(rowAddr, bit, pressed)
}

// RunFrame advances the CPU through exactly one video frame's worth of
// T-states, raises the maskable interrupt once at the frame boundary, and
// returns the rendered video frame and an audio buffer of sampleCount
// stereo samples. This is the entire per-frame contract the core exposes;
// pacing against real time and sample-ring buffering are a host concern.
func (m *Machine) RunFrame(sampleCount int) (screen []byte, audio [][2]float32) {
	budget := m.CPU.Cycles + m.ULA.CyclesPerFrame
	for m.CPU.Cycles < budget {
		m.CPU.Step()
	}

	m.CPU.SetIRQLine(true)
	m.CPU.Step()

	var ay *AY3
	if m.Hardware != nil {
		ay = m.Hardware.AY
	}

	screen = m.ULA.RenderScreen()
	audio = m.ULA.RenderAudio(sampleCount, m.ULA.CyclesPerFrame, ay)
	return screen, audio
}
