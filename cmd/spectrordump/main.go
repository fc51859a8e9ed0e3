// Command spectrordump is a headless, keystroke-driven debugger for the
// Spectrum core: it loads a 48K ROM (and an optional hex PC breakpoint),
// puts the terminal into raw mode, and lets a single keypress step the CPU,
// run a frame, run to the breakpoint, or dump 16 bytes at (HL); registers
// are printed after each command. It loads no snapshots and has no
// disassembler.
package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	spectrum "github.com/gozxspectrum/spectrum48"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: spectrordump <rom48-path> [pc-breakpoint-hex]")
		os.Exit(1)
	}

	rom, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "spectrordump:", err)
		os.Exit(1)
	}
	machine, err := spectrum.NewMachine48(rom)
	if err != nil {
		fmt.Fprintln(os.Stderr, "spectrordump:", err)
		os.Exit(1)
	}

	var breakpoint uint32 = 0xFFFFFFFF
	if len(os.Args) >= 3 {
		fmt.Sscanf(os.Args[2], "%x", &breakpoint)
	}

	dbg := &debugger{machine: machine, breakpoint: breakpoint}
	dbg.run()
}

type debugger struct {
	machine    *spectrum.Machine
	breakpoint uint32
}

func (d *debugger) run() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	rawOK := err == nil
	if rawOK {
		defer term.Restore(fd, oldState)
	} else {
		fmt.Fprintln(os.Stderr, "spectrordump: not a terminal, falling back to line mode")
	}

	d.printHelp()
	d.printRegs()

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		switch b {
		case 'q', 'Q', 0x03:
			return
		case 's', 'S', '\r', '\n':
			d.step(1)
		case 'n', 'N':
			d.step(100)
		case 'f', 'F':
			d.runFrame()
		case 'd', 'D':
			d.dumpMemory()
		case 'r', 'R':
			d.runToBreakpoint()
		case '?', 'h', 'H':
			d.printHelp()
		default:
			continue
		}
		d.printRegs()
	}
}

func (d *debugger) printHelp() {
	fmt.Print("\r\ns=step  n=step 100  f=run one frame  r=run to breakpoint  d=dump (HL)  q=quit\r\n")
}

func (d *debugger) step(n int) {
	for i := 0; i < n; i++ {
		d.machine.CPU.Step()
	}
}

func (d *debugger) runFrame() {
	d.machine.RunFrame(0)
}

func (d *debugger) runToBreakpoint() {
	for i := 0; i < 10_000_000; i++ {
		if uint32(d.machine.CPU.PC) == d.breakpoint {
			return
		}
		d.machine.CPU.Step()
	}
}

func (d *debugger) dumpMemory() {
	addr := d.machine.CPU.HL()
	fmt.Printf("\r\n(HL)=%04X: ", addr)
	for i := uint16(0); i < 16; i++ {
		fmt.Printf("%02X ", d.machine.Memory.ReadByte(addr+i))
	}
	fmt.Print("\r\n")
}

func (d *debugger) printRegs() {
	c := d.machine.CPU
	fmt.Printf("\rAF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X  IM=%d IFF1=%v  T=%d\r\n",
		c.AF(), c.BC(), c.DE(), c.HL(), c.IX, c.IY, c.SP, c.PC, c.IM, c.IFF1, c.Cycles)
}
