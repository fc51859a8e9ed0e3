// Command spectrum runs the ZX Spectrum core in an ebiten window with oto
// audio output, loading a 48K or 128K ROM pair and an optional tape image.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	spectrum "github.com/gozxspectrum/spectrum48"
)

const (
	sampleRate      = 22050
	windowScale     = 2
	windowWidth     = 320 * windowScale
	windowHeight    = 256 * windowScale
	audioBufSamples = 4096
)

func main() {
	rom48 := flag.String("rom48", "", "path to the 48K ROM image")
	rom128a := flag.String("rom128-0", "", "path to 128K ROM bank 0 (editor)")
	rom128b := flag.String("rom128-1", "", "path to 128K ROM bank 1 (48K-compatible)")
	tapePath := flag.String("tape", "", "path to a raw TAP-style block file")
	stereo := flag.String("stereo", "acb", "AY stereo mixing: mono|abc|acb")
	screenshotDir := flag.String("screenshot-dir", ".", "directory F9 screenshots are written to")
	screenshotScale := flag.Int("screenshot-scale", 2, "screenshot upscale factor")
	flag.Parse()

	machine, err := buildMachine(*rom48, *rom128a, *rom128b, *stereo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "spectrum:", err)
		os.Exit(1)
	}

	if *tapePath != "" {
		blocks, err := loadTapeBlocks(*tapePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "spectrum:", err)
			os.Exit(1)
		}
		machine.AttachTape(spectrum.NewFIFOTape(blocks))
	}

	player, err := newAudioPlayer(sampleRate)
	if err != nil {
		fmt.Fprintln(os.Stderr, "spectrum: audio init:", err)
		os.Exit(1)
	}
	player.Start()
	defer player.Close()

	game := &spectrumGame{
		machine: machine,
		audio:   player,
		shot:    screenshotScaler{scale: *screenshotScale},
		shotDir: *screenshotDir,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("ZX Spectrum")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintln(os.Stderr, "spectrum:", err)
		os.Exit(1)
	}
}

func parseStereoMixing(s string) spectrum.StereoMixing {
	switch s {
	case "abc":
		return spectrum.MixABC
	case "acb":
		return spectrum.MixACB
	default:
		return spectrum.MixMono
	}
}

func buildMachine(rom48, rom128a, rom128b, stereo string) (*spectrum.Machine, error) {
	mixing := parseStereoMixing(stereo)
	if rom128a != "" || rom128b != "" {
		a, err := os.ReadFile(rom128a)
		if err != nil {
			return nil, fmt.Errorf("reading 128K ROM bank 0: %w", err)
		}
		b, err := os.ReadFile(rom128b)
		if err != nil {
			return nil, fmt.Errorf("reading 128K ROM bank 1: %w", err)
		}
		return spectrum.NewMachine128(a, b, mixing)
	}
	if rom48 == "" {
		return nil, fmt.Errorf("no ROM given: pass -rom48 or both -rom128-0/-rom128-1")
	}
	data, err := os.ReadFile(rom48)
	if err != nil {
		return nil, fmt.Errorf("reading 48K ROM: %w", err)
	}
	return spectrum.NewMachine48(data)
}

// loadTapeBlocks reads a raw concatenation of length-prefixed tape blocks:
// a 16-bit little-endian length followed by that many bytes, repeated.
// This is the minimal container this core's FIFOTape needs; full TAP/TZX
// parsing is a host concern per spec.md's Non-goals.
func loadTapeBlocks(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var blocks [][]byte
	for i := 0; i+2 <= len(data); {
		length := int(data[i]) | int(data[i+1])<<8
		i += 2
		if i+length > len(data) {
			break
		}
		blocks = append(blocks, data[i:i+length])
		i += length
	}
	return blocks, nil
}

// spectrumGame implements ebiten.Game, stepping the machine one video
// frame per Update call and drawing the rasterized screen each Draw call.
type spectrumGame struct {
	machine *spectrum.Machine
	audio   *audioPlayer
	img     *ebiten.Image
	rgba    []byte
	lastRGB []byte

	shot    screenshotScaler
	shotDir string
}

func (g *spectrumGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	g.handleKeys()

	screen, audio := g.machine.RunFrame(sampleRate / 50)
	g.blit(screen)
	g.lastRGB = screen
	g.audio.Push(audio)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if path, err := g.shot.save(g.shotDir, g.lastRGB, 320, 256); err != nil {
			fmt.Fprintln(os.Stderr, "spectrum: screenshot:", err)
		} else {
			fmt.Fprintln(os.Stderr, "spectrum: wrote", path)
		}
	}
	return nil
}

func (g *spectrumGame) blit(rgb []byte) {
	n := len(rgb) / 3
	if len(g.rgba) != n*4 {
		g.rgba = make([]byte, n*4)
	}
	for i := 0; i < n; i++ {
		g.rgba[i*4] = rgb[i*3]
		g.rgba[i*4+1] = rgb[i*3+1]
		g.rgba[i*4+2] = rgb[i*3+2]
		g.rgba[i*4+3] = 0xFF
	}
}

func (g *spectrumGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(320, 256)
	}
	if len(g.rgba) == 320*256*4 {
		g.img.WritePixels(g.rgba)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.img, op)
}

func (g *spectrumGame) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// keyMap binds ebiten keys to the Spectrum's 8x5 keyboard matrix, addressed
// by the half-row select byte and bit position written/read via port 0xFE.
var keyMap = map[ebiten.Key][2]uint{
	ebiten.KeyShiftLeft: {0xFE, 0}, ebiten.KeyZ: {0xFE, 1}, ebiten.KeyX: {0xFE, 2}, ebiten.KeyC: {0xFE, 3}, ebiten.KeyV: {0xFE, 4},
	ebiten.KeyA: {0xFD, 0}, ebiten.KeyS: {0xFD, 1}, ebiten.KeyD: {0xFD, 2}, ebiten.KeyF: {0xFD, 3}, ebiten.KeyG: {0xFD, 4},
	ebiten.KeyQ: {0xFB, 0}, ebiten.KeyW: {0xFB, 1}, ebiten.KeyE: {0xFB, 2}, ebiten.KeyR: {0xFB, 3}, ebiten.KeyT: {0xFB, 4},
	ebiten.Key1: {0xF7, 0}, ebiten.Key2: {0xF7, 1}, ebiten.Key3: {0xF7, 2}, ebiten.Key4: {0xF7, 3}, ebiten.Key5: {0xF7, 4},
	ebiten.Key0: {0xEF, 0}, ebiten.Key9: {0xEF, 1}, ebiten.Key8: {0xEF, 2}, ebiten.Key7: {0xEF, 3}, ebiten.Key6: {0xEF, 4},
	ebiten.KeyP: {0xDF, 0}, ebiten.KeyO: {0xDF, 1}, ebiten.KeyI: {0xDF, 2}, ebiten.KeyU: {0xDF, 3}, ebiten.KeyY: {0xDF, 4},
	ebiten.KeyEnter: {0xBF, 0}, ebiten.KeyL: {0xBF, 1}, ebiten.KeyK: {0xBF, 2}, ebiten.KeyJ: {0xBF, 3}, ebiten.KeyH: {0xBF, 4},
	ebiten.KeySpace: {0x7F, 0}, ebiten.KeyShiftRight: {0x7F, 1}, ebiten.KeyM: {0x7F, 2}, ebiten.KeyN: {0x7F, 3}, ebiten.KeyB: {0x7F, 4},
}

func (g *spectrumGame) handleKeys() {
	for key, rc := range keyMap {
		pressed := ebiten.IsKeyPressed(key)
		g.machine.SetKey(byte(rc[0]), rc[1], pressed)
	}
}

// audioPlayer feeds the Machine's per-frame float32 stereo samples to oto
// through a small mutex-guarded ring buffer, the same structure the
// teacher's OtoPlayer uses for its Reader-driven playback.
type audioPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
	ring   []float32
}

func newAudioPlayer(rate int) (*audioPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	ap := &audioPlayer{ctx: ctx, ring: make([]float32, 0, audioBufSamples*2)}
	ap.player = ctx.NewPlayer(ap)
	return ap, nil
}

func (ap *audioPlayer) Start() { ap.player.Play() }
func (ap *audioPlayer) Close() { ap.player.Close() }

func (ap *audioPlayer) Push(samples [][2]float32) {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	if len(ap.ring) > audioBufSamples*2*4 {
		ap.ring = ap.ring[:0] // overrun: drop the backlog rather than grow unbounded
	}
	for _, s := range samples {
		ap.ring = append(ap.ring, s[0], s[1])
	}
}

// Read implements io.Reader for oto.Player: it drains interleaved float32
// stereo samples, emitting silence on underrun.
func (ap *audioPlayer) Read(p []byte) (int, error) {
	ap.mu.Lock()
	defer ap.mu.Unlock()

	want := len(p) / 4
	have := len(ap.ring)
	n := want
	if have < want {
		n = have
	}
	for i := 0; i < n; i++ {
		v := ap.ring[i]
		bits := math.Float32bits(v)
		p[i*4] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	for i := n; i < want; i++ {
		p[i*4], p[i*4+1], p[i*4+2], p[i*4+3] = 0, 0, 0, 0
	}
	ap.ring = ap.ring[:copy(ap.ring, ap.ring[n:])]
	return want * 4, nil
}
