// Package emu wires the CPU, bus, and PPU into a runnable machine and is the
// API surface cmd/gbemu and internal/ui build on.
package emu

import (
	"io"
	"os"

	"github.com/hallowpeak/dmgcore/internal/bus"
	"github.com/hallowpeak/dmgcore/internal/cart"
	"github.com/hallowpeak/dmgcore/internal/cpu"
	"github.com/hallowpeak/dmgcore/internal/joypad"
)

type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
}

// Machine owns one cartridge session: CPU, bus (and through it PPU, timer,
// joypad, APU stub), and the host-facing framebuffer/battery surface.
type Machine struct {
	cfg Config

	bus *bus.Bus
	cpu *cpu.CPU

	bootROM []byte
	romPath string
	title   string

	buttons Buttons

	pendingVBlank bool
	renderNext    bool
	frame         [160 * 144]uint32
	fb            []byte // RGBA 160x144*4

	paletteID int
}

func New(cfg Config) *Machine {
	return &Machine{cfg: cfg, fb: make([]byte, 160*144*4)}
}

// SetBootROM stages a boot ROM image used by any LoadCartridge/ResetWithBoot
// call that doesn't pass its own boot image explicitly.
func (m *Machine) SetBootROM(boot []byte) { m.bootROM = boot }

// LoadCartridge parses rom, wires a fresh Bus/CPU pair around it, and resets
// the CPU to the boot-ROM entry point if a boot image is available (either
// passed here or previously staged via SetBootROM), otherwise to the
// documented DMG post-boot register state (spec.md §9's construction-time
// boot-ROM-overlay toggle).
func (m *Machine) LoadCartridge(rom []byte, boot []byte) error {
	b, err := bus.New(rom)
	if err != nil {
		return err
	}
	if boot == nil {
		boot = m.bootROM
	}

	m.bus = b
	m.cpu = cpu.New()
	m.title = ""
	m.paletteID = 0

	if len(boot) >= 0x100 {
		m.bootROM = boot
		b.SetBootROM(boot)
		m.cpu.BootReset()
	} else {
		m.cpu.ArmedReset()
	}
	b.PPU().SetDisplaySink(m)

	if h, herr := cart.ParseHeader(rom); herr == nil {
		m.title = h.Title
		if id, ok := autoCompatPaletteFromHeader(h); ok {
			m.SetCompatPalette(id)
		}
	}
	return nil
}

// LoadROMFromFile reads path and loads it as the current cartridge, also
// recording path so ROMPath/the UI's window title and .sav sibling lookup
// can use it.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := m.LoadCartridge(data, m.bootROM); err != nil {
		return err
	}
	m.romPath = path
	return nil
}

func (m *Machine) ROMPath() string  { return m.romPath }
func (m *Machine) ROMTitle() string { return m.title }

// ResetPostBoot restarts the current cartridge at the documented DMG
// post-boot register state, bypassing the boot ROM overlay.
func (m *Machine) ResetPostBoot() {
	if m.cpu == nil {
		return
	}
	m.bus.Write(0xFF50, 0x01) // disable the boot ROM overlay, if any
	m.cpu.ArmedReset()
}

// ResetWithBoot restarts the current cartridge running from the staged boot
// ROM overlay, if one was supplied.
func (m *Machine) ResetWithBoot() {
	if m.cpu == nil || len(m.bootROM) < 0x100 {
		return
	}
	m.bus.SetBootROM(m.bootROM)
	m.cpu.BootReset()
}

// LoadBattery restores persisted save RAM into the cartridge, if it's
// battery-backed. Reports whether the cartridge accepted it.
func (m *Machine) LoadBattery(data []byte) bool {
	if m.bus == nil {
		return false
	}
	bb, ok := m.bus.Cart().(cart.BatteryBacked)
	if !ok {
		return false
	}
	bb.LoadRAM(data)
	return true
}

// SaveBattery returns the cartridge's save RAM, if it's battery-backed.
func (m *Machine) SaveBattery() ([]byte, bool) {
	if m.bus == nil {
		return nil, false
	}
	bb, ok := m.bus.Cart().(cart.BatteryBacked)
	if !ok {
		return nil, false
	}
	return bb.SaveRAM(), true
}

// SetSerialWriter installs a sink for bytes the cartridge writes to the
// serial port (cmd/cpurunner's test-ROM harness reads pass/fail text here).
func (m *Machine) SetSerialWriter(w io.Writer) {
	if m.bus != nil {
		m.bus.SetSerialWriter(w)
	}
}

// SetButtons reports the current physical button state; presses/releases
// are diffed against the last call so only edges reach the joypad latch.
func (m *Machine) SetButtons(b Buttons) {
	if m.bus == nil {
		m.buttons = b
		return
	}
	jp := m.bus.Joypad()
	edge := func(prev, cur bool, key joypad.Key) {
		if cur && !prev {
			jp.Pressed(key)
		} else if !cur && prev {
			jp.Released(key)
		}
	}
	edge(m.buttons.Right, b.Right, joypad.Right)
	edge(m.buttons.Left, b.Left, joypad.Left)
	edge(m.buttons.Up, b.Up, joypad.Up)
	edge(m.buttons.Down, b.Down, joypad.Down)
	edge(m.buttons.A, b.A, joypad.A)
	edge(m.buttons.B, b.B, joypad.B)
	edge(m.buttons.Select, b.Select, joypad.Select)
	edge(m.buttons.Start, b.Start, joypad.Start)
	m.buttons = b
}

// StepFrame runs the CPU/bus until one full PPU frame has been composited.
func (m *Machine) StepFrame() { m.runFrame(true) }

// StepFrameNoRender runs one frame but skips the ARGB→RGBA framebuffer
// conversion, for headless test-ROM loops that only watch serial output.
func (m *Machine) StepFrameNoRender() { m.runFrame(false) }

func (m *Machine) runFrame(render bool) {
	if m.bus == nil || m.cpu == nil {
		return
	}
	m.pendingVBlank = false
	m.renderNext = render
	for !m.pendingVBlank {
		ticks := m.cpu.Step(m.bus)
		m.bus.Step(ticks)
	}
}

// PushFrame implements ppu.DisplaySink: it's called once per VBlank with the
// just-finished frame.
func (m *Machine) PushFrame(frame [160 * 144]uint32) {
	m.frame = frame
	m.pendingVBlank = true
	if m.renderNext {
		argbToRGBA(frame, m.fb)
	}
}

func argbToRGBA(frame [160 * 144]uint32, fb []byte) {
	for i, px := range frame {
		o := i * 4
		fb[o+0] = byte(px >> 16) // R
		fb[o+1] = byte(px >> 8)  // G
		fb[o+2] = byte(px)       // B
		fb[o+3] = byte(px >> 24) // A
	}
}

// Framebuffer returns the last rendered frame as RGBA8888 bytes, row-major
// 160x144, suitable for ebiten.Image.WritePixels.
func (m *Machine) Framebuffer() []byte { return m.fb }

// CurrentCompatPalette, CompatPaletteName, CycleCompatPalette, and
// SetCompatPalette let a front-end override the DMG title-based palette
// heuristic LoadCartridge applies automatically.
func (m *Machine) CurrentCompatPalette() int { return m.paletteID }

func (m *Machine) CompatPaletteName(id int) string {
	return compatPalettes[clampPaletteID(id)].name
}

func (m *Machine) SetCompatPalette(id int) {
	m.paletteID = clampPaletteID(id)
	if m.bus != nil {
		m.bus.PPU().SetShades(compatPalettes[m.paletteID].shades)
	}
}

func (m *Machine) CycleCompatPalette(delta int) {
	m.SetCompatPalette(m.paletteID + delta)
}
