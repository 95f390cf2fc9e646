package bus

import (
	"io"

	"github.com/hallowpeak/dmgcore/internal/apu"
	"github.com/hallowpeak/dmgcore/internal/cart"
	"github.com/hallowpeak/dmgcore/internal/joypad"
	"github.com/hallowpeak/dmgcore/internal/ppu"
	"github.com/hallowpeak/dmgcore/internal/timer"
)

// Bus wires CPU-visible address space to cartridge, WRAM, HRAM, IO, and the
// PPU/Timer/Joypad leaf components. Those leaves no longer share a mutable
// IF reference; each returns the IF bits it raised and Bus ORs them into
// its own ifReg (spec.md §9's bus-owns-IF design note).
type Bus struct {
	cart cart.Cartridge
	boot *cart.BootROM // nil when constructed without a boot ROM

	// Work RAM (WRAM) 8 KiB at 0xC000–0xDFFF; Echo 0xE000–0xFDFF mirrors C000–DDFF.
	wram [0x2000]byte

	// High RAM (HRAM) 0xFF80–0xFFFE (127 bytes)
	hram [0x7F]byte

	ppu    *ppu.PPU
	timer  *timer.Timer
	joypad *joypad.Joypad
	apu    *apu.APU

	// Interrupt registers
	ie    byte // IE at 0xFFFF
	ifReg byte // IF at 0xFF0F (lower 5 bits used)

	// Serial
	sb byte      // FF01 data
	sc byte      // FF02 control (bit7 start, bit0 clock source; immediate external completion)
	sw io.Writer // sink for serial output (optional)

	// OAM DMA state
	dma       byte // FF46
	dmaActive bool
	dmaSrc    uint16
	dmaIndex  int
}

// New constructs a Bus with a ROM-only or MBC-dispatched cartridge parsed
// from rom. Returns an error if the header is invalid or the cartridge
// type isn't one of the supported MBCs (spec.md §4.4).
func New(rom []byte) (*Bus, error) {
	c, err := cart.NewCartridge(rom)
	if err != nil {
		return nil, err
	}
	return NewWithCartridge(c), nil
}

// NewWithCartridge wires a provided cartridge implementation.
func NewWithCartridge(c cart.Cartridge) *Bus {
	b := &Bus{cart: c}
	b.ppu = ppu.New(nil)
	b.timer = timer.New()
	b.joypad = joypad.New()
	b.apu = apu.New()
	return b
}

// SetBootROM installs a boot ROM overlay active at 0x0000-0x00FF until a
// write with bit 0 set to 0xFF50 disables it.
func (b *Bus) SetBootROM(image []byte) { b.boot = cart.NewBootROM(image) }

// PPU returns the internal PPU for read-only rendering helpers. Avoids breaking encapsulation for CPU access.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// Cart returns the underlying cartridge for optional battery operations (read-only interface exposure).
func (b *Bus) Cart() cart.Cartridge { return b.cart }

// Joypad returns the joypad collaborator so front-ends can report key edges.
func (b *Bus) Joypad() *joypad.Joypad { return b.joypad }

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x8000:
		if addr < 0x0100 && b.boot != nil && b.boot.Enabled() {
			return b.boot.Read(addr)
		}
		return b.cart.Read(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.ppu.CPURead(addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		mirror := addr - 0x2000
		return b.wram[mirror-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if b.dmaActive {
			return 0xFF
		}
		return b.ppu.CPURead(addr)
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	case addr == 0xFF00:
		return b.joypad.ReadJOYP()
	case addr == 0xFF04:
		return b.timer.DIV()
	case addr == 0xFF05:
		return b.timer.TIMA()
	case addr == 0xFF06:
		return b.timer.TMA()
	case addr == 0xFF07:
		return b.timer.TAC()
	case addr == 0xFF01:
		return b.sb
	case addr == 0xFF02:
		return 0x7E | (b.sc & 0x81)
	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45,
		addr == 0xFF47, addr == 0xFF48, addr == 0xFF49,
		addr == 0xFF4A, addr == 0xFF4B:
		return b.ppu.CPURead(addr)
	case addr == 0xFF46:
		return b.dma
	case addr == 0xFF50:
		return 0xFF
	case addr == 0xFF0F:
		return 0xE0 | (b.ifReg & 0x1F)
	case addr == 0xFFFF:
		return b.ie
	case addr >= 0xFF10 && addr <= 0xFF3F:
		return b.apu.CPURead(addr)
	}
	return 0xFF
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, value)
		return
	case addr >= 0x8000 && addr <= 0x9FFF:
		b.ppu.CPUWrite(addr, value)
		return
	case addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, value)
		return
	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = value
		return
	case addr >= 0xE000 && addr <= 0xFDFF:
		mirror := addr - 0x2000
		if mirror >= 0xC000 && mirror <= 0xDDFF {
			b.wram[mirror-0xC000] = value
		}
		return
	case addr >= 0xFE00 && addr <= 0xFE9F:
		if b.dmaActive {
			return
		}
		b.ppu.CPUWrite(addr, value)
		return
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
		return
	case addr == 0xFF00:
		b.ifReg |= b.joypad.WriteJOYP(value)
		return
	case addr == 0xFF04:
		b.ifReg |= b.timer.WriteDIV()
		return
	case addr == 0xFF05:
		b.timer.WriteTIMA(value)
		return
	case addr == 0xFF06:
		b.timer.WriteTMA(value)
		return
	case addr == 0xFF07:
		b.ifReg |= b.timer.WriteTAC(value)
		return
	case addr == 0xFF01:
		b.sb = value
		return
	case addr == 0xFF02:
		b.sc = value & 0x81
		if b.sc&0x80 != 0 {
			if b.sw != nil {
				_, _ = b.sw.Write([]byte{b.sb})
			}
			b.ifReg |= 1 << 3
			b.sc &^= 0x80
		}
		return
	case addr == 0xFF40, addr == 0xFF41, addr == 0xFF42, addr == 0xFF43,
		addr == 0xFF44, addr == 0xFF45,
		addr == 0xFF47, addr == 0xFF48, addr == 0xFF49,
		addr == 0xFF4A, addr == 0xFF4B:
		b.ppu.CPUWrite(addr, value)
		return
	case addr == 0xFF46:
		b.dma = value
		b.dmaActive = true
		b.dmaSrc = uint16(value) << 8
		b.dmaIndex = 0
		return
	case addr == 0xFF50:
		if value&0x01 != 0 && b.boot != nil {
			b.boot.Disable()
		}
		return
	case addr == 0xFF0F:
		b.ifReg = value & 0x1F
		return
	case addr == 0xFFFF:
		b.ie = value
		return
	case addr >= 0xFF10 && addr <= 0xFF3F:
		b.apu.CPUWrite(addr, value)
		return
	}
}

// SetSerialWriter sets a sink that receives bytes written via the serial port.
func (b *Bus) SetSerialWriter(w io.Writer) { b.sw = w }

// Step advances the timer, PPU, and OAM DMA by the given number of T-cycles,
// drains any joypad edge latched since the last call, and ORs every
// subsystem's reported IF bits into the bus's IF register (spec.md §9:
// subsystems return bit masks instead of sharing mutable IF).
func (b *Bus) Step(cycles int) {
	if cycles <= 0 {
		return
	}
	for i := 0; i < cycles; i++ {
		b.ifReg |= b.timer.Step(1)
		b.ifReg |= b.ppu.Tick(1)

		if b.dmaActive {
			if b.dmaIndex < 0xA0 {
				v := b.Read(b.dmaSrc + uint16(b.dmaIndex))
				b.ppu.CPUWrite(0xFE00+uint16(b.dmaIndex), v)
				b.dmaIndex++
			}
			if b.dmaIndex >= 0xA0 {
				b.dmaActive = false
			}
		}
	}
	b.ifReg |= b.joypad.Step()
}
