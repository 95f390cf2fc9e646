// Package ppu implements the picture processing unit's mode state machine,
// per-scanline BG/window/sprite compositor, and OAM DMA target surface.
package ppu

// InterruptRequester is a callback signature to request IF bits (0:VBlank, 1:STAT, etc.).
type InterruptRequester func(bit int)

// DisplaySink receives one finished frame (row-major, 160x144 32-bit ARGB)
// at the VBlank transition. internal/ui implements this with ebiten.
type DisplaySink interface {
	PushFrame(frame [160 * 144]uint32)
}

// PPU models VRAM/OAM, LCDC/STAT regs, LY/LYC, mode timing, and the
// scanline renderer. It exposes CPU-facing Read/Write for VRAM/OAM and PPU
// IO registers, and an internal VRAMReader view the fetcher/sprite code use.
type PPU struct {
	vram [0x2000]byte // 0x8000–0x9FFF
	oam  [0xA0]byte   // 0xFE00–0xFE9F

	lcdc byte // FF40
	stat byte // FF41 (mode bits 0-1, coincidence flag bit2, enables bits3-6)
	scy  byte // FF42
	scx  byte // FF43
	ly   byte // FF44
	lyc  byte // FF45
	bgp  byte // FF47
	obp0 byte // FF48
	obp1 byte // FF49
	wy   byte // FF4A
	wx   byte // FF4B

	dot int // dots within current line [0..455]

	winLine int // internal window line counter, advances only on lines the window actually draws

	frame  [160 * 144]uint32
	sink   DisplaySink
	shades [4]uint32

	req InterruptRequester
}

func New(req InterruptRequester) *PPU { return &PPU{req: req, shades: dmgShades} }

// SetDisplaySink wires the collaborator PushFrame is delivered to at VBlank.
func (p *PPU) SetDisplaySink(sink DisplaySink) { p.sink = sink }

// SetShades overrides the four RGB colors DMG 2-bit shade indices map to,
// letting a front-end apply a per-title tint (e.g. the classic green/red/blue
// palettes a real Game Boy Color assigns to monochrome carts) instead of
// plain greyscale. An all-zero argument is ignored.
func (p *PPU) SetShades(shades [4]uint32) {
	if shades == ([4]uint32{}) {
		return
	}
	p.shades = shades
}

// vramView lets the scanline/sprite code address VRAM with real CPU
// addresses (0x8000-based) without going through CPU-access mode gating.
type vramView struct{ p *PPU }

func (v vramView) Read(addr uint16) byte { return v.p.vram[addr-0x8000] }

// CPURead returns bytes for VRAM, OAM, and PPU IO registers. Returns 0xFF for others.
func (p *PPU) CPURead(addr uint16) byte {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.stat&0x03 == 3 {
			return 0xFF
		}
		return p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		m := p.stat & 0x03
		if m == 2 || m == 3 {
			return 0xFF
		}
		return p.oam[addr-0xFE00]
	case addr == 0xFF40:
		return p.lcdc
	case addr == 0xFF41:
		return 0x80 | (p.stat & 0x7F)
	case addr == 0xFF42:
		return p.scy
	case addr == 0xFF43:
		return p.scx
	case addr == 0xFF44:
		return p.ly
	case addr == 0xFF45:
		return p.lyc
	case addr == 0xFF47:
		return p.bgp
	case addr == 0xFF48:
		return p.obp0
	case addr == 0xFF49:
		return p.obp1
	case addr == 0xFF4A:
		return p.wy
	case addr == 0xFF4B:
		return p.wx
	default:
		return 0xFF
	}
}

// CPUWrite handles writes to VRAM, OAM, and PPU IO regs. Others are ignored here.
func (p *PPU) CPUWrite(addr uint16, value byte) {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		if p.stat&0x03 == 3 {
			return
		}
		p.vram[addr-0x8000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		m := p.stat & 0x03
		if m == 2 || m == 3 {
			return
		}
		p.oam[addr-0xFE00] = value
	case addr == 0xFF40:
		prev := p.lcdc
		p.lcdc = value
		if p.lcdc&0x80 == 0 && prev&0x80 != 0 {
			p.ly = 0
			p.dot = 0
			p.winLine = 0
			p.setMode(0)
			p.updateLYC()
		} else if p.lcdc&0x80 != 0 && prev&0x80 == 0 {
			p.ly = 0
			p.dot = 0
			p.winLine = 0
			p.setMode(2)
			p.updateLYC()
		}
	case addr == 0xFF41:
		p.stat = (p.stat & 0x07) | (value & 0x78)
	case addr == 0xFF42:
		p.scy = value
	case addr == 0xFF43:
		p.scx = value
	case addr == 0xFF44:
		p.ly = 0
		p.dot = 0
		p.updateLYC()
		if p.lcdc&0x80 != 0 {
			p.setMode(2)
		}
	case addr == 0xFF45:
		p.lyc = value
		p.updateLYC()
	case addr == 0xFF47:
		p.bgp = value
	case addr == 0xFF48:
		p.obp0 = value
	case addr == 0xFF49:
		p.obp1 = value
	case addr == 0xFF4A:
		p.wy = value
	case addr == 0xFF4B:
		p.wx = value
	}
}

// Tick advances PPU state by the given number of dots (ticks) and returns
// any IF bits raised (VBlank and/or STAT) — the PPU no longer shares a
// mutable IF reference with the bus (spec.md §9's "subsystems return a bit
// mask" note). The InterruptRequester passed to New is stored but never
// invoked; Tick's return value is the only way IF bits are reported.
func (p *PPU) Tick(ticks int) (ifBits byte) {
	for i := 0; i < ticks; i++ {
		ifBits |= p.tickOne()
	}
	return ifBits
}

func (p *PPU) tickOne() (ifBits byte) {
	if p.lcdc&0x80 == 0 {
		return 0
	}
	p.dot++

	var mode byte
	if p.ly >= 144 {
		mode = 1
	} else {
		switch {
		case p.dot < 80:
			mode = 2
		case p.dot < 80+172:
			mode = 3
		default:
			mode = 0
		}
	}
	if mode == 0 && p.stat&0x03 == 3 {
		p.renderLine(int(p.ly))
	}
	ifBits |= p.setMode(mode)

	if p.dot >= 456 {
		p.dot = 0
		p.ly++
		if p.ly == 144 {
			ifBits |= 1 // VBlank IF
			if p.stat&(1<<4) != 0 {
				ifBits |= 1 << 1 // STAT VBlank
			}
			if p.sink != nil {
				p.sink.PushFrame(p.frame)
			}
			p.winLine = 0
		} else if p.ly > 153 {
			p.ly = 0
		}
		ifBits |= p.updateLYC()
		if p.ly >= 144 {
			ifBits |= p.setMode(1)
		} else {
			ifBits |= p.setMode(2)
		}
	}
	return ifBits
}

func (p *PPU) setMode(mode byte) (ifBits byte) {
	prev := p.stat & 0x03
	if prev == mode {
		return 0
	}
	p.stat = (p.stat &^ 0x03) | (mode & 0x03)
	switch mode {
	case 0: // HBlank
		if p.stat&(1<<3) != 0 {
			ifBits |= 1 << 1
		}
	case 2: // OAM
		if p.stat&(1<<5) != 0 {
			ifBits |= 1 << 1
		}
	}
	return ifBits
}

func (p *PPU) updateLYC() (ifBits byte) {
	if p.ly == p.lyc {
		p.stat |= 1 << 2
		if p.stat&(1<<6) != 0 {
			ifBits |= 1 << 1
		}
	} else {
		p.stat &^= 1 << 2
	}
	return ifBits
}

// renderLine composites BG, window, and sprites for scanline ly into the
// frame buffer. Runs once per line, at the mode-3-to-0 transition.
func (p *PPU) renderLine(ly int) {
	mem := vramView{p}
	tileData8000 := p.lcdc&0x10 != 0
	bgMapBase := uint16(0x9800)
	if p.lcdc&0x08 != 0 {
		bgMapBase = 0x9C00
	}

	var bgRow [160]byte
	if p.lcdc&0x01 != 0 {
		bgRow = RenderBGScanlineUsingFetcher(mem, bgMapBase, tileData8000, p.scx, p.scy, byte(ly))
	}

	windowOn := p.lcdc&0x01 != 0 && p.lcdc&0x20 != 0 && int(p.wy) <= ly && int(p.wx) <= 166
	if windowOn {
		winMapBase := uint16(0x9800)
		if p.lcdc&0x40 != 0 {
			winMapBase = 0x9C00
		}
		wxStart := int(p.wx) - 7
		winRow := RenderWindowScanlineUsingFetcher(mem, winMapBase, tileData8000, wxStart, byte(p.winLine))
		start := wxStart
		if start < 0 {
			start = 0
		}
		for x := start; x < 160; x++ {
			bgRow[x] = winRow[x]
		}
		p.winLine++
	}

	bgPal := decodePaletteShades(p.bgp, p.shades)
	obp0 := decodePaletteShades(p.obp0, p.shades)
	obp1 := decodePaletteShades(p.obp1, p.shades)

	var composed [160]uint32
	if p.lcdc&0x02 != 0 {
		sprites := scanOAM(&p.oam, ly, p.lcdc&0x04 != 0)
		composed = compositeSprites(bgRow, sprites, mem, ly, p.lcdc&0x04 != 0, obp0, obp1, bgPal)
	} else {
		for x := 0; x < 160; x++ {
			composed[x] = bgPal[bgRow[x]]
		}
	}

	copy(p.frame[ly*160:(ly+1)*160], composed[:])
}

// Expose palettes and scroll for renderer convenience (used by tests and the UI).
func (p *PPU) BGP() byte  { return p.bgp }
func (p *PPU) OBP0() byte { return p.obp0 }
func (p *PPU) OBP1() byte { return p.obp1 }
func (p *PPU) LCDC() byte { return p.lcdc }
func (p *PPU) SCY() byte  { return p.scy }
func (p *PPU) SCX() byte  { return p.scx }
func (p *PPU) WY() byte   { return p.wy }
func (p *PPU) WX() byte   { return p.wx }
func (p *PPU) LY() byte   { return p.ly }

// Frame returns the last fully composited frame buffer (row-major 160x144).
func (p *PPU) Frame() [160 * 144]uint32 { return p.frame }
