package ppu

import "sort"

// Sprite is one decoded OAM entry's fields, grounded on original_source's
// ppu::sprite::Sprite{x,y,tile,bg_priority,y_flip,x_flip,palette} layout.
type Sprite struct {
	X, Y       int
	Tile       byte
	Palette    byte // 0 -> OBP0, 1 -> OBP1
	XFlip      bool
	YFlip      bool
	BGPriority bool // true: sprite hidden behind BG colors 1-3
	oamIndex   int  // original OAM slot, for same-X priority tie-break
}

// scanOAM collects up to 10 sprites intersecting scanline ly (0-143), in OAM
// order, honoring the hardware's 10-sprites-per-line cap (grounded on
// other_examples/660fb34f's OAM-scan-then-cap shape, generalized to DMG's
// OAM layout and 8x8/8x16 sizing).
func scanOAM(oam *[0xA0]byte, ly int, tall bool) []Sprite {
	height := 8
	if tall {
		height = 16
	}
	var out []Sprite
	for i := 0; i < 40 && len(out) < 10; i++ {
		base := i * 4
		y := int(oam[base]) - 16
		x := int(oam[base+1]) - 8
		if ly < y || ly >= y+height {
			continue
		}
		tile := oam[base+2]
		if tall {
			tile &^= 0x01
		}
		attr := oam[base+3]
		out = append(out, Sprite{
			X: x, Y: y, Tile: tile,
			Palette:    (attr >> 4) & 1,
			XFlip:      attr&0x20 != 0,
			YFlip:      attr&0x40 != 0,
			BGPriority: attr&0x80 != 0,
			oamIndex:   i,
		})
	}
	return out
}

// spriteRowColorIndices returns the 8 color indices (0..3, 0 == transparent)
// for one row of a sprite tile, honoring x-flip and y-flip (y-flip is the
// REDESIGN FLAG fix vs. the teacher, which has no sprite renderer at all).
func spriteRowColorIndices(mem VRAMReader, s Sprite, ly int, tall bool) [8]byte {
	height := 8
	if tall {
		height = 16
	}
	row := ly - s.Y
	if s.YFlip {
		row = height - 1 - row
	}
	tile := uint16(s.Tile)
	if tall {
		tile = uint16(s.Tile) + uint16(row/8)
		row %= 8
	}
	base := 0x8000 + tile*16 + uint16(row)*2
	lo := mem.Read(base)
	hi := mem.Read(base + 1)

	var out [8]byte
	for px := 0; px < 8; px++ {
		col := px
		if s.XFlip {
			col = 7 - px
		}
		bit := 7 - byte(col)
		out[px] = ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
	}
	return out
}

// compositeSprites overlays sprites onto a finished BG+window color-index
// row. Priority: lower-X wins (then lower OAM index); a sprite's
// BGPriority hides it behind non-zero BG colors; color index 0 is always
// transparent.
func compositeSprites(bgRow [160]byte, sprites []Sprite, mem VRAMReader, ly int, tall bool, obp0, obp1 [4]uint32, bgPal [4]uint32) [160]uint32 {
	var out [160]uint32
	for x := 0; x < 160; x++ {
		out[x] = bgPal[bgRow[x]]
	}

	// Order by priority: lower X first, then lower OAM index.
	ordered := make([]Sprite, len(sprites))
	copy(ordered, sprites)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].X != ordered[j].X {
			return ordered[i].X < ordered[j].X
		}
		return ordered[i].oamIndex < ordered[j].oamIndex
	})

	// Paint back-to-front so earlier (higher-priority) sprites end up on top.
	for i := len(ordered) - 1; i >= 0; i-- {
		s := ordered[i]
		row := spriteRowColorIndices(mem, s, ly, tall)
		for px := 0; px < 8; px++ {
			sx := s.X + px
			if sx < 0 || sx >= 160 {
				continue
			}
			ci := row[px]
			if ci == 0 {
				continue
			}
			if s.BGPriority && bgRow[sx] != 0 {
				continue
			}
			pal := obp0
			if s.Palette == 1 {
				pal = obp1
			}
			out[sx] = pal[ci]
		}
	}
	return out
}
