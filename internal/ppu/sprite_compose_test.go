package ppu

import "testing"

func TestCompositeSpritesPriorityAndTransparency(t *testing.T) {
	mem := mockVRAM{}
	// Sprite tile with a single opaque leftmost pixel at bit7: lo=0x80, hi=0x00 -> ci=1.
	base := uint16(0x8000)
	mem[base+0] = 0x80
	mem[base+1] = 0x00
	obp0 := decodePaletteShades(0xE4, dmgShades) // 11100100: identity mapping
	obp1 := obp0
	bgPal := obp0

	sprites := []Sprite{{X: 10, Y: 5, Tile: 0}}
	var bgRow [160]byte
	out := compositeSprites(bgRow, sprites, mem, 5, false, obp0, obp1, bgPal)
	if out[10] == bgPal[0] {
		t.Fatalf("expected sprite pixel to paint over BG at x=10")
	}

	// With BGPriority set and a non-zero BG pixel underneath, the sprite must stay hidden.
	sprites[0].BGPriority = true
	bgRow[10] = 1
	out = compositeSprites(bgRow, sprites, mem, 5, false, obp0, obp1, bgPal)
	if out[10] != bgPal[1] {
		t.Fatalf("expected sprite pixel hidden behind non-zero BG color")
	}
}

func TestCompositeSpritesXPriorityOrdering(t *testing.T) {
	mem := mockVRAM{}
	// Fully opaque row (lo=0xFF, hi=0x00) for tile 0.
	base := uint16(0x8000)
	mem[base+0] = 0xFF
	mem[base+1] = 0x00
	obp0 := decodePaletteShades(0xE4, dmgShades)
	obp1 := decodePaletteShades(0x1B, dmgShades) // reversed mapping, to distinguish palette choice
	bgPal := obp0

	// Two sprites overlapping at x=20: compositeSprites gives the lower-X
	// sprite priority and paints it last, so it ends up on top.
	s0 := Sprite{X: 19, Y: 0, Tile: 0, Palette: 0}
	s1 := Sprite{X: 20, Y: 0, Tile: 0, Palette: 1}
	var bgRow [160]byte
	out := compositeSprites(bgRow, []Sprite{s0, s1}, mem, 0, false, obp0, obp1, bgPal)
	// s0 (OBP0, lower X) painted last (on top) wins at x=20 over s1 (OBP1).
	if out[20] != obp0[1] {
		t.Fatalf("expected lower-X sprite to win at overlap, got %#x want %#x", out[20], obp0[1])
	}
}
