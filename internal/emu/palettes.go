package emu

// compatPalette is an RGB tint applied to the four DMG 2-bit shade indices,
// in place of plain greyscale — the same idea as the real Game Boy Color's
// monochrome-compatibility palettes, keyed by autoCompatPaletteFromHeader's
// title heuristic rather than a CGB hardware register.
type compatPalette struct {
	name   string
	shades [4]uint32
}

var compatPalettes = []compatPalette{
	{"Green", [4]uint32{0xFFE0F8D0, 0xFF88C070, 0xFF346856, 0xFF081820}},
	{"Sepia", [4]uint32{0xFFF3E6C6, 0xFFC9A876, 0xFF7B5A3C, 0xFF2E1D12}},
	{"Blue", [4]uint32{0xFFDCE8FF, 0xFF8CA8E0, 0xFF4860A0, 0xFF182048}},
	{"Red", [4]uint32{0xFFFCE0D8, 0xFFE08868, 0xFF983030, 0xFF400808}},
	{"Pastel", [4]uint32{0xFFFDE8F0, 0xFFC8A8D8, 0xFF8868A8, 0xFF403058}},
	{"Grey", [4]uint32{0xFFFFFFFF, 0xFFAAAAAA, 0xFF555555, 0xFF000000}},
}

func clampPaletteID(id int) int {
	n := len(compatPalettes)
	id %= n
	if id < 0 {
		id += n
	}
	return id
}
