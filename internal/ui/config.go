package ui

// Config contains window/input/overlay settings persisted across runs.
type Config struct {
	Title   string // window title
	Scale   int    // integer upscaling factor
	ROMsDir string // directory to browse for ROMs

	// Shell overlay: an alpha-blended image drawn over the game view,
	// decoded with image/png (PNG only) and scaled via golang.org/x/image/draw.
	ShellOverlay bool
	ShellImage   string

	// Per-ROM palette preference (DMG title-based tint, see internal/emu).
	PerROMPalette map[string]int
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbemu"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.PerROMPalette == nil {
		c.PerROMPalette = make(map[string]int)
	}
	if c.ShellImage == "" {
		c.ShellImage = "assets/skins/overlay.png"
	}
}
