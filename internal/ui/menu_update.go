package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (a *App) updateMainMenu() {
	max := 3 // Switch ROM, Settings, Keybindings, Close
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < max {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			a.romList = a.findROMs()
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 1:
			a.menuMode = "settings"
			a.menuIdx = 0
			a.editingROMDir = false
		case 2:
			a.menuMode = "keys"
			a.keysOff = 0
		case 3:
			a.showMenu = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) updateRomMenu() {
	n := len(a.romList)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.menuMode = "main"
		}
		return
	}
	baseY := 40
	maxRows := (144 - baseY) / 14
	if maxRows < 1 {
		maxRows = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	if a.romSel < a.romOff {
		a.romOff = a.romSel
	}
	if a.romSel >= a.romOff+maxRows {
		a.romOff = a.romSel - maxRows + 1
	}
	if a.romOff < 0 {
		a.romOff = 0
	}
	if a.romOff > n-1 {
		a.romOff = n - 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.m.LoadROMFromFile(path); err == nil {
			a.toast("Loaded ROM: " + filepath.Base(path))
			if strings.HasSuffix(strings.ToLower(path), ".gb") {
				sav := strings.TrimSuffix(path, ".gb") + ".sav"
				if data, rerr := os.ReadFile(sav); rerr == nil {
					_ = a.m.LoadBattery(data)
				}
			}
			title := a.cfg.Title
			if t := a.m.ROMTitle(); t != "" {
				title = a.cfg.Title + " - [" + t + "]"
			}
			ebiten.SetWindowTitle(title)
			if pid, ok := a.cfg.PerROMPalette[path]; ok {
				a.m.SetCompatPalette(pid)
			}
		} else {
			a.toast("ROM load failed: " + err.Error())
		}
		a.menuMode = "main"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

func (a *App) updateSettingsMenu() {
	// Items order: 0 Scale, 1 ROMs Dir, 2 Shell Overlay, 3 Palette
	const items = 4
	if a.editingROMDir {
		for _, r := range ebiten.InputChars() {
			if r != '\n' && r != '\r' {
				a.romDirInput += string(r)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(a.romDirInput) > 0 {
			a.romDirInput = a.romDirInput[:len(a.romDirInput)-1]
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if val := strings.TrimSpace(a.romDirInput); val != "" {
				a.cfg.ROMsDir = val
				a.saveSettings()
				a.romList = a.findROMs()
				a.toast("ROMs dir set")
			}
			a.editingROMDir = false
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.editingROMDir = false
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < items-1 {
		a.menuIdx++
	}

	switch a.menuIdx {
	case 0: // Scale
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && a.cfg.Scale > 1 {
			a.cfg.Scale--
			ebiten.SetWindowSize(160*a.cfg.Scale, 144*a.cfg.Scale)
			a.saveSettings()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && a.cfg.Scale < 10 {
			a.cfg.Scale++
			ebiten.SetWindowSize(160*a.cfg.Scale, 144*a.cfg.Scale)
			a.saveSettings()
		}
	case 1: // ROMs Dir edit mode
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.editingROMDir = true
			a.romDirInput = a.cfg.ROMsDir
		}
	case 2: // Shell Overlay
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.toggleOverlay()
		}
	case 3: // Palette
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
			a.cyclePalette(-1)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.cyclePalette(1)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

func (a *App) cyclePalette(delta int) {
	if a.m == nil {
		return
	}
	a.m.CycleCompatPalette(delta)
	pid := a.m.CurrentCompatPalette()
	a.toast(fmt.Sprintf("Palette: %s", a.m.CompatPaletteName(pid)))
	if a.m.ROMPath() != "" {
		a.cfg.PerROMPalette[a.m.ROMPath()] = pid
		a.saveSettings()
	}
}

func (a *App) toggleOverlay() {
	a.cfg.ShellOverlay = !a.cfg.ShellOverlay
	a.refreshOverlay()
	a.saveSettings()
}
