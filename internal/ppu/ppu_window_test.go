package ppu

import "testing"

// advanceLines ticks the PPU forward by n full visible lines (456 dots each).
func advanceLines(p *PPU, n int) { p.Tick(456 * n) }

func TestWindowActivationAndCounter(t *testing.T) {
	p := New(nil)
	// Enable LCD, BG and Window
	p.CPUWrite(0xFF40, 0x80|0x01|0x20)
	// Set WY and WX
	p.CPUWrite(0xFF4A, 10) // WY = 10
	p.CPUWrite(0xFF4B, 7)  // WX = 7 -> winXStart=0

	// Advance to line 10 (WY), then render it (mode 3->0 transition).
	advanceLines(p, 10)
	p.Tick(80 + 172)
	if p.winLine != 1 {
		t.Fatalf("expected winLine=1 after rendering the first window line, got %d", p.winLine)
	}
	// Finish line 10, then render line 11: winLine should advance to 2.
	p.Tick(456 - (80 + 172))
	p.Tick(80 + 172)
	if p.winLine != 2 {
		t.Fatalf("expected winLine=2 after rendering a second window line, got %d", p.winLine)
	}
}

func TestWindowGatedByBGMasterEnable(t *testing.T) {
	p := New(nil)
	// Enable LCD and Window, but leave LCDC.0 (BG/window master) clear.
	p.CPUWrite(0xFF40, 0x80|0x20)
	p.CPUWrite(0xFF4A, 0) // WY=0
	p.CPUWrite(0xFF4B, 7) // WX=7 -> winXStart=0

	advanceLines(p, 1)
	p.Tick(80 + 172)
	if p.winLine != 0 {
		t.Fatalf("expected winLine=0 with LCDC.0 clear, got %d", p.winLine)
	}
}

func TestWindowNotVisibleWhenWXTooLarge(t *testing.T) {
	p := New(nil)
	// Enable LCD, BG and Window
	p.CPUWrite(0xFF40, 0x80|0x01|0x20)
	// Set WY=5 and WX>166 so window should not be visible
	p.CPUWrite(0xFF4A, 5)
	p.CPUWrite(0xFF4B, 200)
	// Advance well past WY and render several lines.
	advanceLines(p, 8)
	for i := 0; i < 5; i++ {
		p.Tick(456)
	}
	if p.winLine != 0 {
		t.Fatalf("expected winLine=0 when WX>166 keeps the window off, got %d", p.winLine)
	}
}
