// Package joypad implements the JOYP (0xFF00) active-low button matrix,
// extracted from the bus's inline joypad handling and given an explicit
// Pressed/Released collaborator API (spec.md §4.6/§6; the teacher only
// exposed a single SetJoypadState bitmask).
package joypad

// IFJoypad is the interrupt bit the joypad raises in IF (bit 4).
const IFJoypad = 1 << 4

// Key identifies one of the eight DMG buttons.
type Key int

const (
	Right Key = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

var keyMask = [8]byte{
	Right:  1 << 0,
	Left:   1 << 1,
	Up:     1 << 2,
	Down:   1 << 3,
	A:      1 << 4,
	B:      1 << 5,
	Select: 1 << 6,
	Start:  1 << 7,
}

// Joypad holds the select lines (P14/P15) written via JOYP and the current
// pressed-button state.
type Joypad struct {
	selectLines byte // bits 5-4 as last written to JOYP
	pressed     byte // bitmask, see keyMask
	lowerLatch  byte // last computed active-low lower nibble, for edge detection
	pending     byte // IF bits latched by Pressed/Released/WriteJOYP since the last Step
}

func New() *Joypad { return &Joypad{} }

// Pressed marks a button as held down, raising IF bit 4 on a newly-selected
// row's matching line transitioning high-to-low.
func (j *Joypad) Pressed(k Key) (ifBits byte) {
	j.pressed |= keyMask[k]
	return j.recompute()
}

// Released marks a button as released.
func (j *Joypad) Released(k Key) (ifBits byte) {
	j.pressed &^= keyMask[k]
	return j.recompute()
}

// ReadJOYP returns the value CPU reads should see at 0xFF00.
func (j *Joypad) ReadJOYP() byte {
	res := byte(0xC0 | (j.selectLines & 0x30) | 0x0F)
	if j.selectLines&0x10 == 0 { // P14 low selects D-Pad
		if j.pressed&keyMask[Right] != 0 {
			res &^= 0x01
		}
		if j.pressed&keyMask[Left] != 0 {
			res &^= 0x02
		}
		if j.pressed&keyMask[Up] != 0 {
			res &^= 0x04
		}
		if j.pressed&keyMask[Down] != 0 {
			res &^= 0x08
		}
	}
	if j.selectLines&0x20 == 0 { // P15 low selects Buttons
		if j.pressed&keyMask[A] != 0 {
			res &^= 0x01
		}
		if j.pressed&keyMask[B] != 0 {
			res &^= 0x02
		}
		if j.pressed&keyMask[Select] != 0 {
			res &^= 0x04
		}
		if j.pressed&keyMask[Start] != 0 {
			res &^= 0x08
		}
	}
	return res
}

// WriteJOYP sets the select lines (bits 5-4); may itself raise IF bit 4 if a
// newly-selected row already has a button held down.
func (j *Joypad) WriteJOYP(v byte) (ifBits byte) {
	j.selectLines = v & 0x30
	return j.recompute()
}

func (j *Joypad) recompute() (ifBits byte) {
	newLower := byte(0x0F)
	if j.selectLines&0x10 == 0 {
		if j.pressed&keyMask[Right] != 0 {
			newLower &^= 0x01
		}
		if j.pressed&keyMask[Left] != 0 {
			newLower &^= 0x02
		}
		if j.pressed&keyMask[Up] != 0 {
			newLower &^= 0x04
		}
		if j.pressed&keyMask[Down] != 0 {
			newLower &^= 0x08
		}
	}
	if j.selectLines&0x20 == 0 {
		if j.pressed&keyMask[A] != 0 {
			newLower &^= 0x01
		}
		if j.pressed&keyMask[B] != 0 {
			newLower &^= 0x02
		}
		if j.pressed&keyMask[Select] != 0 {
			newLower &^= 0x04
		}
		if j.pressed&keyMask[Start] != 0 {
			newLower &^= 0x08
		}
	}
	falling := j.lowerLatch &^ newLower
	j.lowerLatch = newLower
	if falling != 0 {
		j.pending |= IFJoypad
		return IFJoypad
	}
	return 0
}

// Step drains and returns the IF bits latched by Pressed/Released/WriteJOYP
// since the last call (spec.md §4.6/§9: the MMU's step(ticks) calls
// joypad.step() once per Step and ORs the result into IF, rather than relying
// on callers outside the bus to propagate a return value themselves).
func (j *Joypad) Step() (ifBits byte) {
	ifBits = j.pending
	j.pending = 0
	return ifBits
}
