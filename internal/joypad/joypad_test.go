package joypad

import "testing"

func TestJoypad_NoButtonsPressedReadsAllOnes(t *testing.T) {
	j := New()
	j.WriteJOYP(0x30) // neither row selected
	if v := j.ReadJOYP(); v&0x0F != 0x0F {
		t.Fatalf("JOYP with no row selected got %#02x want low nibble all 1s", v)
	}
}

func TestJoypad_DPadRowReflectsPressed(t *testing.T) {
	j := New()
	j.Pressed(Right)
	j.Pressed(Down)
	j.WriteJOYP(0x20) // P14 low selects D-Pad, P15 high deselects buttons
	v := j.ReadJOYP()
	if v&0x01 != 0 {
		t.Fatalf("Right should read active-low (bit0=0), got %#02x", v)
	}
	if v&0x08 != 0 {
		t.Fatalf("Down should read active-low (bit3=0), got %#02x", v)
	}
	if v&0x02 == 0 || v&0x04 == 0 {
		t.Fatalf("Left/Up should read 1 (not pressed), got %#02x", v)
	}
}

func TestJoypad_ButtonRowIndependentOfDPad(t *testing.T) {
	j := New()
	j.Pressed(A)
	j.WriteJOYP(0x10) // P15 low selects Buttons
	v := j.ReadJOYP()
	if v&0x01 != 0 {
		t.Fatalf("A should read active-low (bit0=0), got %#02x", v)
	}
}

func TestJoypad_PressRaisesIRQOnFallingEdge(t *testing.T) {
	j := New()
	j.WriteJOYP(0x20) // D-Pad row selected, nothing pressed yet
	if bits := j.Pressed(Right); bits&IFJoypad == 0 {
		t.Fatalf("pressing a button in the selected row should raise IF bit 4")
	}
}

func TestJoypad_PressInUnselectedRowDoesNotRaiseIRQ(t *testing.T) {
	j := New()
	j.WriteJOYP(0x30) // neither row selected
	if bits := j.Pressed(A); bits&IFJoypad != 0 {
		t.Fatalf("pressing a button in an unselected row should not raise IF bit 4, got bits=%#02x", bits)
	}
}

func TestJoypad_ReleaseClearsBit(t *testing.T) {
	j := New()
	j.WriteJOYP(0x20)
	j.Pressed(Up)
	j.Released(Up)
	if v := j.ReadJOYP(); v&0x04 == 0 {
		t.Fatalf("Up should read 1 after release, got %#02x", v)
	}
}
