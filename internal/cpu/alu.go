package cpu

// ALU primitives. Each returns the result byte (where one exists) and the
// Flags the operation produces; callers decide what to do with either.
// Grounded on the teacher's add8/adc8/sub8/... family, kept as free
// functions rather than CPU methods so decode.go's table-driven dispatch
// can call them uniformly regardless of addressing mode.

func add8(a, b byte) (byte, Flags) {
	r := uint16(a) + uint16(b)
	res := byte(r)
	return res, Flags{
		Z: res == 0,
		H: (a&0x0F)+(b&0x0F) > 0x0F,
		C: r > 0xFF,
	}
}

func adc8(a, b byte, carryIn bool) (byte, Flags) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := uint16(a) + uint16(b) + uint16(ci)
	res := byte(r)
	return res, Flags{
		Z: res == 0,
		H: (a&0x0F)+(b&0x0F)+ci > 0x0F,
		C: r > 0xFF,
	}
}

func sub8(a, b byte) (byte, Flags) {
	r := int16(a) - int16(b)
	res := byte(r)
	return res, Flags{
		Z: res == 0,
		N: true,
		H: (a & 0x0F) < (b & 0x0F),
		C: int16(a) < int16(b),
	}
}

func sbc8(a, b byte, carryIn bool) (byte, Flags) {
	ci := byte(0)
	if carryIn {
		ci = 1
	}
	r := int16(a) - int16(b) - int16(ci)
	res := byte(r)
	return res, Flags{
		Z: res == 0,
		N: true,
		H: (a & 0x0F) < (b&0x0F)+ci,
		C: int16(a) < int16(b)+int16(ci),
	}
}

func and8(a, b byte) (byte, Flags) {
	res := a & b
	return res, Flags{Z: res == 0, H: true}
}

func xor8(a, b byte) (byte, Flags) {
	res := a ^ b
	return res, Flags{Z: res == 0}
}

func or8(a, b byte) (byte, Flags) {
	res := a | b
	return res, Flags{Z: res == 0}
}

func cp8(a, b byte) Flags {
	_, f := sub8(a, b)
	return f
}

// inc8/dec8 preserve the incoming carry flag (spec.md §4.1).
func inc8(v byte, carryIn bool) (byte, Flags) {
	old := v
	v++
	return v, Flags{Z: v == 0, H: old&0x0F == 0x0F, C: carryIn}
}

func dec8(v byte, carryIn bool) (byte, Flags) {
	old := v
	v--
	return v, Flags{Z: v == 0, N: true, H: old&0x0F == 0x00, C: carryIn}
}

// addHL16 implements ADD HL,rr: H from bit-11 carry, C from bit-15 carry, N
// cleared, Z preserved by the caller.
func addHL16(hl, rr uint16) (uint16, Flags) {
	r := uint32(hl) + uint32(rr)
	return uint16(r), Flags{
		H: (hl&0x0FFF)+(rr&0x0FFF) > 0x0FFF,
		C: r > 0xFFFF,
	}
}

// addSPSigned implements both ADD SP,i8 and the high half of LD HL,SP+i8:
// H/C are computed as an unsigned add on the low byte of SP, N and Z cleared.
func addSPSigned(sp uint16, off int8) (uint16, Flags) {
	res := uint16(int32(int16(sp)) + int32(off))
	low := byte(sp & 0xFF)
	_, f := add8(low, byte(off))
	return res, Flags{H: f.H, C: f.C}
}

// daa implements the post-addition/post-subtraction BCD adjust per spec.md §4.1.
func daa(a byte, prior Flags) (byte, Flags) {
	cf := prior.C
	if !prior.N {
		if cf || a > 0x99 {
			a += 0x60
			cf = true
		}
		if prior.H || (a&0x0F) > 9 {
			a += 0x06
		}
	} else {
		if cf {
			a -= 0x60
		}
		if prior.H {
			a -= 0x06
		}
	}
	return a, Flags{Z: a == 0, N: prior.N, C: cf}
}

// Rotates/shifts. Non-accumulator variants set Z from the result; the
// CPU core clears Z for RLCA/RRCA/RLA/RRA per spec.md §4.1.
func rlc(v byte) (byte, Flags) {
	carry := v>>7&1 == 1
	v = v<<1 | v>>7
	return v, Flags{Z: v == 0, C: carry}
}

func rrc(v byte) (byte, Flags) {
	carry := v&1 == 1
	v = v>>1 | v<<7
	return v, Flags{Z: v == 0, C: carry}
}

func rl(v byte, carryIn bool) (byte, Flags) {
	carry := v>>7&1 == 1
	var ci byte
	if carryIn {
		ci = 1
	}
	v = v<<1 | ci
	return v, Flags{Z: v == 0, C: carry}
}

func rr(v byte, carryIn bool) (byte, Flags) {
	carry := v&1 == 1
	var ci byte
	if carryIn {
		ci = 0x80
	}
	v = v>>1 | ci
	return v, Flags{Z: v == 0, C: carry}
}

func sla(v byte) (byte, Flags) {
	carry := v>>7&1 == 1
	v <<= 1
	return v, Flags{Z: v == 0, C: carry}
}

func sra(v byte) (byte, Flags) {
	carry := v&1 == 1
	v = v>>1 | v&0x80
	return v, Flags{Z: v == 0, C: carry}
}

func srl(v byte) (byte, Flags) {
	carry := v&1 == 1
	v >>= 1
	return v, Flags{Z: v == 0, C: carry}
}

func swap(v byte) (byte, Flags) {
	v = v<<4 | v>>4
	return v, Flags{Z: v == 0}
}

// bitTest implements BIT n,x: Z reflects the tested bit, H always set, C preserved by caller.
func bitTest(v byte, n byte) Flags {
	return Flags{Z: v>>n&1 == 0, H: true}
}
