package cpu

// Opcode decoder: two pure 256-entry lookup tables mapping a byte to a
// decoded operation descriptor. The tables are stateless and side-effect
// free (spec.md §4.2); cpu.go is their sole interpreter. Grounded on the
// array-indexed table shape of other_examples/14cd547d
// (ernesto27-ai-projects gameboy-emulator's opcodeTable), generalized to
// hold data descriptors instead of function pointers so the CPU core stays
// the only place that knows how to *perform* an opcode.

type mnemonic uint8

const (
	mnNOP mnemonic = iota
	mnLD8
	mnLD16
	mnLDHLSP // LD HL,SP+i8
	mnADDHL  // ADD HL,rr
	mnADDSPI8
	mnINC8
	mnDEC8
	mnINC16
	mnDEC16
	mnADD
	mnADC
	mnSUB
	mnSBC
	mnAND
	mnXOR
	mnOR
	mnCP
	mnDAA
	mnCPL
	mnCCF
	mnSCF
	mnRLCA
	mnRRCA
	mnRLA
	mnRRA
	mnPUSH
	mnPOP
	mnJP
	mnJR
	mnCALL
	mnRET
	mnRETI
	mnRST
	mnDI
	mnEI
	mnHALT
	mnSTOP
	mnRLC
	mnRRC
	mnRL
	mnRR
	mnSLA
	mnSRA
	mnSWAP
	mnSRL
	mnBIT
	mnRES
	mnSET
	mnCB // prefix trigger, never itself executed
	mnUnknown
)

// operand tags an addressing mode. Memory-form operands carry their own
// side effects (HL+/HL- auto-increment/decrement) so the CPU's generic
// get8/set8 helpers can stay mnemonic-agnostic.
type operand uint8

const (
	opNone operand = iota
	opA
	opB
	opC
	opD
	opE
	opH
	opL
	opMemHL
	opBC
	opDE
	opHL
	opSP
	opAF
	opMemBC
	opMemDE
	opMemHLInc
	opMemHLDec
	opImm8
	opImm16
	opImm8Signed
	opMemImm16
	opZeroPageImm8
	opZeroPageC
	opSPPlusImm8
	opCondNZ
	opCondZ
	opCondNC
	opCondC
	opCondAlways
)

// opInfo is the decoded operation descriptor spec.md §4.2 calls for.
type opInfo struct {
	mnemonic mnemonic
	op1      operand
	op2      operand
	cycles   int // ticks (already ×4), for non-branching or branch-not-taken
	branch   int // additional ticks when a conditional branch is taken
	n        byte // RST vector (as 0x00/0x08/.../0x38) or CB bit index
}

var baseTable [256]opInfo
var cbTable [256]opInfo

// reg8ByIndex is the Game Boy's standard 3-bit register encoding: B,C,D,E,H,L,(HL),A.
var reg8ByIndex = [8]operand{opB, opC, opD, opE, opH, opL, opMemHL, opA}

var rr16ByIndex = [4]operand{opBC, opDE, opHL, opSP}
var push16ByIndex = [4]operand{opBC, opDE, opHL, opAF}

func init() {
	for i := range baseTable {
		baseTable[i] = opInfo{mnemonic: mnUnknown}
	}
	for i := range cbTable {
		cbTable[i] = opInfo{mnemonic: mnUnknown}
	}
	buildBaseTable()
	buildCBTable()
}

func buildBaseTable() {
	t := &baseTable

	t[0x00] = opInfo{mnemonic: mnNOP, cycles: 4}
	t[0x10] = opInfo{mnemonic: mnSTOP, cycles: 4}
	t[0x76] = opInfo{mnemonic: mnHALT, cycles: 4}
	t[0xF3] = opInfo{mnemonic: mnDI, cycles: 4}
	t[0xFB] = opInfo{mnemonic: mnEI, cycles: 4}
	t[0xCB] = opInfo{mnemonic: mnCB, cycles: 4}

	// LD r,r' and LD (HL),r / LD r,(HL) — 0x40-0x7F except 0x76 (HALT).
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue
		}
		d := reg8ByIndex[(op>>3)&7]
		s := reg8ByIndex[op&7]
		cyc := 4
		if d == opMemHL || s == opMemHL {
			cyc = 8
		}
		t[op] = opInfo{mnemonic: mnLD8, op1: d, op2: s, cycles: cyc}
	}

	// LD r,d8 — 0x06,0x0E,0x16,0x1E,0x26,0x2E,0x36,0x3E.
	for i, op := range []int{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E} {
		d := reg8ByIndex[i]
		cyc := 8
		if d == opMemHL {
			cyc = 12
		}
		t[op] = opInfo{mnemonic: mnLD8, op1: d, op2: opImm8, cycles: cyc}
	}

	// 16-bit loads.
	for i, op := range []int{0x01, 0x11, 0x21, 0x31} {
		t[op] = opInfo{mnemonic: mnLD16, op1: rr16ByIndex[i], op2: opImm16, cycles: 12}
	}
	t[0x08] = opInfo{mnemonic: mnLD16, op1: opMemImm16, op2: opSP, cycles: 20}
	t[0xF9] = opInfo{mnemonic: mnLD16, op1: opSP, op2: opHL, cycles: 8}
	t[0xF8] = opInfo{mnemonic: mnLDHLSP, op1: opHL, op2: opSPPlusImm8, cycles: 12}

	// LD (BC)/(DE),A and LD A,(BC)/(DE); LDI/LDD.
	t[0x02] = opInfo{mnemonic: mnLD8, op1: opMemBC, op2: opA, cycles: 8}
	t[0x12] = opInfo{mnemonic: mnLD8, op1: opMemDE, op2: opA, cycles: 8}
	t[0x0A] = opInfo{mnemonic: mnLD8, op1: opA, op2: opMemBC, cycles: 8}
	t[0x1A] = opInfo{mnemonic: mnLD8, op1: opA, op2: opMemDE, cycles: 8}
	t[0x22] = opInfo{mnemonic: mnLD8, op1: opMemHLInc, op2: opA, cycles: 8}
	t[0x2A] = opInfo{mnemonic: mnLD8, op1: opA, op2: opMemHLInc, cycles: 8}
	t[0x32] = opInfo{mnemonic: mnLD8, op1: opMemHLDec, op2: opA, cycles: 8}
	t[0x3A] = opInfo{mnemonic: mnLD8, op1: opA, op2: opMemHLDec, cycles: 8}

	// LD (a16),A / LD A,(a16); LDH variants.
	t[0xEA] = opInfo{mnemonic: mnLD8, op1: opMemImm16, op2: opA, cycles: 16}
	t[0xFA] = opInfo{mnemonic: mnLD8, op1: opA, op2: opMemImm16, cycles: 16}
	t[0xE0] = opInfo{mnemonic: mnLD8, op1: opZeroPageImm8, op2: opA, cycles: 12}
	t[0xF0] = opInfo{mnemonic: mnLD8, op1: opA, op2: opZeroPageImm8, cycles: 12}
	t[0xE2] = opInfo{mnemonic: mnLD8, op1: opZeroPageC, op2: opA, cycles: 8}
	t[0xF2] = opInfo{mnemonic: mnLD8, op1: opA, op2: opZeroPageC, cycles: 8}

	// INC/DEC 8-bit (includes (HL)) and 16-bit.
	for i, op := range []int{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C} {
		d := reg8ByIndex[i]
		cyc := 4
		if d == opMemHL {
			cyc = 12
		}
		t[op] = opInfo{mnemonic: mnINC8, op1: d, cycles: cyc}
	}
	for i, op := range []int{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D} {
		d := reg8ByIndex[i]
		cyc := 4
		if d == opMemHL {
			cyc = 12
		}
		t[op] = opInfo{mnemonic: mnDEC8, op1: d, cycles: cyc}
	}
	for i, op := range []int{0x03, 0x13, 0x23, 0x33} {
		t[op] = opInfo{mnemonic: mnINC16, op1: rr16ByIndex[i], cycles: 8}
	}
	for i, op := range []int{0x0B, 0x1B, 0x2B, 0x3B} {
		t[op] = opInfo{mnemonic: mnDEC16, op1: rr16ByIndex[i], cycles: 8}
	}

	// ADD HL,rr and ADD SP,i8.
	for i, op := range []int{0x09, 0x19, 0x29, 0x39} {
		t[op] = opInfo{mnemonic: mnADDHL, op1: opHL, op2: rr16ByIndex[i], cycles: 8}
	}
	t[0xE8] = opInfo{mnemonic: mnADDSPI8, op1: opSP, op2: opImm8Signed, cycles: 16}

	// ALU A,r / A,(HL) / A,d8 — groups ordered ADD,ADC,SUB,SBC,AND,XOR,OR,CP.
	aluMnemonics := [8]mnemonic{mnADD, mnADC, mnSUB, mnSBC, mnAND, mnXOR, mnOR, mnCP}
	for group := 0; group < 8; group++ {
		base := 0x80 + group*8
		for reg := 0; reg < 8; reg++ {
			op := base + reg
			src := reg8ByIndex[reg]
			cyc := 4
			if src == opMemHL {
				cyc = 8
			}
			t[op] = opInfo{mnemonic: aluMnemonics[group], op2: src, cycles: cyc}
		}
	}
	immOps := []int{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for i, op := range immOps {
		t[op] = opInfo{mnemonic: aluMnemonics[i], op2: opImm8, cycles: 8}
	}

	// Rotates/flag ops on A.
	t[0x07] = opInfo{mnemonic: mnRLCA, cycles: 4}
	t[0x0F] = opInfo{mnemonic: mnRRCA, cycles: 4}
	t[0x17] = opInfo{mnemonic: mnRLA, cycles: 4}
	t[0x1F] = opInfo{mnemonic: mnRRA, cycles: 4}
	t[0x27] = opInfo{mnemonic: mnDAA, cycles: 4}
	t[0x2F] = opInfo{mnemonic: mnCPL, cycles: 4}
	t[0x37] = opInfo{mnemonic: mnSCF, cycles: 4}
	t[0x3F] = opInfo{mnemonic: mnCCF, cycles: 4}

	// Jumps/calls/returns.
	t[0xC3] = opInfo{mnemonic: mnJP, op1: opCondAlways, op2: opImm16, cycles: 16}
	t[0xE9] = opInfo{mnemonic: mnJP, op1: opCondAlways, op2: opHL, cycles: 4}
	t[0x18] = opInfo{mnemonic: mnJR, op1: opCondAlways, cycles: 12}
	jrConds := map[int]operand{0x20: opCondNZ, 0x28: opCondZ, 0x30: opCondNC, 0x38: opCondC}
	for op, cc := range jrConds {
		t[op] = opInfo{mnemonic: mnJR, op1: cc, cycles: 8, branch: 4}
	}
	jpConds := map[int]operand{0xC2: opCondNZ, 0xCA: opCondZ, 0xD2: opCondNC, 0xDA: opCondC}
	for op, cc := range jpConds {
		t[op] = opInfo{mnemonic: mnJP, op1: cc, op2: opImm16, cycles: 12, branch: 4}
	}
	t[0xCD] = opInfo{mnemonic: mnCALL, op1: opCondAlways, op2: opImm16, cycles: 24}
	callConds := map[int]operand{0xC4: opCondNZ, 0xCC: opCondZ, 0xD4: opCondNC, 0xDC: opCondC}
	for op, cc := range callConds {
		t[op] = opInfo{mnemonic: mnCALL, op1: cc, op2: opImm16, cycles: 12, branch: 12}
	}
	t[0xC9] = opInfo{mnemonic: mnRET, op1: opCondAlways, cycles: 16}
	t[0xD9] = opInfo{mnemonic: mnRETI, cycles: 16}
	retConds := map[int]operand{0xC0: opCondNZ, 0xC8: opCondZ, 0xD0: opCondNC, 0xD8: opCondC}
	for op, cc := range retConds {
		t[op] = opInfo{mnemonic: mnRET, op1: cc, cycles: 8, branch: 12}
	}

	// RST.
	rstOps := []int{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF}
	for i, op := range rstOps {
		t[op] = opInfo{mnemonic: mnRST, n: byte(i * 8), cycles: 16}
	}

	// PUSH/POP.
	for i, op := range []int{0xC5, 0xD5, 0xE5, 0xF5} {
		t[op] = opInfo{mnemonic: mnPUSH, op1: push16ByIndex[i], cycles: 16}
	}
	for i, op := range []int{0xC1, 0xD1, 0xE1, 0xF1} {
		t[op] = opInfo{mnemonic: mnPOP, op1: push16ByIndex[i], cycles: 12}
	}
}

func buildCBTable() {
	t := &cbTable
	shiftMnemonics := [8]mnemonic{mnRLC, mnRRC, mnRL, mnRR, mnSLA, mnSRA, mnSWAP, mnSRL}
	for cb := 0; cb < 256; cb++ {
		reg := reg8ByIndex[cb&7]
		group := (cb >> 6) & 3
		y := byte((cb >> 3) & 7)
		cyc := 8
		if reg == opMemHL {
			if group == 1 { // BIT n,(HL) only reads (HL); no write-back.
				cyc = 12
			} else {
				cyc = 16
			}
		}
		switch group {
		case 0:
			t[cb] = opInfo{mnemonic: shiftMnemonics[y], op1: reg, cycles: cyc}
		case 1:
			t[cb] = opInfo{mnemonic: mnBIT, op1: reg, n: y, cycles: cyc}
		case 2:
			t[cb] = opInfo{mnemonic: mnRES, op1: reg, n: y, cycles: cyc}
		case 3:
			t[cb] = opInfo{mnemonic: mnSET, op1: reg, n: y, cycles: cyc}
		}
	}
}
