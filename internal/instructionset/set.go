// Package instructionset builds the RV32 extended instruction table.
package instructionset

import (
	"sort"

	"github.com/retroenv/rvexpand/internal/expand"
)

// Set is the immutable table of extended instruction definitions, indexed
// by mnemonic. It is built once at startup and read-only afterwards, so
// concurrent lookups and expansions are safe.
type Set struct {
	instructions map[string][]*expand.ExtendedInstruction
}

// New builds the extended instruction table. Mnemonics like jal appear both
// as a basic instruction and as a pseudo form with fewer operands, so
// lookups match on mnemonic and operand count.
func New() *Set {
	s := &Set{
		instructions: map[string][]*expand.ExtendedInstruction{},
	}

	for _, ins := range []*expand.ExtendedInstruction{
		expand.New("nop",
			"addi x0, x0, 0",
			"NO OPeration"),
		expand.New("mv t1, t2",
			"addi RG1, RG2, 0",
			"MoVe: set t1 to contents of t2"),
		expand.New("not t1, t2",
			"xori RG1, RG2, -1",
			"Bitwise NOT (bit inversion)"),
		expand.New("neg t1, t2",
			"sub RG1, x0, RG2",
			"NEGate: set t1 to negation of t2"),
		expand.New("seqz t1, t2",
			"sltiu RG1, RG2, 1",
			"Set EQual to Zero: if t2 == 0 then set t1 to 1 else 0"),
		expand.New("snez t1, t2",
			"sltu RG1, x0, RG2",
			"Set Not Equal to Zero: if t2 != 0 then set t1 to 1 else 0"),
		expand.New("sltz t1, t2",
			"slt RG1, RG2, x0",
			"Set Less Than Zero: if t2 < 0 then set t1 to 1 else 0"),
		expand.New("sgtz t1, t2",
			"slt RG1, x0, RG2",
			"Set Greater Than Zero: if t2 > 0 then set t1 to 1 else 0"),
		expand.New("li t1, -100",
			"lui RG1, VH2\naddi RG1, RG1, VL2",
			"Load Immediate: set t1 to 32-bit immediate"),
		expand.NewWithCompact("la t1, label",
			"auipc RG1, PCH2\naddi RG1, RG1, PCL2",
			"addi RG1, x0, LL2",
			"Load Address: set t1 to label's address"),
		expand.NewWithCompact("lw t1, label",
			"auipc RG1, PCH2\nlw RG1, PCL2(RG1)",
			"lw RG1, LL2(x0)",
			"Load Word: set t1 to contents of memory word at label's address"),
		expand.NewWithCompact("sw t1, label, t2",
			"auipc RG3, PCH2\nsw RG1, PCL2(RG3)",
			"sw RG1, LL2(x0)",
			"Store Word: store t1 at label's address using t2 as a temporary"),
		expand.New("beqz t1, label",
			"beq RG1, x0, LAB",
			"Branch if EQual to Zero"),
		expand.New("bnez t1, label",
			"bne RG1, x0, LAB",
			"Branch if Not Equal to Zero"),
		expand.New("blez t1, label",
			"bge x0, RG1, LAB",
			"Branch if Less than or Equal to Zero"),
		expand.New("bgez t1, label",
			"bge RG1, x0, LAB",
			"Branch if Greater than or Equal to Zero"),
		expand.New("bltz t1, label",
			"blt RG1, x0, LAB",
			"Branch if Less Than Zero"),
		expand.New("bgtz t1, label",
			"blt x0, RG1, LAB",
			"Branch if Greater Than Zero"),
		expand.New("bgt t1, t2, label",
			"blt RG2, RG1, LAB",
			"Branch if Greater Than"),
		expand.New("ble t1, t2, label",
			"bge RG2, RG1, LAB",
			"Branch if Less than or Equal"),
		expand.New("bgtu t1, t2, label",
			"bltu RG2, RG1, LAB",
			"Branch if Greater Than, Unsigned"),
		expand.New("bleu t1, t2, label",
			"bgeu RG2, RG1, LAB",
			"Branch if Less than or Equal, Unsigned"),
		expand.New("j label",
			"jal x0, LAB",
			"Jump to statement at label"),
		expand.New("jal label",
			"jal x1, LAB",
			"Jump And Link: jump to label and store return address in x1"),
		expand.New("jr t1",
			"jalr x0, 0(RG1)",
			"Jump Register: jump to address in t1"),
		expand.New("ret",
			"jalr x0, 0(x1)",
			"RETurn: jump to address in x1"),
		expand.New("call label",
			"auipc x1, PCH1\njalr x1, PCL1(x1)",
			"CALL a far-away subroutine"),
		expand.New("tail label",
			"auipc x6, PCH1\njalr x0, PCL1(x6)",
			"TAIL call a far-away subroutine"),
	} {
		s.instructions[ins.Mnemonic()] = append(s.instructions[ins.Mnemonic()], ins)
	}

	return s
}

// Get returns the extended instruction definition matching the mnemonic and
// operand count of a statement.
func (s *Set) Get(mnemonic string, operands int) (*expand.ExtendedInstruction, bool) {
	for _, ins := range s.instructions[mnemonic] {
		if ins.OperandCount() == operands {
			return ins, true
		}
	}
	return nil, false
}

// Mnemonics returns all extended instruction mnemonics in sorted order.
func (s *Set) Mnemonics() []string {
	mnemonics := make([]string, 0, len(s.instructions))
	for mnemonic := range s.instructions {
		mnemonics = append(mnemonics, mnemonic)
	}
	sort.Strings(mnemonics)
	return mnemonics
}

// Len returns the number of extended instruction definitions.
func (s *Set) Len() int {
	count := 0
	for _, list := range s.instructions {
		count += len(list)
	}
	return count
}
