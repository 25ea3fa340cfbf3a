// Package expand implements the extended (pseudo) instruction expansion engine.
//
// An extended instruction has no machine encoding of its own. Its definition
// carries one or two translation recipes, each a list of template lines in
// the marker micro-language documented on Substitute. At expansion time the
// engine substitutes operand values, split immediates and label names into
// the template lines, yielding the basic instruction statements that the
// encoder consumes verbatim.
package expand

// Low returns the low 12 bits of value, sign-extended to 32 bits.
// It is the immediate carried by the second instruction of a two-instruction
// load idiom, for example the addi following a lui.
func Low(value int32) int32 {
	return value << 20 >> 20
}

// High returns the upper 20 bits of value, corrected for the sign extension
// of the low half: when bit 11 of value is set, the low half is interpreted
// as a negative addend by the second instruction, so the upper half is
// incremented by one to compensate. High(v)*4096 + Low(v) == v holds for
// every 32-bit value.
func High(value int32) int32 {
	high := value >> 12
	if value&0x800 != 0 {
		high++
	}
	return high
}

// PCRelativeLow returns Low applied to the distance from pc to value,
// used for position independent address synthesis.
func PCRelativeLow(value, pc int32) int32 {
	return Low(value - pc)
}

// PCRelativeHigh returns High applied to the distance from pc to value.
func PCRelativeHigh(value, pc int32) int32 {
	return High(value - pc)
}
