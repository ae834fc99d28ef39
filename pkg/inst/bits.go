// Package inst decodes 32-bit MIPS32 instruction words into a single
// tagged instruction record and renders that record back to text.
//
// The source represents an instruction as a class hierarchy rebound at
// decode time (one Python class per opcode, with __class__ reassigned
// as each encoding field is discovered). We replace that with a single
// sum-type record (Instruction) carrying only the fields a given Op
// needs; execution units and the disassembler dispatch on Op via an
// exhaustive switch instead of a virtual call.
package inst

// field extracts the bits in the half-open range [fromMSB, toMSB) of a
// 32-bit word, counting bit 0 as the most significant bit, as spec'd by
// the encoding tables (e.g. opcode is field(word, 0, 6)).
func field(word uint32, fromMSB, toMSB int) uint32 {
	width := uint(toMSB - fromMSB)
	shift := uint(32 - toMSB)
	mask := uint32(1)<<width - 1
	return (word >> shift) & mask
}

// signExtend sign-extends the low `bits` bits of v, a right-justified
// unsigned field, to a full two's-complement int32.
func signExtend(v uint32, bits int) int32 {
	shift := uint(32 - bits)
	return int32(v<<shift) >> shift
}
