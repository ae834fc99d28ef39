package inst

// Opcode field values (bits 0..6, MSB-first) for the four encoding
// families of spec §4.1.
const (
	opJ     = 0b000010
	opSW    = 0b101011
	opLW    = 0b100011
	opBEQ   = 0b000100
	opBGTZ  = 0b000111
	opREGIMM = 0b000001 // BLTZ when rt field is 00000
	opRType = 0b000000
	opMULOp = 0b011100 // R-type MUL, discriminated further by func

	opADDI = 0b110000
	opSUBI = 0b110001
	opMULI = 0b100001
	opANDI = 0b110010
	opNORI = 0b110011
	opSLTI = 0b110101
)

// R-type func field values (bits 26..32).
const (
	funcSLLOrNOP = 0b000000
	funcSRL      = 0b000010
	funcSRA      = 0b000011
	funcADD      = 0b100000
	funcSUB      = 0b100010
	funcAND      = 0b100100
	funcNOR      = 0b100111
	funcSLT      = 0b101010
	funcBREAK    = 0b001101
	funcJR       = 0b001000
	funcMUL      = 0b000010 // only when opcode == opMULOp
)

// Decode maps a 32-bit instruction word, fetched at PC, to its decoded
// Instruction record. It fails with *DecodeError on any opcode, func,
// or REGIMM variant this instruction set does not define.
func Decode(word, pc uint32) (Instruction, error) {
	opcode := field(word, 0, 6)
	switch opcode {
	case opJ:
		return decodeJ(word, pc), nil
	case opSW:
		return decodeI(word, pc, SW), nil
	case opLW:
		return decodeI(word, pc, LW), nil
	case opBEQ:
		return decodeI(word, pc, BEQ), nil
	case opBGTZ:
		return decodeI(word, pc, BGTZ), nil
	case opREGIMM:
		return decodeREGIMM(word, pc)
	case opRType:
		return decodeRType(word, pc)
	case opMULOp:
		if field(word, 26, 32) != funcMUL {
			return Instruction{}, &DecodeError{Word: word, PC: pc, Reason: "opcode 011100 with unknown func (only MUL is defined)"}
		}
		return decodeRRR(word, pc, MUL), nil
	case opADDI:
		return decodeCat2(word, pc, ADDI), nil
	case opSUBI:
		return decodeCat2(word, pc, SUBI), nil
	case opMULI:
		return decodeCat2(word, pc, MULI), nil
	case opANDI:
		return decodeCat2(word, pc, ANDI), nil
	case opNORI:
		return decodeCat2(word, pc, NORI), nil
	case opSLTI:
		return decodeCat2(word, pc, SLTI), nil
	default:
		return Instruction{}, &DecodeError{Word: word, PC: pc, Reason: "unknown opcode"}
	}
}

// decodeJ handles the sole J-type instruction: J target26.
func decodeJ(word, pc uint32) Instruction {
	target := field(word, 6, 32) << 2
	return Instruction{
		Word: word, PC: pc, Op: J,
		HasThird: true, Third: int32(target),
	}
}

// decodeI handles the I-type family: LW, SW, BEQ, BGTZ. rs=6..11,
// rt=11..16, imm=16..32 (signed). BLTZ is handled separately because its
// opcode (REGIMM) needs the rt field as a discriminator, not a register.
func decodeI(word, pc uint32, op Op) Instruction {
	rs := uint8(field(word, 6, 11))
	rt := uint8(field(word, 11, 16))
	imm := signExtend(field(word, 16, 32), 16)

	switch op {
	case LW:
		// rt is the destination; rs is the base register.
		return Instruction{
			Word: word, PC: pc, Op: op,
			HasDest: true, Dest: rt,
			HasSrcS: true, SrcS: rs,
			HasThird: true, Third: imm,
		}
	case SW:
		// SW has no destination; rt is the data source register, carried
		// in Dest since SW never writes back. rs is the base register.
		return Instruction{
			Word: word, PC: pc, Op: op,
			HasDest: true, Dest: rt,
			HasSrcS: true, SrcS: rs,
			HasThird: true, Third: imm,
		}
	case BEQ:
		// No destination; Dest carries rt (the second compared register).
		return Instruction{
			Word: word, PC: pc, Op: op,
			HasDest: true, Dest: rt,
			HasSrcS: true, SrcS: rs,
			HasThird: true, Third: imm,
		}
	case BGTZ:
		return Instruction{
			Word: word, PC: pc, Op: op,
			HasSrcS: true, SrcS: rs,
			HasThird: true, Third: imm,
		}
	default:
		panic("inst: decodeI called with non-I-type op")
	}
}

// decodeREGIMM handles opcode 000001: BLTZ when rt == 00000, fatal
// otherwise (BGEZ and friends are not part of this instruction set).
func decodeREGIMM(word, pc uint32) (Instruction, error) {
	rs := uint8(field(word, 6, 11))
	rt := field(word, 11, 16)
	if rt != 0 {
		return Instruction{}, &DecodeError{Word: word, PC: pc, Reason: "REGIMM opcode with rt != 00000 (only BLTZ is defined)"}
	}
	imm := signExtend(field(word, 16, 32), 16)
	return Instruction{
		Word: word, PC: pc, Op: BLTZ,
		HasSrcS: true, SrcS: rs,
		HasThird: true, Third: imm,
	}, nil
}

// decodeRType handles opcode 000000: func discriminates ADD, SUB, AND,
// NOR, SLT, SLL, SRL, SRA, JR, BREAK, NOP.
func decodeRType(word, pc uint32) (Instruction, error) {
	if word == 0 {
		return Instruction{Word: word, PC: pc, Op: NOP}, nil
	}
	rs := uint8(field(word, 6, 11))
	rt := uint8(field(word, 11, 16))
	rd := uint8(field(word, 16, 21))
	sa := int32(field(word, 21, 26))
	funcCode := field(word, 26, 32)

	switch funcCode {
	case funcSLLOrNOP:
		return Instruction{
			Word: word, PC: pc, Op: SLL,
			HasDest: true, Dest: rd,
			HasSrcS: true, SrcS: rt,
			HasThird: true, Third: sa,
		}, nil
	case funcSRL:
		return Instruction{
			Word: word, PC: pc, Op: SRL,
			HasDest: true, Dest: rd,
			HasSrcS: true, SrcS: rt,
			HasThird: true, Third: sa,
		}, nil
	case funcSRA:
		return Instruction{
			Word: word, PC: pc, Op: SRA,
			HasDest: true, Dest: rd,
			HasSrcS: true, SrcS: rt,
			HasThird: true, Third: sa,
		}, nil
	case funcADD:
		return decodeRRR(word, pc, ADD), nil
	case funcSUB:
		return decodeRRR(word, pc, SUB), nil
	case funcAND:
		return decodeRRR(word, pc, AND), nil
	case funcNOR:
		return decodeRRR(word, pc, NOR), nil
	case funcSLT:
		return decodeRRR(word, pc, SLT), nil
	case funcJR:
		return Instruction{
			Word: word, PC: pc, Op: JR,
			HasSrcS: true, SrcS: rs,
		}, nil
	case funcBREAK:
		return Instruction{Word: word, PC: pc, Op: BREAK}, nil
	default:
		return Instruction{}, &DecodeError{Word: word, PC: pc, Reason: "unknown R-type func"}
	}
}

// decodeRRR handles the three-register ALU/ALU-B forms: rd=rs OP rt.
func decodeRRR(word, pc uint32, op Op) Instruction {
	rs := uint8(field(word, 6, 11))
	rt := uint8(field(word, 11, 16))
	rd := uint8(field(word, 16, 21))
	return Instruction{
		Word: word, PC: pc, Op: op,
		HasDest: true, Dest: rd,
		HasSrcS: true, SrcS: rs,
		HasThird: true, SrcTIsReg: true, Third: int32(rt),
	}
}

// decodeCat2 handles the Category-2 immediate forms: rt = rs OP imm16.
func decodeCat2(word, pc uint32, op Op) Instruction {
	rs := uint8(field(word, 6, 11))
	rt := uint8(field(word, 11, 16))
	imm := signExtend(field(word, 16, 32), 16)
	return Instruction{
		Word: word, PC: pc, Op: op,
		HasDest: true, Dest: rt,
		HasSrcS: true, SrcS: rs,
		HasThird: true, Third: imm,
	}
}
