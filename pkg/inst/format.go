package inst

import (
	"fmt"
	"strings"
)

// FormatWord renders a 32-bit word as six space-separated binary groups
// of widths 6/5/5/5/5/6, the layout used by the `dis` CLI mode (spec §6)
// regardless of which encoding family the word actually belongs to.
func FormatWord(word uint32) string {
	widths := []int{6, 5, 5, 5, 5, 6}
	groups := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		groups[i] = fmt.Sprintf("%0*b", w, field(word, pos, pos+w))
		pos += w
	}
	return strings.Join(groups, " ")
}

// Disassemble renders the canonical mnemonic-and-operands text of spec
// §6's operand formatting rules.
func (in Instruction) Disassemble() string {
	switch in.Op {
	case J:
		return fmt.Sprintf("J #%d", in.Third)
	case JR:
		return fmt.Sprintf("JR R%d", in.SrcS)
	case BEQ:
		return fmt.Sprintf("BEQ R%d, R%d, #%d", in.SrcS, in.Dest, in.Third<<2)
	case BGTZ:
		return fmt.Sprintf("BGTZ R%d, #%d", in.SrcS, in.Third<<2)
	case BLTZ:
		return fmt.Sprintf("BLTZ R%d, #%d", in.SrcS, in.Third<<2)
	case BREAK:
		return "BREAK"
	case NOP:
		return "NOP"
	case LW:
		return fmt.Sprintf("LW R%d, %d(R%d)", in.Dest, in.Third, in.SrcS)
	case SW:
		return fmt.Sprintf("SW R%d, %d(R%d)", in.Dest, in.Third, in.SrcS)
	case AND, NOR, SUB, ADD, SLT, MUL:
		return fmt.Sprintf("%s R%d, R%d, R%d", in.Op, in.Dest, in.SrcS, in.Third)
	case ADDI, SUBI, ANDI, SLTI, NORI, MULI:
		return fmt.Sprintf("%s R%d, R%d, #%d", in.Op, in.Dest, in.SrcS, in.Third)
	case SLL, SRL, SRA:
		return fmt.Sprintf("%s R%d, R%d, #%d", in.Op, in.Dest, in.SrcS, in.Third)
	default:
		return fmt.Sprintf("<unknown instruction: %#032b>", in.Word)
	}
}
