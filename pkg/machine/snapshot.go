package machine

import (
	"fmt"
	"strings"
)

// Snapshot renders the per-cycle text block of spec §6, reflecting the
// machine's committed state immediately after the cycle that just
// completed.
func (m *Machine) Snapshot() string {
	var b strings.Builder

	fmt.Fprintf(&b, "--------------------\n")
	mnemonic, operands := splitMnemonicOperands(m.headerDesc)
	if operands != "" {
		fmt.Fprintf(&b, "Cycle:%d\t%d\t%s\t%s\n\n", m.Cycle, m.headerPC, mnemonic, operands)
	} else {
		fmt.Fprintf(&b, "Cycle:%d\t%d\t%s\n\n", m.Cycle, m.headerPC, mnemonic)
	}

	fmt.Fprintf(&b, "IF Unit:\n")
	fmt.Fprintf(&b, "\tWaiting Instruction: %s\n", bracket(m.ifWaitingDesc))
	fmt.Fprintf(&b, "\tExecuted Instruction: %s\n", bracket(m.ifExecutedDesc))

	writeBufferSection(&b, "Pre-Issue Buffer", preIssueCapacity, func(i int) (string, bool) {
		e, ok := m.preIssue.Peek(i)
		return e.Inst.Disassemble(), ok
	})
	writeBufferSection(&b, "Pre-ALU Queue", preExecCapacity, queueLookup(m.preALU))
	writeSlotLine(&b, "Post-ALU Buffer", m.postALU)
	writeBufferSection(&b, "Pre-ALUB Queue", preExecCapacity, queueLookup(m.preALUB))
	writeSlotLine(&b, "Post-ALUB Buffer", m.postALUB)
	writeBufferSection(&b, "Pre-MEM Queue", preExecCapacity, queueLookup(m.preMEM))
	writeSlotLine(&b, "Post-MEM Buffer", m.postMEM)

	fmt.Fprintf(&b, "Registers\n")
	regs := m.regsCommitted.Snapshot()
	for row := 0; row < NumRegisters; row += 8 {
		fmt.Fprintf(&b, "R%02d:", row)
		for col := 0; col < 8; col++ {
			fmt.Fprintf(&b, "\t%d", regs[row+col])
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "Data\n")
	values := m.data.Snapshot()
	base := m.data.Base()
	for row := 0; row < len(values); row += 8 {
		fmt.Fprintf(&b, "%d:", base+uint32(row)*4)
		end := row + 8
		if end > len(values) {
			end = len(values)
		}
		for _, v := range values[row:end] {
			fmt.Fprintf(&b, "\t%d", v)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

// splitMnemonicOperands splits a disassembly string into its mnemonic
// and everything after the first space, matching the layout of the
// header line's tab-separated fields. A mnemonic with no operands
// (BREAK, NOP) yields an empty operands string.
func splitMnemonicOperands(desc string) (mnemonic, operands string) {
	if desc == "" {
		return "", ""
	}
	parts := strings.SplitN(desc, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func bracket(desc string) string {
	return fmt.Sprintf("[%s]", desc)
}

func queueLookup(q *Queue) func(int) (string, bool) {
	return func(i int) (string, bool) {
		e, ok := q.Peek(i)
		return e.Inst.Disassemble(), ok
	}
}

func writeBufferSection(b *strings.Builder, header string, n int, at func(int) (string, bool)) {
	fmt.Fprintf(b, "%s:\n", header)
	for i := 0; i < n; i++ {
		desc, ok := at(i)
		if !ok {
			desc = ""
		}
		fmt.Fprintf(b, "\tEntry %d:%s\n", i, bracket(desc))
	}
}

func writeSlotLine(b *strings.Builder, header string, s *Slot) {
	desc := ""
	if e, ok := s.Committed(); ok {
		desc = e.Inst.Disassemble()
	}
	fmt.Fprintf(b, "%s:%s\n", header, bracket(desc))
}
