package machine

import (
	"fmt"

	"github.com/abonner/mipssim/pkg/inst"
)

// aluCycle implements the 1-cycle ALU execution path (spec §4.6).
func (m *Machine) aluCycle() error {
	entry, ok := m.preALU.Front()
	if !ok {
		return nil
	}
	fe, ok := m.scoreboard.EntryFor(FUALU, entry.Inst.PC)
	if !ok {
		return &InvariantViolation{Cycle: m.Cycle, What: "Pre-ALU head has no scoreboard reservation"}
	}
	if !fe.RJ || !fe.RK {
		return nil
	}
	result, err := m.computeALU(entry.Inst, fe)
	if err != nil {
		return err
	}
	m.preALU.DequeueFront()
	m.postALU.Set(Entry{Inst: entry.Inst, Result: result})
	return nil
}

func (m *Machine) computeALU(in inst.Instruction, fe FUEntry) (int32, error) {
	a, err := m.regsCommitted.Read(fe.FJ)
	if err != nil {
		return 0, err
	}
	b := fe.Imm
	if fe.HasFK {
		b, err = m.regsCommitted.Read(fe.FK)
		if err != nil {
			return 0, err
		}
	}
	switch in.Op {
	case inst.AND, inst.ANDI:
		return a & b, nil
	case inst.NOR, inst.NORI:
		return ^(a | b), nil
	case inst.SUB, inst.SUBI:
		return a - b, nil
	case inst.ADD, inst.ADDI:
		return a + b, nil
	case inst.SLT, inst.SLTI:
		if a < b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("machine: %s reached the ALU stage unexpectedly", in.Op)
	}
}

// alubCycle implements the 2-cycle ALU-B execution path (spec §4.7).
// The head occupies the unit for one full cycle once its operands are
// ready, computing its result only on the second such cycle.
func (m *Machine) alubCycle() error {
	entry, ok := m.preALUB.Front()
	if !ok {
		m.alubProgress = 0
		return nil
	}
	fe, ok := m.scoreboard.EntryFor(FUALUB, entry.Inst.PC)
	if !ok {
		return &InvariantViolation{Cycle: m.Cycle, What: "Pre-ALU-B head has no scoreboard reservation"}
	}
	if !fe.RJ || !fe.RK {
		m.alubProgress = 0
		return nil
	}
	m.alubProgress++
	if m.alubProgress < 2 {
		return nil
	}
	result, err := m.computeALUB(entry.Inst, fe)
	if err != nil {
		return err
	}
	m.preALUB.DequeueFront()
	m.postALUB.Set(Entry{Inst: entry.Inst, Result: result})
	m.alubProgress = 0
	return nil
}

func (m *Machine) computeALUB(in inst.Instruction, fe FUEntry) (int32, error) {
	a, err := m.regsCommitted.Read(fe.FJ)
	if err != nil {
		return 0, err
	}
	switch in.Op {
	case inst.SLL:
		return a << uint(fe.Imm), nil
	case inst.SRL:
		return int32(uint32(a) >> uint(fe.Imm)), nil
	case inst.SRA:
		return a >> uint(fe.Imm), nil
	case inst.MUL:
		b, err := m.regsCommitted.Read(fe.FK)
		if err != nil {
			return 0, err
		}
		return int32(int64(a) * int64(b)), nil
	case inst.MULI:
		return int32(int64(a) * int64(fe.Imm)), nil
	default:
		return 0, fmt.Errorf("machine: %s reached the ALU-B stage unexpectedly", in.Op)
	}
}

// memCycle implements the MEM stage (spec §4.8): the head of Pre-MEM is
// processed unconditionally every cycle it is non-empty, since Issue
// already guaranteed its sources are ready.
func (m *Machine) memCycle() error {
	entry, ok := m.preMEM.Front()
	if !ok {
		return nil
	}
	in := entry.Inst
	base, err := m.regsCommitted.Read(in.SrcS)
	if err != nil {
		return err
	}
	addr := uint32(base + in.Third)

	switch in.Op {
	case inst.LW:
		v, err := m.data.Read(addr)
		if err != nil {
			return err
		}
		m.preMEM.DequeueFront()
		m.postMEM.Set(Entry{Inst: in, Addr: int32(addr), Result: v})
	case inst.SW:
		v, err := m.regsCommitted.Read(in.Dest)
		if err != nil {
			return err
		}
		if err := m.data.Write(addr, v); err != nil {
			return err
		}
		m.preMEM.DequeueFront()
	default:
		return fmt.Errorf("machine: %s reached the MEM stage unexpectedly", in.Op)
	}
	return nil
}
