package machine

import "github.com/abonner/mipssim/pkg/inst"

// fetchCycle implements the Instruction Fetch stage (spec §4.4). Up to
// two instructions are considered per cycle, drawn in program order
// from PC; room is checked against the pending Pre-Issue view, which
// includes entries fetched earlier this cycle. A branch or jump ends
// the cycle's fetching: if its operands are not ready it stalls fetch at
// its own PC, this cycle and every subsequent one, until they are; once
// resolved it redirects PC and the target is fetched next cycle. A
// fetched BREAK stops fetch for good; the machine halts once everything
// fetched before it has drained (spec §4.10).
func (m *Machine) fetchCycle() error {
	if m.fetchHalted {
		return nil
	}
	for steps := 0; steps < 2; steps++ {
		if m.preIssue.PendingFull() {
			return nil
		}
		in, ok := m.image.Instructions[m.PC]
		if !ok {
			return &FetchPastEnd{PC: m.PC}
		}

		switch {
		case in.Op == inst.NOP:
			m.PC += 4

		case in.Op == inst.BREAK:
			m.ifExecutedDesc = in.Disassemble()
			m.fetchHalted = true
			return nil

		case in.IsBranchOrJump():
			ready, newPC := m.resolveBranch(in)
			if !ready {
				m.ifWaitingDesc = in.Disassemble()
				return nil
			}
			m.ifExecutedDesc = in.Disassemble()
			m.PC = newPC
			return nil

		default:
			if !m.preIssue.Append(Entry{Inst: in}) {
				return nil
			}
			m.PC += 4
		}
	}
	return nil
}

// registerBranchReady reports whether register r's value is final for
// branch-resolution purposes: no live reservation, and no unissued
// Pre-Issue entry is about to write it. The pending view is scanned,
// not the committed one, so an instruction fetched earlier in this same
// cycle counts as a pending writer too.
func (m *Machine) registerBranchReady(r uint8) bool {
	ready, err := m.regsCommitted.IsReady(r)
	if err != nil || !ready {
		return false
	}
	for i := 0; ; i++ {
		e, ok := m.preIssue.PendingAt(i)
		if !ok {
			break
		}
		if dest, has := e.Inst.WriteReg(); has && dest == r {
			return false
		}
	}
	return true
}

// resolveBranch reports whether in (a branch or jump) can be resolved
// this cycle and, if so, the PC to fetch next.
func (m *Machine) resolveBranch(in inst.Instruction) (ready bool, newPC uint32) {
	switch in.Op {
	case inst.J:
		return true, uint32(in.Third)

	case inst.JR:
		if !m.registerBranchReady(in.SrcS) {
			return false, 0
		}
		v, _ := m.regsCommitted.Read(in.SrcS)
		return true, uint32(v)

	case inst.BEQ:
		if !m.registerBranchReady(in.SrcS) || !m.registerBranchReady(in.Dest) {
			return false, 0
		}
		a, _ := m.regsCommitted.Read(in.SrcS)
		b, _ := m.regsCommitted.Read(in.Dest)
		if a == b {
			return true, uint32(int32(in.PC) + 4 + (in.Third << 2))
		}
		return true, in.PC + 4

	case inst.BGTZ:
		if !m.registerBranchReady(in.SrcS) {
			return false, 0
		}
		v, _ := m.regsCommitted.Read(in.SrcS)
		if v > 0 {
			return true, uint32(int32(in.PC) + 4 + (in.Third << 2))
		}
		return true, in.PC + 4

	case inst.BLTZ:
		if !m.registerBranchReady(in.SrcS) {
			return false, 0
		}
		v, _ := m.regsCommitted.Read(in.SrcS)
		if v < 0 {
			return true, uint32(int32(in.PC) + 4 + (in.Third << 2))
		}
		return true, in.PC + 4

	default:
		panic("machine: resolveBranch called with a non-branch instruction")
	}
}
