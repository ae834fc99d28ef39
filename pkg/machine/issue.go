package machine

import "github.com/abonner/mipssim/pkg/inst"

// issueCycle implements the Issue stage (spec §4.5): the scoreboard
// scans the committed Pre-Issue buffer in order and may issue up to two
// entries, skipping over a hazarded entry to issue a later one.
func (m *Machine) issueCycle() {
	issued := 0
	var earlierWrites, earlierReads []uint8
	earlierHasStore := false

	n := m.preIssue.Size()
	for idx := 0; idx < n && issued < 2; idx++ {
		entry, ok := m.preIssue.Peek(idx)
		if !ok {
			break
		}
		in := entry.Inst

		if m.tryIssue(in, earlierWrites, earlierReads, earlierHasStore) {
			issued++
			m.preIssue.Remove(idx)
		}

		if dest, has := in.WriteReg(); has {
			earlierWrites = append(earlierWrites, dest)
		}
		earlierReads = append(earlierReads, in.ReadRegs()...)
		if in.Op == inst.SW {
			earlierHasStore = true
		}
	}
}

func collides(regs []uint8, earlier []uint8) bool {
	for _, r := range regs {
		for _, w := range earlier {
			if r == w {
				return true
			}
		}
	}
	return false
}

// tryIssue applies the WAW/WAR/RAW hazard checks common to every class,
// then dispatches to the class-specific structural checks.
// earlierWrites/earlierReads hold the destination and source registers
// of every Pre-Issue entry with a lower index, whether already issued
// this cycle or still waiting; earlierHasStore reports whether any of
// them is an unissued/just-issued SW, for the load/store ordering rule.
func (m *Machine) tryIssue(in inst.Instruction, earlierWrites, earlierReads []uint8, earlierHasStore bool) bool {
	writeReg, hasWrite := in.WriteReg()
	readRegs := in.ReadRegs()

	if hasWrite && collides([]uint8{writeReg}, earlierWrites) {
		return false
	}
	if collides(readRegs, earlierWrites) {
		return false
	}
	// A destination still reserved for an in-flight instruction (one that
	// has already left Pre-Issue but not yet reached WB) is a WAW hazard
	// earlierWrites cannot see, since it only scans the current Pre-Issue
	// buffer. Decline to issue rather than let Mark panic on conflict.
	if hasWrite {
		ready, err := m.regsPending.IsReady(writeReg)
		if err != nil || !ready {
			return false
		}
	}
	// WAR: the destination must not be a source of an earlier Pre-Issue
	// entry, nor of an issued ALU/ALU-B instruction still in flight — a
	// 2-cycle occupant reads its operands only on its compute cycle, and
	// an overtaking writer could reach write-back first. In-flight MEM
	// entries need no such check: the head of Pre-MEM reads within two
	// cycles of issue, before any instruction issued at or after it can
	// have its result committed.
	if hasWrite {
		if collides([]uint8{writeReg}, earlierReads) {
			return false
		}
		if m.scoreboard.ReadsRegister(writeReg) {
			return false
		}
	}
	// RAW: every source must have been ready at the end of the previous
	// cycle. An instruction whose operand is still being produced stalls
	// here in Issue until the cycle after the producer's write-back; it
	// never waits inside a functional unit with a live reservation on its
	// source.
	for _, r := range readRegs {
		ready, err := m.regsCommitted.IsReady(r)
		if err != nil || !ready {
			return false
		}
	}

	switch in.Op.Class() {
	case inst.ClassMem:
		return m.tryIssueMem(in, earlierHasStore)
	case inst.ClassALU:
		return m.tryIssueFU(in, FUALU, ReservationALU, writeReg, readRegs)
	case inst.ClassALUB:
		return m.tryIssueFU(in, FUALUB, ReservationALUB, writeReg, readRegs)
	default:
		return false
	}
}

// tryIssueMem issues LW/SW into Pre-MEM; tryIssue has already verified
// both sources (base and, for SW, the data register) were ready at the
// end of the previous cycle, so there is no further wait once it is in
// Pre-MEM. Any load or store behind an earlier, not-yet-issued store
// must wait, whether or not it is itself a store, so stores reach the
// data segment in program order (spec §4.5 rule 5).
func (m *Machine) tryIssueMem(in inst.Instruction, earlierHasStore bool) bool {
	if earlierHasStore && (in.Op == inst.LW || in.Op == inst.SW) {
		return false
	}
	if m.preMEM.PendingFull() {
		return false
	}
	m.preMEM.Enqueue(Entry{Inst: in})
	if dest, has := in.WriteReg(); has {
		m.regsPending.Mark(dest, ReservationMem)
	}
	return true
}

// tryIssueFU issues an ALU or ALU-B instruction: it allocates a
// scoreboard reservation (active slot, or the shadow slot if the active
// one is busy) and enqueues into the matching Pre-* queue. Its sources
// passed tryIssue's RAW gate, so the entry's ready bits start true; the
// q_j/q_k fields still record a producing FU should one hold the source
// when the entry is built.
func (m *Machine) tryIssueFU(in inst.Instruction, fu FU, res Reservation, dest uint8, readRegs []uint8) bool {
	queue := m.queueFor(fu)
	if queue.PendingFull() {
		return false
	}
	if !m.scoreboard.HasFreeSlot(fu) {
		return false
	}
	entry := m.buildFUEntry(in, dest, readRegs)
	m.scoreboard.Allocate(fu, entry)
	queue.Enqueue(Entry{Inst: in})
	m.regsPending.Mark(dest, res)
	return true
}

func (m *Machine) queueFor(fu FU) *Queue {
	if fu == FUALUB {
		return m.preALUB
	}
	return m.preALU
}

// buildFUEntry populates f_i/f_j/f_k/q_j/q_k/r_j/r_k for a
// newly-issued ALU or ALU-B instruction (spec §4.5's "On issue" rules).
func (m *Machine) buildFUEntry(in inst.Instruction, dest uint8, readRegs []uint8) FUEntry {
	e := FUEntry{Inst: in, FI: dest, HasFI: true}

	if len(readRegs) > 0 {
		e.FJ, e.HasFJ = readRegs[0], true
		if p, ok := m.scoreboard.Producer(readRegs[0]); ok {
			e.QJ, e.HasQJ = p, true
		}
		ready, _ := m.regsCommitted.IsReady(readRegs[0])
		e.RJ = ready && !e.HasQJ
	} else {
		e.RJ = true
	}

	switch {
	case len(readRegs) > 1:
		e.FK, e.HasFK = readRegs[1], true
		if p, ok := m.scoreboard.Producer(readRegs[1]); ok {
			e.QK, e.HasQK = p, true
		}
		ready, _ := m.regsCommitted.IsReady(readRegs[1])
		e.RK = ready && !e.HasQK
	case in.HasThird && !in.SrcTIsReg:
		e.Imm, e.HasImm = in.Third, true
		e.RK = true
	default:
		e.RK = true
	}

	return e
}
