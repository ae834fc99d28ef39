// Package machine implements the two-issue, out-of-order pipeline: a
// scoreboard-driven engine that fetches, issues, executes and retires
// decoded instructions cycle by cycle.
package machine

import "github.com/abonner/mipssim/pkg/loader"

const (
	preIssueCapacity = 4
	preExecCapacity  = 2
)

// Machine is one simulated run: the architectural state (PC, registers,
// data segment) plus the seven pipeline buffers and the scoreboard that
// arbitrates them. Every stage reads the committed view of each
// container and writes only the pending view; commit() promotes pending
// to committed at the end of every cycle (spec §4.3).
type Machine struct {
	PC    uint32
	Cycle int

	// Halted is set once BREAK has been fetched and every instruction
	// fetched before it has drained out of the pipeline.
	Halted bool

	// fetchHalted is set the moment Fetch decodes BREAK; no further
	// instruction is fetched while the pipeline drains.
	fetchHalted bool

	image *loader.Image
	data  *DataSegment

	regsCommitted RegisterFile
	regsPending   RegisterFile

	preIssue *Buffer
	preALU   *Queue
	preALUB  *Queue
	preMEM   *Queue
	postALU  *Slot
	postALUB *Slot
	postMEM  *Slot

	scoreboard   Scoreboard
	alubProgress int

	ifWaitingDesc  string
	ifExecutedDesc string

	// headerPC/headerDesc capture the PC and disassembly of the
	// instruction about to be fetched, taken before fetchCycle mutates
	// PC, for the snapshot header line (spec §6).
	headerPC   uint32
	headerDesc string
}

// New builds a Machine ready to execute img, with the register file
// zeroed and the data segment seeded from the image.
func New(img *loader.Image) *Machine {
	return &Machine{
		PC:       loader.StartPC,
		image:    img,
		data:     NewDataSegment(img.DataBase, dataValues(img)),
		preIssue: NewBuffer(preIssueCapacity),
		preALU:   NewQueue(preExecCapacity),
		preALUB:  NewQueue(preExecCapacity),
		preMEM:   NewQueue(preExecCapacity),
		postALU:  NewSlot(),
		postALUB: NewSlot(),
		postMEM:  NewSlot(),
	}
}

func dataValues(img *loader.Image) []int32 {
	values := make([]int32, len(img.DataOrder))
	for i, addr := range img.DataOrder {
		values[i] = img.Data[addr]
	}
	return values
}

func (m *Machine) postSlotFor(fu FU) *Slot {
	if fu == FUALUB {
		return m.postALUB
	}
	return m.postALU
}

// Step runs exactly one cycle: Fetch, Issue, ALU, ALU-B, MEM and
// Write-Back in that fixed order (spec §4.3), each reading the
// committed view and writing the pending view, followed by an atomic
// commit. commit() always runs, even when a stage returns an error —
// the cycle in which a stage fails still has its pending mutations
// promoted, so Snapshot() after a failing Step still reflects that
// cycle rather than the one before it (spec §4.11/§7).
func (m *Machine) Step() error {
	m.Cycle++
	m.headerPC = m.PC
	if in, ok := m.image.Instructions[m.PC]; ok {
		m.headerDesc = in.Disassemble()
	} else {
		m.headerDesc = ""
	}

	m.startCycle()

	err := m.fetchCycle()
	if err == nil {
		m.issueCycle()
		err = m.aluCycle()
	}
	if err == nil {
		err = m.alubCycle()
	}
	if err == nil {
		err = m.memCycle()
	}
	if err == nil {
		err = m.writebackCycle()
	}

	m.commit()
	if m.fetchHalted && m.pipelineEmpty() {
		m.Halted = true
	}
	return err
}

// pipelineEmpty reports whether every pipeline container's committed
// view is empty, i.e. nothing fetched before BREAK is still in flight.
func (m *Machine) pipelineEmpty() bool {
	return m.preIssue.IsEmpty() &&
		m.preALU.IsEmpty() && m.preALUB.IsEmpty() && m.preMEM.IsEmpty() &&
		m.postALU.IsEmpty() && m.postALUB.IsEmpty() && m.postMEM.IsEmpty()
}

func (m *Machine) startCycle() {
	m.ifWaitingDesc = ""
	m.ifExecutedDesc = ""
	m.regsPending = m.regsCommitted
	m.preIssue.startCycle()
	m.preALU.startCycle()
	m.preALUB.startCycle()
	m.preMEM.startCycle()
	m.postALU.startCycle()
	m.postALUB.startCycle()
	m.postMEM.startCycle()
}

func (m *Machine) commit() {
	m.regsCommitted = m.regsPending
	m.preIssue.commit()
	m.preALU.commit()
	m.preALUB.commit()
	m.preMEM.commit()
	m.postALU.commit()
	m.postALUB.commit()
	m.postMEM.commit()
}

// Run steps the machine until it halts or maxCycles is exceeded,
// invoking onCycle (if non-nil) after every cycle with the machine in
// its committed, post-commit state — the point at which Snapshot
// reflects that cycle's result. onCycle still fires for the cycle in
// which Step returns an error, so a caller rendering snapshots from
// onCycle sees the failing cycle's block before the error propagates.
func (m *Machine) Run(maxCycles int, onCycle func(*Machine)) error {
	for m.Cycle < maxCycles {
		if m.Halted {
			return nil
		}
		err := m.Step()
		if onCycle != nil {
			onCycle(m)
		}
		if err != nil {
			return err
		}
		if m.Halted {
			return nil
		}
	}
	return &InvariantViolation{Cycle: m.Cycle, What: "exceeded maximum cycle count without halting"}
}
