package machine

import "github.com/abonner/mipssim/pkg/inst"

// FU names the two functional units the scoreboard arbitrates (spec
// §3's "scoreboard entries"). MEM has no scoreboard entry of its own:
// its RAW discipline is checked directly against register readiness
// (spec §4.5 rule 4).
type FU int

const (
	FUALU FU = iota
	FUALUB
)

func (fu FU) String() string {
	if fu == FUALUB {
		return "ALUB"
	}
	return "ALU"
}

// FUEntry is one scoreboard reservation: f_i/f_j/f_k/q_j/q_k/r_j/r_k in
// spec §3's naming. RJ/RK are set at issue time; Issue only allocates an
// entry once its operands are ready, so the execution stage's ready test
// reads these bits rather than re-deriving them from the register file
// (a later instruction reserving one of the sources must not stall an
// entry that already passed its hazard checks).
type FUEntry struct {
	Inst inst.Instruction

	FI    uint8
	HasFI bool

	FJ    uint8
	HasFJ bool
	QJ    FU
	HasQJ bool
	RJ    bool

	FK    uint8
	HasFK bool
	QK    FU
	HasQK bool
	RK    bool

	// Imm carries a shift amount or sign-extended immediate for
	// instructions whose third operand is not a register.
	Imm    int32
	HasImm bool
}

// fuState is the two-slot ring backing one functional unit: an active
// entry under execution and a shadow entry issued but not yet active
// (spec §9 "Scoreboard shadowing").
type fuState struct {
	busy       bool
	active     FUEntry
	shadowBusy bool
	shadow     FUEntry
}

// Scoreboard tracks, per functional unit, which instruction occupies it
// and whether its operands are available.
type Scoreboard struct {
	units [2]fuState
}

// Busy reports whether fu's active slot is occupied.
func (sb *Scoreboard) Busy(fu FU) bool { return sb.units[fu].busy }

// HasFreeSlot reports whether fu has room for one more reservation,
// either as the active entry or its shadow.
func (sb *Scoreboard) HasFreeSlot(fu FU) bool {
	s := &sb.units[fu]
	return !s.busy || !s.shadowBusy
}

// Allocate occupies fu's active slot if free, else its shadow slot.
// Returns false if both are already occupied.
func (sb *Scoreboard) Allocate(fu FU, e FUEntry) bool {
	s := &sb.units[fu]
	switch {
	case !s.busy:
		s.active, s.busy = e, true
	case !s.shadowBusy:
		s.shadow, s.shadowBusy = e, true
	default:
		return false
	}
	return true
}

// Active returns fu's active entry, if any.
func (sb *Scoreboard) Active(fu FU) (FUEntry, bool) {
	s := &sb.units[fu]
	return s.active, s.busy
}

// EntryFor returns the reservation owned by the instruction fetched at
// pc, preferring fu's active slot over its shadow. The head of an
// execution queue can belong to the shadow slot for one cycle: its
// predecessor has already moved to the Post-* buffer but retires only
// when Write-Back drains it later the same cycle. The active slot is
// checked first so that two in-flight instances of the same loop-body
// PC resolve to the older one.
func (sb *Scoreboard) EntryFor(fu FU, pc uint32) (FUEntry, bool) {
	s := &sb.units[fu]
	if s.busy && s.active.Inst.PC == pc {
		return s.active, true
	}
	if s.shadowBusy && s.shadow.Inst.PC == pc {
		return s.shadow, true
	}
	return FUEntry{}, false
}

// Retire clears fu's active slot and promotes its shadow entry, if any,
// into the active slot.
func (sb *Scoreboard) Retire(fu FU) {
	s := &sb.units[fu]
	if s.shadowBusy {
		s.active, s.busy = s.shadow, true
		s.shadow, s.shadowBusy = FUEntry{}, false
		return
	}
	s.active, s.busy = FUEntry{}, false
}

// ReadsRegister reports whether any reservation, active or shadow, on
// either functional unit names r as a source operand. Issue consults it
// for the WAR check against in-flight instructions.
func (sb *Scoreboard) ReadsRegister(r uint8) bool {
	for i := range sb.units {
		s := &sb.units[i]
		if s.busy && entryReads(s.active, r) {
			return true
		}
		if s.shadowBusy && entryReads(s.shadow, r) {
			return true
		}
	}
	return false
}

func entryReads(e FUEntry, r uint8) bool {
	return (e.HasFJ && e.FJ == r) || (e.HasFK && e.FK == r)
}

// Producer reports which functional unit, if any, currently holds a
// reservation for register r (as either its active or shadow entry's
// destination). Used to populate q_j/q_k at issue time.
func (sb *Scoreboard) Producer(r uint8) (FU, bool) {
	for fu := FUALU; fu <= FUALUB; fu++ {
		s := &sb.units[fu]
		if s.busy && s.active.HasFI && s.active.FI == r {
			return fu, true
		}
		if s.shadowBusy && s.shadow.HasFI && s.shadow.FI == r {
			return fu, true
		}
	}
	return 0, false
}
