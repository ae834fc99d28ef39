package machine

import "fmt"

// NumRegisters is the size of the architectural register file. R0 is an
// ordinary register in this model; the program is assumed not to rely
// on hardware-enforced zero (spec §9 "R0 semantics").
const NumRegisters = 32

// Reservation is the functional unit, if any, a register is reserved
// for. A register is ready iff its Reservation is ReservationNone.
type Reservation int

const (
	ReservationNone Reservation = iota
	ReservationALU
	ReservationALUB
	ReservationMem
)

// RegisterFile is the architectural state: 32 signed 32-bit registers
// plus one reservation flag each. Reads and mutations are direct (the
// double-buffering that gives stages a committed/pending view lives one
// level up, in Machine, which holds two RegisterFile values).
type RegisterFile struct {
	values      [NumRegisters]int32
	reservation [NumRegisters]Reservation
}

func checkIndex(i uint8) error {
	if int(i) >= NumRegisters {
		return fmt.Errorf("%w: R%d", RegisterOutOfRange, i)
	}
	return nil
}

// Read returns the current value of register i.
func (rf *RegisterFile) Read(i uint8) (int32, error) {
	if err := checkIndex(i); err != nil {
		return 0, err
	}
	return rf.values[i], nil
}

// Write sets register i to v.
func (rf *RegisterFile) Write(i uint8, v int32) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	rf.values[i] = v
	return nil
}

// IsReady reports whether register i carries no reservation.
func (rf *RegisterFile) IsReady(i uint8) (bool, error) {
	if err := checkIndex(i); err != nil {
		return false, err
	}
	return rf.reservation[i] == ReservationNone, nil
}

// Mark reserves register i for the given functional unit. Mark is
// idempotent: marking an already-reserved register for the same unit is
// a no-op, but marking it for a different unit is a caller bug (at most
// one reservation can be live per register — spec §3 invariant 1) and
// panics rather than silently corrupting state.
func (rf *RegisterFile) Mark(i uint8, res Reservation) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	if cur := rf.reservation[i]; cur != ReservationNone && cur != res {
		panic(fmt.Sprintf("machine: R%d already reserved for %v, cannot mark for %v", i, cur, res))
	}
	rf.reservation[i] = res
	return nil
}

// Clear releases any reservation held on register i.
func (rf *RegisterFile) Clear(i uint8) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	rf.reservation[i] = ReservationNone
	return nil
}

// Snapshot returns a copy of the 32 register values, for the snapshot
// formatter.
func (rf *RegisterFile) Snapshot() [NumRegisters]int32 {
	return rf.values
}

func (r Reservation) String() string {
	switch r {
	case ReservationALU:
		return "ALU"
	case ReservationALUB:
		return "ALUB"
	case ReservationMem:
		return "MEM"
	default:
		return "none"
	}
}
