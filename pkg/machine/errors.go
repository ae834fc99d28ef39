package machine

import (
	"errors"
	"fmt"
)

// RegisterOutOfRange indicates an access to a register index outside
// [0,32).
var RegisterOutOfRange = errors.New("machine: register out of range")

// AddressOutOfRange indicates a data segment access outside the range
// the program image populated.
var AddressOutOfRange = errors.New("machine: address out of range")

// InvariantViolation indicates a scoreboard or buffer invariant was
// found broken. This should never happen; when it does, it is a bug in
// the pipeline engine rather than in the simulated program.
type InvariantViolation struct {
	Cycle int
	What  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("machine: invariant violated at cycle %d: %s", e.Cycle, e.What)
}

// FetchPastEnd indicates Fetch reached a PC beyond the loaded
// instruction segment without ever decoding a BREAK.
type FetchPastEnd struct {
	PC uint32
}

func (e *FetchPastEnd) Error() string {
	return fmt.Sprintf("machine: fetch past end of instruction segment at PC=%d", e.PC)
}
