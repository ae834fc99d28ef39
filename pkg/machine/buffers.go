package machine

import "github.com/abonner/mipssim/pkg/inst"

// Entry is one instruction's pipeline envelope as it travels through
// Pre-Issue, an execution queue, and a Post-* buffer. Addr and Result
// are populated only once the owning instruction reaches the stage that
// computes them.
type Entry struct {
	Inst   inst.Instruction
	Addr   int32 // effective memory address, MEM-path entries only
	Result int32 // computed value, valid once an exec stage has run
}

// Buffer is Pre-Issue: an ordered, capacity-bound sequence from which
// entries may be removed from any position, not just the front, because
// Issue may skip over an entry to issue a later one (spec §4.5). Every
// read other stages perform targets the committed view; a stage mutates
// only the pending view, which commit() promotes at end-of-cycle (spec
// §4.3).
type Buffer struct {
	cap       int
	committed []Entry
	pending   []Entry
	removed   []bool // removed[i] marks committed[i] as drained this cycle
}

// NewBuffer builds an empty Buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{cap: capacity}
}

// Size, IsEmpty, IsFull and Peek all read the committed view.
func (b *Buffer) Size() int     { return len(b.committed) }
func (b *Buffer) IsEmpty() bool { return len(b.committed) == 0 }
func (b *Buffer) IsFull() bool  { return len(b.committed) >= b.cap }

func (b *Buffer) Peek(i int) (Entry, bool) {
	if i < 0 || i >= len(b.committed) {
		return Entry{}, false
	}
	return b.committed[i], true
}

// PendingSize reports how many entries remain staged in the pending
// view once already-marked removals are accounted for. Fetch uses this
// to decide whether there is still room to append.
func (b *Buffer) PendingSize() int {
	n := len(b.pending)
	for i := 0; i < len(b.removed) && i < len(b.pending); i++ {
		if b.removed[i] {
			n--
		}
	}
	return n
}

func (b *Buffer) PendingFull() bool { return b.PendingSize() >= b.cap }

// PendingAt returns the pending-view entry at index i, including
// entries appended earlier this same cycle. Fetch's branch hazard scan
// uses it so a writer it fetched itself moments ago still blocks the
// branch.
func (b *Buffer) PendingAt(i int) (Entry, bool) {
	if i < 0 || i >= len(b.pending) {
		return Entry{}, false
	}
	return b.pending[i], true
}

// Append adds e to the pending tail, the form Fetch uses to grow
// Pre-Issue. Returns false without mutating if the pending view is at
// capacity.
func (b *Buffer) Append(e Entry) bool {
	if b.PendingFull() {
		return false
	}
	b.pending = append(b.pending, e)
	return true
}

// Remove marks the committed entry at index i as issued this cycle. The
// removal only takes effect at commit(); calling Remove does not shift
// any other index.
func (b *Buffer) Remove(i int) {
	if i >= 0 && i < len(b.removed) {
		b.removed[i] = true
	}
}

// startCycle seeds the pending view from the committed view, ready for
// this cycle's Append/Remove calls.
func (b *Buffer) startCycle() {
	b.pending = append([]Entry(nil), b.committed...)
	b.removed = make([]bool, len(b.committed))
}

// commit promotes pending to committed, dropping anything marked
// removed. Entries appended past the original committed length (i.e.
// Fetch's new arrivals) are never subject to removal this same cycle,
// since Issue only ever acts on the committed view it was handed at the
// start of the cycle.
func (b *Buffer) commit() {
	var next []Entry
	for i, e := range b.pending {
		if i < len(b.removed) && b.removed[i] {
			continue
		}
		next = append(next, e)
	}
	b.committed = next
}

// Queue is Pre-ALU / Pre-ALU-B / Pre-MEM: a strict head-to-tail FIFO.
// Issue enqueues at the tail; the owning execution stage dequeues the
// head. Within one cycle Issue's enqueue always runs first (stage order
// is Fetch, Issue, ALU, ALU-B, MEM, WB), so the committed head is always
// still at pending index 0 when the execution stage dequeues it.
type Queue struct {
	cap       int
	committed []Entry
	pending   []Entry
}

// NewQueue builds an empty Queue with the given capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{cap: capacity}
}

func (q *Queue) Size() int     { return len(q.committed) }
func (q *Queue) IsEmpty() bool { return len(q.committed) == 0 }
func (q *Queue) IsFull() bool  { return len(q.committed) >= q.cap }

// PendingFull reports whether the pending view is already at capacity,
// the structural check Issue uses before enqueuing another entry.
func (q *Queue) PendingFull() bool { return len(q.pending) >= q.cap }

func (q *Queue) Peek(i int) (Entry, bool) {
	if i < 0 || i >= len(q.committed) {
		return Entry{}, false
	}
	return q.committed[i], true
}

// Front is Peek(0).
func (q *Queue) Front() (Entry, bool) { return q.Peek(0) }

// Enqueue appends e to the pending tail. Returns false without mutating
// if the pending view is already at capacity.
func (q *Queue) Enqueue(e Entry) bool {
	if len(q.pending) >= q.cap {
		return false
	}
	q.pending = append(q.pending, e)
	return true
}

// DequeueFront removes the pending head, which is the committed head as
// long as no reordering enqueue has happened first this cycle.
func (q *Queue) DequeueFront() (Entry, bool) {
	if len(q.pending) == 0 {
		return Entry{}, false
	}
	e := q.pending[0]
	q.pending = q.pending[1:]
	return e, true
}

func (q *Queue) startCycle() {
	q.pending = append([]Entry(nil), q.committed...)
}

func (q *Queue) commit() {
	q.committed = q.pending
}

// Slot is a Post-* buffer: a single-entry handoff from an execution
// stage to Write-Back. The pending view is reset empty at the start of
// every cycle rather than seeded from committed — an execution stage
// either fills it this cycle or it stays empty — because Write-Back
// always drains whatever was committed before the next commit happens
// (spec §4.6's "the prior occupant is assumed to have been drained by
// WB this cycle").
type Slot struct {
	committed      Entry
	committedValid bool
	pending        Entry
	pendingValid   bool
}

// NewSlot builds an empty Slot.
func NewSlot() *Slot { return &Slot{} }

// Committed returns the entry Write-Back should drain this cycle, if
// any.
func (s *Slot) Committed() (Entry, bool) { return s.committed, s.committedValid }

// IsEmpty reports whether the committed view holds no entry.
func (s *Slot) IsEmpty() bool { return !s.committedValid }

// Set fills the pending view, overwriting whatever a previous call this
// cycle left there.
func (s *Slot) Set(e Entry) {
	s.pending, s.pendingValid = e, true
}

func (s *Slot) startCycle() {
	s.pending, s.pendingValid = Entry{}, false
}

func (s *Slot) commit() {
	s.committed, s.committedValid = s.pending, s.pendingValid
}
