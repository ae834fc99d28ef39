package machine

import (
	"testing"

	"github.com/abonner/mipssim/pkg/inst"
)

func TestBufferAppendRemoveCommit(t *testing.T) {
	b := NewBuffer(2)
	b.startCycle()
	if !b.Append(Entry{Inst: inst.Instruction{Op: inst.NOP}}) {
		t.Fatal("Append should succeed under capacity")
	}
	if !b.Append(Entry{Inst: inst.Instruction{Op: inst.NOP}}) {
		t.Fatal("Append should succeed up to capacity")
	}
	if b.Append(Entry{Inst: inst.Instruction{Op: inst.NOP}}) {
		t.Fatal("Append should fail once pending is at capacity")
	}
	b.commit()
	if b.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", b.Size())
	}

	b.startCycle()
	b.Remove(0)
	b.commit()
	if b.Size() != 1 {
		t.Fatalf("Size() after Remove(0) = %d, want 1", b.Size())
	}
}

func TestBufferRemoveDoesNotAffectOtherIndicesUntilCommit(t *testing.T) {
	b := NewBuffer(4)
	b.startCycle()
	b.Append(Entry{Inst: inst.Instruction{Op: inst.NOP, PC: 1}})
	b.Append(Entry{Inst: inst.Instruction{Op: inst.NOP, PC: 2}})
	b.commit()

	b.startCycle()
	b.Remove(0)
	if e, ok := b.Peek(1); !ok || e.Inst.PC != 2 {
		t.Fatalf("Peek(1) should still read the committed view mid-cycle, got %+v, %v", e, ok)
	}
	b.commit()
	if got, ok := b.Peek(0); !ok || got.Inst.PC != 2 {
		t.Fatalf("after commit, surviving entry should be at index 0: got %+v, %v", got, ok)
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(2)
	q.startCycle()
	q.Enqueue(Entry{Inst: inst.Instruction{PC: 1}})
	q.Enqueue(Entry{Inst: inst.Instruction{PC: 2}})
	if q.Enqueue(Entry{Inst: inst.Instruction{PC: 3}}) {
		t.Fatal("Enqueue should fail once pending is at capacity")
	}
	q.commit()

	q.startCycle()
	e, ok := q.DequeueFront()
	if !ok || e.Inst.PC != 1 {
		t.Fatalf("DequeueFront() = %+v, %v, want PC=1", e, ok)
	}
	q.commit()
	if q.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", q.Size())
	}
}

func TestSlotResetsEachCycle(t *testing.T) {
	s := NewSlot()
	s.startCycle()
	s.Set(Entry{Inst: inst.Instruction{PC: 7}})
	s.commit()
	if e, ok := s.Committed(); !ok || e.Inst.PC != 7 {
		t.Fatalf("Committed() = %+v, %v, want PC=7", e, ok)
	}

	// Next cycle: nobody calls Set, so the slot should go empty at commit.
	s.startCycle()
	s.commit()
	if _, ok := s.Committed(); ok {
		t.Error("Slot should be empty after a cycle with no Set call")
	}
}
