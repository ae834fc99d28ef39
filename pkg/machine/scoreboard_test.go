package machine

import "testing"

func TestScoreboardAllocateShadowAndRetire(t *testing.T) {
	var sb Scoreboard
	if sb.Busy(FUALU) {
		t.Fatal("fresh scoreboard should not be busy")
	}

	first := FUEntry{FI: 1, HasFI: true}
	second := FUEntry{FI: 2, HasFI: true}
	third := FUEntry{FI: 3, HasFI: true}

	if !sb.Allocate(FUALU, first) {
		t.Fatal("Allocate should succeed into the active slot")
	}
	if !sb.Allocate(FUALU, second) {
		t.Fatal("Allocate should succeed into the shadow slot")
	}
	if sb.Allocate(FUALU, third) {
		t.Fatal("Allocate should fail once both slots are occupied")
	}

	active, ok := sb.Active(FUALU)
	if !ok || active.FI != 1 {
		t.Fatalf("Active() = %+v, %v, want FI=1", active, ok)
	}

	sb.Retire(FUALU)
	active, ok = sb.Active(FUALU)
	if !ok || active.FI != 2 {
		t.Fatalf("after Retire, Active() = %+v, %v, want FI=2 (promoted shadow)", active, ok)
	}

	sb.Retire(FUALU)
	if sb.Busy(FUALU) {
		t.Error("scoreboard should be idle after retiring the last entry")
	}
}

func TestScoreboardProducer(t *testing.T) {
	var sb Scoreboard
	sb.Allocate(FUALUB, FUEntry{FI: 9, HasFI: true})

	fu, ok := sb.Producer(9)
	if !ok || fu != FUALUB {
		t.Fatalf("Producer(9) = %v, %v, want FUALUB, true", fu, ok)
	}
	if _, ok := sb.Producer(1); ok {
		t.Error("Producer(1) should report no producer")
	}
}
