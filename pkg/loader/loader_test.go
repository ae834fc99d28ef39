package loader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/abonner/mipssim/pkg/inst"
)

// R-type opcode is all zeros; func=001101 is BREAK, and the all-zero
// word is NOP (spec.md §4.1).
const (
	funcBREAK = 0b001101
)

func line(word uint32) string {
	return fmt.Sprintf("%032b", word)
}

func TestLoadNOPThenBREAK(t *testing.T) {
	src := line(0) + "\n" + line(funcBREAK) + "\n"
	img, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(img.Order) != 2 {
		t.Fatalf("len(Order) = %d, want 2", len(img.Order))
	}
	if img.Instructions[StartPC].Op != inst.NOP {
		t.Errorf("PC=%d Op = %v, want NOP", StartPC, img.Instructions[StartPC].Op)
	}
	if img.Instructions[StartPC+4].Op != inst.BREAK {
		t.Errorf("PC=%d Op = %v, want BREAK", StartPC+4, img.Instructions[StartPC+4].Op)
	}
	if img.BreakPC != StartPC+4 {
		t.Errorf("BreakPC = %d, want %d", img.BreakPC, StartPC+4)
	}
	if img.DataBase != StartPC+8 {
		t.Errorf("DataBase = %d, want %d", img.DataBase, StartPC+8)
	}
	if len(img.Data) != 0 {
		t.Errorf("len(Data) = %d, want 0", len(img.Data))
	}
}

func TestLoadDataWords(t *testing.T) {
	src := line(funcBREAK) + "\n" + line(3) + "\n" + line(0xFFFFFFFF) + "\n"
	img, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(img.DataOrder) != 2 {
		t.Fatalf("len(DataOrder) = %d, want 2", len(img.DataOrder))
	}
	if got := img.Data[img.DataBase]; got != 3 {
		t.Errorf("Data[DataBase] = %d, want 3", got)
	}
	if got := img.Data[img.DataBase+4]; got != -1 {
		t.Errorf("Data[DataBase+4] = %d, want -1", got)
	}
}

func TestLoadMissingBreak(t *testing.T) {
	_, err := Load(strings.NewReader(line(0) + "\n"))
	if err == nil {
		t.Fatal("Load: expected error when no BREAK is present, got nil")
	}
}

func TestLoadMalformedLine(t *testing.T) {
	_, err := Load(strings.NewReader("not-binary\n"))
	if err == nil {
		t.Fatal("Load: expected error for a malformed line, got nil")
	}
}
