package inst

import (
	"reflect"
	"testing"
)

func TestWriteReg(t *testing.T) {
	tests := []struct {
		name     string
		in       Instruction
		wantReg  uint8
		wantHas  bool
	}{
		{"ADD writes Dest", Instruction{Op: ADD, Dest: 5}, 5, true},
		{"LW writes Dest", Instruction{Op: LW, Dest: 9}, 9, true},
		{"SW has no write register", Instruction{Op: SW, Dest: 9}, 0, false},
		{"BEQ has no write register", Instruction{Op: BEQ, Dest: 9}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, has := tc.in.WriteReg()
			if has != tc.wantHas || (has && reg != tc.wantReg) {
				t.Errorf("WriteReg() = (%d, %v), want (%d, %v)", reg, has, tc.wantReg, tc.wantHas)
			}
		})
	}
}

func TestReadRegs(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want []uint8
	}{
		{"SW reads base and data source", Instruction{Op: SW, SrcS: 1, Dest: 2}, []uint8{1, 2}},
		{"ADD reg form reads both", Instruction{Op: ADD, SrcS: 1, SrcTIsReg: true, Third: 2}, []uint8{1, 2}},
		{"ADDI reads only SrcS", Instruction{Op: ADDI, SrcS: 1, Third: 5}, []uint8{1}},
		{"SLL reads only SrcS (shift amount isn't a register)", Instruction{Op: SLL, SrcS: 4, Third: 2}, []uint8{4}},
		{"J reads nothing", Instruction{Op: J}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.ReadRegs()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ReadRegs() = %v, want %v", got, tc.want)
			}
		})
	}
}
