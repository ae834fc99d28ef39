package machine

import (
	"errors"
	"testing"
)

func TestDataSegmentReadWrite(t *testing.T) {
	ds := NewDataSegment(100, []int32{1, 2, 3})
	v, err := ds.Read(104)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 2 {
		t.Errorf("Read(104) = %d, want 2", v)
	}
	if err := ds.Write(108, 99); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, _ = ds.Read(108)
	if v != 99 {
		t.Errorf("Read(108) after Write = %d, want 99", v)
	}
}

func TestDataSegmentOutOfRange(t *testing.T) {
	ds := NewDataSegment(100, []int32{1, 2, 3})
	tests := []struct {
		name string
		addr uint32
	}{
		{"below base", 96},
		{"beyond loaded range", 112},
		{"unaligned", 101},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ds.Read(tc.addr); !errors.Is(err, AddressOutOfRange) {
				t.Errorf("Read(%d) error = %v, want AddressOutOfRange", tc.addr, err)
			}
		})
	}
}

func TestDataSegmentSnapshotIsACopy(t *testing.T) {
	ds := NewDataSegment(100, []int32{1, 2, 3})
	snap := ds.Snapshot()
	snap[0] = 999
	v, _ := ds.Read(100)
	if v != 1 {
		t.Errorf("mutating a snapshot affected the underlying segment: Read(100) = %d, want 1", v)
	}
}
