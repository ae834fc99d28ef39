package machine

import "fmt"

// DataSegment is word-addressable memory over the contiguous range the
// program image populated, starting immediately after the BREAK word
// (spec §4.2). It is not a general address space: any address outside
// the loaded range is a fatal AddressOutOfRange.
type DataSegment struct {
	base   uint32
	values []int32
}

// NewDataSegment builds a DataSegment of len(values) words starting at
// byte address base.
func NewDataSegment(base uint32, values []int32) *DataSegment {
	cp := make([]int32, len(values))
	copy(cp, values)
	return &DataSegment{base: base, values: cp}
}

func (ds *DataSegment) index(addr uint32) (int, error) {
	if addr%4 != 0 {
		return 0, fmt.Errorf("%w: address 0x%x is not word-aligned", AddressOutOfRange, addr)
	}
	if addr < ds.base {
		return 0, fmt.Errorf("%w: address 0x%x below data segment base 0x%x", AddressOutOfRange, addr, ds.base)
	}
	i := int((addr - ds.base) / 4)
	if i >= len(ds.values) {
		return 0, fmt.Errorf("%w: address 0x%x beyond loaded data segment", AddressOutOfRange, addr)
	}
	return i, nil
}

// Read returns the signed word at addr.
func (ds *DataSegment) Read(addr uint32) (int32, error) {
	i, err := ds.index(addr)
	if err != nil {
		return 0, err
	}
	return ds.values[i], nil
}

// Write stores v at addr.
func (ds *DataSegment) Write(addr uint32, v int32) error {
	i, err := ds.index(addr)
	if err != nil {
		return err
	}
	ds.values[i] = v
	return nil
}

// Base returns the address of the first data word.
func (ds *DataSegment) Base() uint32 { return ds.base }

// Len returns the number of data words loaded.
func (ds *DataSegment) Len() int { return len(ds.values) }

// Snapshot returns a copy of the current data words, in address order,
// for the snapshot formatter.
func (ds *DataSegment) Snapshot() []int32 {
	cp := make([]int32, len(ds.values))
	copy(cp, ds.values)
	return cp
}
