// Package loader reads a program image — a text file of 32-character
// '0'/'1' lines — and splits it into the decoded instruction segment and
// the raw data segment, per spec §6. It is an external collaborator of
// the core engine (spec §1): the core never reads files itself.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abonner/mipssim/pkg/inst"
)

const (
	wordBits  = 32
	wordBytes = 4
	// StartPC is where the first instruction of every program image loads.
	StartPC = 64
)

// Image is a decoded program: the instruction segment (everything up to
// and including the BREAK word) and the data segment (everything after).
type Image struct {
	// Instructions is keyed by the PC each word was fetched at.
	Instructions map[uint32]inst.Instruction
	// Order lists instruction PCs in file order, for the `dis` CLI mode.
	Order []uint32
	// BreakPC is the PC of the BREAK word that ends the instruction segment.
	BreakPC uint32

	// Data is keyed by byte address, one entry per data word.
	Data map[uint32]int32
	// DataOrder lists data addresses in file order.
	DataOrder []uint32
	// DataBase is the address of the first data word (immediately after
	// the BREAK word).
	DataBase uint32
}

// Load reads a program image from r. Every instruction line is decoded
// eagerly; a *inst.DecodeError here is fatal exactly as a DecodeError
// encountered during Fetch would be (spec §4.11).
func Load(r io.Reader) (*Image, error) {
	img := &Image{
		Instructions: make(map[uint32]inst.Instruction),
		Data:         make(map[uint32]int32),
	}

	scanner := bufio.NewScanner(r)
	pc := uint32(StartPC)
	sawBreak := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		word, err := parseWord(line)
		if err != nil {
			return nil, fmt.Errorf("loader: line for PC=%d: %w", pc, err)
		}

		if !sawBreak {
			decoded, err := inst.Decode(word, pc)
			if err != nil {
				return nil, err
			}
			img.Instructions[pc] = decoded
			img.Order = append(img.Order, pc)
			if decoded.Op == inst.BREAK {
				sawBreak = true
				img.BreakPC = pc
				img.DataBase = pc + wordBytes
			}
		} else {
			img.Data[pc] = int32(word)
			img.DataOrder = append(img.DataOrder, pc)
		}
		pc += wordBytes
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !sawBreak {
		return nil, fmt.Errorf("loader: program image never reaches a BREAK instruction")
	}
	return img, nil
}

// parseWord validates and parses one 32-character '0'/'1' line, most
// significant bit first.
func parseWord(line string) (uint32, error) {
	if len(line) != wordBits {
		return 0, fmt.Errorf("expected a %d-character binary line, got %d characters", wordBits, len(line))
	}
	var word uint32
	for _, c := range line {
		word <<= 1
		switch c {
		case '0':
		case '1':
			word |= 1
		default:
			return 0, fmt.Errorf("non-binary character %q in line %q", c, line)
		}
	}
	return word, nil
}
