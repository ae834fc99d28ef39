package main

import (
	"strings"
	"testing"

	"github.com/abonner/mipssim/pkg/loader"
)

func TestRunDisRendersInstructionsAndData(t *testing.T) {
	image := strings.Join([]string{
		"00000000001000100001100000100000", // ADD R3, R1, R2
		"00000001101000000000000000001101", // BREAK
		"11111111111111111111111111111011", // -5
	}, "\n")

	img, err := loader.Load(strings.NewReader(image))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var out strings.Builder
	if err := runDis(img, &out); err != nil {
		t.Fatalf("runDis: %v", err)
	}

	want := "000000 00001 00010 00011 00000 100000\t64\tADD R3, R1, R2\n" +
		"000000 01101 00000 00000 00000 001101\t68\tBREAK\n" +
		"11111111111111111111111111111011\t72\t-5\n"
	if out.String() != want {
		t.Errorf("runDis output:\n%q\nwant:\n%q", out.String(), want)
	}
}
