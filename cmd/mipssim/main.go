package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abonner/mipssim/pkg/inst"
	"github.com/abonner/mipssim/pkg/loader"
	"github.com/abonner/mipssim/pkg/machine"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	var input string
	var output string
	var maxCycles int
	var trace bool

	rootCmd := &cobra.Command{
		Use:   "mipssim",
		Short: "cycle-accurate two-issue out-of-order MIPS32 pipeline simulator",
	}
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "", "program image file (required)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	rootCmd.MarkPersistentFlagRequired("input")

	disCmd := &cobra.Command{
		Use:   "dis",
		Short: "disassemble a program image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInputOutput(input, output, func(img *loader.Image, w io.Writer) error {
				return runDis(img, w)
			})
		},
	}

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "simulate a program image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInputOutput(input, output, func(img *loader.Image, w io.Writer) error {
				return runSim(img, w, maxCycles, trace)
			})
		},
	}
	simCmd.Flags().IntVar(&maxCycles, "max-cycles", 1000, "safety bound on simulated cycles")
	simCmd.Flags().BoolVar(&trace, "trace", false, "also log each cycle's snapshot to stderr")

	disSimCmd := &cobra.Command{
		Use:   "dis_sim",
		Short: "disassemble, then simulate, the same program image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInputOutput(input, output, func(img *loader.Image, w io.Writer) error {
				if err := runDis(img, w); err != nil {
					return err
				}
				return runSim(img, w, maxCycles, trace)
			})
		},
	}
	disSimCmd.Flags().IntVar(&maxCycles, "max-cycles", 1000, "safety bound on simulated cycles")
	disSimCmd.Flags().BoolVar(&trace, "trace", false, "also log each cycle's snapshot to stderr")

	rootCmd.AddCommand(disCmd, simCmd, disSimCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func withInputOutput(input, output string, fn func(*loader.Image, io.Writer) error) error {
	fp, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("mipssim: %w", err)
	}
	defer fp.Close()

	img, err := loader.Load(fp)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if output != "" {
		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("mipssim: %w", err)
		}
		defer out.Close()
		w = out
	}
	return fn(img, w)
}

func runDis(img *loader.Image, w io.Writer) error {
	for _, pc := range img.Order {
		in := img.Instructions[pc]
		fmt.Fprintf(w, "%s\t%d\t%s\n", inst.FormatWord(in.Word), pc, in.Disassemble())
	}
	// Data words render unsplit: the raw 32-bit pattern, the address, and
	// the signed value.
	for _, addr := range img.DataOrder {
		v := img.Data[addr]
		fmt.Fprintf(w, "%032b\t%d\t%d\n", uint32(v), addr, v)
	}
	return nil
}

func runSim(img *loader.Image, w io.Writer, maxCycles int, trace bool) error {
	m := machine.New(img)
	runErr := m.Run(maxCycles, func(m *machine.Machine) {
		snap := m.Snapshot()
		fmt.Fprint(w, snap)
		if trace {
			fmt.Fprint(os.Stderr, snap)
		}
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "mipssim: fatal at cycle %d: %v\n", m.Cycle, runErr)
		os.Exit(1)
	}
	return nil
}
