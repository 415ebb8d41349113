package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hnguye18/um/pkg/inst"
	"github.com/hnguye18/um/pkg/report"
	"github.com/hnguye18/um/pkg/um"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "um [program.um]",
		Short: "um runs universal machine program images",
		Args:  cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(args[0])
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug diagnostics")

	// run command: same as invoking the root with a path, kept so that
	// scripts can be explicit.
	runCmd := &cobra.Command{
		Use:   "run [program.um]",
		Short: "Execute a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(args[0])
		},
	}

	// disasm command
	disasmCmd := &cobra.Command{
		Use:   "disasm [program.um]",
		Short: "Print a listing of a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := loadImage(args[0])
			if err != nil {
				return err
			}
			for i, w := range words {
				fmt.Printf("%8d  %08x  %s\n", i, w, inst.Disassemble(w))
			}
			return nil
		},
	}

	// info command
	var jsonOut bool

	infoCmd := &cobra.Command{
		Use:   "info [program.um]",
		Short: "Summarize a program image: word count and opcode census",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := loadImage(args[0])
			if err != nil {
				return err
			}
			census := report.Scan(words)
			if jsonOut {
				return report.WriteJSON(os.Stdout, census)
			}
			report.WriteTable(os.Stdout, census)
			return nil
		},
	}
	infoCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")

	rootCmd.AddCommand(runCmd, disasmCmd, infoCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadImage opens and decodes a program image file.
func loadImage(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	words, err := um.ReadImage(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.Debugf("um: loaded %d words from %s", len(words), path)
	return words, nil
}

// runProgram executes the image at path against the process streams.
func runProgram(path string) error {
	words, err := loadImage(path)
	if err != nil {
		return err
	}
	machine := um.New(words, os.Stdin, os.Stdout)
	if err := machine.Run(); err != nil {
		log.WithError(err).Debugf("um: fatal condition; machine %s", machine)
		return err
	}
	return nil
}
