package main

// skintool: developer tool for skinswap
//
// runs every stage of the pipeline on single files (convert, grade, icon,
// portrait), reads and writes the texture containers, lists content ids and
// talks to a running daemon (console, stress)

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "skintool",
		Short:         "Convert, pack and inspect skins and texture containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		convertCmd(),
		gradeCmd(),
		iconCmd(),
		portraitCmd(),
		packCmd(),
		unpackCmd(),
		hashCmd(),
		idsCmd(),
		viewCmd(),
		consoleCmd(),
		stressCmd(),
	)

	return root
}
