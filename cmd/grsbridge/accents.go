package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grsbridge/internal/rpc"
)

var monotonicCmd = &cobra.Command{
	Use:   "monotonic [file|-]",
	Short: "Convert polytonic text to monotonic",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMonotonic,
}

var syllabifyCmd = &cobra.Command{
	Use:   "syllabify [flags] [file|-]",
	Short: "Split text into syllables",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSyllabify,
}

func init() {
	syllabifyCmd.Flags().String("separator", rpc.DefaultSeparator, "string placed between syllables")
}

func runMonotonic(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()
	b, err := a.bridge()
	if err != nil {
		return err
	}
	text, err := readInput(inputArg(args))
	if err != nil {
		return err
	}
	var out string
	err = a.timer.Track("to_monotonic", func() error {
		var convErr error
		out, convErr = b.ToMonotonic(a.ctx, text)
		return convErr
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func runSyllabify(cmd *cobra.Command, args []string) error {
	separator, err := cmd.Flags().GetString("separator")
	if err != nil {
		return fmt.Errorf("failed to get separator flag: %w", err)
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()
	b, err := a.bridge()
	if err != nil {
		return err
	}
	text, err := readInput(inputArg(args))
	if err != nil {
		return err
	}
	var out string
	err = a.timer.Track("syllabify", func() error {
		var sylErr error
		out, sylErr = b.Syllabify(a.ctx, text, separator)
		return sylErr
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
