package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the engine rules and their option codes",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runRules(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()

	infos := rules.Describe()
	enabled := make(map[string]bool)
	for _, r := range rules.NewSelector(a.log).Select(defaultOptions(a.cfg.Rules)) {
		enabled[r.Code()] = true
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		return diagfmt.WriteJSON(out, infos)
	case "pretty":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	codeWidth := 0
	for _, info := range infos {
		codeWidth = max(codeWidth, runewidth.StringWidth(info.Code))
	}
	on := color.New(color.FgGreen).SprintFunc()
	off := color.New(color.Faint).SprintFunc()
	for _, info := range infos {
		mark := off("-")
		if enabled[info.Code] {
			mark = on("+")
		}
		code := runewidth.FillRight(info.Code, codeWidth)
		if _, err := fmt.Fprintf(out, "%s %s  %-28s %s\n", mark, code, info.Kind, info.Title); err != nil {
			return err
		}
	}
	return nil
}

// defaultOptions keeps a nil map as "no options" for the selector.
func defaultOptions(m map[string]bool) any {
	if m == nil {
		return nil
	}
	return m
}
