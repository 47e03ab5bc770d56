package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grsbridge/internal/bridge"
	"grsbridge/internal/diagfmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file|-]",
	Short: "Print engine tokens",
	Long:  `Tokenize prints the engine's tokens of the input`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("ranges", "", "token range space (bytes|chars), default [bridge].token_ranges")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	rangesFlag, err := cmd.Flags().GetString("ranges")
	if err != nil {
		return fmt.Errorf("failed to get ranges flag: %w", err)
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()
	var extra []bridge.Option
	if rangesFlag != "" {
		mode, err := diagfmt.ParseTokenRanges(rangesFlag)
		if err != nil {
			return err
		}
		extra = append(extra, bridge.WithTokenRanges(mode))
	}
	b, err := a.bridge(extra...)
	if err != nil {
		return err
	}
	text, err := readInput(inputArg(args))
	if err != nil {
		return err
	}

	var tokens []diagfmt.TokenRecord
	err = a.timer.Track("tokenize", func() error {
		var tokErr error
		tokens, tokErr = b.Tokenize(a.ctx, text)
		return tokErr
	})
	if err != nil {
		return err
	}

	// Выводим токены в выбранном формате
	switch strings.ToLower(format) {
	case "pretty":
		return writeTokensPretty(cmd.OutOrStdout(), tokens)
	case "json":
		return diagfmt.WriteJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTokensPretty(w io.Writer, tokens []diagfmt.TokenRecord) error {
	for _, tok := range tokens {
		flags := make([]string, 0, 2)
		if tok.Greek {
			flags = append(flags, "greek")
		}
		if tok.Punct {
			flags = append(flags, "punct")
		}
		if _, err := fmt.Fprintf(w, "%4d %-12s %q %s\n", tok.Index, tok.Range, tok.Text, strings.Join(flags, ",")); err != nil {
			return err
		}
	}
	return nil
}
