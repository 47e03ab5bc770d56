package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grsbridge/internal/bridge"
)

var dtsCmd = &cobra.Command{
	Use:   "dts",
	Short: "Print TypeScript declarations of the WebAssembly module",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("failed to get output flag: %w", err)
		}
		decl := bridge.TypeScriptDeclarations()
		if out == "" || out == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), decl)
			return err
		}
		if err := os.WriteFile(out, []byte(decl), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		return nil
	},
}

func init() {
	dtsCmd.Flags().StringP("output", "o", "", "write declarations to a file instead of stdout")
}
