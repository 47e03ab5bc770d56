package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file|-]",
	Short: "Apply engine fixes",
	Long:  `Fix rewrites the input with every fix of the selected rules and prints the result`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().String("rules", "", "comma-separated rule codes to enable (default: [rules] or all)")
	fixCmd.Flags().Bool("write", false, "rewrite the file in place instead of printing")
}

func runFix(cmd *cobra.Command, args []string) error {
	rulesFlag, err := cmd.Flags().GetString("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	path := inputArg(args)
	if write && path == stdinName {
		return fmt.Errorf("--write needs a file argument")
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
	text, err := readInput(path)
	if err != nil {
		return err
	}

	var fixed string
	err = a.timer.Track("fix", func() error {
		var fixErr error
		fixed, fixErr = b.Fix(a.ctx, text, optionsFromFlag(rulesFlag))
		return fixErr
	})
	if err != nil {
		return err
	}

	if write {
		if fixed == text {
			a.log.Info().Str("path", path).Msg("nothing to fix")
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		a.log.Info().Str("path", path).Msg("fixed")
		return nil
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), fixed)
	return err
}
