package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"grsbridge/internal/bridge"
	"grsbridge/internal/diagfmt"
	"grsbridge/internal/offset"
	"grsbridge/internal/version"
)

// errDiagnosticsFound makes scan exit non-zero under --exit-code.
var errDiagnosticsFound = errors.New("diagnostics found")

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [file...|-]",
	Short: "Report orthography diagnostics",
	Long:  `Scan runs the selected rules over each file (or stdin) and reports diagnostics with character ranges`,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers for multiple files (0=auto)")
	scanCmd.Flags().String("rules", "", "comma-separated rule codes to enable (default: [rules] or all)")
	scanCmd.Flags().Bool("exit-code", false, "exit with status 1 when diagnostics are reported")
}

type scanResult struct {
	path    string
	text    string
	records []diagfmt.Record
}

func runScan(cmd *cobra.Command, args []string) error {
	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	rulesFlag, err := cmd.Flags().GetString("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}
	exitCode, err := cmd.Flags().GetBool("exit-code")
	if err != nil {
		return fmt.Errorf("failed to get exit-code flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err := checkInputs(args); err != nil {
		return err
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()

	var extra []bridge.Option
	if format == "pretty" {
		// подчёркивание считается в символах
		extra = append(extra, bridge.WithUnits(offset.UnitsCodepoints))
	}
	b, err := a.bridge(extra...)
	if err != nil {
		return err
	}
	options := optionsFromFlag(rulesFlag)

	paths := args
	if len(paths) == 0 {
		paths = []string{stdinName}
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]scanResult, len(paths))
	idx := a.timer.Begin("scan")
	g, gctx := errgroup.WithContext(a.ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			text, err := readInput(path)
			if err != nil {
				return err
			}
			records, err := b.Scan(gctx, text, options)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			results[i] = scanResult{path: displayName(path), text: text, records: records}
			return nil
		})
	}
	err = g.Wait()
	a.timer.End(idx, fmt.Sprintf("%d input(s)", len(paths)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	switch format {
	case "pretty":
		for _, res := range results {
			total += len(res.records)
			if err := diagfmt.Pretty(out, res.text, res.records, diagfmt.PrettyOpts{Path: res.path, Color: a.color}); err != nil {
				return err
			}
		}
	case "json":
		outputs := make([]diagfmt.DiagnosticsOutput, 0, len(results))
		for _, res := range results {
			total += len(res.records)
			outputs = append(outputs, diagfmt.BuildDiagnosticsOutput(res.path, res.records))
		}
		var v any = outputs
		if len(outputs) == 1 {
			v = outputs[0]
		}
		if err := diagfmt.WriteJSON(out, v); err != nil {
			return err
		}
	case "sarif":
		inputs := make([]diagfmt.SarifInput, 0, len(results))
		for _, res := range results {
			total += len(res.records)
			inputs = append(inputs, diagfmt.SarifInput{Path: res.path, Records: res.records})
		}
		meta := diagfmt.SarifRunMeta{ToolName: "grsbridge", ToolVersion: version.Current().Version, Units: b.Units()}
		if err := diagfmt.Sarif(out, inputs, meta); err != nil {
			return err
		}
	}

	if exitCode && total > 0 {
		cmd.SilenceErrors = true
		fmt.Fprintf(os.Stderr, "%d diagnostic(s)\n", total)
		return errDiagnosticsFound
	}
	return nil
}

// optionsFromFlag turns "MDA,DW" into {"MDA":true,"DW":true}; "" means no override.
func optionsFromFlag(flag string) any {
	if strings.TrimSpace(flag) == "" {
		return nil
	}
	options := make(map[string]bool)
	for _, code := range strings.Split(flag, ",") {
		if code = strings.TrimSpace(code); code != "" {
			options[code] = true
		}
	}
	return options
}
