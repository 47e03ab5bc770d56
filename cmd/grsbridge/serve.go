package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grsbridge/internal/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bridge as JSON-RPC over stdio",
	Long: `Serve answers Content-Length framed JSON-RPC 2.0 requests on stdin/stdout.
Methods: scan, fix, tokenize, toMonotonic, syllabify, rules, shutdown, exit`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.finish()
	b, err := a.bridge()
	if err != nil {
		return err
	}

	codec, err := a.cfg.Codec()
	if err != nil {
		return err
	}

	a.log.Info().Str("engine", a.cfg.Engine.Command).Stringer("codec", codec).Msg("serving on stdio")
	server := rpc.NewServer(os.Stdin, os.Stdout, b, rpc.ServerOptions{Log: a.log, Codec: codec})
	if err := server.Run(a.ctx); err != nil {
		if errors.Is(err, rpc.ErrExit) {
			return nil
		}
		if errors.Is(err, rpc.ErrExitWithoutShutdown) {
			return fmt.Errorf("rpc exit without shutdown")
		}
		return err
	}
	return nil
}
