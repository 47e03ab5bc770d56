package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"grsbridge/internal/bridge"
	"grsbridge/internal/config"
	"grsbridge/internal/engine/proc"
	"grsbridge/internal/logging"
	"grsbridge/internal/observ"
	"grsbridge/internal/prof"
)

// app is the per-invocation state shared by the subcommands.
type app struct {
	ctx     context.Context
	cfg     config.Config
	log     zerolog.Logger
	timer   *observ.Timer
	profile *prof.Session
	timings bool
	color   bool
}

// setup loads the config, builds the logger and reads the global flags.
func setup(cmd *cobra.Command) (*app, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	levelFlag, err := flags.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	engineFlag, err := flags.GetString("engine")
	if err != nil {
		return nil, fmt.Errorf("failed to get engine flag: %w", err)
	}

	var profOpts prof.Options
	if profOpts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if profOpts.Mem, err = flags.GetString("memprofile"); err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if profOpts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	useColor, err := resolveColor(colorFlag)
	if err != nil {
		return nil, err
	}
	color.NoColor = !useColor

	timer := observ.NewTimer()
	idx := timer.Begin("config")
	cfg, err := config.Discover(".", configPath)
	if err != nil {
		return nil, err
	}
	if engineFlag != "" {
		cfg.Engine.Command = engineFlag
		cfg.Engine.Args = nil
	}
	timer.End(idx, cfg.Path)

	logCfg, err := cfg.Logging(levelFlag)
	if err != nil {
		return nil, err
	}
	logCfg.Console = logCfg.File == ""
	logCfg.Color = useColor && isTerminal(os.Stderr)
	ctx := logging.New(cmd.Context(), logCfg)
	log := *logging.Get(ctx)
	if cfg.Path != "" {
		log.Debug().Str("path", cfg.Path).Msg("config loaded")
	}

	session, err := prof.Start(profOpts)
	if err != nil {
		return nil, err
	}

	return &app{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		timer:   timer,
		profile: session,
		timings: timings,
		color:   useColor,
	}, nil
}

func resolveColor(flag string) (bool, error) {
	switch strings.ToLower(flag) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stdout), nil
	}
	return false, fmt.Errorf("unknown color mode %q (must be auto, on or off)", flag)
}

func (a *app) engine() *proc.Engine {
	e := proc.New(a.cfg.Engine.Command, a.cfg.Engine.Args, a.log)
	e.Dir = a.cfg.Engine.Dir
	return e
}

// bridge builds a Bridge from the config; extra options win over it.
func (a *app) bridge(extra ...bridge.Option) (*bridge.Bridge, error) {
	opts, err := a.cfg.BridgeOptions(a.log)
	if err != nil {
		return nil, err
	}
	return bridge.New(a.engine(), append(opts, extra...)...), nil
}

// finish stops profiling and prints timings to stderr when requested.
func (a *app) finish() {
	if err := a.profile.Stop(); err != nil {
		a.log.Error().Err(err).Msg("failed to write profiles")
	}
	a.timer.Log(a.log)
	if a.timings {
		fmt.Fprint(os.Stderr, a.timer.Summary())
	}
}
