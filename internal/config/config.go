// Package config loads grsbridge.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"grsbridge/internal/bridge"
	"grsbridge/internal/diagfmt"
	"grsbridge/internal/logging"
	"grsbridge/internal/offset"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "grsbridge.toml"

// Config is the decoded grsbridge.toml.
type Config struct {
	// Path is the file the config was read from, "" for defaults.
	Path string `toml:"-"`

	Engine EngineConfig `toml:"engine"`
	Bridge BridgeConfig `toml:"bridge"`
	// Rules are the default options when a host passes none.
	// nil (no [rules] table) keeps every default rule; an empty table
	// selects nothing.
	Rules map[string]bool `toml:"rules"`
	Log   LogConfig       `toml:"log"`
}

type EngineConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Dir     string   `toml:"dir"`
}

type BridgeConfig struct {
	Units       string `toml:"units"`
	TokenRanges string `toml:"token_ranges"`
	Codec       string `toml:"codec"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Engine: EngineConfig{Command: "grs-engine"},
		Bridge: BridgeConfig{
			Units:       offset.UnitsCodepoints.String(),
			TokenRanges: diagfmt.TokenRangesBytes.String(),
			Codec:       bridge.CodecJSON.String(),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads explicit if set, otherwise the first FileName above
// startDir, otherwise Default.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of Default. Unknown keys are reported as errors so
// that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := offset.ParseUnits(c.Bridge.Units); err != nil {
		return fmt.Errorf("[bridge].units: %w", err)
	}
	if _, err := diagfmt.ParseTokenRanges(c.Bridge.TokenRanges); err != nil {
		return fmt.Errorf("[bridge].token_ranges: %w", err)
	}
	if _, err := bridge.ParseCodec(c.Bridge.Codec); err != nil {
		return fmt.Errorf("[bridge].codec: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("[log].level: %w", err)
	}
	return nil
}

// BridgeOptions converts the [bridge] and [rules] tables into bridge options.
func (c Config) BridgeOptions(log zerolog.Logger) ([]bridge.Option, error) {
	units, err := offset.ParseUnits(c.Bridge.Units)
	if err != nil {
		return nil, err
	}
	ranges, err := diagfmt.ParseTokenRanges(c.Bridge.TokenRanges)
	if err != nil {
		return nil, err
	}
	opts := []bridge.Option{
		bridge.WithUnits(units),
		bridge.WithTokenRanges(ranges),
		bridge.WithLogger(log),
	}
	if c.Rules != nil {
		opts = append(opts, bridge.WithDefaultOptions(c.Rules))
	}
	return opts, nil
}

// Codec returns the configured host codec.
func (c Config) Codec() (bridge.Codec, error) {
	return bridge.ParseCodec(c.Bridge.Codec)
}

// Logging returns the logger settings; level overrides [log].level when set.
func (c Config) Logging(level string) (logging.Config, error) {
	if level == "" {
		level = c.Log.Level
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return logging.Config{}, err
	}
	file := c.Log.File
	if file != "" && c.Path != "" && !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(c.Path), file)
	}
	return logging.Config{File: file, Level: lvl}, nil
}
