package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"grsbridge/internal/diagfmt"
)

const helperEnv = "GRSBRIDGE_CLI_HELPER"

type helperSpan struct {
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
}

type helperDiagnostic struct {
	Kind string      `msgpack:"kind"`
	Span helperSpan  `msgpack:"span"`
	Fix  *helperEdit `msgpack:"fix,omitempty"`
}

type helperEdit struct {
	Span        helperSpan `msgpack:"span"`
	Replacement string     `msgpack:"replacement"`
}

// TestHelperProcess plays the engine executable for the CLI tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) == "" {
		return
	}
	var req struct {
		Op   string `msgpack:"op"`
		Text string `msgpack:"text"`
	}
	data, _ := io.ReadAll(os.Stdin)
	if err := msgpack.Unmarshal(data, &req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	resp := map[string]any{}
	switch req.Op {
	case "check":
		// "σπιτι" без ударения в начале текста
		resp["diagnostics"] = []helperDiagnostic{{
			Kind: "MultisyllableNotAccented",
			Span: helperSpan{0, 10},
			Fix:  &helperEdit{Span: helperSpan{0, 10}, Replacement: "σπίτι"},
		}}
	case "fix":
		resp["error"] = "unsupported"
	case "to_monotonic":
		resp["text"] = strings.ReplaceAll(req.Text, "ὸ", "ό")
	case "syllabify":
		resp["syllables"] = []string{"σπί", "τι"}
	default:
		resp["error"] = "unsupported"
	}
	out, _ := msgpack.Marshal(resp)
	_, _ = os.Stdout.Write(out)
	os.Exit(0)
}

// runCLI executes the root command against a helper engine.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(helperEnv, "1")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "grsbridge.toml")
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("executable: %v", err)
	}
	cfg := fmt.Sprintf("[engine]\ncommand = %q\nargs = [\"-test.run=TestHelperProcess\", \"--\"]\n\n[log]\nlevel = \"off\"\n", exe)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--color", "off"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil); rootCmd.SetErr(nil) })
	err = rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestScanJSON(t *testing.T) {
	path := writeInput(t, "σπιτι μου")
	out, err := runCLI(t, "scan", "--format", "json", path)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var got diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Count != 1 || got.Diagnostics[0].Kind != "multisyllable_not_accented" {
		t.Fatalf("unexpected output %+v", got)
	}
	if r := got.Diagnostics[0].Range; r.Start != 0 || r.End != 5 {
		t.Fatalf("unexpected range %v", r)
	}
}

func TestFixFallsBackToCheck(t *testing.T) {
	path := writeInput(t, "σπιτι μου")
	out, err := runCLI(t, "fix", path)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if out != "σπίτι μου" {
		t.Fatalf("fix output %q", out)
	}
}

func TestSyllabify(t *testing.T) {
	path := writeInput(t, "σπίτι")
	out, err := runCLI(t, "syllabify", "--separator", "·", path)
	if err != nil {
		t.Fatalf("syllabify: %v", err)
	}
	if out != "σπί·τι\n" {
		t.Fatalf("syllabify output %q", out)
	}
}

func TestOptionsFromFlag(t *testing.T) {
	if optionsFromFlag("  ") != nil {
		t.Fatal("blank flag must not override options")
	}
	got, ok := optionsFromFlag("MDA, DW,,").(map[string]bool)
	if !ok || len(got) != 2 || !got["MDA"] || !got["DW"] {
		t.Fatalf("unexpected options %#v", got)
	}
}

func TestResolveColor(t *testing.T) {
	for flag, want := range map[string]bool{"on": true, "always": true, "off": false, "never": false} {
		got, err := resolveColor(flag)
		if err != nil || got != want {
			t.Errorf("resolveColor(%q) = %v, %v", flag, got, err)
		}
	}
	if _, err := resolveColor("sometimes"); err == nil {
		t.Fatal("expected error for unknown color mode")
	}
}

func TestCheckInputs(t *testing.T) {
	tests := []struct {
		paths []string
		ok    bool
	}{
		{nil, true},
		{[]string{"-"}, true},
		{[]string{"a.txt", "-", "b.txt"}, true},
		{[]string{"-", "a.txt", "-"}, false},
		{[]string{"-", "-"}, false},
	}
	for _, tt := range tests {
		err := checkInputs(tt.paths)
		if (err == nil) != tt.ok {
			t.Errorf("checkInputs(%q) = %v", tt.paths, err)
		}
	}
}

func TestScanRejectsRepeatedStdin(t *testing.T) {
	_, err := runCLI(t, "scan", "-", "-")
	if !errors.Is(err, errStdinTwice) {
		t.Fatalf("expected errStdinTwice, got %v", err)
	}
}

func TestReadInputRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readInput(path); err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Fatalf("expected UTF-8 error, got %v", err)
	}
}

func TestWriteTokensPretty(t *testing.T) {
	var buf bytes.Buffer
	err := writeTokensPretty(&buf, []diagfmt.TokenRecord{
		{Text: "Καλή", Index: 0, Greek: true},
		{Text: ",", Index: 1, Punct: true},
	})
	if err != nil {
		t.Fatalf("writeTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "greek") || !strings.HasSuffix(lines[1], "punct") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
