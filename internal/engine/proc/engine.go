package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"grsbridge/internal/fix"
	"grsbridge/internal/grs"
)

var (
	// ErrProtocol reports a child whose output is not a valid response.
	ErrProtocol = errors.New("engine protocol error")
	// ErrNoCommand is returned when the engine has no executable configured.
	ErrNoCommand = errors.New("engine command not configured")
)

// Engine runs an external engine executable per call.
type Engine struct {
	Command string
	Args    []string
	// Env is appended to the current environment.
	Env []string
	Dir string
	Log zerolog.Logger
}

var _ grs.Engine = (*Engine)(nil)

// New returns an Engine running command with args.
func New(command string, args []string, log zerolog.Logger) *Engine {
	return &Engine{Command: command, Args: args, Log: log}
}

func (e *Engine) Check(ctx context.Context, text string, rules []grs.Rule) ([]grs.Diagnostic, error) {
	resp, err := e.call(ctx, request{Op: opCheck, Text: text, Rules: ruleNames(rules)})
	if err != nil {
		return nil, err
	}
	out := make([]grs.Diagnostic, 0, len(resp.Diagnostics))
	for _, wd := range resp.Diagnostics {
		d, err := wd.diagnostic()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Fix asks the child to rewrite text. Children without a native fix op get
// a check whose fixes are applied locally.
func (e *Engine) Fix(ctx context.Context, text string, rules []grs.Rule) (string, error) {
	resp, err := e.call(ctx, request{Op: opFix, Text: text, Rules: ruleNames(rules)})
	if err == nil {
		return resp.Text, nil
	}
	var ce *childError
	if !errors.As(err, &ce) || ce.msg != errUnsupported {
		return "", err
	}
	e.Log.Debug().Str("command", e.Command).Msg("engine has no fix op, applying check fixes")
	diagnostics, err := e.Check(ctx, text, rules)
	if err != nil {
		return "", err
	}
	fixed, _, err := fix.Apply(text, diagnostics)
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return "", err
	}
	return fixed, nil
}

func (e *Engine) Tokenize(ctx context.Context, text string) ([]grs.Token, error) {
	resp, err := e.call(ctx, request{Op: opTokenize, Text: text})
	if err != nil {
		return nil, err
	}
	out := make([]grs.Token, 0, len(resp.Tokens))
	for _, t := range resp.Tokens {
		out = append(out, t.token())
	}
	return out, nil
}

func (e *Engine) ToMonotonic(ctx context.Context, text string) (string, error) {
	resp, err := e.call(ctx, request{Op: opToMonotonic, Text: text})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (e *Engine) Syllabify(ctx context.Context, text string) ([]string, error) {
	resp, err := e.call(ctx, request{Op: opSyllabify, Text: text})
	if err != nil {
		return nil, err
	}
	return resp.Syllables, nil
}

// childError is an error the child reported in its response.
type childError struct {
	op  op
	msg string
}

func (e *childError) Error() string {
	return fmt.Sprintf("engine %s: %s", e.op, e.msg)
}

func (e *Engine) call(ctx context.Context, req request) (*response, error) {
	if strings.TrimSpace(e.Command) == "" {
		return nil, ErrNoCommand
	}
	payload, err := msgpack.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Op, err)
	}

	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Dir = e.Dir
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	cmd.Stdin = bytes.NewReader(payload)
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	e.Log.Debug().
		Str("command", e.Command).
		Str("op", string(req.Op)).
		Int("text_bytes", len(req.Text)).
		Dur("elapsed", time.Since(start)).
		Msg("engine call")
	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s %s: %w", e.Command, req.Op, runErr)
		}
		return nil, fmt.Errorf("%s %s: %s: %w", e.Command, req.Op, msg, runErr)
	}

	var resp response
	if err := msgpack.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrProtocol, e.Command, req.Op, err)
	}
	if resp.Error != "" {
		return nil, &childError{op: req.Op, msg: resp.Error}
	}
	return &resp, nil
}
