package bridge

import (
	"context"
	"errors"
	"fmt"

	"grsbridge/internal/rules"
)

// ErrUnknownOp is returned by Invoke for an unsupported operation name.
var ErrUnknownOp = errors.New("unknown operation")

// Op names one host-callable operation.
type Op string

const (
	OpScan        Op = "scan"
	OpFix         Op = "fix"
	OpTokenize    Op = "tokenize"
	OpToMonotonic Op = "to_monotonic"
	OpSyllabify   Op = "syllabify"
	OpRules       Op = "rules"
)

// Ops lists every operation Invoke understands.
var Ops = []Op{OpScan, OpFix, OpTokenize, OpToMonotonic, OpSyllabify, OpRules}

// Request carries the arguments of one host call. Options is passed to the
// rule selector untouched, so any host shape is accepted.
type Request struct {
	Text      string
	Options   any
	Separator string
}

// Invoke runs op and returns its typed result. Hosts that dispatch by name
// (RPC, WebAssembly) share this switch.
func (b *Bridge) Invoke(ctx context.Context, op Op, req Request) (any, error) {
	switch op {
	case OpScan:
		return b.Scan(ctx, req.Text, req.Options)
	case OpFix:
		return b.Fix(ctx, req.Text, req.Options)
	case OpTokenize:
		return b.Tokenize(ctx, req.Text)
	case OpToMonotonic:
		return b.ToMonotonic(ctx, req.Text)
	case OpSyllabify:
		return b.Syllabify(ctx, req.Text, req.Separator)
	case OpRules:
		return rules.Describe(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOp, string(op))
}

// InvokeValue runs op and lowers the result with codec.
func (b *Bridge) InvokeValue(ctx context.Context, op Op, req Request, codec Codec) (any, error) {
	result, err := b.Invoke(ctx, op, req)
	if err != nil {
		return nil, err
	}
	return ToValue(result, codec)
}
