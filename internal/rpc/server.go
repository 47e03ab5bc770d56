// Package rpc serves the bridge over Content-Length framed JSON-RPC on stdio.
package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"grsbridge/internal/bridge"
)

var (
	// ErrExit signals a graceful stop after "exit".
	ErrExit = errors.New("rpc exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("rpc exit without shutdown")
)

// DefaultSeparator joins syllables when a syllabify call passes none.
const DefaultSeparator = "-"

// methods maps wire method names to bridge operations.
var methods = map[string]bridge.Op{
	"scan":        bridge.OpScan,
	"fix":         bridge.OpFix,
	"tokenize":    bridge.OpTokenize,
	"toMonotonic": bridge.OpToMonotonic,
	"syllabify":   bridge.OpSyllabify,
	"rules":       bridge.OpRules,
}

// ServerOptions configures the RPC server.
type ServerOptions struct {
	Log   zerolog.Logger
	// Codec lowers results before they are written as JSON.
	Codec bridge.Codec
}

// Server answers requests one at a time in arrival order.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	bridge *bridge.Bridge
	codec  bridge.Codec
	log    zerolog.Logger

	shutdownRequested bool
}

// NewServer constructs a server reading requests from in and writing replies to out.
func NewServer(in io.Reader, out io.Writer, b *bridge.Bridge, opts ServerOptions) *Server {
	return &Server{
		in:     bufio.NewReader(in),
		out:    bufio.NewWriter(out),
		bridge: b,
		codec:  opts.Codec,
		log:    opts.Log,
	}
}

// Run serves requests until EOF or exit. EOF ends the session cleanly.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if errors.Is(err, errMessageTooLarge) {
			s.log.Warn().Err(err).Msg("dropping oversized message")
			if err := s.sendError(json.RawMessage("null"), codeParseError, err.Error()); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse message")
			if err := s.sendError(json.RawMessage("null"), codeParseError, "parse error"); err != nil {
				return err
			}
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(ctx, &msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg *rpcMessage) error {
	switch msg.Method {
	case "shutdown":
		s.shutdownRequested = true
		return s.reply(msg, nil)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	}
	op, ok := methods[msg.Method]
	if !ok {
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
	if len(msg.ID) == 0 {
		// уведомление: ответа не будет, считать незачем
		s.log.Debug().Str("method", msg.Method).Msg("ignoring notification")
		return nil
	}
	if s.shutdownRequested {
		return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
	}

	req, err := decodeParams(op, msg.Params)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params: "+err.Error())
	}
	result, err := s.bridge.InvokeValue(ctx, op, req, s.codec)
	if err != nil {
		s.log.Error().Err(err).Str("method", msg.Method).Msg("request failed")
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.sendResponse(msg.ID, result)
}

var errMissingText = errors.New(`"text" is required`)

func decodeParams(op bridge.Op, raw json.RawMessage) (bridge.Request, error) {
	var req bridge.Request
	if op == bridge.OpRules {
		return req, nil
	}
	var params callParams
	if len(raw) == 0 {
		return req, errMissingText
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return req, err
	}
	if params.Text == nil {
		return req, errMissingText
	}
	req.Text = *params.Text
	// отсутствующие опции и null означают настройки по умолчанию
	if opts := bytes.TrimSpace(params.Options); len(opts) > 0 && !bytes.Equal(opts, []byte("null")) {
		req.Options = params.Options
	}
	req.Separator = DefaultSeparator
	if params.Separator != nil {
		req.Separator = *params.Separator
	}
	return req, nil
}

func (s *Server) reply(msg *rpcMessage, result any) error {
	if len(msg.ID) == 0 {
		return nil
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}
