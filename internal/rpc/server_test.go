package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"grsbridge/internal/bridge"
	"grsbridge/internal/grs"
	"grsbridge/internal/source"
	"grsbridge/internal/testkit"
)

func frame(t *testing.T, msgs ...string) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		if err := writeMessage(&buf, []byte(m)); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	return bytes.NewReader(buf.Bytes())
}

func readAll(t *testing.T, out []byte) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read reply: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode reply: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func testEngine() *testkit.Engine {
	return &testkit.Engine{
		Diagnostics: []grs.Diagnostic{
			{Kind: grs.DuplicatedWord, Span: source.NewSpan(0, 5)},
			{
				Kind: grs.MultisyllableNotAccented,
				Span: source.NewSpan(6, 16),
				Fix:  &grs.Fix{Span: source.NewSpan(6, 16), Replacement: "σπίτι"},
			},
		},
		Syllables: map[string][]string{"σπίτι": {"σπί", "τι"}},
	}
}

func TestServerSession(t *testing.T) {
	in := frame(t,
		`{"jsonrpc":"2.0","id":1,"method":"scan","params":{"text":"ο ο σπιτι"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"scan","params":{"text":"ο ο σπιτι","options":{"DW":true}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"fix","params":{"text":"ο ο σπιτι","options":{"MNA":true}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"syllabify","params":{"text":"σπίτι"}}`,
		`{"jsonrpc":"2.0","id":5,"method":"syllabify","params":{"text":"σπίτι","separator":"|"}}`,
		`{"jsonrpc":"2.0","id":6,"method":"lint","params":{}}`,
		`{"jsonrpc":"2.0","id":7,"method":"scan","params":{"options":{}}}`,
		`{"jsonrpc":"2.0","method":"scan","params":{"text":"x"}}`,
		`{"jsonrpc":"2.0","id":8,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","id":9,"method":"scan","params":{"text":"x"}}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	var out bytes.Buffer
	eng := testEngine()
	server := NewServer(in, &out, bridge.New(eng), ServerOptions{})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("expected ErrExit, got %v", err)
	}

	replies := readAll(t, out.Bytes())
	if len(replies) != 9 {
		t.Fatalf("expected 9 replies, got %d", len(replies))
	}
	var records []map[string]any
	if err := json.Unmarshal(replies[0].Result, &records); err != nil {
		t.Fatalf("decode scan result: %v", err)
	}
	if len(records) != 2 || records[1]["fix"] != "σπίτι" {
		t.Fatalf("unexpected scan result %s", replies[0].Result)
	}
	if err := json.Unmarshal(replies[1].Result, &records); err != nil || len(records) != 1 {
		t.Fatalf("unexpected filtered scan %s", replies[1].Result)
	}
	checkString(t, replies[2], `"ο ο σπίτι"`)
	checkString(t, replies[3], `"σπί-τι"`)
	checkString(t, replies[4], `"σπί|τι"`)
	checkError(t, replies[5], codeMethodNotFound)
	checkError(t, replies[6], codeInvalidParams)
	if replies[7].Error != nil || string(replies[7].ID) != "8" {
		t.Fatalf("unexpected shutdown reply %+v", replies[7])
	}
	checkError(t, replies[8], codeInvalidRequest)

	// уведомление не должно доходить до движка
	for _, c := range eng.Calls() {
		if c.Text == "x" {
			t.Fatalf("notification reached the engine: %+v", c)
		}
	}
}

func TestServerEngineFailure(t *testing.T) {
	in := frame(t, `{"jsonrpc":"2.0","id":1,"method":"toMonotonic","params":{"text":"τὸ"}}`)
	var out bytes.Buffer
	eng := &testkit.Engine{Err: errors.New("engine gone")}
	if err := NewServer(in, &out, bridge.New(eng), ServerOptions{}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	replies := readAll(t, out.Bytes())
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	checkError(t, replies[0], codeInternalError)
}

func TestServerParseError(t *testing.T) {
	in := frame(t, `{not json`, `{"jsonrpc":"2.0","id":1,"method":"rules"}`, `{"jsonrpc":"2.0","method":"exit"}`)
	var out bytes.Buffer
	err := NewServer(in, &out, bridge.New(&testkit.Engine{}), ServerOptions{}).Run(context.Background())
	if !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("expected ErrExitWithoutShutdown, got %v", err)
	}
	replies := readAll(t, out.Bytes())
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(replies))
	}
	checkError(t, replies[0], codeParseError)
	var infos []map[string]any
	if err := json.Unmarshal(replies[1].Result, &infos); err != nil || len(infos) != len(grs.AllRules()) {
		t.Fatalf("unexpected rules result %s", replies[1].Result)
	}
}

func TestServerOversizedFrame(t *testing.T) {
	var in bytes.Buffer
	in.WriteString("Content-Length: 9223372036854775807\r\n\r\n")
	var out bytes.Buffer
	err := NewServer(&in, &out, bridge.New(&testkit.Engine{}), ServerOptions{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	replies := readAll(t, out.Bytes())
	if len(replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(replies))
	}
	checkError(t, replies[0], codeParseError)
	if string(replies[0].ID) != "null" {
		t.Fatalf("unexpected id %s", replies[0].ID)
	}
}

func TestServerCodecs(t *testing.T) {
	session := func(codec bridge.Codec) []rpcMessage {
		in := frame(t,
			`{"jsonrpc":"2.0","id":1,"method":"scan","params":{"text":"ο ο σπιτι"}}`,
			`{"jsonrpc":"2.0","id":2,"method":"rules"}`,
			`{"jsonrpc":"2.0","id":3,"method":"syllabify","params":{"text":"σπίτι"}}`,
		)
		var out bytes.Buffer
		server := NewServer(in, &out, bridge.New(testEngine()), ServerOptions{Codec: codec})
		if err := server.Run(context.Background()); err != nil {
			t.Fatalf("%s: Run: %v", codec, err)
		}
		return readAll(t, out.Bytes())
	}

	jsonReplies := session(bridge.CodecJSON)
	msgpackReplies := session(bridge.CodecMsgpack)
	if len(jsonReplies) != 3 || len(msgpackReplies) != 3 {
		t.Fatalf("unexpected reply counts %d/%d", len(jsonReplies), len(msgpackReplies))
	}
	for i := range jsonReplies {
		if msgpackReplies[i].Error != nil {
			t.Fatalf("id %s: unexpected error %+v", msgpackReplies[i].ID, msgpackReplies[i].Error)
		}
		if string(jsonReplies[i].Result) != string(msgpackReplies[i].Result) {
			t.Fatalf("id %s: msgpack result %s, json result %s",
				msgpackReplies[i].ID, msgpackReplies[i].Result, jsonReplies[i].Result)
		}
	}
	var records []map[string]any
	if err := json.Unmarshal(msgpackReplies[0].Result, &records); err != nil || len(records) != 2 {
		t.Fatalf("unexpected msgpack scan result %s", msgpackReplies[0].Result)
	}
	if r, ok := records[0]["range"].(map[string]any); !ok || r["end"] != float64(3) {
		t.Fatalf("unexpected range in %s", msgpackReplies[0].Result)
	}
}

func checkString(t *testing.T, msg rpcMessage, want string) {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("id %s: unexpected error %+v", msg.ID, msg.Error)
	}
	if string(msg.Result) != want {
		t.Fatalf("id %s: result %s, want %s", msg.ID, msg.Result, want)
	}
}

func checkError(t *testing.T, msg rpcMessage, code int) {
	t.Helper()
	if msg.Error == nil || msg.Error.Code != code {
		t.Fatalf("id %s: expected error %d, got %+v", msg.ID, code, msg.Error)
	}
}
