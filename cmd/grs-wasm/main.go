//go:build js && wasm

// Command grs-wasm exposes the bridge to JavaScript as global functions.
//
// The engine is provided by the embedding page: before the module starts it
// must define globalThis.grsEngine with check, fix, tokenize, to_monotonic
// and syllabify methods taking and returning the process engine's wire
// shapes as plain objects.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/rs/zerolog"

	"grsbridge/internal/bridge"
	"grsbridge/internal/logging"
)

func main() {
	engine, err := newJSEngine(js.Global().Get("grsEngine"))
	if err != nil {
		js.Global().Get("console").Call("error", "grs-wasm: "+err.Error())
		return
	}
	log := logging.Build(logging.Config{Writer: consoleWriter{}, Level: zerolog.WarnLevel})
	b := bridge.New(engine, bridge.WithLogger(log))

	exports := map[string]func(args []js.Value) (any, error){
		"scan_text": func(args []js.Value) (any, error) {
			return b.InvokeValue(context.Background(), bridge.OpScan, bridge.Request{Text: argString(args, 0), Options: argOptions(args, 1)}, bridge.CodecJSON)
		},
		"fix_text": func(args []js.Value) (any, error) {
			return b.InvokeValue(context.Background(), bridge.OpFix, bridge.Request{Text: argString(args, 0), Options: argOptions(args, 1)}, bridge.CodecJSON)
		},
		"tokenize": func(args []js.Value) (any, error) {
			return b.InvokeValue(context.Background(), bridge.OpTokenize, bridge.Request{Text: argString(args, 0)}, bridge.CodecJSON)
		},
		"to_monotonic": func(args []js.Value) (any, error) {
			return b.InvokeValue(context.Background(), bridge.OpToMonotonic, bridge.Request{Text: argString(args, 0)}, bridge.CodecJSON)
		},
		"syllabify": func(args []js.Value) (any, error) {
			return b.InvokeValue(context.Background(), bridge.OpSyllabify, bridge.Request{Text: argString(args, 0), Separator: argString(args, 1)}, bridge.CodecJSON)
		},
	}
	for name, fn := range exports {
		js.Global().Set(name, js.FuncOf(func(_ js.Value, args []js.Value) any {
			v, err := fn(args)
			if err != nil {
				// ошибка возвращается значением, не исключением
				return js.Global().Get("Error").New(err.Error())
			}
			return js.ValueOf(v)
		}))
	}

	select {}
}

// consoleWriter sends zerolog lines to console.warn.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("warn", string(p))
	return len(p), nil
}

func argString(args []js.Value, i int) string {
	if i >= len(args) || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}

func argOptions(args []js.Value, i int) any {
	if i >= len(args) {
		return nil
	}
	return fromJS(args[i])
}

var errUnsupportedValue = errors.New("unsupported JavaScript value")

// fromJS lowers a JS value into the host model the rule selector reads.
// Objects and arrays travel as JSON text so the selector sees keys in
// insertion order. Values JSON cannot carry become a marker the selector
// rejects.
func fromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	case js.TypeString:
		return v.String()
	case js.TypeObject:
		data, err := stringify(v)
		if err != nil {
			return errUnsupportedValue
		}
		return json.RawMessage(data)
	}
	return errUnsupportedValue
}

// stringify runs JSON.stringify on v. A throw (cycles, BigInt) or a value
// with no JSON form is an error.
func stringify(v js.Value) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("JSON.stringify: %v", r)
		}
	}()
	s := js.Global().Get("JSON").Call("stringify", v)
	if s.Type() != js.TypeString {
		return nil, fmt.Errorf("%w: %s has no JSON form", errUnsupportedValue, v.Type())
	}
	return []byte(s.String()), nil
}

// callEngine invokes method on the JS engine object and converts a thrown
// or returned Error into a Go error.
func callEngine(obj js.Value, method string, args ...any) (result js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("grsEngine.%s: %v", method, r)
		}
	}()
	result = obj.Call(method, args...)
	if result.InstanceOf(js.Global().Get("Error")) {
		return js.Undefined(), fmt.Errorf("grsEngine.%s: %s", method, result.Get("message").String())
	}
	return result, nil
}
