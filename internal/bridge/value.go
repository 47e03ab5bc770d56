package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec is the wire encoding used to lower results into host values.
type Codec uint8

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

// ParseCodec accepts "json" (or empty) and "msgpack".
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return CodecJSON, nil
	case "msgpack", "messagepack":
		return CodecMsgpack, nil
	}
	return CodecJSON, fmt.Errorf("unknown codec %q", s)
}

// Marshal encodes v with codec. Failures wrap ErrSerialization.
func Marshal(v any, codec Codec) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch codec {
	case CodecMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		err = enc.Encode(v)
		data = buf.Bytes()
	default:
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s encode: %w", ErrSerialization, codec, err)
	}
	return data, nil
}

// ToValue lowers v into a host value tree built only from map[string]any,
// []any, string, float64, bool and nil. That is the value model both JavaScript
// and JSON-RPC hosts understand. Struct tags decide field names.
func ToValue(v any, codec Codec) (any, error) {
	data, err := Marshal(v, codec)
	if err != nil {
		return nil, err
	}
	var out any
	switch codec {
	case CodecMsgpack:
		err = msgpack.NewDecoder(bytes.NewReader(data)).Decode(&out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s decode: %w", ErrSerialization, codec, err)
	}
	return normalize(out)
}

// normalize turns msgpack's integer and interface-keyed maps into the host
// model. JSON trees pass through unchanged.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case uint:
		return float64(t), nil
	case []any:
		for i := range t {
			n, err := normalize(t[i])
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	case map[string]any:
		for k, item := range t {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string map key %v", ErrSerialization, k)
			}
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported host value %T", ErrSerialization, v)
}
