package bridge

import (
	"errors"
	"reflect"
	"testing"

	"grsbridge/internal/diagfmt"
	"grsbridge/internal/offset"
)

func TestToValue_Records(t *testing.T) {
	fix := "σπίτι"
	records := []diagfmt.Record{
		{Kind: "multisyllable_not_accented", Range: offset.Range{Start: 19, End: 24}, Fix: &fix},
		{Kind: "duplicated_word", Range: offset.Range{Start: 0, End: 8}},
	}
	want := []any{
		map[string]any{
			"kind":  "multisyllable_not_accented",
			"range": map[string]any{"start": float64(19), "end": float64(24)},
			"fix":   "σπίτι",
		},
		map[string]any{
			"kind":  "duplicated_word",
			"range": map[string]any{"start": float64(0), "end": float64(8)},
			"fix":   nil,
		},
	}
	for _, codec := range []Codec{CodecJSON, CodecMsgpack} {
		t.Run(codec.String(), func(t *testing.T) {
			got, err := ToValue(records, codec)
			if err != nil {
				t.Fatalf("ToValue: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("ToValue mismatch:\n got %#v\nwant %#v", got, want)
			}
		})
	}
}

func TestToValue_EmptyListStaysList(t *testing.T) {
	for _, codec := range []Codec{CodecJSON, CodecMsgpack} {
		got, err := ToValue([]diagfmt.Record{}, codec)
		if err != nil {
			t.Fatalf("%s: %v", codec, err)
		}
		list, ok := got.([]any)
		if !ok || len(list) != 0 {
			t.Fatalf("%s: expected empty list, got %#v", codec, got)
		}
	}
}

func TestToValue_Unsupported(t *testing.T) {
	for _, codec := range []Codec{CodecJSON, CodecMsgpack} {
		_, err := ToValue(make(chan int), codec)
		if !errors.Is(err, ErrSerialization) {
			t.Fatalf("%s: expected ErrSerialization, got %v", codec, err)
		}
	}
}

func TestParseCodec(t *testing.T) {
	cases := map[string]Codec{"": CodecJSON, "json": CodecJSON, "MsgPack": CodecMsgpack}
	for in, want := range cases {
		got, err := ParseCodec(in)
		if err != nil || got != want {
			t.Errorf("ParseCodec(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCodec("cbor"); err == nil {
		t.Fatal("expected error for unknown codec")
	}
}
