package jsonutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePretty(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestDecodeStrict(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	if err := DecodeStrict(strings.NewReader(`{"a":2}`), &v); err != nil || v.A != 2 {
		t.Fatalf("decode: %v %+v", err, v)
	}
	if err := DecodeStrict(strings.NewReader(`{"b":2}`), &v); err == nil {
		t.Fatalf("unknown field accepted")
	}
	if err := DecodeStrict(strings.NewReader(`{"a":2} {"a":3}`), &v); err == nil {
		t.Fatalf("trailing value accepted")
	}
}
