package jsondoc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func keysOf(o Object) []string {
	keys := make([]string, 0, len(o))
	for _, m := range o {
		keys = append(keys, m.Key)
	}
	return keys
}

func TestParseKeepsMemberOrder(t *testing.T) {
	v, err := Parse([]byte(`{"zeta":1,"alpha":{"b":true,"a":null},"mid":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keysOf(obj)); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	inner, _ := obj.Get("alpha")
	if diff := cmp.Diff([]string{"b", "a"}, keysOf(inner.(Object))); diff != "" {
		t.Fatalf("nested key order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScalars(t *testing.T) {
	v, err := Parse([]byte(`[1.50, "ã", false, null]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := v.([]Value)
	if len(arr) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(arr))
	}
	if n, ok := arr[0].(json.Number); !ok || n.String() != "1.50" {
		t.Fatalf("expected number literal preserved, got %#v", arr[0])
	}
	if String(arr[1]) != "ã" || String(arr[2]) != "false" || String(arr[3]) != "" {
		t.Fatalf("unexpected scalar rendering: %q %q %q", String(arr[1]), String(arr[2]), String(arr[3]))
	}
}

func TestParseRejectsNonJSON(t *testing.T) {
	if _, err := Parse([]byte(`<html>blocked</html>`)); err == nil {
		t.Fatal("expected error for html body")
	}
	if _, err := Parse([]byte(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated body")
	}
	for _, body := range []string{`{"scorers": []}<html>oops</html>`, `{"a":1}{"b":2}`, `[1] x`} {
		if _, err := Parse([]byte(body)); err == nil {
			t.Fatalf("expected error for trailing data in %q", body)
		}
	}
	if _, err := Parse(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestParseAllowsTrailingWhitespace(t *testing.T) {
	v, err := Parse([]byte("{\"a\":1}\n  \t"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := Lookup(v, "a"); String(got) != "1" {
		t.Fatalf("unexpected value %v", got)
	}
	if v, err := Parse([]byte("42")); err != nil || String(v) != "42" {
		t.Fatalf("expected bare number, got %v %v", v, err)
	}
}

func TestLookupWalksNestedObjects(t *testing.T) {
	v, _ := Parse([]byte(`{"season":{"startDate":"2022-04-09"},"list":[1]}`))
	got, ok := Lookup(v, "season.startDate")
	if !ok || String(got) != "2022-04-09" {
		t.Fatalf("expected start date, got %v %v", got, ok)
	}
	if _, ok := Lookup(v, "list.0"); ok {
		t.Fatal("expected lookup through array to fail")
	}
	if _, ok := Lookup(v, "missing"); ok {
		t.Fatal("expected missing key to fail")
	}
}
