// Package jsondoc decodes JSON documents into a generic tree that keeps
// object member order, so flattened columns follow the upstream payload.
package jsondoc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Value is one of: nil, string, json.Number, bool, []Value, Object.
type Value = any

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered list of members.
type Object []Member

// Get returns the value stored under key and whether it was present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Lookup walks a dotted path through nested objects.
func Lookup(v Value, path string) (Value, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(Object)
		if !ok {
			return nil, false
		}
		next, ok := obj.Get(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// IsScalar reports whether v is a leaf (string, number, bool or null).
func IsScalar(v Value) bool {
	switch v.(type) {
	case nil, string, json.Number, bool:
		return true
	default:
		return false
	}
}

// String renders a scalar the way it is written to CSV. Containers render empty.
func String(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
