package flatten

import (
	"strings"

	"footstats-collector/internal/jsondoc"
)

// Flatten locates the record source in raw, flattens each element and
// applies the schema's rules and context columns. It never fails: a
// missing or empty source yields an empty slice.
func (s Schema) Flatten(raw jsondoc.Value, vars Vars) []Record {
	rows := s.source(raw)
	records := make([]Record, 0, len(rows))
	sep := s.separator()
	for _, row := range rows {
		var rec Record
		flattenInto(&rec, "", row.value, sep)
		for _, m := range row.meta {
			if _, exists := rec.Get(m[0]); !exists {
				rec.Set(m[0], m[1])
			}
		}
		records = append(records, rec)
	}
	return s.Shape(records, raw, vars)
}

type sourceRow struct {
	value jsondoc.Value
	meta  [][2]string
}

func (s Schema) source(raw jsondoc.Value) []sourceRow {
	switch doc := raw.(type) {
	case []jsondoc.Value:
		return rowsOf(doc, nil)
	case jsondoc.Object:
		anyFound := false
		for _, candidate := range s.Candidates {
			rows, found := s.resolve(doc, strings.Split(candidate, "."), "", nil)
			anyFound = anyFound || found
			if len(rows) > 0 {
				return rows
			}
		}
		if anyFound || s.RequireList || len(doc) == 0 {
			return nil
		}
		return []sourceRow{{value: doc}}
	default:
		return nil
	}
}

// resolve follows a dotted record path. Intermediate lists are exploded
// and their scalar fields carried down as meta columns.
func (s Schema) resolve(v jsondoc.Value, parts []string, prefix string, meta [][2]string) ([]sourceRow, bool) {
	obj, ok := v.(jsondoc.Object)
	if !ok {
		return nil, false
	}
	child, ok := obj.Get(parts[0])
	if !ok {
		return nil, false
	}
	list, isList := child.([]jsondoc.Value)
	if len(parts) == 1 {
		if !isList {
			return nil, false
		}
		return rowsOf(list, meta), true
	}

	path := join(prefix, parts[0], s.separator())
	if !isList {
		return s.resolve(child, parts[1:], path, meta)
	}

	var (
		rows  []sourceRow
		found bool
	)
	for _, elem := range list {
		elemMeta := append(append([][2]string{}, meta...), scalarFields(elem, path, s.separator())...)
		r, f := s.resolve(elem, parts[1:], path, elemMeta)
		found = found || f
		rows = append(rows, r...)
	}
	return rows, found
}

func rowsOf(list []jsondoc.Value, meta [][2]string) []sourceRow {
	rows := make([]sourceRow, 0, len(list))
	for _, elem := range list {
		rows = append(rows, sourceRow{value: elem, meta: meta})
	}
	return rows
}

func scalarFields(v jsondoc.Value, prefix, sep string) [][2]string {
	obj, ok := v.(jsondoc.Object)
	if !ok {
		return nil
	}
	var out [][2]string
	for _, m := range obj {
		if jsondoc.IsScalar(m.Value) {
			out = append(out, [2]string{join(prefix, m.Key, sep), jsondoc.String(m.Value)})
		}
	}
	return out
}

// flattenInto writes nested objects as compound keys. Lists are dropped
// so each source element stays one row.
func flattenInto(rec *Record, prefix string, v jsondoc.Value, sep string) {
	obj, ok := v.(jsondoc.Object)
	if !ok {
		if jsondoc.IsScalar(v) {
			rec.Set(join(prefix, "value", sep), jsondoc.String(v))
		}
		return
	}
	for _, m := range obj {
		name := join(prefix, m.Key, sep)
		switch child := m.Value.(type) {
		case jsondoc.Object:
			flattenInto(rec, name, child, sep)
		case []jsondoc.Value:
			// dropped
		default:
			rec.Set(name, jsondoc.String(child))
		}
	}
}

func join(prefix, key, sep string) string {
	if prefix == "" {
		return key
	}
	return prefix + sep + key
}
