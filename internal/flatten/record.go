// Package flatten turns decoded upstream payloads into ordered, flat rows
// driven by a declarative per-endpoint Schema.
package flatten

// Record is an ordered mapping from column name to scalar value.
// The zero value is ready to use.
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord builds a record from alternating name/value pairs.
func NewRecord(pairs ...string) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set stores value under name, appending name on first use.
func (r *Record) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = value
}

// Get returns the value stored under name.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Columns returns column names in insertion order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len reports the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Map returns a copy of the values, mainly for assertions.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Header is the union of column names across records in first-seen order.
func Header(records []Record) []string {
	seen := make(map[string]struct{})
	var header []string
	for _, rec := range records {
		for _, col := range rec.columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			header = append(header, col)
		}
	}
	return header
}
