package flatten

import (
	"strconv"

	"footstats-collector/internal/jsondoc"
	"footstats-collector/internal/timeutil"
)

const defaultSeparator = "."

// Run variables available to context columns.
const (
	VarEntity  = "entity"
	VarSeason  = "season"
	VarYear    = "year"
	VarVariant = "variant"
)

// Vars carries run-level values for the current target.
type Vars map[string]string

// Action is what a FieldRule does to a column.
type Action int

const (
	ActionKeep Action = iota
	ActionDrop
	ActionRename
)

// FieldRule applies to the flattened column Name.
type FieldRule struct {
	Name   string
	Action Action
	To     string
}

// Keep marks a column to survive KeepOnly schemas.
func Keep(name string) FieldRule { return FieldRule{Name: name, Action: ActionKeep} }

// Drop removes a column.
func Drop(name string) FieldRule { return FieldRule{Name: name, Action: ActionDrop} }

// Rename keeps a column under a new name.
func Rename(name, to string) FieldRule { return FieldRule{Name: name, Action: ActionRename, To: to} }

func (r FieldRule) target() string {
	if r.Action == ActionRename && r.To != "" {
		return r.To
	}
	return r.Name
}

// ContextColumn is appended to every record of a batch. Its value comes
// from Path in the response envelope, falling back to the run variable Var.
type ContextColumn struct {
	Name      string
	Path      string
	Var       string
	Transform func(string) string
}

// Schema describes how one endpoint's payload becomes rows.
type Schema struct {
	// Candidates are record paths tried in order, e.g. "scorers" or "standings.table".
	Candidates []string
	// RequireList disables the whole-object fallback when no candidate is present.
	RequireList bool
	Separator   string
	Fields      []FieldRule
	// KeepOnly drops every column without a Keep or Rename rule and orders
	// the survivors by rule declaration.
	KeepOnly bool
	Context  []ContextColumn
}

func (s Schema) separator() string {
	if s.Separator == "" {
		return defaultSeparator
	}
	return s.Separator
}

// Shape applies field rules and context columns to already flat records.
// Records left without columns are skipped.
func (s Schema) Shape(records []Record, envelope jsondoc.Value, vars Vars) []Record {
	extra := s.contextValues(envelope, vars)
	index := s.ruleIndex()

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		shaped := s.applyRules(rec, index)
		if shaped.Len() == 0 {
			continue
		}
		for _, cv := range extra {
			shaped.Set(cv[0], cv[1])
		}
		out = append(out, shaped)
	}
	return out
}

func (s Schema) ruleIndex() map[string]FieldRule {
	index := make(map[string]FieldRule, len(s.Fields))
	for _, rule := range s.Fields {
		index[rule.Name] = rule
	}
	return index
}

func (s Schema) applyRules(rec Record, index map[string]FieldRule) Record {
	var out Record
	if s.KeepOnly {
		for _, rule := range s.Fields {
			if rule.Action == ActionDrop {
				continue
			}
			if v, ok := rec.Get(rule.Name); ok {
				out.Set(rule.target(), v)
			}
		}
		return out
	}
	for _, col := range rec.columns {
		rule, ok := index[col]
		if ok && rule.Action == ActionDrop {
			continue
		}
		name := col
		if ok {
			name = rule.target()
		}
		out.Set(name, rec.values[col])
	}
	return out
}

func (s Schema) contextValues(envelope jsondoc.Value, vars Vars) [][2]string {
	out := make([][2]string, 0, len(s.Context))
	for _, col := range s.Context {
		value := ""
		if col.Path != "" {
			if v, ok := jsondoc.Lookup(envelope, col.Path); ok && jsondoc.IsScalar(v) {
				value = jsondoc.String(v)
			}
		}
		if value == "" && col.Var != "" {
			value = vars[col.Var]
		}
		if value != "" && col.Transform != nil {
			value = col.Transform(value)
		}
		out = append(out, [2]string{col.Name, value})
	}
	return out
}

// SeasonYear reduces an ISO date such as "2022-04-09" to "2022".
func SeasonYear(value string) string {
	if t, err := timeutil.ParseDate(value); err == nil {
		return strconv.Itoa(t.Year())
	}
	if len(value) >= 4 {
		return value[:4]
	}
	return value
}
