package search

import (
	"strings"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/logging"
)

// Field identifies a searchable record attribute. Values double as the
// backing column names, so only fields declared here ever reach SQL.
type Field string

const (
	FieldLocation    Field = "location"
	FieldCounty      Field = "county"
	FieldOutwardCode Field = "outward_code"
)

// Op is a comparison operator applied to a field.
type Op string

const (
	// OpContains matches when the field contains the value, ignoring case.
	OpContains Op = "contains"
	// OpEquals matches when the field equals the value, ignoring case.
	OpEquals Op = "equals"
)

// Condition compares a single field against a value.
type Condition struct {
	Field Field
	Op    Op
	Value string
}

// Filter matches records satisfying ANY of its conditions. A nil *Filter
// means "no filtering": callers treat it as match-everything.
type Filter struct {
	Any []Condition
}

// Record exposes field values for in-memory matching, keeping the matcher
// decoupled from any particular record type.
type Record interface {
	FieldValue(Field) string
}

// BuildLocationFilter constructs the standard location filter for a free-text
// query: a disjunction over location contains, county contains, and outward
// code equals the uppercased query. A query that is empty after trimming
// yields nil, and every call logs the received query at info level.
func BuildLocationFilter(query string, log *logging.Logger) *Filter {
	if log != nil {
		log.Info("building location filter", "query", query)
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	return &Filter{
		Any: []Condition{
			{Field: FieldLocation, Op: OpContains, Value: trimmed},
			{Field: FieldCounty, Op: OpContains, Value: trimmed},
			{Field: FieldOutwardCode, Op: OpEquals, Value: strings.ToUpper(trimmed)},
		},
	}
}

// SQL compiles the filter into a parenthesised WHERE fragment with `?`
// placeholders and the matching argument list. A nil or empty filter
// compiles to ("", nil).
func (f *Filter) SQL() (string, []any) {
	if f == nil || len(f.Any) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(f.Any))
	args := make([]any, 0, len(f.Any))
	for _, c := range f.Any {
		col, ok := columns[c.Field]
		if !ok {
			continue
		}
		switch c.Op {
		case OpContains:
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, "%"+strings.ToLower(c.Value)+"%")
		case OpEquals:
			clauses = append(clauses, "LOWER("+col+") = ?")
			args = append(args, strings.ToLower(c.Value))
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}

	return "(" + strings.Join(clauses, " OR ") + ")", args
}

// Matches evaluates the filter against an in-memory record. A nil filter
// matches everything.
func (f *Filter) Matches(r Record) bool {
	if f == nil || len(f.Any) == 0 {
		return true
	}

	for _, c := range f.Any {
		value := r.FieldValue(c.Field)
		switch c.Op {
		case OpContains:
			if strings.Contains(strings.ToLower(value), strings.ToLower(c.Value)) {
				return true
			}
		case OpEquals:
			if strings.EqualFold(value, c.Value) {
				return true
			}
		}
	}

	return false
}

// columns maps fields to the column names the filter may reference.
var columns = map[Field]string{
	FieldLocation:    "location",
	FieldCounty:      "county",
	FieldOutwardCode: "outward_code",
}
