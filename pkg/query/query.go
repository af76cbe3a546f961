// Package query turns list-endpoint query strings into a store-agnostic
// description of filter, projection, ordering, paging and relation expansion.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/oksasatya/go-bootcamp-directory/pkg/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	DefaultSort  = "-createdAt"
)

// Operator is a store-native comparison operator.
type Operator string

const (
	OpEq  Operator = "$eq"
	OpGt  Operator = "$gt"
	OpGte Operator = "$gte"
	OpLt  Operator = "$lt"
	OpLte Operator = "$lte"
	OpIn  Operator = "$in"
)

// bare operator names accepted in the query string.
var bareOperators = map[string]Operator{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// control keys never reach the filter.
var controlKeys = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

// Filter is the parsed query-string filter. Values are strings, string
// slices or nested Filters keyed by operator or sub-field.
type Filter map[string]any

// Condition is one flattened comparison.
type Condition struct {
	Field  string
	Op     Operator
	Values []string
}

type SortKey struct {
	Field string
	Desc  bool
}

// Populate names a relation to expand and optional sub-fields to keep.
type Populate struct {
	Path   string
	Select []string
}

// Spec is a fully parsed list request.
type Spec struct {
	Filter     Filter
	Conditions []Condition
	Select     []string
	Sort       []SortKey
	Page       int
	Limit      int
}

// Skip is the number of records before the current page.
func (s Spec) Skip() int { return (s.Page - 1) * s.Limit }

// WithCondition returns a copy of s with an extra equality condition, used
// by nested routes that scope a listing to a parent.
func (s Spec) WithCondition(field, value string) Spec {
	out := s
	out.Conditions = append(append([]Condition(nil), s.Conditions...), Condition{Field: field, Op: OpEq, Values: []string{value}})
	return out
}

// Parse builds a Spec from raw query values.
func Parse(values url.Values) (Spec, error) {
	filter := NormalizeOperators(parseFilter(values)).(Filter)
	conds, err := flatten("", filter)
	if err != nil {
		return Spec{}, err
	}
	sort.SliceStable(conds, func(i, j int) bool { return conds[i].Field < conds[j].Field })

	spec := Spec{
		Filter:     filter,
		Conditions: conds,
		Select:     splitList(values.Get("select")),
		Sort:       parseSort(values.Get("sort")),
		Page:       positiveInt(values.Get("page"), DefaultPage),
		Limit:      positiveInt(values.Get("limit"), DefaultLimit),
	}
	return spec, nil
}

// parseFilter groups `field[op]=v` and `field=v` pairs into a nested Filter.
func parseFilter(values url.Values) Filter {
	out := Filter{}
	for raw, vals := range values {
		if _, ok := controlKeys[raw]; ok {
			continue
		}
		path := splitBrackets(raw)
		if len(path) == 0 || path[0] == "" {
			continue
		}
		var val any = vals[0]
		if len(vals) > 1 {
			val = append([]string(nil), vals...)
		}
		node := out
		for i, seg := range path {
			if i == len(path)-1 {
				node[seg] = val
				break
			}
			child, ok := node[seg].(Filter)
			if !ok {
				child = Filter{}
				node[seg] = child
			}
			node = child
		}
	}
	return out
}

// splitBrackets turns "a[b][c]" into ["a","b","c"].
func splitBrackets(key string) []string {
	i := strings.IndexByte(key, '[')
	if i < 0 {
		return []string{key}
	}
	parts := []string{key[:i]}
	rest := key[i:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		parts = append(parts, rest[1:end])
		rest = rest[end+1:]
	}
	return parts
}

// NormalizeOperators walks a parsed filter and renames bare operator keys
// (gt, gte, lt, lte, in) to their store-native form. Field names and values
// are left untouched.
func NormalizeOperators(node any) any {
	f, ok := node.(Filter)
	if !ok {
		return node
	}
	out := make(Filter, len(f))
	for k, v := range f {
		if op, isOp := bareOperators[k]; isOp {
			out[string(op)] = NormalizeOperators(v)
			continue
		}
		out[k] = NormalizeOperators(v)
	}
	return out
}

func flatten(prefix string, f Filter) ([]Condition, error) {
	var out []Condition
	for k, v := range f {
		if strings.HasPrefix(k, "$") {
			if prefix == "" {
				return nil, apperror.Validation(fmt.Sprintf("Operator %s requires a field", k))
			}
			c, err := operatorCondition(prefix, Operator(k), v)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
			continue
		}
		field := k
		if prefix != "" {
			field = prefix + "." + k
		}
		switch x := v.(type) {
		case Filter:
			sub, err := flatten(field, x)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		case []string:
			out = append(out, Condition{Field: field, Op: OpIn, Values: x})
		case string:
			out = append(out, Condition{Field: field, Op: OpEq, Values: []string{x}})
		}
	}
	return out, nil
}

func operatorCondition(field string, op Operator, v any) (Condition, error) {
	switch op {
	case OpGt, OpGte, OpLt, OpLte, OpIn:
	default:
		return Condition{}, apperror.Validation(fmt.Sprintf("Unsupported operator %s on %s", op, field))
	}
	var vals []string
	switch x := v.(type) {
	case string:
		vals = []string{x}
	case []string:
		vals = x
	default:
		return Condition{}, apperror.Validation(fmt.Sprintf("Invalid value for %s", field))
	}
	if op == OpIn {
		var split []string
		for _, s := range vals {
			split = append(split, splitList(s)...)
		}
		vals = split
	} else if len(vals) > 1 {
		vals = vals[:1]
	}
	return Condition{Field: field, Op: op, Values: vals}, nil
}

func parseSort(raw string) []SortKey {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultSort
	}
	var keys []SortKey
	for _, part := range splitList(raw) {
		if strings.HasPrefix(part, "-") {
			keys = append(keys, SortKey{Field: strings.TrimPrefix(part, "-"), Desc: true})
			continue
		}
		keys = append(keys, SortKey{Field: strings.TrimPrefix(part, "+")})
	}
	return keys
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
