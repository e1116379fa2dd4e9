package recipe

import (
	"fmt"
	"strings"
)

// Predicate is a node in a store-agnostic filter tree. The candidate query
// builder assembles trees out of these variants and the Postgres store
// compiles them to a parameterized WHERE clause, so no caller ever
// concatenates user input into SQL.
type Predicate interface {
	isPredicate()
}

// Contains matches rows whose field contains the given token,
// case-insensitively.
type Contains struct {
	Field string
	Token string
}

// Equals matches rows whose field equals the given value.
type Equals struct {
	Field string
	Value any
}

// IntAtLeast matches rows whose field, read as an integer, is >= Min.
// Rows whose field does not parse as an integer never match.
type IntAtLeast struct {
	Field string
	Min   int
}

// And matches rows satisfying every child predicate.
type And struct {
	Preds []Predicate
}

// Or matches rows satisfying at least one child predicate.
type Or struct {
	Preds []Predicate
}

func (Contains) isPredicate()   {}
func (Equals) isPredicate()     {}
func (IntAtLeast) isPredicate() {}
func (And) isPredicate()        {}
func (Or) isPredicate()         {}

// Query is an executable candidate query: a filter tree plus nothing else.
// Ranking and limits are decided by the store and the post-filter stage.
type Query struct {
	Where Predicate
}

// queryFields are the recipe columns predicates may reference. Field names
// end up in SQL text, so anything outside this set is rejected at compile
// time.
var queryFields = map[string]bool{
	"title":        true,
	"ingredients":  true,
	"instructions": true,
	"category_id":  true,
	"serving_size": true,
	"cooking_time": true,
}

type sqlCompiler struct {
	args []any
}

// CompileWhere renders a predicate tree as a Postgres WHERE fragment with
// positional parameters starting at $1.
func CompileWhere(p Predicate) (string, []any, error) {
	c := &sqlCompiler{}
	clause, err := c.compile(p)
	if err != nil {
		return "", nil, err
	}
	return clause, c.args, nil
}

func (c *sqlCompiler) compile(p Predicate) (string, error) {
	switch v := p.(type) {
	case Contains:
		if !queryFields[v.Field] {
			return "", fmt.Errorf("unknown query field: %s", v.Field)
		}
		c.args = append(c.args, "%"+v.Token+"%")
		return fmt.Sprintf("r.%s ILIKE $%d", v.Field, len(c.args)), nil
	case Equals:
		if !queryFields[v.Field] {
			return "", fmt.Errorf("unknown query field: %s", v.Field)
		}
		c.args = append(c.args, v.Value)
		return fmt.Sprintf("r.%s = $%d", v.Field, len(c.args)), nil
	case IntAtLeast:
		if !queryFields[v.Field] {
			return "", fmt.Errorf("unknown query field: %s", v.Field)
		}
		c.args = append(c.args, v.Min)
		return fmt.Sprintf("(r.%s ~ '^[0-9]+$' AND r.%s::integer >= $%d)", v.Field, v.Field, len(c.args)), nil
	case And:
		return c.compileGroup(v.Preds, " AND ")
	case Or:
		return c.compileGroup(v.Preds, " OR ")
	default:
		return "", fmt.Errorf("unknown predicate type %T", p)
	}
}

func (c *sqlCompiler) compileGroup(preds []Predicate, sep string) (string, error) {
	if len(preds) == 0 {
		return "", fmt.Errorf("empty predicate group")
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		clause, err := c.compile(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, clause)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}
