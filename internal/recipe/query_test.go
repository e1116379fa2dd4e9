package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileWhere_Contains(t *testing.T) {
	clause, args, err := CompileWhere(Contains{Field: "ingredients", Token: "domates"})

	require.NoError(t, err)
	assert.Equal(t, "r.ingredients ILIKE $1", clause)
	assert.Equal(t, []any{"%domates%"}, args)
}

func TestCompileWhere_Equals(t *testing.T) {
	clause, args, err := CompileWhere(Equals{Field: "category_id", Value: 4})

	require.NoError(t, err)
	assert.Equal(t, "r.category_id = $1", clause)
	assert.Equal(t, []any{4}, args)
}

func TestCompileWhere_IntAtLeast(t *testing.T) {
	clause, args, err := CompileWhere(IntAtLeast{Field: "serving_size", Min: 6})

	require.NoError(t, err)
	assert.Equal(t, "(r.serving_size ~ '^[0-9]+$' AND r.serving_size::integer >= $1)", clause)
	assert.Equal(t, []any{6}, args)
}

func TestCompileWhere_OrGroup(t *testing.T) {
	clause, args, err := CompileWhere(Or{Preds: []Predicate{
		Contains{Field: "ingredients", Token: "domates"},
		Contains{Field: "ingredients", Token: "peynir"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "(r.ingredients ILIKE $1 OR r.ingredients ILIKE $2)", clause)
	assert.Equal(t, []any{"%domates%", "%peynir%"}, args)
}

func TestCompileWhere_NestedTree(t *testing.T) {
	clause, args, err := CompileWhere(And{Preds: []Predicate{
		Or{Preds: []Predicate{
			Contains{Field: "ingredients", Token: "domates"},
			Contains{Field: "ingredients", Token: "peynir"},
		}},
		Equals{Field: "category_id", Value: 4},
	}})

	require.NoError(t, err)
	assert.Equal(t, "((r.ingredients ILIKE $1 OR r.ingredients ILIKE $2) AND r.category_id = $3)", clause)
	assert.Equal(t, []any{"%domates%", "%peynir%", 4}, args)
}

func TestCompileWhere_SingleChildGroupUnwrapped(t *testing.T) {
	clause, _, err := CompileWhere(Or{Preds: []Predicate{
		Contains{Field: "title", Token: "çorba"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "r.title ILIKE $1", clause)
}

func TestCompileWhere_UnknownField(t *testing.T) {
	_, _, err := CompileWhere(Contains{Field: "password_hash", Token: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown query field")
}

func TestCompileWhere_EmptyGroup(t *testing.T) {
	_, _, err := CompileWhere(And{})
	assert.Error(t, err)
}
