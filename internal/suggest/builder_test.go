package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarifler/internal/recipe"
)

func TestBuildQuery_NoIngredients(t *testing.T) {
	_, err := BuildQuery(SelectionCriteria{})
	assert.ErrorIs(t, err, ErrNoIngredients)

	_, err = BuildQuery(SelectionCriteria{SelectedIngredients: []string{"", "  "}})
	assert.ErrorIs(t, err, ErrNoIngredients)
}

func TestBuildQuery_IngredientsAreORCombined(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates", "peynir"},
	})
	require.NoError(t, err)

	or, ok := q.Where.(recipe.Or)
	require.True(t, ok, "top-level predicate should be an OR group when no filters are set")
	require.Len(t, or.Preds, 2)
	assert.Equal(t, recipe.Contains{Field: "ingredients", Token: "domates"}, or.Preds[0])
	assert.Equal(t, recipe.Contains{Field: "ingredients", Token: "peynir"}, or.Preds[1])
}

func TestBuildQuery_DuplicatesIgnored(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates", "domates", "domates"},
	})
	require.NoError(t, err)

	or, ok := q.Where.(recipe.Or)
	require.True(t, ok)
	assert.Len(t, or.Preds, 1)
}

func TestBuildQuery_CategoryFilterANDedIn(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates", "peynir"},
		Filters:             Filters{Category: "Tatlı"},
	})
	require.NoError(t, err)

	and, ok := q.Where.(recipe.And)
	require.True(t, ok)
	require.Len(t, and.Preds, 2)

	_, ok = and.Preds[0].(recipe.Or)
	assert.True(t, ok)
	assert.Equal(t, recipe.Equals{Field: "category_id", Value: 4}, and.Preds[1])
}

func TestBuildQuery_UnknownCategoryAddsNoConstraint(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates"},
		Filters:             Filters{Category: "Uzay Yemeği"},
	})
	require.NoError(t, err)

	_, ok := q.Where.(recipe.Or)
	assert.True(t, ok, "unknown category name should be ignored, leaving only the ingredient OR group")
}

func TestBuildQuery_AllMeansNoConstraint(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates"},
		Filters:             Filters{Category: FilterAll, ServingSize: FilterAll, CookingTime: FilterAll},
	})
	require.NoError(t, err)

	_, ok := q.Where.(recipe.Or)
	assert.True(t, ok)
}

func TestBuildQuery_ServingSizePattern(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates"},
		Filters:             Filters{ServingSize: "3-4 Kişilik"},
	})
	require.NoError(t, err)

	and, ok := q.Where.(recipe.And)
	require.True(t, ok)
	require.Len(t, and.Preds, 2)
	assert.Equal(t, recipe.Contains{Field: "serving_size", Token: "3-4"}, and.Preds[1])
}

func TestBuildQuery_ServingSizeTopBucket(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates"},
		Filters:             Filters{ServingSize: "6+ Kişilik"},
	})
	require.NoError(t, err)

	and, ok := q.Where.(recipe.And)
	require.True(t, ok)
	require.Len(t, and.Preds, 2)

	// "6+" matches the literal text or a serving size that parses as >= 6.
	or, ok := and.Preds[1].(recipe.Or)
	require.True(t, ok)
	require.Len(t, or.Preds, 2)
	assert.Equal(t, recipe.Contains{Field: "serving_size", Token: "6+"}, or.Preds[0])
	assert.Equal(t, recipe.IntAtLeast{Field: "serving_size", Min: 6}, or.Preds[1])
}

func TestBuildQuery_CookingTimeNotPushedToStore(t *testing.T) {
	q, err := BuildQuery(SelectionCriteria{
		SelectedIngredients: []string{"domates"},
		Filters:             Filters{CookingTime: "30 Dakikadan Az"},
	})
	require.NoError(t, err)

	// The cooking-time filter is applied by Refine, never by the store.
	_, ok := q.Where.(recipe.Or)
	assert.True(t, ok)
}
