package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tarifler/internal/recipe"
)

func TestExtractMinutes(t *testing.T) {
	assert.Equal(t, 45, ExtractMinutes("yaklaşık 45 dk"))
	assert.Equal(t, 30, ExtractMinutes("30-40 dakika"))
	assert.Equal(t, 90, ExtractMinutes("90"))
	assert.Equal(t, 0, ExtractMinutes(""))
	assert.Equal(t, 0, ExtractMinutes("göz kararı"))
}

func TestExtractMinutes_IdempotentOnOwnOutput(t *testing.T) {
	for _, text := range []string{"yaklaşık 45 dk", "bir saat 20 dakika", ""} {
		once := ExtractMinutes(text)
		assert.Equal(t, once, ExtractMinutes(fmt.Sprintf("%d", once)))
	}
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, Under30, BucketFor(0))
	assert.Equal(t, Under30, BucketFor(29))
	assert.Equal(t, Between30And60, BucketFor(30))
	assert.Equal(t, Between30And60, BucketFor(60))
	assert.Equal(t, Over60, BucketFor(61))
}

func makeCandidates(times ...string) []recipe.Recipe {
	out := make([]recipe.Recipe, len(times))
	for i, ct := range times {
		out[i] = recipe.Recipe{ID: i + 1, CookingTime: ct}
	}
	return out
}

func TestRefine_NoFilterPassesThrough(t *testing.T) {
	candidates := makeCandidates("20 dk", "45 dk", "90 dk")
	got := Refine(candidates, SelectionCriteria{})
	assert.Equal(t, candidates, got)
}

func TestRefine_BucketFilter(t *testing.T) {
	candidates := makeCandidates("20 dk", "45 dk", "90 dk", "yarım saatten kısa")

	got := Refine(candidates, SelectionCriteria{Filters: Filters{CookingTime: "30-60 Dakika"}})
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	// No digits means zero minutes, which is always Under30.
	got = Refine(candidates, SelectionCriteria{Filters: Filters{CookingTime: "30 Dakikadan Az"}})
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 4, got[1].ID)

	got = Refine(candidates, SelectionCriteria{Filters: Filters{CookingTime: "60 Dakikadan Fazla"}})
	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestRefine_TruncatesToFifteen(t *testing.T) {
	var candidates []recipe.Recipe
	for i := 0; i < 40; i++ {
		candidates = append(candidates, recipe.Recipe{ID: i + 1, CookingTime: "10 dk"})
	}

	got := Refine(candidates, SelectionCriteria{})
	assert.Len(t, got, 15)
	// Order is a stable prefix of the input.
	for i, r := range got {
		assert.Equal(t, i+1, r.ID)
	}
}

func TestRefine_NeverGrowsInput(t *testing.T) {
	candidates := makeCandidates("20 dk", "45 dk")
	got := Refine(candidates, SelectionCriteria{Filters: Filters{CookingTime: "60 Dakikadan Fazla"}})
	assert.Empty(t, got)
}
