package suggest

import (
	"errors"
	"strings"

	"tarifler/internal/recipe"
)

// FilterAll is the filter value meaning "no constraint on this dimension".
// An absent filter behaves the same way.
const FilterAll = "Tümü"

// ErrNoIngredients is returned when a request carries no selected or
// recognized ingredients. Callers short-circuit to an empty result instead
// of querying the store: no selection never means "match everything".
var ErrNoIngredients = errors.New("no ingredients selected")

// Filters are the optional structured constraints of a discovery request.
type Filters struct {
	Category    string `json:"yemek_turu"`
	ServingSize string `json:"porsiyon"`
	CookingTime string `json:"pisirme_suresi"`
}

// SelectionCriteria is the user input to the discovery pipeline.
type SelectionCriteria struct {
	SelectedIngredients []string `json:"selectedIngredients"`
	Filters             Filters  `json:"filters"`
}

// categoryIDs maps category names to their internal identifiers. The ids
// match the seeded categories table. A name not present here adds no
// category constraint (see BuildQuery).
var categoryIDs = map[string]int{
	"Ana Yemek": 1,
	"Çorba":     2,
	"Salata":    3,
	"Tatlı":     4,
	"Hamur İşi": 5,
	"İçecek":    6,
}

// BuildQuery translates selection criteria into a candidate query for the
// recipe store.
//
// Each selected ingredient becomes a case-insensitive substring predicate on
// the ingredients text; the predicates are OR-combined, so a candidate must
// contain at least one selected ingredient, not all of them. Category and
// serving-size filters are AND-ed on top. The cooking-time filter cannot be
// pushed to the store and is applied by Refine instead. The query carries no
// ordering.
//
// An unrecognized category name adds no constraint rather than failing the
// request; the frontend only offers known names, so anything else is treated
// as noise.
func BuildQuery(criteria SelectionCriteria) (recipe.Query, error) {
	ingredients := dedupe(criteria.SelectedIngredients)
	if len(ingredients) == 0 {
		return recipe.Query{}, ErrNoIngredients
	}

	orGroup := make([]recipe.Predicate, 0, len(ingredients))
	for _, ing := range ingredients {
		orGroup = append(orGroup, recipe.Contains{Field: "ingredients", Token: ing})
	}

	preds := []recipe.Predicate{recipe.Or{Preds: orGroup}}

	if name := criteria.Filters.Category; name != "" && name != FilterAll {
		if id, ok := categoryIDs[name]; ok {
			preds = append(preds, recipe.Equals{Field: "category_id", Value: id})
		}
	}

	if size := criteria.Filters.ServingSize; size != "" && size != FilterAll {
		if p := servingPredicate(size); p != nil {
			preds = append(preds, p)
		}
	}

	if len(preds) == 1 {
		return recipe.Query{Where: preds[0]}, nil
	}
	return recipe.Query{Where: recipe.And{Preds: preds}}, nil
}

// servingPredicate maps a serving-size filter value onto a store predicate.
// Values carry a numeric pattern ("1-2 Kişilik", "3-4", ...); the top bucket
// matches either the literal "6+" or a serving-size field that parses as an
// integer of six or more.
func servingPredicate(size string) recipe.Predicate {
	switch {
	case strings.Contains(size, "1-2"):
		return recipe.Contains{Field: "serving_size", Token: "1-2"}
	case strings.Contains(size, "3-4"):
		return recipe.Contains{Field: "serving_size", Token: "3-4"}
	case strings.Contains(size, "5-6"):
		return recipe.Contains{Field: "serving_size", Token: "5-6"}
	case strings.Contains(size, "6+"):
		return recipe.Or{Preds: []recipe.Predicate{
			recipe.Contains{Field: "serving_size", Token: "6+"},
			recipe.IntAtLeast{Field: "serving_size", Min: 6},
		}}
	default:
		return nil
	}
}

// dedupe drops empty entries and duplicates, preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
