// Package suggest implements the ingredient-driven recipe discovery
// pipeline: recognizing ingredients in free text, building candidate store
// queries, post-filtering candidates, and extracting structured recipes from
// generative-model output.
package suggest

import "strings"

// vocabulary is the fixed set of ingredient tokens the pipeline recognizes.
// All entries are lower case. Immutable after initialization.
var vocabulary = []string{
	"domates", "peynir", "yumurta", "soğan", "sarımsak", "patates",
	"tavuk", "kıyma", "et", "balık", "pirinç", "makarna", "bulgur",
	"biber", "patlıcan", "kabak", "havuç", "ıspanak", "pırasa",
	"mercimek", "nohut", "fasulye", "bezelye", "mantar", "mısır",
	"süt", "yoğurt", "tereyağı", "zeytinyağı", "un", "şeker", "bal",
	"limon", "maydanoz", "dereotu", "nane", "ceviz", "fındık",
	"zeytin", "salça", "tarhana", "yufka",
}

// RecognizeIngredients returns the vocabulary tokens that occur anywhere in
// the given text, case-insensitively. Matching is plain substring
// containment with no word boundaries: a token inside a longer word still
// counts. This is a loose heuristic, not a parser.
func RecognizeIngredients(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var found []string
	for _, token := range vocabulary {
		if strings.Contains(lowered, token) {
			found = append(found, token)
		}
	}
	return found
}
