package suggest

import "strings"

// canonicalFields is the fixed schema every AI-suggested recipe is
// normalized into. All six keys are guaranteed present in the output.
var canonicalFields = []string{
	"title", "ingredients", "instructions",
	"serving_size", "preparation_time", "cooking_time",
}

// fieldSynonyms maps the Turkish (and otherwise inconsistent) field names
// the model tends to produce onto the canonical schema. Immutable after
// initialization.
var fieldSynonyms = map[string]string{
	"Başlık":           "title",
	"İsim":             "title",
	"Tarif Adı":        "title",
	"Malzemeler":       "ingredients",
	"Hazırlanış":       "instructions",
	"Yapılışı":         "instructions",
	"Hazırlama Süresi": "preparation_time",
	"Hazırlık":         "preparation_time",
	"Pişirme Süresi":   "cooking_time",
	"Süre":             "cooking_time",
	"Porsiyon":         "serving_size",
	"Kişi Sayısı":      "serving_size",
}

// Normalize maps a draft's arbitrary field names onto the canonical recipe
// schema. Each key is trimmed and looked up in the synonym table; a key not
// in the table is kept under its lower-cased form, so unknown fields pass
// through instead of vanishing. Any canonical field still missing afterwards
// is filled with an empty string. Values are passed through unchanged. Total
// function; never fails.
func Normalize(draft Draft) Draft {
	out := make(Draft, len(draft)+len(canonicalFields))
	for key, value := range draft {
		key = strings.TrimSpace(key)
		if canonical, ok := fieldSynonyms[key]; ok {
			key = canonical
		} else {
			key = strings.ToLower(key)
		}
		out[key] = value
	}
	for _, field := range canonicalFields {
		if _, ok := out[field]; !ok {
			out[field] = ""
		}
	}
	return out
}
