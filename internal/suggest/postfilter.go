package suggest

import (
	"regexp"
	"strconv"
	"strings"

	"tarifler/internal/recipe"
)

// CookingTimeBucket is one of three disjoint cooking-time ranges used for
// filtering. Stored cooking times are free text, so candidates are bucketed
// after retrieval rather than in the store query.
type CookingTimeBucket int

const (
	Under30 CookingTimeBucket = iota
	Between30And60
	Over60
)

// maxCandidates bounds the discovery result set.
const maxCandidates = 15

var digits = regexp.MustCompile(`\d+`)

// ExtractMinutes returns the first integer found in a free-text duration,
// e.g. "yaklaşık 45 dk" -> 45. Text with no digits yields 0.
func ExtractMinutes(text string) int {
	m := digits.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Longer than an int; treat like any other unparseable text.
		return 0
	}
	return n
}

// BucketFor classifies a minute count. Zero minutes (including text with no
// digits at all) always lands in Under30.
func BucketFor(minutes int) CookingTimeBucket {
	switch {
	case minutes < 30:
		return Under30
	case minutes <= 60:
		return Between30And60
	default:
		return Over60
	}
}

// bucketForLabel maps a cooking-time filter value onto a bucket. Unrecognized
// labels mean no constraint, mirroring the category filter policy.
func bucketForLabel(label string) (CookingTimeBucket, bool) {
	switch {
	case strings.Contains(label, "30-60"):
		return Between30And60, true
	case strings.Contains(label, "30"):
		return Under30, true
	case strings.Contains(label, "60"):
		return Over60, true
	default:
		return 0, false
	}
}

// Refine applies the filters the store query could not express and bounds
// the result set. When a cooking-time filter is set, only candidates whose
// extracted cooking time falls in the requested bucket survive. The result
// is then truncated to the first fifteen entries, preserving the store's
// ordering: the output is always a stable subsequence of the input and never
// longer than it.
func Refine(candidates []recipe.Recipe, criteria SelectionCriteria) []recipe.Recipe {
	out := candidates

	if label := criteria.Filters.CookingTime; label != "" && label != FilterAll {
		if want, ok := bucketForLabel(label); ok {
			out = make([]recipe.Recipe, 0, len(candidates))
			for _, c := range candidates {
				if BucketFor(ExtractMinutes(c.CookingTime)) == want {
					out = append(out, c)
				}
			}
		}
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}
