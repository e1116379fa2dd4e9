package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TextGenerator is the generative text collaborator: one prompt in, one
// textual reply out. No retries and no streaming happen behind it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Draft is an unvalidated structured fragment extracted from model output,
// keyed by whatever field names the model chose to use.
type Draft map[string]any

// Extractor obtains recipe suggestions from a generative model and
// decomposes the reply into drafts.
type Extractor struct {
	generator TextGenerator
}

// NewExtractor creates an Extractor on the given text generator.
func NewExtractor(generator TextGenerator) *Extractor {
	return &Extractor{generator: generator}
}

const promptTemplate = `Elimdeki malzemeler: %s.

Bu malzemelerle yapılabilecek tam olarak 10 yemek tarifi öner. Yanıtı yalnızca
bir JSON dizisi olarak ver; dizinin her öğesi şu altı alanı içeren bir nesne
olsun: "title", "ingredients", "instructions", "serving_size",
"preparation_time", "cooking_time". JSON dışında hiçbir açıklama, başlık veya
markdown biçimlendirmesi ekleme.`

// Extract asks the model for recipe suggestions based on the recognized
// ingredients and returns every parseable fragment of the reply, in the
// order found.
//
// The model is told to return pure JSON but routinely wraps it in prose or
// fences, so the reply is scanned for brace-delimited fragments and each is
// parsed on its own; a fragment that is not valid JSON is dropped silently.
// Zero parseable fragments is an empty result, not an error. Truncation to
// the caller-visible count happens at the HTTP boundary, not here.
func (e *Extractor) Extract(ctx context.Context, ingredients []string) ([]Draft, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(ingredients, ", "))

	reply, err := e.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("text generation failed: %w", err)
	}

	var drafts []Draft
	for _, fragment := range scanFragments(reply) {
		var d Draft
		if err := json.Unmarshal([]byte(fragment), &d); err != nil {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// scanFragments walks the text left to right and emits each substring from a
// "{" to the next "}". The scan is not nesting-aware: it is the cheapest cut
// that copes with prose-wrapped, partially malformed model output, and the
// per-fragment parse in Extract decides what survives.
func scanFragments(text string) []string {
	var fragments []string
	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '{')
		if start == -1 {
			break
		}
		start += i
		end := strings.IndexByte(text[start:], '}')
		if end == -1 {
			break
		}
		end += start
		fragments = append(fragments, text[start:end+1])
		i = end + 1
	}
	return fragments
}
