package nlp

import (
	"context"
	"strings"
	"unicode"

	"github.com/malecare/trialbot/domain"
)

// Keyword sets for the fallback classifier. Matching is over lowercased
// word tokens, so "Hi, bye!" matches both sets and "this" matches neither.
var (
	greetingKeywords = []string{"hello", "hi", "hey"}
	goodbyeKeywords  = []string{"bye", "goodbye", "farewell"}
)

// HeuristicClassifier resolves intent with ordered keyword checks. The
// priority is fixed: greeting beats goodbye beats find_trials beats unknown.
type HeuristicClassifier struct{}

// Ensure HeuristicClassifier implements IntentClassifier.
var _ IntentClassifier = HeuristicClassifier{}

// Classify never fails; the error return exists only to satisfy the
// interface shared with the model-backed variant.
func (HeuristicClassifier) Classify(_ context.Context, text string, sctx SessionContext) (domain.Intent, error) {
	tokens := tokenize(text)
	if containsAny(tokens, greetingKeywords) {
		return domain.IntentGreeting, nil
	}
	if containsAny(tokens, goodbyeKeywords) {
		return domain.IntentGoodbye, nil
	}
	if sctx.IntakeComplete {
		return domain.IntentFindTrials, nil
	}
	return domain.IntentUnknown, nil
}

// NoopExtractor is the fallback extractor used when no NER model is
// configured. It reports every field as absent, which makes the merge rule
// fall back to the intake values.
type NoopExtractor struct{}

// Ensure NoopExtractor implements EntityExtractor.
var _ EntityExtractor = NoopExtractor{}

func (NoopExtractor) Extract(context.Context, string) (domain.Entities, error) {
	return domain.Entities{}, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func containsAny(tokens []string, keywords []string) bool {
	for _, tok := range tokens {
		for _, kw := range keywords {
			if tok == kw {
				return true
			}
		}
	}
	return false
}
