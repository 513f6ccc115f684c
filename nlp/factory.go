package nlp

import (
	"log"
	"strings"
)

const (
	// ModeHeuristic selects the keyword classifier and no-op extractor.
	ModeHeuristic = "HEURISTIC"
	// ModeOpenAI selects the model-backed classifier and extractor.
	ModeOpenAI = "OPENAI"
)

// New selects the NLP implementations once at process start based on the
// configured mode. NLP_MODE=OPENAI with an API key present yields the
// model-backed variant; anything else falls back to the heuristics.
func New(mode, apiKey, model string) (IntentClassifier, EntityExtractor) {
	if strings.EqualFold(mode, ModeOpenAI) {
		if apiKey == "" {
			log.Println("WARN: NLP_MODE=OPENAI but no API key set, using heuristic NLP")
		} else {
			log.Printf("Using model-backed NLP (model=%s)", model)
			c := NewModelClient(apiKey, model)
			return c, c
		}
	} else {
		log.Println("Using heuristic NLP")
	}
	return HeuristicClassifier{}, NoopExtractor{}
}
