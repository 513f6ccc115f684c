// Package nlp provides intent classification and entity extraction for
// inbound patient messages.
package nlp

import (
	"context"

	"github.com/malecare/trialbot/domain"
)

// SessionContext gives a classifier minimal context about the conversation.
type SessionContext struct {
	IntakeComplete bool
}

// IntentClassifier classifies a free-text message into a conversational
// intent. Implementations are selected once at process start.
type IntentClassifier interface {
	Classify(ctx context.Context, text string, sctx SessionContext) (domain.Intent, error)
}

// EntityExtractor extracts structured fields from free text. Fields that are
// not found stay empty.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) (domain.Entities, error)
}
