// Package service implements the conversation orchestrator: the state
// machine that turns one inbound request into one outbound response.
package service

import (
	"sync"

	"github.com/malecare/trialbot/nlp"
	"github.com/malecare/trialbot/registry"
	"github.com/malecare/trialbot/store"
)

// Service wires the session store, the NLP capabilities and the trial
// search client together.
type Service struct {
	store    store.SessionStore
	intents  nlp.IntentClassifier
	entities nlp.EntityExtractor
	trials   registry.Searcher

	// userLocks serializes requests per user_id. Different users never
	// contend on a shared lock.
	userLocks sync.Map // user_id -> *sync.Mutex
}

// New creates the orchestrator service.
func New(st store.SessionStore, intents nlp.IntentClassifier, entities nlp.EntityExtractor, trials registry.Searcher) *Service {
	return &Service{
		store:    st,
		intents:  intents,
		entities: entities,
		trials:   trials,
	}
}

// lockFor returns the mutex serializing one user's requests.
func (s *Service) lockFor(userID string) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
