// Package helpers provides shared test doubles for the chatbot.
package helpers

import (
	"context"
	"sync"

	"github.com/malecare/trialbot/domain"
	"github.com/malecare/trialbot/nlp"
)

// SearchCall records the arguments of one Search invocation.
type SearchCall struct {
	CancerType string
	Location   string
}

// StubSearcher is a canned trial searcher that records its calls.
type StubSearcher struct {
	mu       sync.Mutex
	Trials   []domain.Trial
	Degraded bool
	Calls    []SearchCall
}

func (s *StubSearcher) Search(_ context.Context, cancerType, location string) ([]domain.Trial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, SearchCall{CancerType: cancerType, Location: location})
	return s.Trials, s.Degraded
}

// CallCount returns how many searches ran.
func (s *StubSearcher) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// LastCall returns the most recent search arguments.
func (s *StubSearcher) LastCall() SearchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[len(s.Calls)-1]
}

// StubClassifier returns a fixed intent, or an error when set.
type StubClassifier struct {
	Intent domain.Intent
	Err    error
}

func (s StubClassifier) Classify(context.Context, string, nlp.SessionContext) (domain.Intent, error) {
	return s.Intent, s.Err
}

// StubExtractor returns fixed entities, or an error when set.
type StubExtractor struct {
	Entities domain.Entities
	Err      error
}

func (s StubExtractor) Extract(context.Context, string) (domain.Entities, error) {
	return s.Entities, s.Err
}

// SampleTrial builds a plausible trial record for tests.
func SampleTrial(nctID string, nationwide bool) domain.Trial {
	return domain.Trial{
		NCTID:        nctID,
		Title:        "A Study of Combination Therapy",
		Phase:        "Phase 2",
		Status:       "Recruiting",
		Location:     "Boston, Massachusetts",
		Facility:     "General Hospital",
		Sponsor:      "Example Oncology Group",
		Link:         "https://clinicaltrials.gov/study/" + nctID,
		IsNationwide: nationwide,
	}
}
