// Package store defines the session storage interface and implementations.
package store

import "github.com/malecare/trialbot/domain"

// SessionStore is the only holder of conversation state. Every mutation of a
// Session goes through these operations; callers get copies, never live
// references into the store.
type SessionStore interface {
	// UpsertIntake creates the session if absent, replaces its intake
	// wholesale, and marks the session INTAKE_COMPLETE.
	UpsertIntake(userID string, intake domain.PatientIntake) *domain.Session

	// Get returns a copy of the session, or domain.ErrSessionNotFound.
	Get(userID string) (*domain.Session, error)

	// AppendTurn appends a turn to the session's transcript. It returns
	// domain.ErrSessionNotFound when no intake was ever submitted.
	AppendTurn(userID string, turn domain.Turn) error

	// SetState moves the session to the given state. It returns
	// domain.ErrSessionNotFound when the session does not exist.
	SetState(userID string, state domain.SessionState) error

	// Clear removes the session. Clearing an absent session is not an error.
	Clear(userID string)
}
