// Package domain defines the core domain models for the trial match chatbot.
package domain

import "time"

// SessionState represents the lifecycle state of a conversation session.
type SessionState string

const (
	StateNew            SessionState = "NEW"
	StateIntakeComplete SessionState = "INTAKE_COMPLETE"
	StateEnded          SessionState = "ENDED"
)

// Intent represents the coarse purpose of a user message.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentFindTrials Intent = "find_trials"
	IntentGoodbye    Intent = "goodbye"
	IntentUnknown    Intent = "unknown"
)

// Turn roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// PatientIntake is the structured patient profile submitted before chat begins.
// A resubmission for the same user replaces the previous intake wholesale.
type PatientIntake struct {
	UserID          string   `json:"user_id"`
	CancerType      string   `json:"cancer_type"`
	Stage           string   `json:"stage"` // free-form, e.g. "stage 2"
	Age             int      `json:"age"`
	Sex             string   `json:"sex"`
	Location        string   `json:"location"` // free-form city/state
	Comorbidities   []string `json:"comorbidities,omitempty"`
	PriorTreatments []string `json:"prior_treatments,omitempty"`
}

// Turn is a single exchange entry in a session, from the user or the bot.
// Trials is set only on bot turns produced by a trial search.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Trials    []Trial   `json:"trials,omitempty"`
}

// Session holds the per-user conversation state. Intake is nil until the
// user submits the intake form.
type Session struct {
	UserID    string         `json:"user_id"`
	Intake    *PatientIntake `json:"intake,omitempty"`
	Turns     []Turn         `json:"turns"`
	State     SessionState   `json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Trial is one clinical trial record surfaced to the user. IsNationwide is
// true only when the trial was returned by the nationwide fallback search.
type Trial struct {
	NCTID        string `json:"nct_id"`
	Title        string `json:"title"`
	Phase        string `json:"phase"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	Facility     string `json:"facility,omitempty"`
	Sponsor      string `json:"sponsor,omitempty"`
	Link         string `json:"link"`
	IsNationwide bool   `json:"is_nationwide"`
}

// Entities holds the structured fields extracted from a free-text message.
// Empty string means the field was not found.
type Entities struct {
	CancerType string `json:"cancer_type,omitempty"`
	Location   string `json:"location,omitempty"`
	Age        string `json:"age,omitempty"`
	Sex        string `json:"sex,omitempty"`
}
