package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/malecare/trialbot/domain"
	"github.com/malecare/trialbot/metrics"
	"github.com/malecare/trialbot/nlp"
)

// Templated replies. The greeting and goodbye texts follow the bot's
// published voice; everything else states what was searched and what came
// back.
const (
	replyRequiresIntake = "Please complete the intake form before proceeding."
	replyGreeting       = "Hello! I can help you find clinical trials. Ask me to search whenever you're ready."
	replyGoodbye        = "Goodbye! Feel free to return anytime you need help finding clinical trials."
	replyClarify        = "Could you clarify your request? I can search for recruiting clinical trials that match your profile."
	replyEnded          = "Our conversation has ended. Submit a new intake form whenever you'd like to search again."
	replyDegraded       = "We're having trouble connecting to ClinicalTrials.gov right now. Please try again in a moment, or visit clinicaltrials.gov directly."
)

// MessageReply is the outcome of handling one inbound message. Trials is
// non-nil only when a trial search ran, even if it matched nothing.
type MessageReply struct {
	Response       string
	Trials         []domain.Trial
	RequiresIntake bool
}

// SubmitIntake records (or wholly replaces) the user's intake and returns
// the acknowledgement text.
func (s *Service) SubmitIntake(intake domain.PatientIntake) string {
	mu := s.lockFor(intake.UserID)
	mu.Lock()
	defer mu.Unlock()

	s.store.UpsertIntake(intake.UserID, intake)
	return fmt.Sprintf("Thanks! I've recorded your details. Say hello or ask me to find %s trials whenever you're ready.", intake.CancerType)
}

// HandleMessage runs one message through the conversation state machine.
// Requests for the same user are serialized; different users proceed in
// parallel.
func (s *Service) HandleMessage(ctx context.Context, userID, text string) MessageReply {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.store.Get(userID)
	if err != nil || sess.State == domain.StateNew {
		return MessageReply{Response: replyRequiresIntake, RequiresIntake: true}
	}

	s.appendTurn(userID, domain.RoleUser, text, nil)

	if sess.State == domain.StateEnded {
		// The session stays ENDED until /end-session removes it.
		return s.reply(userID, replyEnded, nil)
	}

	intent := s.classify(ctx, text, sess)
	metrics.MessagesTotal.WithLabelValues(string(intent)).Inc()

	switch intent {
	case domain.IntentGreeting:
		return s.reply(userID, replyGreeting, nil)
	case domain.IntentGoodbye:
		if err := s.store.SetState(userID, domain.StateEnded); err != nil {
			log.Printf("ERROR: failed to end session for %s: %v", userID, err)
		}
		return s.reply(userID, replyGoodbye, nil)
	case domain.IntentFindTrials:
		return s.findTrials(ctx, userID, text, sess)
	default:
		return s.reply(userID, replyClarify, nil)
	}
}

// EndSession removes the session. Idempotent.
func (s *Service) EndSession(userID string) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	s.store.Clear(userID)
}

// Session returns a copy of the user's session.
func (s *Service) Session(userID string) (*domain.Session, error) {
	return s.store.Get(userID)
}

func (s *Service) classify(ctx context.Context, text string, sess *domain.Session) domain.Intent {
	sctx := nlp.SessionContext{IntakeComplete: sess.Intake != nil}
	intent, err := s.intents.Classify(ctx, text, sctx)
	if err != nil {
		log.Printf("WARN: intent classification failed, using default: %v", err)
		if sess.Intake != nil {
			return domain.IntentFindTrials
		}
		return domain.IntentUnknown
	}
	return intent
}

func (s *Service) findTrials(ctx context.Context, userID, text string, sess *domain.Session) MessageReply {
	ents, err := s.entities.Extract(ctx, text)
	if err != nil {
		log.Printf("WARN: entity extraction failed, using intake values: %v", err)
		ents = domain.Entities{}
	}

	// Merge per field: a message naming only a new location must keep the
	// intake's cancer type.
	cancerType := ents.CancerType
	if cancerType == "" {
		cancerType = sess.Intake.CancerType
	}
	location := ents.Location
	if location == "" {
		location = sess.Intake.Location
	}

	trials, degraded := s.trials.Search(ctx, cancerType, location)

	switch {
	case degraded:
		return s.reply(userID, replyDegraded, []domain.Trial{})
	case len(trials) == 0:
		text := fmt.Sprintf("I couldn't find any recruiting %s trials matching %s right now. You may want to widen your search or check back later.", cancerType, location)
		return s.reply(userID, text, []domain.Trial{})
	case trials[0].IsNationwide:
		text := fmt.Sprintf("I couldn't find %s trials near %s, so here are %d recruiting nationwide:", cancerType, location, len(trials))
		return s.reply(userID, text, trials)
	default:
		text := fmt.Sprintf("Here are %d %s clinical trials in %s:", len(trials), cancerType, location)
		return s.reply(userID, text, trials)
	}
}

// reply appends the bot turn and builds the response.
func (s *Service) reply(userID, text string, trials []domain.Trial) MessageReply {
	s.appendTurn(userID, domain.RoleBot, text, trials)
	return MessageReply{Response: text, Trials: trials}
}

func (s *Service) appendTurn(userID, role, text string, trials []domain.Trial) {
	turn := domain.Turn{
		TurnID:    "turn_" + uuid.New().String()[:8],
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
		Trials:    trials,
	}
	if err := s.store.AppendTurn(userID, turn); err != nil {
		log.Printf("ERROR: failed to append turn for %s: %v", userID, err)
	}
}
