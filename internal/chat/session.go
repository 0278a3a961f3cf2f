// Package chat owns a conversation: its transcript, the knowledge-base
// enricher and the dialogue engine.
package chat

import (
	"context"
	"errors"
	"strings"

	_ "embed"

	"github.com/naveenaduri/resume-agent/internal/ai"
	"github.com/naveenaduri/resume-agent/internal/knowledge"
	"go.uber.org/zap"
)

//go:embed persona.md
var personaTemplate string

// apology is returned to the caller when the dialogue engine fails; raw
// engine errors never leave the session.
const apology = "I apologize, but I'm having trouble processing your request at the moment."

// ErrEmptyMessage is returned for blank input.
var ErrEmptyMessage = errors.New("message must not be empty")

// Persona renders the system instruction for the dialogue engine from the
// owner's name and resume text.
func Persona(name, resumeText string) string {
	prompt := strings.ReplaceAll(personaTemplate, "{{NAME}}", name)
	prompt = strings.ReplaceAll(prompt, "{{RESUME}}", resumeText)
	return prompt
}

// Session is one conversation. The transcript is an append-only log of
// turns passed to the engine on every call.
type Session struct {
	engine     ai.Engine
	enricher   *knowledge.Enricher
	transcript []ai.Turn
	logger     *zap.Logger
}

func NewSession(engine ai.Engine, enricher *knowledge.Enricher, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		engine:   engine,
		enricher: enricher,
		logger:   logger,
	}
}

// Respond enriches the message with knowledge-base facts, forwards it to
// the dialogue engine and records both sides in the transcript. An engine
// failure yields a fixed apology rather than an error.
func (s *Session) Respond(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	input := message
	if s.enricher != nil {
		input = s.enricher.Enrich(message)
	}

	reply, err := s.engine.Predict(ctx, s.transcript, input)
	if err != nil {
		s.logger.Warn("dialogue engine failed", zap.Error(err))
		return apology, nil
	}

	s.transcript = append(s.transcript,
		ai.Turn{Speaker: ai.SpeakerUser, Text: input},
		ai.Turn{Speaker: ai.SpeakerAssistant, Text: reply},
	)

	return reply, nil
}

// Transcript returns a copy of the conversation log.
func (s *Session) Transcript() []ai.Turn {
	return append([]ai.Turn(nil), s.transcript...)
}
