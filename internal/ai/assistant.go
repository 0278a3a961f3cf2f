// Package ai defines the dialogue-engine contract used by conversation
// sessions.
package ai

import "context"

// Speaker identifies who produced a transcript turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one entry of a conversation transcript. Transcripts are
// append-only: the session owning the conversation appends turns and passes
// the whole log to every Predict call.
type Turn struct {
	Speaker Speaker
	Text    string
}

// Engine generates the next assistant reply given the conversation so far
// and the (possibly enriched) new user input.
type Engine interface {
	Predict(ctx context.Context, transcript []Turn, input string) (string, error)
}
