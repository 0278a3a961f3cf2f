// Package gemini implements the dialogue engine on top of the Google GenAI
// API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/naveenaduri/resume-agent/internal/ai"
	"github.com/naveenaduri/resume-agent/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-pro"
	defaultMaxRetries = 3
	defaultMaxLogLen  = 200

	// Quota errors sometimes ask for a delay longer than a conversational
	// turn can afford; beyond this we give up instead of retrying.
	maxQuotaDelay = 30 * time.Second
)

var sleep = time.Sleep

var retryDelayPattern = regexp.MustCompile(`retry after (\d+)`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (g *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return g.client.Chats.Create(ctx, model, config, history)
}

// Engine answers conversation turns with Gemini. Each Predict call creates
// a fresh chat seeded with the persona system instruction and the supplied
// transcript, so the engine itself holds no conversation state.
type Engine struct {
	chats      chatCreator
	model      string
	system     string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// NewEngine creates an engine configured for the Gemini API backend. The
// system instruction carries the persona and resume context for every turn.
func NewEngine(ctx context.Context, apiKey, model, system string, maxRetries, maxLogLength int, log *zap.Logger) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLen
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		chats:      &genaiChats{client: client},
		model:      model,
		system:     system,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     log,
	}, nil
}

// Predict sends the input to Gemini with the transcript as chat history and
// returns the textual reply. Temporary API errors are retried with a short
// backoff.
func (e *Engine) Predict(ctx context.Context, transcript []ai.Turn, input string) (string, error) {
	if e == nil || e.chats == nil {
		return "", errors.New("gemini engine is not initialized")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("input must not be empty")
	}

	config := &genai.GenerateContentConfig{}
	if strings.TrimSpace(e.system) != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: e.system}},
		}
	}

	history := historyContents(transcript)

	e.logger.Debug("gemini chat request",
		zap.Int("history_turns", len(history)),
		zap.Int("input_length", utf8.RuneCountInString(input)),
		zap.String("input_preview", logger.TruncateForLog(input, e.maxLogLen)),
	)

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		chat, err := e.chats.Create(ctx, e.model, config, history)
		if err != nil {
			return "", fmt.Errorf("create chat: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: input})
		if err == nil {
			return responseText(resp)
		}

		lastErr = err
		if !retryable(err) || attempt == e.maxRetries {
			break
		}

		e.logger.Debug("retrying gemini request",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		sleep(time.Duration(attempt) * time.Second)
	}

	return "", fmt.Errorf("generate reply: %w", lastErr)
}

func (e *Engine) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}

func historyContents(transcript []ai.Turn) []*genai.Content {
	history := make([]*genai.Content, 0, len(transcript))
	for _, turn := range transcript {
		role := genai.RoleUser
		if turn.Speaker == ai.SpeakerAssistant {
			role = genai.RoleModel
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return history
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// retryable reports whether the error is a temporary API condition worth
// another attempt. Quota errors advertising a long cool-down are not.
func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Code >= http.StatusInternalServerError {
		return true
	}

	if apiErr.Code == http.StatusTooManyRequests {
		if delay, ok := quotaDelay(apiErr.Message); ok && delay > maxQuotaDelay {
			return false
		}
		return true
	}

	return false
}

func quotaDelay(message string) (time.Duration, bool) {
	match := retryDelayPattern.FindStringSubmatch(strings.ToLower(message))
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
