// internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketflow-backend/internal/config"
)

const (
	DefaultSystemPrompt = "You are MarketFlow's helpful assistant for buyers, sellers, and admins of a digital marketplace."
	FallbackReply       = "I'm sorry, I couldn't generate a response."
)

var (
	ErrMessageRequired   = errors.New("message is required")
	ErrChatNotConfigured = errors.New("chat upstream is not configured")
	ErrChatUpstream      = errors.New("chat upstream failed")
)

// Completer sends one system prompt and one user message to a language model.
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

type openAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(cfg config.OpenAIConfig) Completer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (o *openAICompleter) Complete(ctx context.Context, system, message string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

type ChatRequest struct {
	Message string `json:"message"`
	System  string `json:"system,omitempty"`
}

// ChatService relays single stateless messages to the completion API. No
// conversation history is kept or forwarded.
type ChatService struct {
	completer Completer
	timeout   time.Duration
	observe   func(outcome string)
}

// NewChatService builds a relay. A nil completer means the API key is not
// configured and every call fails with ErrChatNotConfigured.
func NewChatService(completer Completer, timeout time.Duration) *ChatService {
	return &ChatService{
		completer: completer,
		timeout:   timeout,
		observe:   func(string) {},
	}
}

// NewChatServiceFromConfig wires the OpenAI completer when a key is present.
func NewChatServiceFromConfig(cfg config.OpenAIConfig) *ChatService {
	var completer Completer
	if cfg.APIKey != "" {
		completer = NewOpenAICompleter(cfg)
	}
	return NewChatService(completer, cfg.RequestTimeout())
}

// OnOutcome registers a callback receiving "ok", "invalid", "unconfigured"
// or "upstream_error" for every relayed call.
func (s *ChatService) OnOutcome(fn func(outcome string)) {
	if fn != nil {
		s.observe = fn
	}
}

func (s *ChatService) Enabled() bool {
	return s.completer != nil
}

// Reply validates req and relays it. An empty completion becomes FallbackReply.
func (s *ChatService) Reply(ctx context.Context, req ChatRequest) (string, error) {
	if req.Message == "" {
		s.observe("invalid")
		return "", ErrMessageRequired
	}

	system := req.System
	if system == "" {
		system = DefaultSystemPrompt
	}

	text, err := s.Generate(ctx, system, req.Message)
	if err != nil {
		return "", err
	}
	if text == "" {
		return FallbackReply, nil
	}
	return text, nil
}

// Generate sends one system prompt and one message upstream and returns the
// raw completion text, which may be empty.
func (s *ChatService) Generate(ctx context.Context, system, message string) (string, error) {
	if s.completer == nil {
		s.observe("unconfigured")
		return "", ErrChatNotConfigured
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, system, message)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"duration": time.Since(start).Milliseconds(),
		}).Error("Chat upstream request failed")
		s.observe("upstream_error")
		return "", fmt.Errorf("%w: %v", ErrChatUpstream, err)
	}

	s.observe("ok")
	return text, nil
}
