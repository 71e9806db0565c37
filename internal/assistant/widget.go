// Package assistant is a client for the chat relay that keeps the state of
// the floating sales assistant: whether it is open, whether a reply is
// pending, and the local transcript.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	SalesSystemPrompt = "You are MarketFlow's AI Sales Assistant. Help users navigate the marketplace, explain seller benefits (10% platform fee), and assist admins. Be concise and friendly."

	Greeting     = "Hi there! I'm your MarketFlow Assistant. How can I help you navigate the marketplace today?"
	ErrorReply   = "I encountered an error. Please try again in a moment."
	NoReplyReply = "I'm sorry, I couldn't process that request."

	chatPath       = "/api/chat"
	defaultTimeout = 90 * time.Second
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("a reply is already pending")
	ErrClosed       = errors.New("assistant is closed")
)

type State int

const (
	StateClosed State = iota
	StateIdle
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting_reply"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

type Option func(*Widget)

func WithHTTPClient(client *http.Client) Option {
	return func(w *Widget) { w.client = client }
}

func WithSystemPrompt(prompt string) Option {
	return func(w *Widget) { w.systemPrompt = prompt }
}

// Widget is safe for concurrent use. The transcript stays local; only the
// latest user message is sent to the relay.
type Widget struct {
	mu         sync.Mutex
	open       bool
	awaiting   bool
	transcript []Message

	endpoint     string
	systemPrompt string
	client       *http.Client
}

// NewWidget creates a closed widget talking to the relay at baseURL.
func NewWidget(baseURL string, opts ...Option) *Widget {
	w := &Widget{
		transcript:   []Message{{Role: RoleModel, Text: Greeting}},
		endpoint:     strings.TrimRight(baseURL, "/") + chatPath,
		systemPrompt: SalesSystemPrompt,
		client:       &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state()
}

func (w *Widget) state() State {
	switch {
	case !w.open:
		return StateClosed
	case w.awaiting:
		return StateAwaitingReply
	default:
		return StateIdle
	}
}

// Toggle opens or closes the widget and returns the new state. Closing while
// a reply is pending does not cancel it; the reply still lands in the
// transcript.
func (w *Widget) Toggle() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = !w.open
	return w.state()
}

func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// Send posts input to the relay and appends both sides to the transcript.
// On failure the apology message is appended and returned along with the
// error.
func (w *Widget) Send(ctx context.Context, input string) (Message, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	w.mu.Lock()
	switch w.state() {
	case StateClosed:
		w.mu.Unlock()
		return Message{}, ErrClosed
	case StateAwaitingReply:
		w.mu.Unlock()
		return Message{}, ErrBusy
	}
	w.awaiting = true
	w.transcript = append(w.transcript, Message{Role: RoleUser, Text: text})
	w.mu.Unlock()

	reply, err := w.request(ctx, text)

	msg := Message{Role: RoleModel, Text: reply}
	if err != nil {
		msg.Text = ErrorReply
	} else if reply == "" {
		msg.Text = NoReplyReply
	}

	w.mu.Lock()
	w.transcript = append(w.transcript, msg)
	w.awaiting = false
	w.mu.Unlock()

	return msg, err
}

func (w *Widget) request(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"message": text,
		"system":  w.systemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	return decoded.Reply, nil
}
