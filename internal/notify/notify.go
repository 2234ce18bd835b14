// Package notify delivers the user-facing outcome of repository operations.
package notify

import (
	"log/slog"
	"sync"
)

type Notifier interface {
	Success(message string)
	Error(message string)
}

type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger.With(slog.String("component", "notify"))}
}

func (n *SlogNotifier) Success(message string) {
	n.logger.Info(message, slog.String("kind", "success"))
}

func (n *SlogNotifier) Error(message string) {
	n.logger.Error(message, slog.String("kind", "error"))
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Kind Kind
	Text string
}

// Recorder keeps every message in order.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(message string) { r.add(KindSuccess, message) }

func (r *Recorder) Error(message string) { r.add(KindError, message) }

func (r *Recorder) add(kind Kind, text string) {
	r.mu.Lock()
	r.messages = append(r.messages, Message{Kind: kind, Text: text})
	r.mu.Unlock()
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}

// Discard drops every message.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
