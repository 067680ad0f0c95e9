// Package notify shows transient, one-line messages to the user and keeps
// the underlying errors in the diagnostic log.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/ui"
)

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Notifier delivers user-visible messages.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	// Error shows the server-supplied message for err when there is one,
	// fallback otherwise, and logs err. It returns the message shown.
	Error(err error, fallback string) string
}

// Terminal writes notifications to a stream, typically stderr.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// NewTerminal returns a Terminal writing to out. A nil logger uses slog.Default.
func NewTerminal(out io.Writer, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{out: out, logger: logger}
}

func (t *Terminal) Info(msg string) {
	t.write(ui.RenderMuted(msg))
}

func (t *Terminal) Success(msg string) {
	t.write(ui.RenderSuccess("✓ ") + msg)
}

func (t *Terminal) Error(err error, fallback string) string {
	msg := client.UserMessage(err, fallback)
	t.logger.Error(fallback, "error", err)
	t.write(ui.RenderError("✗ ") + msg)
	return msg
}

func (t *Terminal) write(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
	Err   error
}

// Recorder keeps notifications in memory. Tests and JSON output use it.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Info(msg string)    { r.add(Message{Level: LevelInfo, Text: msg}) }
func (r *Recorder) Success(msg string) { r.add(Message{Level: LevelSuccess, Text: msg}) }

func (r *Recorder) Error(err error, fallback string) string {
	msg := client.UserMessage(err, fallback)
	r.add(Message{Level: LevelError, Text: msg, Err: err})
	return msg
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *Recorder) add(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

var (
	_ Notifier = (*Terminal)(nil)
	_ Notifier = (*Recorder)(nil)
)
