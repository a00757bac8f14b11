// Package notify delivers short user-facing notices ("toasts").
// Notices are fire-and-forget: sinks never report failure to the sender.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jacksmith/trips/internal/cli"
)

// Severity is how a notice is presented.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Notice is a single message for the user.
type Notice struct {
	Severity    Severity `json:"severity"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
}

// Info builds an info notice.
func Info(title, description string) Notice {
	return Notice{Severity: SeverityInfo, Title: title, Description: description}
}

// Destructive builds a destructive notice.
func Destructive(title, description string) Notice {
	return Notice{Severity: SeverityDestructive, Title: title, Description: description}
}

// String renders the notice as "Title: Description".
func (n Notice) String() string {
	if n.Title == "" {
		return n.Description
	}
	return n.Title + ": " + n.Description
}

// Sink receives notices.
type Sink interface {
	Notify(n Notice)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notice)

// Notify implements Sink.
func (f SinkFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Sink = SinkFunc(func(Notice) {})

// Writer prints notices to a terminal, destructive ones in red.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify implements Sink.
func (s *Writer) Notify(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := n.String()
	if n.Severity == SeverityDestructive {
		line = cli.Red(line)
	} else {
		line = cli.Gray(line)
	}
	fmt.Fprintln(s.w, line)
}

// Log records notices with a structured logger at debug level, destructive at warn.
type Log struct {
	Logger *slog.Logger
}

// Notify implements Sink.
func (s Log) Notify(n Notice) {
	level := slog.LevelDebug
	if n.Severity == SeverityDestructive {
		level = slog.LevelWarn
	}
	s.Logger.Log(context.Background(), level, "notice", "severity", n.Severity, "title", n.Title, "description", n.Description)
}

// Recorder keeps every notice it receives. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Sink.
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Buffer keeps the most recent notices until they are drained.
// Older notices are dropped once the buffer is full.
type Buffer struct {
	mu      sync.Mutex
	size    int
	notices []Notice
}

// NewBuffer returns a Buffer holding at most size notices.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = 1
	}
	return &Buffer{size: size}
}

// Notify implements Sink.
func (b *Buffer) Notify(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, n)
	if over := len(b.notices) - b.size; over > 0 {
		b.notices = append([]Notice(nil), b.notices[over:]...)
	}
}

// Drain returns the buffered notices, oldest first, and empties the buffer.
func (b *Buffer) Drain() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.notices
	b.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Multi fans a notice out to several sinks.
type Multi []Sink

// Notify implements Sink.
func (m Multi) Notify(n Notice) {
	for _, s := range m {
		s.Notify(n)
	}
}
