// Package status reports human-readable progress to the user.
package status

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gookit/color"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Reporter receives status messages at phase boundaries.
type Reporter interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Console prints colored status lines.
type Console struct {
	out  io.Writer
	lock sync.Mutex
}

func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

func (c *Console) Info(format string, args ...any) {
	c.print("<green>•</> %s\n", format, args)
}

func (c *Console) Warn(format string, args ...any) {
	c.print("<yellow>!</> %s\n", format, args)
}

func (c *Console) Error(format string, args ...any) {
	c.print("<red>✗ %s</>\n", format, args)
}

func (c *Console) print(line, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	c.lock.Lock()
	defer c.lock.Unlock()
	color.Fprintf(c.out, line, msg)
}

// Message is one recorded status line.
type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message in memory.
type Recorder struct {
	lock     sync.Mutex
	messages []Message
}

func (r *Recorder) Info(format string, args ...any)  { r.add(LevelInfo, format, args) }
func (r *Recorder) Warn(format string, args ...any)  { r.add(LevelWarn, format, args) }
func (r *Recorder) Error(format string, args ...any) { r.add(LevelError, format, args) }

func (r *Recorder) add(level Level, format string, args []any) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.lock.Lock()
	defer r.lock.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Texts returns the recorded messages of the given level.
func (r *Recorder) Texts(level Level) []string {
	var out []string
	for _, m := range r.Messages() {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}
