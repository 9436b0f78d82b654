// Package logparser parses the log4j lines Minecraft prints to stdout
package logparser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"
)

const timeFormat = "15:04:05"

var lineRegex = regexp.MustCompile(`^\[(\d+:\d+:\d+)\] \[([^\]]+)\/([A-Z]+)\](?: \[([^\]]+)\])?: (.*)$`)

// LogLine is a parsed log line
type LogLine struct {
	Time    time.Time
	Thread  string
	Level   string
	Tag     string
	Message string
	Garbage bool
}

func (l LogLine) String() string {
	if l.Garbage {
		return l.Message
	}
	if l.Tag == "" {
		return fmt.Sprintf("[%s] [%s/%s]: %s", l.Time.Format(timeFormat), l.Thread, l.Level, l.Message)
	}
	return fmt.Sprintf(
		"[%s] [%s/%s] [%s]: %s",
		l.Time.Format(timeFormat),
		l.Thread,
		l.Level,
		l.Tag,
		l.Message,
	)
}

// IsError returns true for ERROR and FATAL lines
func (l LogLine) IsError() bool {
	return !l.Garbage && (l.Level == "ERROR" || l.Level == "FATAL")
}

// ParseLine parses a string into a `LogLine`
func ParseLine(input string) *LogLine {
	found := lineRegex.FindStringSubmatch(input)
	if len(found) == 0 {
		return &LogLine{Garbage: true, Message: input}
	}
	t, err := time.Parse(timeFormat, found[1])
	if err != nil {
		return &LogLine{Garbage: true, Message: input}
	}

	return &LogLine{
		Time:    t,
		Thread:  found[2],
		Level:   found[3],
		Tag:     found[4],
		Message: found[5],
	}
}

// Watcher forwards everything to W and remembers the last Keep error lines
type Watcher struct {
	W    io.Writer
	Keep int

	mu      sync.Mutex
	partial []byte
	errors  []*LogLine
}

// NewWatcher returns a watcher that keeps the last 10 error lines
func NewWatcher(w io.Writer) *Watcher {
	return &Watcher{W: w, Keep: 10}
}

func (w *Watcher) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.observe(string(bytes.TrimRight(w.partial[:i], "\r")))
		w.partial = w.partial[i+1:]
	}

	return w.W.Write(p)
}

func (w *Watcher) observe(line string) {
	parsed := ParseLine(line)
	if !parsed.IsError() {
		return
	}
	w.errors = append(w.errors, parsed)
	if w.Keep > 0 && len(w.errors) > w.Keep {
		w.errors = w.errors[len(w.errors)-w.Keep:]
	}
}

// Errors returns the remembered error lines, oldest first
func (w *Watcher) Errors() []*LogLine {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*LogLine(nil), w.errors...)
}
