// Package logbuf keeps a fixed number of recent log entries in memory.
//
// It plugs into logrus as a hook and feeds the app://log and
// app://plainlog pages.
package logbuf

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time
	Level   logrus.Level
	Message string
}

// Buffer is a ring of the most recent log entries. It implements
// logrus.Hook.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	next     int
	full     bool
}

// New returns a buffer keeping the last capacity entries.
func New(capacity int) *Buffer {
	return &Buffer{
		capacity: capacity,
		entries:  make([]Entry, capacity),
	}
}

// Levels implements logrus.Hook; the buffer captures everything and
// filters at dump time.
func (b *Buffer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (b *Buffer) Fire(entry *logrus.Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = Entry{
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Message,
	}
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.full = true
	}
	return nil
}

// snapshot returns the captured entries at or above min severity, oldest
// first. logrus orders levels most-severe-first, so "at or above" means a
// numerically smaller or equal level.
func (b *Buffer) snapshot(min logrus.Level) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ordered []Entry
	if b.full {
		ordered = append(ordered, b.entries[b.next:]...)
	}
	ordered = append(ordered, b.entries[:b.next]...)

	filtered := make([]Entry, 0, len(ordered))
	for _, e := range ordered {
		if e.Level <= min {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Dump renders the buffered entries as plain text, one line per entry.
func (b *Buffer) Dump(min logrus.Level) string {
	var sb strings.Builder
	for _, e := range b.snapshot(min) {
		fmt.Fprintf(&sb, "%s %-7s %s\n",
			e.Time.Format("15:04:05.000"), strings.ToUpper(e.Level.String()), e.Message)
	}
	return sb.String()
}

// DumpHTML renders the buffered entries as table rows with the level as a
// CSS class, messages escaped.
func (b *Buffer) DumpHTML(min logrus.Level) string {
	var sb strings.Builder
	for _, e := range b.snapshot(min) {
		fmt.Fprintf(&sb, "<tr class=\"%s\"><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			e.Level.String(),
			e.Time.Format("15:04:05.000"),
			strings.ToUpper(e.Level.String()),
			html.EscapeString(e.Message))
	}
	return sb.String()
}
