// Package logging builds the editor's slog logger and keeps recent records
// in memory for the Console panel.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// New returns a text logger writing to w at level, and the ring that
// captures the records it emits. A capacity of 0 disables capture.
func New(w io.Writer, level slog.Level, capacity int) (*slog.Logger, *Ring) {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	ring := NewRing(text, capacity)
	return slog.New(ring), ring
}

// Entry is one captured record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string // message followed by key=value attributes
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level, e.Message)
}

type ringBuffer struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func (b *ringBuffer) add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return
	}
	b.entries[b.next] = e
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}
}

func (b *ringBuffer) snapshot() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.full {
		return append([]Entry(nil), b.entries[:b.next]...)
	}
	out := make([]Entry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	return append(out, b.entries[:b.next]...)
}

// Ring is a slog.Handler that forwards to another handler and keeps the
// last records in a fixed-size buffer. It is safe for concurrent use; the
// handlers derived through WithAttrs and WithGroup share the buffer.
type Ring struct {
	next   slog.Handler
	buf    *ringBuffer
	prefix string // formatted attrs from WithAttrs
	groups []string
}

// NewRing wraps next. A nil next discards records after capture.
func NewRing(next slog.Handler, capacity int) *Ring {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring{
		next: next,
		buf:  &ringBuffer{entries: make([]Entry, capacity)},
	}
}

// Entries returns the captured records, oldest first.
func (r *Ring) Entries() []Entry {
	return r.buf.snapshot()
}

// Cap returns the buffer size.
func (r *Ring) Cap() int {
	return len(r.buf.entries)
}

func (r *Ring) Enabled(ctx context.Context, level slog.Level) bool {
	if r.next == nil {
		return true
	}
	return r.next.Enabled(ctx, level)
}

func (r *Ring) Handle(ctx context.Context, rec slog.Record) error {
	var sb strings.Builder
	sb.WriteString(rec.Message)
	sb.WriteString(r.prefix)
	rec.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, r.groups, a)
		return true
	})
	r.buf.add(Entry{Time: rec.Time, Level: rec.Level, Message: sb.String()})
	if r.next == nil {
		return nil
	}
	return r.next.Handle(ctx, rec)
}

func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return r
	}
	var sb strings.Builder
	sb.WriteString(r.prefix)
	for _, a := range attrs {
		writeAttr(&sb, r.groups, a)
	}
	c := r.clone()
	c.prefix = sb.String()
	if r.next != nil {
		c.next = r.next.WithAttrs(attrs)
	}
	return c
}

func (r *Ring) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	c := r.clone()
	c.groups = append(append([]string(nil), r.groups...), name)
	if r.next != nil {
		c.next = r.next.WithGroup(name)
	}
	return c
}

func (r *Ring) clone() *Ring {
	c := *r
	return &c
}

func writeAttr(sb *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, sub, ga)
		}
		return
	}
	sb.WriteByte(' ')
	for _, g := range groups {
		sb.WriteString(g)
		sb.WriteByte('.')
	}
	sb.WriteString(a.Key)
	sb.WriteByte('=')
	sb.WriteString(a.Value.String())
}
