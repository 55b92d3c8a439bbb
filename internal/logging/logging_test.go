package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(r *Ring) []string {
	var out []string
	for _, e := range r.Entries() {
		out = append(out, e.Message)
	}
	return out
}

func TestRingKeepsLastRecords(t *testing.T) {
	var out bytes.Buffer
	log, ring := New(&out, slog.LevelInfo, 3)
	for i := range 5 {
		log.Info(fmt.Sprintf("m%d", i))
	}
	assert.Equal(t, []string{"m2", "m3", "m4"}, messages(ring))
	assert.Equal(t, 3, ring.Cap())
	assert.Contains(t, out.String(), "msg=m0", "records still reach the text handler")
}

func TestRingBeforeWrap(t *testing.T) {
	log, ring := New(&bytes.Buffer{}, slog.LevelInfo, 4)
	log.Info("a")
	log.Info("b")
	assert.Equal(t, []string{"a", "b"}, messages(ring))
}

func TestRingRespectsLevel(t *testing.T) {
	log, ring := New(&bytes.Buffer{}, slog.LevelWarn, 4)
	log.Info("hidden")
	log.Warn("shown")
	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0].Message)
	assert.Equal(t, slog.LevelWarn, entries[0].Level)
}

func TestRingFormatsAttrs(t *testing.T) {
	log, ring := New(&bytes.Buffer{}, slog.LevelDebug, 4)
	log.With("component", "editor").WithGroup("gl").Info("loaded", "major", 4, slog.Group("ctx", "core", true))
	assert.Equal(t, []string{"loaded component=editor gl.major=4 gl.ctx.core=true"}, messages(ring))
}

func TestRingZeroCapacity(t *testing.T) {
	log, ring := New(&bytes.Buffer{}, slog.LevelInfo, 0)
	log.Info("x")
	assert.Empty(t, ring.Entries())
}

func TestRingNilNext(t *testing.T) {
	ring := NewRing(nil, 2)
	log := slog.New(ring)
	log.Debug("d")
	assert.Equal(t, []string{"d"}, messages(ring))
}

func TestRingConcurrent(t *testing.T) {
	log, ring := New(&bytes.Buffer{}, slog.LevelInfo, 64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				log.Info("x", "g", g, "i", i)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, ring.Entries(), 64)
}

func TestEntryString(t *testing.T) {
	e := Entry{Level: slog.LevelWarn, Message: "careful"}
	assert.Contains(t, e.String(), "WARN  careful")
}
