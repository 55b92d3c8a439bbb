package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleAnyOrder(t *testing.T) {
	var out bytes.Buffer
	e := New(slog.New(slog.NewTextHandler(&out, nil)))

	e.Shutdown()
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Initialize())
	e.Shutdown()
	e.Shutdown()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 10, "two lines per call")
	assert.Contains(t, lines[0], "engine shutting down")
	assert.Contains(t, lines[3], "engine initialized")
	assert.Contains(t, lines[0], "component=engine")
}

func TestNilLogger(t *testing.T) {
	e := New(nil)
	assert.NotPanics(t, func() {
		_ = e.Initialize()
		e.Shutdown()
	})
}
