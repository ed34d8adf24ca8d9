package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "task-manager-server")

	l.Info().Msg("started")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "task-manager-server", entry["role"])
	assert.Equal(t, "started", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")

	caller, ok := entry["func"].(string)
	require.True(t, ok, "caller should be logged under func")
	assert.True(t, strings.HasSuffix(caller, "TestNew_EntryFields"), caller)
}

func TestNew_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "x").Debug().Msg("visible")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.NotEmpty(t, buf.String())
}

func TestNewLogger(t *testing.T) {
	require.NotNil(t, NewLogger("stdout"))
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "parent")

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Logger = child.With().Str("component", "avatar").Logger()
	child.Info().Msg("child")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"])
	assert.Equal(t, "avatar", entry["component"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "component")
}

func TestWithUser(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger().WithContext(context.Background())

	ctx = WithUser(ctx, "user-1")
	FromContext(ctx).Info().Msg("scoped")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "t-1", entry["trace_id"])
	assert.Equal(t, "user-1", entry["user_id"])
}

func TestFromContext_WithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	l.Info().Msg("no panic")
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).With().Str("trace_id", "req-1").Logger().WithContext(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil).WithContext(ctx)

	FromRequest(req).Info().Msg("handled")

	assert.Equal(t, "req-1", decodeEntry(t, &buf)["trace_id"])
}
