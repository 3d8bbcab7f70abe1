package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "journal.jsonl")
	rec, err := NewFileRecorder(p)
	require.NoError(t, err)

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), SessionID: "s1", UserMessage: "hi", AssistantResponse: "hello", Model: "m", TotalTokens: 7, LatencyMS: 120}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), SessionID: "s1", UserMessage: "foo", AssistantResponse: "Error", IsError: true, FailureKind: FailureGenerationFailed}
	require.NoError(t, rec.AppendInteraction(ev1))
	require.NoError(t, rec.AppendInteraction(ev2))

	events, err := rec.LoadInteractions()
	require.NoError(t, err)
	require.Equal(t, []Event{ev1, ev2}, events)

	st, err := os.Stat(p)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())
}

func TestFileRecorder_SkipsCorruptLines(t *testing.T) {
	p := filepath.Join(t.TempDir(), "journal.jsonl")
	content := `{"session_id":"a","user_message":"one"}
not-json
{"session_id":"a","user_message":"two"}
`
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	rec, err := OpenFileRecorder(p)
	require.NoError(t, err)
	events, err := rec.LoadInteractions()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "one", events[0].UserMessage)
	assert.Equal(t, "two", events[1].UserMessage)
}

func TestOpenFileRecorder_Missing(t *testing.T) {
	_, err := OpenFileRecorder(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)

	_, err = OpenFileRecorder(t.TempDir())
	assert.Error(t, err)
}
