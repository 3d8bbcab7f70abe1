package generation

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neural-uplink/internal/history"
	"neural-uplink/internal/llm"
)

type fakeClient struct {
	mu    sync.Mutex
	resp  llm.Response
	err   error
	block bool
	calls [][]llm.Message
}

func (f *fakeClient) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, msgs)
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return llm.Response{}, ctx.Err()
	}
	return f.resp, f.err
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func greeting() []history.Message {
	return []history.Message{history.NewMessage(history.RoleModel, "Greetings.", time.Unix(1, 0))}
}

func TestGenerate_Success(t *testing.T) {
	fc := &fakeClient{resp: llm.Response{Content: "  LLMs and RAG.\n", Model: "m", PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5}}
	g := New(fc, WithSystemInstruction("SYS"), WithLogger(quietLogger()))

	res, err := g.Generate(context.Background(), greeting(), "What is your stack?")
	require.NoError(t, err)

	assert.Equal(t, "LLMs and RAG.", res.Text)
	assert.Equal(t, "m", res.Model)
	assert.Equal(t, 5, res.TotalTokens)

	require.Len(t, fc.calls, 1)
	require.Len(t, fc.calls[0], 1)
	assert.Equal(t, llm.RoleUser, fc.calls[0][0].Role)
	assert.Equal(t, "SYS\n\nConversation History:\nManitAI: Greetings.\n\nUser: What is your stack?\nManitAI:", fc.calls[0][0].Content)
}

func TestGenerate_ConfigurationMissing(t *testing.T) {
	g := New(nil, WithLogger(quietLogger()))
	assert.False(t, g.Configured())

	_, err := g.Generate(context.Background(), greeting(), "hello")
	assert.True(t, errors.Is(err, ErrConfigurationMissing))
	assert.False(t, errors.Is(err, ErrGenerationFailed))
}

func TestGenerate_RemoteFailure(t *testing.T) {
	cause := errors.New("connection reset")
	fc := &fakeClient{err: cause}
	g := New(fc, WithLogger(quietLogger()))

	_, err := g.Generate(context.Background(), greeting(), "hello")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Len(t, fc.calls, 1, "no retry")
}

func TestGenerate_EmptyResponse(t *testing.T) {
	fc := &fakeClient{resp: llm.Response{Content: "   "}}
	g := New(fc, WithLogger(quietLogger()))

	_, err := g.Generate(context.Background(), greeting(), "hello")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestGenerate_EmptyUserText(t *testing.T) {
	fc := &fakeClient{}
	g := New(fc, WithLogger(quietLogger()))

	_, err := g.Generate(context.Background(), greeting(), "  ")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Empty(t, fc.calls)
}

func TestGenerate_Timeout(t *testing.T) {
	fc := &fakeClient{block: true}
	g := New(fc, WithTimeout(20*time.Millisecond), WithLogger(quietLogger()))

	start := time.Now()
	_, err := g.Generate(context.Background(), greeting(), "hello")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestBuildPrompt(t *testing.T) {
	prior := []history.Message{
		history.NewMessage(history.RoleModel, "Hi, ask me anything.", time.Unix(1, 0)),
		history.NewMessage(history.RoleUser, "Where do you work?", time.Unix(2, 0)),
		history.NewMessage(history.RoleModel, "Wipro.", time.Unix(3, 0)),
	}
	p := BuildPrompt("", "Twin", prior, "Since when?")

	want := strings.Join([]string{
		"Conversation History:",
		"Twin: Hi, ask me anything.",
		"User: Where do you work?",
		"Twin: Wipro.",
		"",
		"User: Since when?",
		"Twin:",
	}, "\n")
	assert.Equal(t, want, p)
}
