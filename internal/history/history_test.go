package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendSnapshot(t *testing.T) {
	s := NewStore()
	base := time.Unix(100, 0)

	var want []Message
	for i := 0; i < 6; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleModel
		}
		m := NewMessage(role, fmt.Sprintf("msg-%d", i), base.Add(time.Duration(i)*time.Second))
		n := s.Append(m)
		require.Equal(t, i+1, n)
		want = append(want, m)
	}

	got := s.Snapshot()
	require.Equal(t, want, got)

	// Ensure copy semantics (modifying returned slice does not affect internal state)
	got[0].Content = "mutated"
	assert.Equal(t, "msg-0", s.Snapshot()[0].Content)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "msg-5", last.Content)
	assert.Equal(t, 6, s.Len())
}

func TestStoreTimestampsNeverDecrease(t *testing.T) {
	s := NewStore()
	t1 := time.Unix(200, 0)
	s.Append(NewMessage(RoleModel, "greeting", t1))
	s.Append(NewMessage(RoleUser, "skewed clock", t1.Add(-time.Minute)))

	msgs := s.Snapshot()
	assert.Equal(t, t1, msgs[1].Timestamp)
}

func TestStoreAssignsID(t *testing.T) {
	s := NewStore()
	s.Append(Message{Role: RoleUser, Content: "no id"})
	last, _ := s.Last()
	assert.NotEmpty(t, last.ID)
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	_, ok := s.Last()
	assert.False(t, ok)
	assert.Empty(t, s.Snapshot())
}
