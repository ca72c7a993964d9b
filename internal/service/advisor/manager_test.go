package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/entity"
)

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(&fakeGenerator{reply: entity.AdvisorReply{Text: "hi"}}, time.Minute, time.Second, discardLogger())

	s := m.Open()
	require.NotEmpty(t, s.ID())

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, err := got.Send(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.True(t, m.Close(s.ID()))
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
	assert.Empty(t, s.Transcript(), "closing discards the transcript")

	assert.False(t, m.Close(s.ID()))
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager(&fakeGenerator{reply: entity.AdvisorReply{Text: "hi"}}, time.Minute, time.Second, discardLogger())

	a, b := m.Open(), m.Open()
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := a.Send(context.Background(), "x", nil)
	require.NoError(t, err)

	assert.Len(t, a.Transcript(), 2)
	assert.Empty(t, b.Transcript())
}
