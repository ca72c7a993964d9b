package advisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/entity"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   entity.AdvisorReply
	err     error
	prompts []Prompt
	// when set, Generate waits for a value before answering
	release chan struct{}
	started chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, p Prompt) (entity.AdvisorReply, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, p)
	g.mu.Unlock()
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		<-g.release
	}
	return g.reply, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var visible = []entity.School{
	{Name: "זומר", Type: entity.TypeAnthro, City: "רמת גן", Grades: "א-ח"},
}

func TestSend_Success(t *testing.T) {
	g := &fakeGenerator{reply: entity.AdvisorReply{
		Text:    " מומלץ לבדוק את זומר ",
		Sources: []entity.Source{{Title: "news", URI: "https://example.org"}},
	}}
	s := NewSession("s1", g, time.Second, discardLogger())

	reply, err := s.Send(context.Background(), "  איזה בית ספר ולדורף יש?  ", visible)

	require.NoError(t, err)
	assert.Equal(t, "מומלץ לבדוק את זומר", reply)
	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "איזה בית ספר ולדורף יש?"},
		{Role: entity.RoleModel, Content: "מומלץ לבדוק את זומר"},
	}, s.Transcript())
	assert.Len(t, s.Sources(), 1)

	require.Len(t, g.prompts, 1)
	assert.Empty(t, g.prompts[0].History)
	assert.Equal(t, "איזה בית ספר ולדורף יש?", g.prompts[0].Text)
	assert.Contains(t, g.prompts[0].System, "- זומר (אנתרופוסופי (ולדורף)): רמת גן, grades א-ח")
}

func TestSend_HistoryCarriesPriorTurns(t *testing.T) {
	g := &fakeGenerator{reply: entity.AdvisorReply{Text: "תשובה"}}
	s := NewSession("s1", g, time.Second, discardLogger())

	_, err := s.Send(context.Background(), "ראשון", nil)
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "שני", nil)
	require.NoError(t, err)

	require.Len(t, g.prompts, 2)
	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "ראשון"},
		{Role: entity.RoleModel, Content: "תשובה"},
	}, g.prompts[1].History)
	assert.Len(t, s.Transcript(), 4)
}

func TestSend_FailureBecomesModelTurn(t *testing.T) {
	s := NewSession("s1", &fakeGenerator{err: errors.New("503")}, time.Second, discardLogger())

	reply, err := s.Send(context.Background(), "x", visible)

	require.NoError(t, err)
	assert.Equal(t, MsgServiceError, reply)
	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "x"},
		{Role: entity.RoleModel, Content: MsgServiceError},
	}, s.Transcript())
	assert.Empty(t, s.Sources())
}

func TestSend_EmptyReply(t *testing.T) {
	s := NewSession("s1", &fakeGenerator{reply: entity.AdvisorReply{Text: "  "}}, time.Second, discardLogger())

	reply, err := s.Send(context.Background(), "x", nil)

	require.NoError(t, err)
	assert.Equal(t, MsgEmptyReply, reply)
	assert.Len(t, s.Transcript(), 2)
}

func TestSend_EmptyText(t *testing.T) {
	g := &fakeGenerator{}
	s := NewSession("s1", g, time.Second, discardLogger())

	_, err := s.Send(context.Background(), "   ", nil)

	assert.ErrorIs(t, err, ErrEmpty)
	assert.Empty(t, s.Transcript())
	assert.Empty(t, g.prompts)
}

func TestSend_RejectsConcurrentSend(t *testing.T) {
	g := &fakeGenerator{
		reply:   entity.AdvisorReply{Text: "ok"},
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	s := NewSession("s1", g, time.Second, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first", nil)
		done <- err
	}()
	<-g.started

	assert.True(t, s.Pending())
	assert.Equal(t, []entity.ChatMessage{{Role: entity.RoleUser, Content: "first"}}, s.Transcript(),
		"user turn is visible before the reply")

	_, err := s.Send(context.Background(), "second", nil)
	assert.ErrorIs(t, err, ErrBusy)

	close(g.release)
	require.NoError(t, <-done)

	assert.Equal(t, []entity.ChatMessage{
		{Role: entity.RoleUser, Content: "first"},
		{Role: entity.RoleModel, Content: "ok"},
	}, s.Transcript())
	assert.False(t, s.Pending())
}

func TestSend_ReplyAfterCloseIsDropped(t *testing.T) {
	g := &fakeGenerator{
		reply:   entity.AdvisorReply{Text: "late"},
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	s := NewSession("s1", g, time.Second, discardLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "q", nil)
		done <- err
	}()
	<-g.started
	s.Close()
	close(g.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, s.Transcript())

	_, err := s.Send(context.Background(), "again", nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSend_IgnoresCallerCancellation(t *testing.T) {
	g := &ctxGenerator{}
	s := NewSession("s1", g, time.Second, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reply, err := s.Send(ctx, "x", nil)

	require.NoError(t, err)
	assert.Equal(t, "alive", reply)
}

type ctxGenerator struct{}

func (ctxGenerator) Generate(ctx context.Context, _ Prompt) (entity.AdvisorReply, error) {
	if err := ctx.Err(); err != nil {
		return entity.AdvisorReply{}, err
	}
	return entity.AdvisorReply{Text: "alive"}, nil
}

func TestSchoolContext_Empty(t *testing.T) {
	assert.Contains(t, SystemInstruction(nil), "no schools match")
}
