package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netivim/internal/lib/sl"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSender) SendMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

type blockingSender struct {
	release chan struct{}
	done    chan string
}

func (s *blockingSender) SendMessage(msg string) {
	<-s.release
	s.done <- msg
}

func TestTelegramHandler_ForwardsOnlyAtLevel(t *testing.T) {
	var buf bytes.Buffer
	sender := &recordingSender{}
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lg := SetupTelegramHandler(base, sender, slog.LevelError)
	lg = lg.With(sl.Module("intake"))

	lg.Info("school added")
	lg.Error("persist schools", sl.Err(errors.New("quota exceeded")))

	require.Eventually(t, func() bool { return len(sender.sent()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	messages := sender.sent()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "persist schools")
	assert.Contains(t, messages[0], "module: intake")
	assert.Contains(t, messages[0], "error: quota exceeded")

	assert.Contains(t, buf.String(), "school added")
	assert.Contains(t, buf.String(), "persist schools")
}

func TestTelegramHandler_NilSender(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	lg := SetupTelegramHandler(base, nil, slog.LevelError)
	lg.Error("boom")

	assert.Contains(t, buf.String(), "boom")
}

func TestTelegramHandler_DoesNotWaitForDelivery(t *testing.T) {
	var buf bytes.Buffer
	sender := &blockingSender{release: make(chan struct{}), done: make(chan string, 1)}
	lg := SetupTelegramHandler(slog.New(slog.NewTextHandler(&buf, nil)), sender, slog.LevelError)

	logged := make(chan struct{})
	go func() {
		lg.Error("upstream down")
		close(logged)
	}()

	select {
	case <-logged:
	case <-time.After(time.Second):
		require.FailNow(t, "logging blocked on the sender")
	}
	assert.Contains(t, buf.String(), "upstream down")

	close(sender.release)
	select {
	case msg := <-sender.done:
		assert.Contains(t, msg, "upstream down")
	case <-time.After(time.Second):
		require.FailNow(t, "message was never delivered")
	}
}
