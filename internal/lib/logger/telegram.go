package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender delivers a plain text message to the admin chat.
type Sender interface {
	SendMessage(msg string)
}

// TelegramHandler forwards records at or above level to the admin chat
// and always passes them on to the wrapped handler.
type TelegramHandler struct {
	next   slog.Handler
	sender Sender
	level  slog.Level
	attrs  []slog.Attr
}

func SetupTelegramHandler(lg *slog.Logger, sender Sender, level slog.Level) *slog.Logger {
	return slog.New(NewTelegramHandler(lg.Handler(), sender, level))
}

func NewTelegramHandler(next slog.Handler, sender Sender, level slog.Level) *TelegramHandler {
	return &TelegramHandler{
		next:   next,
		sender: sender,
		level:  level,
	}
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level) || (h.sender != nil && level >= h.level)
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.sender != nil && r.Level >= h.level {
		// the record is formatted here; delivery must not hold up the caller
		go h.sender.SendMessage(format(r, h.attrs))
	}
	if h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		next:   h.next.WithAttrs(attrs),
		sender: h.sender,
		level:  h.level,
		attrs:  merged,
	}
}

// WithGroup keeps attrs flat in the forwarded text.
func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		next:   h.next.WithGroup(name),
		sender: h.sender,
		level:  h.level,
		attrs:  h.attrs,
	}
}

func format(r slog.Record, attrs []slog.Attr) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
	for _, a := range attrs {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		return true
	})
	return b.String()
}
