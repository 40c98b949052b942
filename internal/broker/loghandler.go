// internal/broker/loghandler.go
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LogPublisher is the slice of Client the log handler needs.
type LogPublisher interface {
	PublishLog(line string, onErr func(error))
}

// LogHandler is an slog.Handler that mirrors records at or above its level to
// the MQTT log topic, in addition to the wrapped local handler. Its own
// publish failures go to the local handler only; they are never re-forwarded
// to the log topic.
type LogHandler struct {
	inner slog.Handler
	pub   LogPublisher
	level slog.Level
	local *slog.Logger

	attrs []slog.Attr
	group string
}

// NewLogHandler wraps a local handler with MQTT log forwarding.
func NewLogHandler(inner slog.Handler, pub LogPublisher, level slog.Level) *LogHandler {
	return &LogHandler{
		inner: inner,
		pub:   pub,
		level: level,
		local: slog.New(inner),
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	var innerErr error
	if h.inner.Enabled(ctx, r.Level) {
		innerErr = h.inner.Handle(ctx, r)
	}
	if r.Level >= h.level {
		h.pub.PublishLog(h.format(r), func(err error) {
			h.local.Warn("mqtt log publish failed", "error", err)
		})
	}
	return innerErr
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.inner = h.inner.WithAttrs(attrs)
	cp.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &cp
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	cp := *h
	cp.inner = h.inner.WithGroup(name)
	if cp.group == "" {
		cp.group = name
	} else {
		cp.group += "." + name
	}
	return &cp
}

// format renders "2006-01-02 15:04:05 LEVEL: message key=value ...",
// the same shape the local text sink uses for human readers.
func (h *LogHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	b.WriteString(r.Level.String())
	b.WriteString(": ")
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		h.writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, a)
		return true
	})
	return b.String()
}

func (h *LogHandler) writeAttr(b *strings.Builder, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value)
}
