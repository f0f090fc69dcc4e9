package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func handle(t *testing.T, h slog.Handler, level slog.Level, msg string, attrs ...slog.Attr) {
	t.Helper()
	r := slog.NewRecord(time.Date(2026, 3, 2, 9, 15, 30, 250000000, time.UTC), level, msg, 0)
	r.AddAttrs(attrs...)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
}

func TestTerminalHandler_PlainLine(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	handle(t, h, slog.LevelInfo, "solve finished", slog.Int("result", 4))

	want := "09:15:30.250 INF solve finished result=4\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTerminalHandler_NoColourForBuffers(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)

	handle(t, h, slog.LevelError, "failed")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no escape codes, got %q", buf.String())
	}
}

func TestTerminalHandler_Colour(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)
	h.colour = true

	handle(t, h, slog.LevelError, "failed")

	out := buf.String()
	for _, code := range []string{ansiRed, ansiBold, ansiDim, ansiReset} {
		if !strings.Contains(out, code) {
			t.Errorf("expected %q in %q", code, out)
		}
	}
}

func TestTerminalHandler_LevelLabels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			handle(t, h, tt.level, "msg")
			if !strings.Contains(buf.String(), " "+tt.label+" ") {
				t.Errorf("expected %s, got %q", tt.label, buf.String())
			}
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("INFO should be disabled at WARN")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("ERROR should be enabled at WARN")
	}

	def := newTerminalHandler(&bytes.Buffer{}, nil)
	if def.Enabled(ctx, slog.LevelDebug) || !def.Enabled(ctx, slog.LevelInfo) {
		t.Error("default level should be INFO")
	}
}

func TestTerminalHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	withAttrs := h.WithAttrs([]slog.Attr{slog.String("component", "api")})
	grouped := withAttrs.WithGroup("http")
	handle(t, grouped, slog.LevelInfo, "request",
		slog.String("method", "POST"),
		slog.Group("body", slog.Int("positions", 5)),
	)

	out := buf.String()
	for _, want := range []string{" component=api", "http.method=POST", "http.body.positions=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}

	if h.WithGroup("") != slog.Handler(h) {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestTerminalHandler_QuotesValues(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)

	handle(t, h, slog.LevelInfo, "msg", slog.String("error", "connection refused"))

	if !strings.Contains(buf.String(), `error="connection refused"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}
