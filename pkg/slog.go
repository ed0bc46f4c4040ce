package sndisplay

// https://stackoverflow.com/questions/77422213/how-to-hide-all-keys-when-using-slog-in-golang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler prints records as "[time] [LEVEL] [value]... message", without
// attribute keys.
type Handler struct {
	level slog.Leveler
	attrs []slog.Attr
	mu    *sync.Mutex
	out   io.Writer
}

func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		out:   o,
		level: level,
		mu:    &sync.Mutex{},
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{level: h.level, attrs: merged, out: h.out, mu: h.mu}
}

// WithGroup is a no-op, group names are not printed.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	strs := []string{r.Time.Format("[2006/01/02 15:04:05]")}
	if r.Level != slog.LevelInfo {
		strs = append(strs, fmt.Sprintf("[%s]", r.Level.String()))
	}

	for _, a := range h.attrs {
		strs = append(strs, fmt.Sprintf("[%s]", a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, fmt.Sprintf("[%s]", a.Value.String()))
		return true
	})
	strs = append(strs, r.Message)

	b := []byte(strings.Join(strs, " ") + "\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(b)
	return err
}

// SlogLogger sends info messages to the text handler and errors to a JSON
// handler.
type SlogLogger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func NewSlogLogger(stdout io.Writer, stderr io.Writer) SlogLogger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return SlogLogger{
		InfoLog:  slog.New(NewHandler(stdout, opts)),
		ErrorLog: slog.New(slog.NewJSONHandler(stderr, opts)),
	}
}

func (l SlogLogger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l SlogLogger) Warn(message string, module string) {
	l.InfoLog.Warn(message, "module", module)
}

func (l SlogLogger) Error(message string) {
	l.ErrorLog.Error(message)
}
