// Package logging builds the slog handler used across the application.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// WithRequestID stores id in ctx so that every record logged with ctx carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestIDHandler adds request_id to records whose context has one.
type requestIDHandler struct {
	slog.Handler
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestID(ctx); id != "" {
		r = r.Clone()
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{h.Handler.WithGroup(name)}
}

// colorEnabled reports whether out is an interactive terminal that accepts ANSI colours.
func colorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	switch f := out.(type) {
	case *os.File:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	default:
		return false
	}
}

// highlightErrors paints error values red.
func highlightErrors(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == "err" {
		return tint.Attr(9, attr)
	}
	if _, isErr := attr.Value.Any().(error); isErr {
		return tint.Attr(9, attr)
	}
	return attr
}

// Output returns stderr, or a size-rotated file when path is set.
func Output(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}
}

// NewHandler writes tinted text to out at Info, or Debug with source locations.
func NewHandler(debug bool, out io.Writer) slog.Handler {
	opts := &tint.Options{
		Level:       slog.LevelInfo,
		TimeFormat:  time.RFC3339,
		ReplaceAttr: highlightErrors,
		NoColor:     !colorEnabled(out),
	}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return requestIDHandler{tint.NewHandler(out, opts)}
}

// New builds a logger and installs it as the slog default.
func New(debug bool, path string) *slog.Logger {
	logger := slog.New(NewHandler(debug, Output(path)))
	slog.SetDefault(logger)
	return logger
}
