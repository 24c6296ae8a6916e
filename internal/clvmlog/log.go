// Package clvmlog is a small structured-logging wrapper used only for
// optional diagnostic tracing of evaluation (opcode dispatch, cost
// accounting). It mirrors the teacher's own log package: a handler built on
// a conventional leveled-record API. Records are written by slog's text
// handler as plain key=value text, with no color codes, whether or not the
// output is a terminal.
//
// Tracing is opt-in and off by default: the evaluator is consensus-critical
// and must not grow an observable side channel on its hot path unless a
// caller explicitly asks for one via evaluator.Config.Tracer.
package clvmlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is the minimal interface the evaluator package traces through.
type Logger interface {
	Debug(msg string, args ...any)
	Trace(msg string, args ...any)
}

type logger struct {
	s *slog.Logger
}

// New returns a Logger writing to w. If w is a terminal (as reported by
// go-isatty), w is wrapped with go-colorable before use. Either way the
// records come from slog's text handler, which writes no color codes, so
// the output is plain text in a terminal, a pipe or a log file alike.
func New(w io.Writer) Logger {
	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = colorable.NewColorable(f)
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &logger{s: slog.New(h)}
}

// Discard returns a Logger that drops everything; this is the evaluator's
// default so tracing never executes its formatting unless enabled.
func Discard() Logger { return discard{} }

func (l *logger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }

// Trace has no direct slog level; it's logged at Debug with the message
// prefixed by "trace: " to set it apart from Debug records.
func (l *logger) Trace(msg string, args ...any) {
	l.s.Debug(fmt.Sprintf("trace: %s", msg), args...)
}

type discard struct{}

func (discard) Debug(string, ...any) {}
func (discard) Trace(string, ...any) {}
